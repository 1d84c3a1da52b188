package clients

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// AssessmentClient talks to the external speech-assessment service: audio
// in, scored JSON out. The backend never computes the scores itself.
type AssessmentClient struct {
	Client  *http.Client
	BaseURL string
}

func NewAssessmentClient(baseURL string) *AssessmentClient {
	return &AssessmentClient{
		Client: &http.Client{
			Timeout: 60 * time.Second, // audio uploads can be slow
		},
		BaseURL: baseURL,
	}
}

type AssessmentScores struct {
	Overall       float64 `json:"overall"`
	Pronunciation float64 `json:"pronunciation"`
	Fluency       float64 `json:"fluency"`
}

type AssessmentFeedback struct {
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
}

type AssessmentResponse struct {
	RecommendedTier string             `json:"recommended_tier"`
	Scores          AssessmentScores   `json:"scores"`
	Feedback        AssessmentFeedback `json:"feedback"`
}

// Score posts the recording with its reference text and language tag as a
// multipart form and decodes the service's verdict.
func (a *AssessmentClient) Score(audio io.Reader, filename, referenceText, language string) (*AssessmentResponse, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("audio", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, audio); err != nil {
		return nil, err
	}
	if err := writer.WriteField("reference_text", referenceText); err != nil {
		return nil, err
	}
	if err := writer.WriteField("language", language); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, a.BaseURL+"/assess", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := a.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("assessment service returned status %d", resp.StatusCode)
	}

	var result AssessmentResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	return &result, nil
}
