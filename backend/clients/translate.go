package clients

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// TranslateClient wraps the display-only translation service.
type TranslateClient struct {
	Client  *http.Client
	BaseURL string
}

func NewTranslateClient(baseURL string) *TranslateClient {
	return &TranslateClient{
		Client: &http.Client{
			Timeout: 15 * time.Second,
		},
		BaseURL: baseURL,
	}
}

type TranslateRequest struct {
	Text           string `json:"text"`
	TargetLanguage string `json:"target_language"`
	Context        string `json:"context,omitempty"`
}

type TranslateResponse struct {
	TranslatedText string `json:"translated_text"`
}

func (t *TranslateClient) Translate(req TranslateRequest) (*TranslateResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	resp, err := t.Client.Post(t.BaseURL+"/translate", "application/json", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("translation service returned status %d", resp.StatusCode)
	}

	var result TranslateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	return &result, nil
}
