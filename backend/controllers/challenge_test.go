package controllers_test

import (
	"fmt"
	"testing"

	"habitat/backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createChallenge(t *testing.T, title string) (uint, []uint) {
	t.Helper()

	resp, result := doRequest(t, "POST", "/api/admin/challenges/", adminToken, map[string]interface{}{
		"title":       title,
		"description": "Pick the right species",
		"ecosystem":   "polar",
		"questions": []map[string]interface{}{
			{
				"prompt":  "Which animal lives in the Arctic?",
				"options": []string{"polar bear", "penguin", "camel"},
				"answers": []string{"polar bear"},
			},
			{
				"prompt":  "Which bird cannot fly?",
				"options": []string{"albatross", "penguin", "tern"},
				"answers": []string{"penguin"},
			},
		},
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	challenge := result["challenge"].(map[string]interface{})
	challengeID := uint(challenge["ID"].(float64))

	var questionIDs []uint
	for _, q := range challenge["Questions"].([]interface{}) {
		questionIDs = append(questionIDs, uint(q.(map[string]interface{})["ID"].(float64)))
	}
	return challengeID, questionIDs
}

func TestSubmitChallengeAllOrNothing(t *testing.T) {
	challengeID, questionIDs := createChallenge(t, "Polar Quiz")

	// One right answer out of two is not enough for a challenge
	resp, result := doRequest(t, "POST", fmt.Sprintf("/api/challenges/%d/submit", challengeID), userToken, map[string]interface{}{
		"answers": map[string]string{
			fmt.Sprintf("%d", questionIDs[0]): "polar bear",
			fmt.Sprintf("%d", questionIDs[1]): "albatross",
		},
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), result["correct_count"])
	assert.Equal(t, false, result["beaten"])
}

func TestSubmitChallengeCreditsXPOnce(t *testing.T) {
	challengeID, questionIDs := createChallenge(t, "Polar Quiz II")

	payload := map[string]interface{}{
		"answers": map[string]string{
			fmt.Sprintf("%d", questionIDs[0]): "polar bear",
			fmt.Sprintf("%d", questionIDs[1]): "penguin",
		},
	}

	var before models.UserProgress
	db.Where("user_id = ?", testUser.ID).First(&before)

	_, first := doRequest(t, "POST", fmt.Sprintf("/api/challenges/%d/submit", challengeID), userToken, payload)
	assert.Equal(t, true, first["beaten"])
	assert.Equal(t, true, first["just_beaten"])
	xpPerRun := int(first["xp_awarded"].(float64))
	assert.Greater(t, xpPerRun, 0)

	// Replaying the same perfect run keeps the full verdict but never
	// credits the cumulative total a second time
	_, second := doRequest(t, "POST", fmt.Sprintf("/api/challenges/%d/submit", challengeID), userToken, payload)
	assert.Equal(t, true, second["beaten"])
	assert.Equal(t, false, second["just_beaten"])
	assert.Equal(t, float64(xpPerRun), second["xp_awarded"])

	var after models.UserProgress
	db.Where("user_id = ?", testUser.ID).First(&after)
	assert.Equal(t, before.TotalXP+xpPerRun, after.TotalXP)
	assert.Equal(t, before.UnitsCompleted, after.UnitsCompleted)

	var completions int64
	db.Model(&models.ChallengeCompletion{}).
		Where("user_id = ? AND challenge_id = ?", testUser.ID, challengeID).
		Count(&completions)
	assert.Equal(t, int64(1), completions)
}

func TestGetChallengeDetails(t *testing.T) {
	challengeID, _ := createChallenge(t, "Polar Quiz III")

	resp, result := doRequest(t, "GET", fmt.Sprintf("/api/challenges/%d", challengeID), userToken, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	assert.Equal(t, "Polar Quiz III", result["title"])
	questions := result["questions"].([]interface{})
	assert.Len(t, questions, 2)
}
