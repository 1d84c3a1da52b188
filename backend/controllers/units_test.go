package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"habitat/backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doRequest(t *testing.T, method, url, token string, payload interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(jsonData)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, url, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)
	return resp, result
}

// createGapFillUnit creates a unit with n single-answer questions through the
// admin API and returns the unit id plus question ids in order.
func createGapFillUnit(t *testing.T, title string, n int) (uint, []uint) {
	t.Helper()

	resp, result := doRequest(t, "POST", "/api/admin/units/", adminToken, map[string]interface{}{
		"Title":     title,
		"ShortDesc": "Fill the gaps",
		"StepType":  "gap_fill",
		"Ecosystem": "marine",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	unitID := uint(result["unit"].(map[string]interface{})["ID"].(float64))

	var questionIDs []uint
	for i := 0; i < n; i++ {
		qResp, qResult := doRequest(t, "POST", fmt.Sprintf("/api/admin/units/%d/questions", unitID), adminToken, map[string]interface{}{
			"prompt":  fmt.Sprintf("The whale ___ in the ocean (%d)", i),
			"answers": []string{fmt.Sprintf("swims%d", i)},
		})
		require.Equal(t, fiber.StatusOK, qResp.StatusCode)
		questionIDs = append(questionIDs, uint(qResult["question"].(map[string]interface{})["ID"].(float64)))
	}
	return unitID, questionIDs
}

func TestGetUnitDetailsHidesAnswers(t *testing.T) {
	unitID, _ := createGapFillUnit(t, "Ocean Currents", 2)

	resp, result := doRequest(t, "GET", fmt.Sprintf("/api/units/%d", unitID), userToken, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	unit := result["unit"].(map[string]interface{})
	assert.Equal(t, "Ocean Currents", unit["title"])
	questions := unit["questions"].([]interface{})
	assert.Len(t, questions, 2)
	for _, q := range questions {
		_, present := q.(map[string]interface{})["answers"]
		assert.False(t, present)
	}
	assert.Equal(t, false, result["completed"])
}

func TestSubmitUnitPerfectRun(t *testing.T) {
	unitID, questionIDs := createGapFillUnit(t, "Coral Reefs", 5)

	answers := map[string]string{}
	for i, id := range questionIDs {
		answers[fmt.Sprintf("%d", id)] = fmt.Sprintf("swims%d", i)
	}

	resp, result := doRequest(t, "POST", fmt.Sprintf("/api/units/%d/submit", unitID), userToken, map[string]interface{}{
		"answers": answers,
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	assert.Equal(t, float64(5), result["correct_count"])
	assert.Equal(t, float64(5), result["total_count"])
	assert.Equal(t, float64(100), result["score"])
	assert.Equal(t, true, result["is_perfect"])
	assert.Equal(t, true, result["passed"])
	assert.Equal(t, true, result["bonus_applied"])
	assert.Equal(t, float64(70), result["xp_awarded"]) // 5*10 + perfect bonus 20
	assert.Equal(t, true, result["just_completed"])
	assert.NotEmpty(t, result["attempt_id"])

	var progress models.UserProgress
	db.Where("user_id = ?", testUser.ID).First(&progress)
	assert.GreaterOrEqual(t, progress.TotalXP, 70)

	var eco models.EcosystemProgress
	err := db.Where("user_id = ? AND ecosystem = ?", testUser.ID, "marine").First(&eco).Error
	assert.NoError(t, err)
	assert.GreaterOrEqual(t, eco.UnitsCompleted, 1)
}

func TestSubmitUnitIsIdempotent(t *testing.T) {
	unitID, questionIDs := createGapFillUnit(t, "Kelp Forests", 3)

	answers := map[string]string{}
	for i, id := range questionIDs {
		answers[fmt.Sprintf("%d", id)] = fmt.Sprintf("swims%d", i)
	}
	payload := map[string]interface{}{"answers": answers}

	_, first := doRequest(t, "POST", fmt.Sprintf("/api/units/%d/submit", unitID), userToken, payload)
	assert.Equal(t, true, first["just_completed"])

	var progress models.UserProgress
	db.Where("user_id = ?", testUser.ID).First(&progress)
	xpAfterFirst := progress.TotalXP
	unitsAfterFirst := progress.UnitsCompleted

	_, second := doRequest(t, "POST", fmt.Sprintf("/api/units/%d/submit", unitID), userToken, payload)
	assert.Equal(t, true, second["passed"])
	assert.Equal(t, false, second["just_completed"])

	db.Where("user_id = ?", testUser.ID).First(&progress)
	assert.Equal(t, xpAfterFirst, progress.TotalXP)
	assert.Equal(t, unitsAfterFirst, progress.UnitsCompleted)
}

func TestSubmitUnitBelowThreshold(t *testing.T) {
	unitID, questionIDs := createGapFillUnit(t, "Deep Sea", 5)

	// Two right, three wrong: 40% sits under the default 60% threshold
	answers := map[string]string{}
	for i, id := range questionIDs {
		if i < 2 {
			answers[fmt.Sprintf("%d", id)] = fmt.Sprintf("swims%d", i)
		} else {
			answers[fmt.Sprintf("%d", id)] = "wrong"
		}
	}

	resp, result := doRequest(t, "POST", fmt.Sprintf("/api/units/%d/submit", unitID), userToken, map[string]interface{}{
		"answers": answers,
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	assert.Equal(t, float64(2), result["correct_count"])
	assert.Equal(t, float64(40), result["score"])
	assert.Equal(t, false, result["passed"])
	assert.Equal(t, false, result["just_completed"])
	assert.Equal(t, float64(20), result["xp_awarded"])

	var completions int64
	db.Model(&models.UnitCompletion{}).
		Where("user_id = ? AND unit_id = ?", testUser.ID, unitID).
		Count(&completions)
	assert.Equal(t, int64(0), completions)
}

func TestSubmitUnitMissingAnswersCountWrong(t *testing.T) {
	unitID, questionIDs := createGapFillUnit(t, "Tide Pools", 2)

	// Only one answer submitted; the unanswered item counts against the score
	answers := map[string]string{
		fmt.Sprintf("%d", questionIDs[0]): "swims0",
	}

	resp, result := doRequest(t, "POST", fmt.Sprintf("/api/units/%d/submit", unitID), userToken, map[string]interface{}{
		"answers": answers,
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), result["correct_count"])
	assert.Equal(t, float64(2), result["total_count"])
	assert.Equal(t, false, result["is_perfect"])
}

func TestSubmitAIGradedUnitFlatPassthrough(t *testing.T) {
	resp, result := doRequest(t, "POST", "/api/admin/units/", adminToken, map[string]interface{}{
		"Title":     "Whale Migration Essay",
		"StepType":  "ai_writing",
		"Ecosystem": "marine",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	unitID := uint(result["unit"].(map[string]interface{})["ID"].(float64))

	// Externally graded steps skip answer matching; the grading service's
	// verdict and award pass straight through
	submitResp, first := doRequest(t, "POST", fmt.Sprintf("/api/units/%d/submit", unitID), userToken, map[string]interface{}{
		"graded":    true,
		"earned_xp": 25,
	})
	require.Equal(t, fiber.StatusOK, submitResp.StatusCode)
	assert.Equal(t, float64(0), first["total_count"])
	assert.Equal(t, true, first["passed"])
	assert.Equal(t, float64(25), first["xp_awarded"])
	assert.Equal(t, true, first["just_completed"])

	var progress models.UserProgress
	db.Where("user_id = ?", testUser.ID).First(&progress)
	xpAfterFirst := progress.TotalXP

	_, second := doRequest(t, "POST", fmt.Sprintf("/api/units/%d/submit", unitID), userToken, map[string]interface{}{
		"graded":    true,
		"earned_xp": 25,
	})
	assert.Equal(t, true, second["passed"])
	assert.Equal(t, false, second["just_completed"])

	db.Where("user_id = ?", testUser.ID).First(&progress)
	assert.Equal(t, xpAfterFirst, progress.TotalXP)
}

func TestSubmitAIGradedUnitFlatXPOverride(t *testing.T) {
	resp, result := doRequest(t, "POST", "/api/admin/units/", adminToken, map[string]interface{}{
		"Title":    "Ranger Conversation",
		"StepType": "ai_conversation",
		"FlatXP":   30,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	unitID := uint(result["unit"].(map[string]interface{})["ID"].(float64))

	// A unit-level flat award wins over the caller's figure
	_, graded := doRequest(t, "POST", fmt.Sprintf("/api/units/%d/submit", unitID), userToken, map[string]interface{}{
		"graded":    true,
		"earned_xp": 99,
	})
	assert.Equal(t, float64(30), graded["xp_awarded"])
	assert.Equal(t, true, graded["just_completed"])
}

func TestSubmitAIGradedUnitNotGraded(t *testing.T) {
	resp, result := doRequest(t, "POST", "/api/admin/units/", adminToken, map[string]interface{}{
		"Title":    "Unfinished Essay",
		"StepType": "ai_writing",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	unitID := uint(result["unit"].(map[string]interface{})["ID"].(float64))

	_, rejected := doRequest(t, "POST", fmt.Sprintf("/api/units/%d/submit", unitID), userToken, map[string]interface{}{
		"graded":    false,
		"earned_xp": 25,
	})
	assert.Equal(t, false, rejected["passed"])
	assert.Equal(t, float64(0), rejected["xp_awarded"])
	assert.Equal(t, false, rejected["just_completed"])
}

func TestGetAvailableUnitsFilters(t *testing.T) {
	createGapFillUnit(t, "Mangrove Nurseries", 1)

	resp, _ := doRequest(t, "GET", "/api/units/available?ecosystem=marine", userToken, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	req := httptest.NewRequest("GET", "/api/units/available?search=Mangrove", nil)
	req.Header.Set("Authorization", userToken)
	searchResp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, searchResp.StatusCode)

	var units []map[string]interface{}
	json.NewDecoder(searchResp.Body).Decode(&units)
	require.NotEmpty(t, units)
	found := false
	for _, u := range units {
		if u["title"] == "Mangrove Nurseries" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestAdminEndpointsRejectNonAdmin(t *testing.T) {
	resp, _ := doRequest(t, "POST", "/api/admin/units/", userToken, map[string]interface{}{
		"Title": "Sneaky Unit",
	})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
