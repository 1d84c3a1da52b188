package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTryCompleteIdempotence(t *testing.T) {
	passed := ScoreResult{CorrectCount: 4, TotalCount: 5, Passed: true}

	first := TryComplete(passed, false)
	assert.True(t, first.JustCompleted)

	second := TryComplete(passed, true)
	assert.False(t, second.JustCompleted)
}

func TestTryCompleteFailedScore(t *testing.T) {
	failed := ScoreResult{CorrectCount: 2, TotalCount: 5}

	assert.False(t, TryComplete(failed, false).JustCompleted)
	assert.False(t, TryComplete(failed, true).JustCompleted)
}

func TestScoringSessionPerfectGapFill(t *testing.T) {
	unit := gapFillUnit(5)
	session := NewScoringSession(unit)

	outcome, err := session.Score(SubmissionAttempt{UnitID: unit.ID, Answers: answers(unit, 5)}, false)
	assert.NoError(t, err)
	assert.Equal(t, ScoreResult{CorrectCount: 5, TotalCount: 5, IsPerfect: true, Passed: true}, outcome.Result)
	assert.Equal(t, RewardOutcome{XPAwarded: 70, BonusApplied: true}, outcome.Reward)
	assert.True(t, outcome.Completion.JustCompleted)
	for _, item := range unit.Items {
		assert.True(t, outcome.ItemCorrect[item.ID])
	}
}

func TestScoringSessionBelowThreshold(t *testing.T) {
	unit := gapFillUnit(5)
	session := NewScoringSession(unit)

	outcome, err := session.Score(SubmissionAttempt{UnitID: unit.ID, Answers: answers(unit, 2)}, false)
	assert.NoError(t, err)
	assert.False(t, outcome.Result.Passed)
	assert.Equal(t, 20, outcome.Reward.XPAwarded)
	// First attempt, but below threshold: never completes.
	assert.False(t, outcome.Completion.JustCompleted)
}

func TestScoringSessionAlreadyCompleted(t *testing.T) {
	unit := gapFillUnit(5)
	session := NewScoringSession(unit)
	attempt := SubmissionAttempt{UnitID: unit.ID, Answers: answers(unit, 5)}

	// Re-submitting a completed unit still yields full feedback and an XP
	// preview, but never a second completion.
	outcome, err := session.Score(attempt, true)
	assert.NoError(t, err)
	assert.True(t, outcome.Result.IsPerfect)
	assert.Equal(t, 70, outcome.Reward.XPAwarded)
	assert.False(t, outcome.Completion.JustCompleted)
}

func TestScoringSessionAllOrNothing(t *testing.T) {
	unit := gapFillUnit(3)
	unit.Type = StepMultipleChoice
	session := NewScoringSession(unit)
	assert.Equal(t, AllOrNothing, session.Aggregation)

	// 2/3 clears the 60% threshold but the situational set only completes
	// on a perfect score.
	outcome, err := session.Score(SubmissionAttempt{UnitID: unit.ID, Answers: answers(unit, 2)}, false)
	assert.NoError(t, err)
	assert.True(t, outcome.Result.Passed)
	assert.False(t, outcome.Completion.JustCompleted)
	assert.Equal(t, 30, outcome.Reward.XPAwarded)

	outcome, err = session.Score(SubmissionAttempt{UnitID: unit.ID, Answers: answers(unit, 3)}, false)
	assert.NoError(t, err)
	assert.True(t, outcome.Completion.JustCompleted)
	assert.Equal(t, 65, outcome.Reward.XPAwarded)
}

func TestScoringSessionZeroItemUnit(t *testing.T) {
	unit := ExerciseUnit{ID: "empty", Type: StepGapFill}
	session := NewScoringSession(unit)

	assert.NotPanics(t, func() {
		outcome, err := session.Score(SubmissionAttempt{UnitID: unit.ID}, false)
		assert.NoError(t, err)
		assert.False(t, outcome.Result.Passed)
		assert.False(t, outcome.Completion.JustCompleted)
		assert.Zero(t, outcome.Reward.XPAwarded)
	})
}
