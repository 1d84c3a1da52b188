package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeRewardScaled(t *testing.T) {
	policy := ScaledPolicy(10, 20)

	tests := []struct {
		name   string
		result ScoreResult
		want   RewardOutcome
	}{
		{
			name:   "perfect five gap fill",
			result: ScoreResult{CorrectCount: 5, TotalCount: 5, IsPerfect: true, Passed: true},
			want:   RewardOutcome{XPAwarded: 70, BonusApplied: true},
		},
		{
			name:   "partial two of five",
			result: ScoreResult{CorrectCount: 2, TotalCount: 5},
			want:   RewardOutcome{XPAwarded: 20},
		},
		{
			name:   "nothing correct",
			result: ScoreResult{CorrectCount: 0, TotalCount: 5},
			want:   RewardOutcome{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ComputeReward(tc.result, policy)
			assert.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestComputeRewardFlat(t *testing.T) {
	policy := FlatPolicy(20)

	passed, err := ComputeReward(ScoreResult{CorrectCount: 1, TotalCount: 1, IsPerfect: true, Passed: true}, policy)
	assert.NoError(t, err)
	assert.Equal(t, RewardOutcome{XPAwarded: 20}, passed)

	failed, err := ComputeReward(ScoreResult{CorrectCount: 0, TotalCount: 1}, policy)
	assert.NoError(t, err)
	assert.Equal(t, RewardOutcome{}, failed)
}

func TestComputeRewardDeterministic(t *testing.T) {
	result := ScoreResult{CorrectCount: 4, TotalCount: 5, Passed: true}
	policy := ScaledPolicy(15, 20)

	first, err := ComputeReward(result, policy)
	assert.NoError(t, err)
	second, err := ComputeReward(result, policy)
	assert.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestComputeRewardRejectsNegativeRates(t *testing.T) {
	result := ScoreResult{CorrectCount: 1, TotalCount: 1, IsPerfect: true, Passed: true}

	_, err := ComputeReward(result, ScaledPolicy(-10, 20))
	assert.ErrorIs(t, err, ErrInvalidPolicy)

	_, err = ComputeReward(result, ScaledPolicy(10, -20))
	assert.ErrorIs(t, err, ErrInvalidPolicy)

	_, err = ComputeReward(result, FlatPolicy(-5))
	assert.ErrorIs(t, err, ErrInvalidPolicy)

	_, err = ComputeReward(result, RewardPolicy{Kind: "unknown"})
	assert.ErrorIs(t, err, ErrInvalidPolicy)
}

func TestPolicyFor(t *testing.T) {
	assert.Equal(t, ScaledPolicy(10, 20), PolicyFor(StepGapFill, 0))
	assert.Equal(t, ScaledPolicy(10, 20), PolicyFor(StepMultiGap, 0))
	assert.Equal(t, ScaledPolicy(15, 20), PolicyFor(StepMultipleChoice, 0))
	assert.Equal(t, FlatPolicy(25), PolicyFor(StepAIWriting, 25))
	assert.Equal(t, FlatPolicy(20), PolicyFor(StepAISpeech, 20))
}
