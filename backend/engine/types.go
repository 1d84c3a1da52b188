package engine

import (
	"errors"
	"time"
)

// StepType identifies the kind of exercise a unit presents. Only a subset is
// scored by this package; AI-graded types carry their XP from the external
// grading service and skip answer matching entirely.
type StepType string

const (
	StepGapFill           StepType = "gap_fill"
	StepMultiGap          StepType = "multi_gap"
	StepMultipleChoice    StepType = "multiple_choice_challenge"
	StepAssessmentReading StepType = "assessment_reading"
	StepAIWriting         StepType = "ai_writing"
	StepAIConversation    StepType = "ai_conversation"
	StepAISpeech          StepType = "ai_speech"
)

// Scoreable reports whether answers for this step type are matched locally.
func (t StepType) Scoreable() bool {
	switch t {
	case StepGapFill, StepMultiGap, StepMultipleChoice, StepAssessmentReading:
		return true
	}
	return false
}

// AnswerItem is one scoreable question inside a unit. Correct holds every
// accepted answer string; Options is only populated for choice-based items.
type AnswerItem struct {
	ID      string
	Correct []string
	Options []string
}

// ExerciseUnit is one learning activity as presented to the learner for a
// single attempt. It is never mutated once handed to the engine.
type ExerciseUnit struct {
	ID                   string
	Type                 StepType
	Items                []AnswerItem
	PassThresholdPercent int
}

// DefaultPassThreshold is used when a unit does not set its own threshold.
const DefaultPassThreshold = 60

// PassThreshold returns the unit's threshold, falling back to the default
// when unset.
func (u ExerciseUnit) PassThreshold() int {
	if u.PassThresholdPercent <= 0 {
		return DefaultPassThreshold
	}
	return u.PassThresholdPercent
}

// SubmissionAttempt holds the learner's answers for one unit at one point in
// time. Missing keys mean the item was left unanswered.
type SubmissionAttempt struct {
	UnitID      string
	Answers     map[string]string
	SubmittedAt time.Time
}

// ScoreResult is the aggregated verdict over a unit's items.
type ScoreResult struct {
	CorrectCount int
	TotalCount   int
	IsPerfect    bool
	Passed       bool
}

// RewardOutcome is the XP award derived from a score.
type RewardOutcome struct {
	XPAwarded    int
	BonusApplied bool
}

// CompletionDecision is the output of the completion gate.
type CompletionDecision struct {
	JustCompleted bool
}

var (
	// ErrInvalidPolicy signals a reward policy with negative rates. The
	// engine refuses to compute rather than guessing a fallback.
	ErrInvalidPolicy = errors.New("engine: invalid reward policy")

	// ErrInvalidThresholds signals a threshold table that is empty, negative
	// or not in ascending order.
	ErrInvalidThresholds = errors.New("engine: invalid threshold table")
)
