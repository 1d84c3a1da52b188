package engine

// RewardKind distinguishes the two observed reward shapes: per-correct
// scaling with a perfect bonus, and a flat award gated on passing.
type RewardKind string

const (
	RewardScaled RewardKind = "scaled"
	RewardFlat   RewardKind = "flat"
)

// RewardPolicy is a tagged variant. Scaled policies use XPPerCorrect and
// PerfectBonus; flat policies use FlatXP. Externally graded step types
// (writing, speech, conversation) are flat policies whose FlatXP comes from
// the grading service.
type RewardPolicy struct {
	Kind         RewardKind
	XPPerCorrect int
	PerfectBonus int
	FlatXP       int
}

// ScaledPolicy builds a per-correct reward policy.
func ScaledPolicy(xpPerCorrect, perfectBonus int) RewardPolicy {
	return RewardPolicy{Kind: RewardScaled, XPPerCorrect: xpPerCorrect, PerfectBonus: perfectBonus}
}

// FlatPolicy builds a pass/fail flat reward policy.
func FlatPolicy(xp int) RewardPolicy {
	return RewardPolicy{Kind: RewardFlat, FlatXP: xp}
}

// XP rates observed across the platform's unit types.
const (
	XPPerGapFill      = 10
	XPPerSituational  = 15
	XPFlatSituational = 20
	PerfectBonusXP    = 20
)

// PolicyFor returns the default reward policy for a step type. AI-graded
// types take their XP from the caller (the grading service's award).
func PolicyFor(t StepType, callerXP int) RewardPolicy {
	switch t {
	case StepGapFill, StepMultiGap, StepAssessmentReading:
		return ScaledPolicy(XPPerGapFill, PerfectBonusXP)
	case StepMultipleChoice:
		return ScaledPolicy(XPPerSituational, PerfectBonusXP)
	default:
		return FlatPolicy(callerXP)
	}
}

// ComputeReward converts a score into an XP award. It is deterministic and
// idempotent: identical inputs always yield identical outcomes. Negative
// rates are a configuration error, not a zero award.
func ComputeReward(result ScoreResult, policy RewardPolicy) (RewardOutcome, error) {
	switch policy.Kind {
	case RewardScaled:
		if policy.XPPerCorrect < 0 || policy.PerfectBonus < 0 {
			return RewardOutcome{}, ErrInvalidPolicy
		}
		outcome := RewardOutcome{XPAwarded: result.CorrectCount * policy.XPPerCorrect}
		if result.IsPerfect {
			outcome.XPAwarded += policy.PerfectBonus
			outcome.BonusApplied = policy.PerfectBonus > 0
		}
		return outcome, nil
	case RewardFlat:
		if policy.FlatXP < 0 {
			return RewardOutcome{}, ErrInvalidPolicy
		}
		if result.Passed {
			return RewardOutcome{XPAwarded: policy.FlatXP}, nil
		}
		return RewardOutcome{}, nil
	default:
		return RewardOutcome{}, ErrInvalidPolicy
	}
}
