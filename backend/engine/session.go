package engine

// ScoringSession composes one pass through the engine: match, aggregate,
// reward, gate. It is a plain value with no hidden state; Score may be
// called any number of times with identical outputs.
type ScoringSession struct {
	Unit        ExerciseUnit
	Aggregation AggregationPolicy
	Reward      RewardPolicy
}

// SessionOutcome bundles everything the caller needs to show feedback and
// persist a completion.
type SessionOutcome struct {
	Result     ScoreResult
	Reward     RewardOutcome
	Completion CompletionDecision
	// ItemCorrect records the per-item verdict keyed by item id.
	ItemCorrect map[string]bool
}

// NewScoringSession builds a session with the default aggregation and reward
// policies for the unit's step type.
func NewScoringSession(unit ExerciseUnit) ScoringSession {
	aggregation := PartialCredit
	if unit.Type == StepMultipleChoice {
		aggregation = AllOrNothing
	}
	return ScoringSession{
		Unit:        unit,
		Aggregation: aggregation,
		Reward:      PolicyFor(unit.Type, 0),
	}
}

// Score runs the attempt through the full pipeline.
func (s ScoringSession) Score(attempt SubmissionAttempt, alreadyCompleted bool) (SessionOutcome, error) {
	verdicts := make(map[string]bool, len(s.Unit.Items))
	for _, item := range s.Unit.Items {
		var submitted *string
		if v, ok := attempt.Answers[item.ID]; ok {
			submitted = &v
		}
		verdicts[item.ID] = Match(item, submitted)
	}

	result := Aggregate(s.Unit, attempt)
	reward, err := ComputeReward(result, s.Reward)
	if err != nil {
		return SessionOutcome{}, err
	}

	// All-or-nothing units complete only on a perfect score, whatever the
	// percentage threshold says.
	gated := result
	gated.Passed = result.Succeeded(s.Aggregation)

	return SessionOutcome{
		Result:      result,
		Reward:      reward,
		Completion:  TryComplete(gated, alreadyCompleted),
		ItemCorrect: verdicts,
	}, nil
}
