package engine

// AggregationPolicy selects how item verdicts roll up into unit success.
type AggregationPolicy string

const (
	// PartialCredit rewards scale with the correct count; completion uses
	// the percentage pass threshold. Used for gap-fill sets.
	PartialCredit AggregationPolicy = "partial"

	// AllOrNothing counts the unit as successful only on a perfect score.
	// Used for situational challenge sets.
	AllOrNothing AggregationPolicy = "all_or_nothing"
)

// Aggregate scores every item in the unit against the attempt's answers.
// A unit with no items is defined as not passed, never a divide-by-zero.
func Aggregate(unit ExerciseUnit, attempt SubmissionAttempt) ScoreResult {
	correct := 0
	for _, item := range unit.Items {
		var submitted *string
		if v, ok := attempt.Answers[item.ID]; ok {
			submitted = &v
		}
		if Match(item, submitted) {
			correct++
		}
	}

	total := len(unit.Items)
	result := ScoreResult{
		CorrectCount: correct,
		TotalCount:   total,
	}
	if total == 0 {
		return result
	}

	result.IsPerfect = correct == total
	result.Passed = float64(correct)/float64(total)*100 >= float64(unit.PassThreshold())
	return result
}

// Percent returns the score as 0-100. A zero-item result scores 0.
func (r ScoreResult) Percent() float64 {
	if r.TotalCount == 0 {
		return 0
	}
	return float64(r.CorrectCount) / float64(r.TotalCount) * 100
}

// Succeeded reports unit-level success under the given aggregation policy.
func (r ScoreResult) Succeeded(policy AggregationPolicy) bool {
	if policy == AllOrNothing {
		return r.TotalCount > 0 && r.IsPerfect
	}
	return r.Passed
}
