package engine

// TryComplete is the completion gate: a unit counts as newly completed only
// on a passing score when it was not completed before. The transition is
// one-way; re-submitting a completed unit still yields feedback but never a
// second completion. Callers own the durable effects (marking completion,
// bumping counters, crediting XP) and must make them idempotent at the
// storage layer.
func TryComplete(result ScoreResult, alreadyCompleted bool) CompletionDecision {
	return CompletionDecision{JustCompleted: result.Passed && !alreadyCompleted}
}
