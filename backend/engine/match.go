package engine

// Match compares one submitted answer against an item's accepted answers.
// Comparison is strict byte equality: no trimming, no case folding. A nil
// submission (item left unanswered) never matches and never panics.
func Match(item AnswerItem, submitted *string) bool {
	if submitted == nil {
		return false
	}
	for _, correct := range item.Correct {
		if *submitted == correct {
			return true
		}
	}
	return false
}
