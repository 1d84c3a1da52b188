package models

import "gorm.io/gorm"

// EcosystemProgress counts completed units per ecosystem, the metric behind
// badge levels.
type EcosystemProgress struct {
	gorm.Model
	UserID         uint   `gorm:"uniqueIndex:idx_user_ecosystem"`
	Ecosystem      string `gorm:"uniqueIndex:idx_user_ecosystem"`
	UnitsCompleted int    `gorm:"default:0"`
}

type SpeciesAdoption struct {
	gorm.Model
	UserID    uint
	Species   string
	Ecosystem string
	Nickname  string
	ImageURL  string
}

// ChallengeCompletion marks a challenge as beaten, once per learner. The
// composite unique index keeps the cumulative XP credit at-most-once under
// concurrent submissions, same as unit_completions.
type ChallengeCompletion struct {
	gorm.Model
	UserID      uint `gorm:"uniqueIndex:idx_user_challenge"`
	ChallengeID uint `gorm:"uniqueIndex:idx_user_challenge"`
}

// Challenge is a situational multiple-choice set scored all-or-nothing.
type Challenge struct {
	gorm.Model
	Title       string
	Description string
	Ecosystem   string
	AuthorID    uint
	Questions   []ChallengeQuestion
}

type ChallengeQuestion struct {
	gorm.Model
	ChallengeID   uint
	Prompt        string
	Options       string // JSON array of choices
	Answers       string // JSON array of accepted answers
	SequenceOrder int
}
