package models

import "gorm.io/gorm"

// UnitCompletion is the durable one-way completion record. The composite
// unique index is what makes the completion gate race-safe: a concurrent
// double submit hits a duplicate-key error instead of a double award.
type UnitCompletion struct {
	gorm.Model
	UserID uint `gorm:"uniqueIndex:idx_user_unit"`
	UnitID uint `gorm:"uniqueIndex:idx_user_unit"`
}

// SubmissionRecord is the audit trail of every scored attempt, completed or
// not. AttemptID is a uuid so client retries can be traced.
type SubmissionRecord struct {
	gorm.Model
	AttemptID     string `gorm:"uniqueIndex"`
	UserID        uint
	UnitID        uint
	CorrectCount  int
	TotalCount    int
	Score         float64
	XPAwarded     int
	Passed        bool
	JustCompleted bool
}
