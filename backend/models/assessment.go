package models

import "gorm.io/gorm"

// AssessmentResult stores the speech-assessment service's verdict for one
// recording. Tier and scores are opaque inputs from the collaborator; the
// backend only classifies and persists them.
type AssessmentResult struct {
	gorm.Model
	UserID        uint
	Tier          string // explorer, pro, premium
	Overall       float64
	Pronunciation float64
	Fluency       float64
	Strengths     string // JSON array of feedback strings
	Improvements  string // JSON array of feedback strings
	Language      string
	ReferenceText string
}
