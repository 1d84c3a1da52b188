package models

import "gorm.io/gorm"

type Unit struct {
	gorm.Model
	Title         string
	ShortDesc     string
	Description   string
	StepType      string // gap_fill, multi_gap, multiple_choice_challenge, assessment_reading, ai_writing, ai_conversation, ai_speech
	Ecosystem     string // marine, forest, polar, grassland, mountains, freshwater
	Difficulty    string // beginner, intermediate, advanced
	Species       string // featured species for the unit
	ImageURL      string
	AuthorID      uint
	PassThreshold int `gorm:"default:60"` // percent required to complete
	FlatXP        int // award for externally graded step types
	Questions     []UnitQuestion
	AccessLevel   string `gorm:"default:public"` // public, private
}

type UnitQuestion struct {
	gorm.Model
	UnitID        uint
	Prompt        string
	Options       string // JSON array of choices, empty for free-text gaps
	Answers       string // JSON array of accepted answers
	SequenceOrder int
}
