package models

import "time"

// View types returned by the progress endpoints; not persisted.

type MonthlyActivity struct {
	Month          time.Month     `json:"month"`
	Year           int            `json:"year"`
	UnitsCompleted int64          `json:"units_completed"`
	XPEarned       int64          `json:"xp_earned"`
	LoginFrequency map[string]int `json:"login_frequency"` // day -> count
}

type ProgressOverview struct {
	TotalXP         int               `json:"total_xp"`
	UnitsCompleted  int               `json:"units_completed"`
	StreakDays      int               `json:"streak_days"`
	GreenScaleLevel string            `json:"green_scale_level"`
	Badges          map[string]string `json:"badges"`       // ecosystem -> badge label
	BadgeLevels     map[string]int    `json:"badge_levels"` // ecosystem -> level 1..4
	MonthlyActivity []MonthlyActivity `json:"monthly_activity,omitempty"`
}
