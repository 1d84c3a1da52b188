package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Username       string `gorm:"unique;not null"`
	Email          string `gorm:"unique;not null"`
	PasswordHash   string `gorm:"not null"`
	Role           string `gorm:"default:user"` // user, admin
	NativeLanguage string // en, pt, th
	Tier           string `gorm:"default:explorer"` // explorer, pro, premium
}

type UserProgress struct {
	gorm.Model
	UserID         uint `gorm:"uniqueIndex"`
	TotalXP        int  `gorm:"default:0"`
	UnitsCompleted int  `gorm:"default:0"`
	StreakDays     int  `gorm:"default:0"`
	LastActive     time.Time
}

type LoginHistory struct {
	gorm.Model
	UserID    uint
	LoginTime time.Time
}
