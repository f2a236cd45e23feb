package model

import "time"

// Group stores per-chat bot state, keyed by the Telegram chat id.
type Group struct {
	ID     uint  `gorm:"primaryKey"`
	ChatID int64 `gorm:"uniqueIndex"`

	// Advisory feature toggles, enabled by default.
	RoastEnabled   bool `gorm:"default:true"`
	KismatEnabled  bool `gorm:"default:true"`
	ConfessEnabled bool `gorm:"default:true"`
	ChallanEnabled bool `gorm:"default:true"`

	LockedAll   bool `gorm:"default:false"`
	LockedMedia bool `gorm:"default:false"`
	LockedText  bool `gorm:"default:false"`

	// Message id of the most recent anonymous confession, 0 if none.
	LastConfessionID int `gorm:"default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
