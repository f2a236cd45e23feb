package model

import "time"

// User stores per-user bot state, keyed by the Telegram user id.
type User struct {
	ID         uint  `gorm:"primaryKey"`
	TelegramID int64 `gorm:"uniqueIndex"`
	Name       string

	IsAfk     bool `gorm:"default:false"`
	AfkReason string
	AfkSince  *time.Time

	Birthday string // DD-MM, optional

	MutedCount  int `gorm:"default:0"`
	BannedCount int `gorm:"default:0"`
	Warnings    int `gorm:"default:0"`

	// Last calendar day (YYYY-MM-DD) a daily feature stored a result.
	KismatUsed string
	AukaatUsed string // reserved

	CreatedAt time.Time
	UpdatedAt time.Time
}
