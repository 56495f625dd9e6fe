package models

import "time"

// ReferralEdge records a confirmed invite: it is only written when the
// referrer account existed at signup time, and at most once per referee.
type ReferralEdge struct {
	ID         int64 `gorm:"primaryKey,autoIncrement"`
	ReferrerID int64 `gorm:"index;not null"`
	RefereeID  int64 `gorm:"uniqueIndex;not null"`
	CreatedAt  time.Time
}
