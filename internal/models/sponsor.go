package models

import "time"

// Sponsor is a channel the user base is asked to subscribe to. Subscription
// verification happens outside this service; we only store the result.
type Sponsor struct {
	ID              int64  `gorm:"primaryKey,autoIncrement"`
	ChannelUsername string `gorm:"unique;not null"`
	ChannelID       string
	ChannelURL      string
	CreatedAt       time.Time
}

type SponsorSubscription struct {
	ID            int64 `gorm:"primaryKey,autoIncrement"`
	AccountID     int64 `gorm:"uniqueIndex:idx_account_sponsor;not null"`
	SponsorID     int64 `gorm:"uniqueIndex:idx_account_sponsor;not null"`
	IsSubscribed  bool
	LastCheckedAt time.Time
}
