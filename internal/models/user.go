package models

import "time"

type User struct {
	ID                   uint       `gorm:"primaryKey"`
	Email                string     `gorm:"uniqueIndex;not null"`
	DisplayName          string     `gorm:"not null;default:''"`
	NotificationsEnabled bool       `gorm:"not null;default:true"`
	TelegramChatID       string     `gorm:"not null;default:''"`
	StreakCount          int        `gorm:"not null;default:0"`
	LastAcknowledgedOn   *time.Time `gorm:"type:date"`
	CreatedAt            time.Time  `gorm:"not null"`
}
