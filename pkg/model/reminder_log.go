package model

import (
	"time"
)

const EmailDisabledMessage = "User has email notifications disabled"

type ReminderLog struct {
	ID             uint `gorm:"primaryKey"`
	UserID         uint
	SubscriptionID uint
	ReminderType   ReminderType
	ScheduledFor   time.Time
	SentAt         time.Time
	Status         ReminderStatus
	ErrorMessage   *string
	EmailID        *string
}

func (r ReminderLog) TableName() string {
	return "reminder_logs"
}
