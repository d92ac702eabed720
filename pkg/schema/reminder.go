package schema

import (
	"time"

	"github.com/doodlesbykumbi/substack-in-go/pkg/model"
)

type ReminderLogResponse struct {
	ID             uint      `json:"id"`
	UserID         uint      `json:"user_id"`
	SubscriptionID uint      `json:"subscription_id"`
	ReminderType   string    `json:"reminder_type"`
	ScheduledFor   time.Time `json:"scheduled_for"`
	SentAt         time.Time `json:"sent_at"`
	Status         string    `json:"status"`
	ErrorMessage   *string   `json:"error_message"`
	EmailID        *string   `json:"email_id"`
}

type ReminderLogListResponse struct {
	Items      []ReminderLogResponse `json:"items"`
	TotalCount int64                 `json:"total_count"`
	Offset     int                   `json:"offset"`
	Limit      int                   `json:"limit"`
}

func FromReminderLog(l *model.ReminderLog) ReminderLogResponse {
	return ReminderLogResponse{
		ID:             l.ID,
		UserID:         l.UserID,
		SubscriptionID: l.SubscriptionID,
		ReminderType:   l.ReminderType.String(),
		ScheduledFor:   l.ScheduledFor,
		SentAt:         l.SentAt,
		Status:         l.Status.String(),
		ErrorMessage:   l.ErrorMessage,
		EmailID:        l.EmailID,
	}
}

func FromReminderLogs(logs []model.ReminderLog, total int64, offset, limit int) ReminderLogListResponse {
	resp := ReminderLogListResponse{
		Items:      make([]ReminderLogResponse, 0, len(logs)),
		TotalCount: total,
		Offset:     offset,
		Limit:      limit,
	}
	for i := range logs {
		resp.Items = append(resp.Items, FromReminderLog(&logs[i]))
	}
	return resp
}
