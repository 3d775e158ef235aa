// internal/workers/assessment/notify-results/models.go
package notifyresults

import "career-assessment-workers/internal/models"

type Input struct {
	UserID          string               `json:"userId"`
	Matches         []models.MatchResult `json:"matches"`
	HollandCode     string               `json:"hollandCode,omitempty"`
	PersonalityType string               `json:"personalityType,omitempty"`
}

type Output struct {
	NotificationID string `json:"notificationId"`
	Status         string `json:"status"`
	EmailMessageID string `json:"emailMessageId,omitempty"`
	SMSMessageID   string `json:"smsMessageId,omitempty"`
	SentAt         string `json:"sentAt"`
}

// Statuses
const (
	StatusSent     = "sent"
	StatusDisabled = "disabled"
)

// Recipient is the contact row of a user.
type Recipient struct {
	UserID string
	Name   string
	Email  string
	Phone  string
}
