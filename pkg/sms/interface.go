package sms

import "context"

type SMSProvider interface {
	Name() string
	SendSMS(ctx context.Context, request *SMSRequest) (*SMSResponse, error)
}

type SMSRequest struct {
	To      string `json:"to"`
	From    string `json:"from"`
	Message string `json:"message"`
	Type    string `json:"type"` // transactional, promotional
}

type SMSResponse struct {
	MessageID string `json:"message_id"`
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
}

const (
	StatusSent   = "sent"
	StatusFailed = "failed"

	TypeTransactional = "transactional"
	TypePromotional   = "promotional"
)
