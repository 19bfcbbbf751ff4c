package interfaces

import (
	"context"

	"alertcast/internal/models"
)

type UserRepository interface {
	// ListPushRecipients reads every user once and returns those with a
	// non-empty push token.
	ListPushRecipients(ctx context.Context) ([]models.PushRecipient, error)
	// GetEmergencyContacts returns an empty map when the user or the
	// contacts node does not exist.
	GetEmergencyContacts(ctx context.Context, uid string) (map[string]models.EmergencyContact, error)
	UpdatePushToken(ctx context.Context, uid, token string) error
}
