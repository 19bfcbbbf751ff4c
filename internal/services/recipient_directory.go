package services

import (
	"context"
	"sort"
	"strings"

	"alertcast/internal/models"
	"alertcast/internal/repositories/interfaces"
)

// RecipientDirectory takes point-in-time snapshots of who can be alerted.
// Snapshots are not locked against concurrent token updates: a token
// registered after the read is missed until the next dispatch.
type RecipientDirectory interface {
	PushRecipients(ctx context.Context) ([]models.PushRecipient, error)
	ContactsOf(ctx context.Context, reporterID string) ([]models.ContactRecipient, error)
	RegisterPushToken(ctx context.Context, uid, token string) error
}

type recipientDirectory struct {
	userRepo interfaces.UserRepository
}

func NewRecipientDirectory(userRepo interfaces.UserRepository) RecipientDirectory {
	return &recipientDirectory{userRepo: userRepo}
}

// PushRecipients returns one recipient per distinct token, ordered by uid.
// When several users share a token the first uid wins.
func (d *recipientDirectory) PushRecipients(ctx context.Context) ([]models.PushRecipient, error) {
	users, err := d.userRepo.ListPushRecipients(ctx)
	if err != nil {
		return nil, storeError("list push recipients", err)
	}

	sort.SliceStable(users, func(i, j int) bool {
		return users[i].UID < users[j].UID
	})

	seen := make(map[string]struct{}, len(users))
	recipients := make([]models.PushRecipient, 0, len(users))
	for _, user := range users {
		token := strings.TrimSpace(user.Token)
		if token == "" {
			continue
		}
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		recipients = append(recipients, models.PushRecipient{UID: user.UID, Token: token})
	}

	return recipients, nil
}

func (d *recipientDirectory) ContactsOf(ctx context.Context, reporterID string) ([]models.ContactRecipient, error) {
	if strings.TrimSpace(reporterID) == "" {
		return []models.ContactRecipient{}, nil
	}

	contacts, err := d.userRepo.GetEmergencyContacts(ctx, reporterID)
	if err != nil {
		return nil, storeError("get emergency contacts", err)
	}

	recipients := make([]models.ContactRecipient, 0, len(contacts))
	for id, contact := range contacts {
		phone := strings.TrimSpace(contact.PhoneNumber)
		if phone == "" {
			continue
		}
		recipients = append(recipients, models.ContactRecipient{
			ContactID:   id,
			Name:        contact.Name,
			PhoneNumber: phone,
		})
	}

	sort.Slice(recipients, func(i, j int) bool {
		return recipients[i].ContactID < recipients[j].ContactID
	})

	return recipients, nil
}

func (d *recipientDirectory) RegisterPushToken(ctx context.Context, uid, token string) error {
	if err := requireFields("register push token", map[string]string{
		"uid":   uid,
		"token": token,
	}); err != nil {
		return err
	}

	if err := d.userRepo.UpdatePushToken(ctx, uid, strings.TrimSpace(token)); err != nil {
		return storeError("register push token", err)
	}
	return nil
}
