package firebase

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/db"

	"alertcast/internal/models"
	"alertcast/internal/repositories/interfaces"
)

type userRepository struct {
	tree tree
}

func NewUserRepository(client *db.Client) interfaces.UserRepository {
	return &userRepository{tree: clientTree{client: client}}
}

// userNode decodes only the push token; contacts are read per reporter.
type userNode struct {
	PushToken string `json:"fcmToken"`
}

func (r *userRepository) ListPushRecipients(ctx context.Context) ([]models.PushRecipient, error) {
	var users map[string]*userNode
	if err := r.tree.ref(usersPath).Get(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	recipients := make([]models.PushRecipient, 0, len(users))
	for uid, user := range users {
		if user == nil || user.PushToken == "" {
			continue
		}
		recipients = append(recipients, models.PushRecipient{UID: uid, Token: user.PushToken})
	}

	return recipients, nil
}

func (r *userRepository) GetEmergencyContacts(ctx context.Context, uid string) (map[string]models.EmergencyContact, error) {
	path, err := childPath(usersPath, uid, fieldEmergencyContacts)
	if err != nil {
		return nil, err
	}

	var contacts map[string]models.EmergencyContact
	if err := r.tree.ref(path).Get(ctx, &contacts); err != nil {
		return nil, fmt.Errorf("failed to get emergency contacts: %w", err)
	}
	if contacts == nil {
		contacts = map[string]models.EmergencyContact{}
	}

	return contacts, nil
}

func (r *userRepository) UpdatePushToken(ctx context.Context, uid, token string) error {
	path, err := childPath(usersPath, uid)
	if err != nil {
		return err
	}

	if err := r.tree.ref(path).Update(ctx, map[string]interface{}{fieldPushToken: token}); err != nil {
		return fmt.Errorf("failed to update push token: %w", err)
	}

	return nil
}
