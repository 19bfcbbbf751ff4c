package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"alertcast/internal/models"
	"alertcast/internal/repositories/interfaces"
	"alertcast/pkg/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type userRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(db *mongo.Database) interfaces.UserRepository {
	return &userRepository{
		collection: db.Collection(database.UsersCollection),
	}
}

func (r *userRepository) ListPushRecipients(ctx context.Context) ([]models.PushRecipient, error) {
	cursor, err := r.collection.Find(
		ctx,
		bson.M{"push_token": bson.M{"$exists": true, "$ne": ""}},
		options.Find().SetProjection(bson.M{"push_token": 1}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer cursor.Close(ctx)

	recipients := make([]models.PushRecipient, 0)
	for cursor.Next(ctx) {
		var user models.User
		if err := cursor.Decode(&user); err != nil {
			return nil, fmt.Errorf("failed to decode user: %w", err)
		}
		if user.PushToken == "" {
			continue
		}
		recipients = append(recipients, models.PushRecipient{UID: user.UID, Token: user.PushToken})
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return recipients, nil
}

func (r *userRepository) GetEmergencyContacts(ctx context.Context, uid string) (map[string]models.EmergencyContact, error) {
	if uid == "" {
		return nil, interfaces.ErrInvalidID
	}

	var user models.User
	err := r.collection.FindOne(
		ctx,
		bson.M{"_id": uid},
		options.FindOne().SetProjection(bson.M{"emergency_contacts": 1}),
	).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return map[string]models.EmergencyContact{}, nil
		}
		return nil, fmt.Errorf("failed to get emergency contacts: %w", err)
	}

	if user.EmergencyContacts == nil {
		return map[string]models.EmergencyContact{}, nil
	}

	return user.EmergencyContacts, nil
}

func (r *userRepository) UpdatePushToken(ctx context.Context, uid, token string) error {
	if uid == "" {
		return interfaces.ErrInvalidID
	}

	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": uid},
		bson.M{"$set": bson.M{"push_token": token, "updated_at": time.Now()}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to update push token: %w", err)
	}

	return nil
}
