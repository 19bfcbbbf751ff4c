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
)

type reportRepository struct {
	collection *mongo.Collection
}

func NewReportRepository(db *mongo.Database) interfaces.ReportRepository {
	return &reportRepository{
		collection: db.Collection(database.ReportsCollection),
	}
}

func (r *reportRepository) GetByID(ctx context.Context, id string) (*models.Report, error) {
	if id == "" {
		return nil, interfaces.ErrInvalidID
	}

	var report models.Report
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&report)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("report %s: %w", id, interfaces.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	return &report, nil
}

func (r *reportRepository) MarkPublished(ctx context.Context, id string) error {
	if id == "" {
		return interfaces.ErrInvalidID
	}

	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"published": true, "updated_at": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("failed to mark report published: %w", err)
	}

	return nil
}
