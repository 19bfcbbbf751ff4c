package interfaces

import (
	"context"

	"alertcast/internal/models"
)

type ReportRepository interface {
	// GetByID returns ErrNotFound when no report exists at id.
	GetByID(ctx context.Context, id string) (*models.Report, error)
	// MarkPublished sets the published flag to true. It never clears it.
	MarkPublished(ctx context.Context, id string) error
}
