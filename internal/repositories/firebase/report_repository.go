package firebase

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/db"

	"alertcast/internal/models"
	"alertcast/internal/repositories/interfaces"
)

type reportRepository struct {
	tree tree
}

func NewReportRepository(client *db.Client) interfaces.ReportRepository {
	return &reportRepository{tree: clientTree{client: client}}
}

func (r *reportRepository) GetByID(ctx context.Context, id string) (*models.Report, error) {
	path, err := childPath(reportsPath, id)
	if err != nil {
		return nil, err
	}

	var report *models.Report
	if err := r.tree.ref(path).Get(ctx, &report); err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}
	if report == nil || isFlagOnly(report) {
		return nil, fmt.Errorf("report %s: %w", id, interfaces.ErrNotFound)
	}

	report.ID = id
	return report, nil
}

// MarkPublished writes only the flag. On a missing report this leaves a node
// holding just the flag, which GetByID treats as not found.
func (r *reportRepository) MarkPublished(ctx context.Context, id string) error {
	path, err := childPath(reportsPath, id, fieldPublished)
	if err != nil {
		return err
	}

	if err := r.tree.ref(path).Set(ctx, true); err != nil {
		return fmt.Errorf("failed to mark report published: %w", err)
	}

	return nil
}

func isFlagOnly(report *models.Report) bool {
	return report.EmergencyType == "" &&
		report.OtherEmergencyText == "" &&
		report.LocationType == "" &&
		report.LocationRaw == "" &&
		report.TimestampMillis == nil &&
		report.ReporterID == ""
}
