package services

import (
	"context"
	"strings"
	"time"

	"alertcast/internal/models"
	"alertcast/internal/repositories/interfaces"
	"alertcast/pkg/logger"
)

const publishClaimPrefix = "report_publish:"

// PublishClaimer is the subset of the cache used to stop two admins
// publishing the same report at the same moment. *cache.RedisCache
// satisfies it.
type PublishClaimer interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error)
	Delete(ctx context.Context, keys ...string) error
}

type PublishOutcome struct {
	Report           *models.Report
	AlreadyPublished bool
}

// PrepareFunc runs against the stored report before its flag is written. An
// error aborts publication and the report stays unpublished.
type PrepareFunc func(ctx context.Context, report *models.Report) error

type PublicationGuard interface {
	// Publish sets the report's published flag and returns the stored
	// record. The flag is only ever set to true. prepare may be nil.
	Publish(ctx context.Context, reportID string, prepare PrepareFunc) (*PublishOutcome, error)
}

type GuardOptions struct {
	// AllowRepublish writes the flag unconditionally so every call
	// dispatches again.
	AllowRepublish bool
	// Claimer is optional. A nil claimer disables the cross-request claim.
	Claimer  PublishClaimer
	ClaimTTL time.Duration
}

type publicationGuard struct {
	reportRepo interfaces.ReportRepository
	options    GuardOptions
	logger     *logger.Logger
}

func NewPublicationGuard(reportRepo interfaces.ReportRepository, options GuardOptions, log *logger.Logger) PublicationGuard {
	if log == nil {
		log = logger.NewNopLogger()
	}
	if options.ClaimTTL <= 0 {
		options.ClaimTTL = 10 * time.Minute
	}
	return &publicationGuard{
		reportRepo: reportRepo,
		options:    options,
		logger:     log,
	}
}

func (g *publicationGuard) Publish(ctx context.Context, reportID string, prepare PrepareFunc) (*PublishOutcome, error) {
	reportID = strings.TrimSpace(reportID)
	if err := requireFields("publish report", map[string]string{"reportId": reportID}); err != nil {
		return nil, err
	}

	if g.options.AllowRepublish {
		return g.republish(ctx, reportID, prepare)
	}

	report, err := g.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		return nil, storeError("publish report", err)
	}
	if report.Published {
		return &PublishOutcome{Report: report, AlreadyPublished: true}, nil
	}

	claimed, release := g.claim(ctx, reportID)
	if !claimed {
		return &PublishOutcome{Report: report, AlreadyPublished: true}, nil
	}

	if prepare != nil {
		if err := prepare(ctx, report); err != nil {
			release()
			return nil, err
		}
	}

	outcome, err := g.writeThenRead(ctx, reportID)
	if err != nil {
		release()
		return nil, err
	}
	return outcome, nil
}

// republish writes first, so a missing report is only detected on read-back.
// A prepare failure here is retried by the next call, which dispatches again.
func (g *publicationGuard) republish(ctx context.Context, reportID string, prepare PrepareFunc) (*PublishOutcome, error) {
	outcome, err := g.writeThenRead(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if prepare != nil {
		if err := prepare(ctx, outcome.Report); err != nil {
			return nil, err
		}
	}
	return outcome, nil
}

func (g *publicationGuard) writeThenRead(ctx context.Context, reportID string) (*PublishOutcome, error) {
	if err := g.reportRepo.MarkPublished(ctx, reportID); err != nil {
		return nil, storeError("mark report published", err)
	}

	report, err := g.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		return nil, storeError("read published report", err)
	}
	return &PublishOutcome{Report: report}, nil
}

// claim returns false only when another request holds the claim. Cache
// failures are logged and treated as claimed so Redis outages do not block
// publication.
func (g *publicationGuard) claim(ctx context.Context, reportID string) (bool, func()) {
	noop := func() {}
	if g.options.Claimer == nil {
		return true, noop
	}

	key := publishClaimPrefix + reportID
	ok, err := g.options.Claimer.SetNX(ctx, key, time.Now().Unix(), g.options.ClaimTTL)
	if err != nil {
		g.logger.WithReportID(reportID).WithError(err).Warn("Publish claim unavailable, continuing without it")
		return true, noop
	}
	if !ok {
		g.logger.WithReportID(reportID).Info("Report is being published by another request")
		return false, noop
	}

	return true, func() {
		if err := g.options.Claimer.Delete(context.WithoutCancel(ctx), key); err != nil {
			g.logger.WithReportID(reportID).WithError(err).Warn("Failed to release publish claim")
		}
	}
}
