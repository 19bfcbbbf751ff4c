package services

import (
	"context"

	"alertcast/internal/models"
	"alertcast/pkg/logger"
)

type ReportService interface {
	// PublicizeReport publishes a report and alerts every push recipient and
	// the reporter's emergency contacts. Delivery failures are reported in
	// the result, not as an error.
	PublicizeReport(ctx context.Context, reportID string) (*models.PublishResult, error)
	RegisterPushToken(ctx context.Context, uid, token string) error
	SendStatusNotification(ctx context.Context, request *models.StatusNotificationRequest) error
}

type reportService struct {
	guard     PublicationGuard
	composer  *AlertComposer
	directory RecipientDirectory
	engine    DispatchEngine
	notifier  StatusNotifier
	logger    *logger.Logger
}

func NewReportService(
	guard PublicationGuard,
	composer *AlertComposer,
	directory RecipientDirectory,
	engine DispatchEngine,
	notifier StatusNotifier,
	log *logger.Logger,
) ReportService {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &reportService{
		guard:     guard,
		composer:  composer,
		directory: directory,
		engine:    engine,
		notifier:  notifier,
		logger:    log,
	}
}

func (s *reportService) PublicizeReport(ctx context.Context, reportID string) (*models.PublishResult, error) {
	var (
		recipients []models.PushRecipient
		contacts   []models.ContactRecipient
	)
	// snapshots are taken before the flag is written so a directory outage
	// leaves the report publishable on retry
	outcome, err := s.guard.Publish(ctx, reportID, func(ctx context.Context, report *models.Report) error {
		var err error
		if recipients, err = s.directory.PushRecipients(ctx); err != nil {
			return err
		}
		contacts, err = s.directory.ContactsOf(ctx, report.ReporterID)
		return err
	})
	if err != nil {
		return nil, err
	}

	report := outcome.Report
	if outcome.AlreadyPublished {
		s.logger.LogPublication(report.ID, "already_published", nil)
		return &models.PublishResult{Report: report, AlreadyPublished: true}, nil
	}

	alert := s.composer.Compose(report)
	dispatch := s.engine.Dispatch(ctx, alert, recipients, contacts)

	s.logger.LogPublication(report.ID, "published", map[string]interface{}{
		"recipients": len(recipients),
		"contacts":   len(contacts),
		"attempted":  dispatch.Attempted(),
		"failed":     dispatch.Failed(),
	})

	return &models.PublishResult{
		Report:   report,
		Dispatch: dispatch,
	}, nil
}

func (s *reportService) RegisterPushToken(ctx context.Context, uid, token string) error {
	if err := s.directory.RegisterPushToken(ctx, uid, token); err != nil {
		return err
	}
	s.logger.WithContext(ctx).WithField("uid", uid).Info("Push token registered")
	return nil
}

func (s *reportService) SendStatusNotification(ctx context.Context, request *models.StatusNotificationRequest) error {
	return s.notifier.Notify(ctx, request.Token, request.Title, request.Body, request.Data)
}
