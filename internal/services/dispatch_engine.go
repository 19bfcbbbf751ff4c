package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"alertcast/internal/models"
	"alertcast/internal/utils"
	"alertcast/pkg/logger"
	"alertcast/pkg/push"
	"alertcast/pkg/sms"
)

const (
	DefaultMaxConcurrency = 16
	DefaultAttemptTimeout = 10 * time.Second
)

var errInvalidPhone = errors.New("phone number has no digits")

// DispatchEngine fans an alert out to every recipient. A failed attempt is
// recorded in the report and never returned as an error.
type DispatchEngine interface {
	Dispatch(ctx context.Context, alert *models.Alert, recipients []models.PushRecipient, contacts []models.ContactRecipient) *models.DispatchReport
}

type DispatchOptions struct {
	MaxConcurrency int
	AttemptTimeout time.Duration
	// AlertSound, AlertTTL and AndroidChannelID are applied to every push
	// request. Zero values leave the platform defaults.
	AlertSound       string
	AlertTTL         time.Duration
	AndroidChannelID string
	// DefaultCountryCode rewrites national numbers with a leading 0 to
	// international form. Empty sends them as stored.
	DefaultCountryCode string
}

type dispatchEngine struct {
	pushProvider push.PushProvider
	smsProvider  sms.SMSProvider
	options      DispatchOptions
	logger       *logger.Logger
}

// deliveryTask is one attempt to one recipient.
type deliveryTask struct {
	channel   models.Channel
	recipient string
	send      func(ctx context.Context) error
}

// NewDispatchEngine accepts nil providers; the matching channel is then
// skipped.
func NewDispatchEngine(pushProvider push.PushProvider, smsProvider sms.SMSProvider, options DispatchOptions, log *logger.Logger) DispatchEngine {
	if options.MaxConcurrency <= 0 {
		options.MaxConcurrency = DefaultMaxConcurrency
	}
	if options.AttemptTimeout <= 0 {
		options.AttemptTimeout = DefaultAttemptTimeout
	}
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &dispatchEngine{
		pushProvider: pushProvider,
		smsProvider:  smsProvider,
		options:      options,
		logger:       log,
	}
}

func (e *dispatchEngine) Dispatch(ctx context.Context, alert *models.Alert, recipients []models.PushRecipient, contacts []models.ContactRecipient) *models.DispatchReport {
	start := time.Now()
	reportID := alert.Metadata[MetadataReportID]
	log := e.logger.WithReportID(reportID)

	// attempts outlive the triggering request
	ctx = context.WithoutCancel(ctx)

	tasks := make([]deliveryTask, 0, len(recipients)+len(contacts))
	tasks = append(tasks, e.pushTasks(alert, recipients, log)...)
	tasks = append(tasks, e.smsTasks(alert, contacts, log)...)

	outcomes := make([]models.DeliveryOutcome, len(tasks))
	var g errgroup.Group
	g.SetLimit(e.options.MaxConcurrency)
	for i, task := range tasks {
		i, task := i, task
		g.Go(func() error {
			outcomes[i] = e.attempt(ctx, task)
			return nil
		})
	}
	_ = g.Wait()

	report := models.NewDispatchReport()
	for _, outcome := range outcomes {
		report.Record(outcome)
		if !outcome.Success {
			log.LogDeliveryFailure(string(outcome.Channel), outcome.Recipient, outcome.ErrorDetail, outcome.Duration)
		}
	}
	report.Duration = time.Since(start)

	pushStats, smsStats := report.Channels[models.ChannelPush], report.Channels[models.ChannelSMS]
	log.LogDispatchSummary(reportID, map[string]int{
		"push_attempted": pushStats.Attempted,
		"push_succeeded": pushStats.Succeeded,
		"push_failed":    pushStats.Failed,
		"sms_attempted":  smsStats.Attempted,
		"sms_succeeded":  smsStats.Succeeded,
		"sms_failed":     smsStats.Failed,
	}, report.Duration)

	return report
}

func (e *dispatchEngine) pushTasks(alert *models.Alert, recipients []models.PushRecipient, log *logger.Logger) []deliveryTask {
	if len(recipients) == 0 {
		return nil
	}
	if e.pushProvider == nil {
		log.WithField("recipients", len(recipients)).Warn("Push provider not configured, skipping push channel")
		return nil
	}

	tasks := make([]deliveryTask, 0, len(recipients))
	for _, recipient := range recipients {
		request := e.pushRequest(alert)
		request.Token = recipient.Token
		tasks = append(tasks, deliveryTask{
			channel:   models.ChannelPush,
			recipient: recipient.UID,
			send: func(ctx context.Context) error {
				return sendPush(ctx, e.pushProvider, request)
			},
		})
	}
	return tasks
}

// pushRequest builds the token-less part of an alert notification. A repeat
// broadcast of the same report replaces the earlier one on the device.
func (e *dispatchEngine) pushRequest(alert *models.Alert) *push.NotificationRequest {
	request := &push.NotificationRequest{
		Title:    alert.Title,
		Body:     alert.Body,
		Data:     alert.Metadata,
		Sound:    e.options.AlertSound,
		Priority: push.PriorityHigh,
		TTL:      int(e.options.AlertTTL / time.Second),
	}
	if reportID := alert.Metadata[MetadataReportID]; reportID != "" {
		request.CollapseKey = "report_" + reportID
	}
	if e.options.AndroidChannelID != "" {
		request.Android = &push.AndroidConfig{ChannelID: e.options.AndroidChannelID}
	}
	return request
}

func (e *dispatchEngine) smsTasks(alert *models.Alert, contacts []models.ContactRecipient, log *logger.Logger) []deliveryTask {
	if len(contacts) == 0 {
		return nil
	}
	if e.smsProvider == nil {
		log.WithField("contacts", len(contacts)).Warn("SMS provider not configured, skipping sms channel")
		return nil
	}

	tasks := make([]deliveryTask, 0, len(contacts))
	for _, contact := range contacts {
		phone := utils.NormalizePhone(contact.PhoneNumber, e.options.DefaultCountryCode)
		request := &sms.SMSRequest{
			To:      phone,
			Message: alert.SMSBody,
			Type:    sms.TypeTransactional,
		}
		tasks = append(tasks, deliveryTask{
			channel:   models.ChannelSMS,
			recipient: utils.MaskPhone(phone),
			send: func(ctx context.Context) error {
				if phone == "" {
					return errInvalidPhone
				}
				return sendSMS(ctx, e.smsProvider, request)
			},
		})
	}
	return tasks
}

// attempt runs one task under the attempt timeout. Provider SDKs that ignore
// the context are abandoned when the timeout fires; their result is dropped.
func (e *dispatchEngine) attempt(ctx context.Context, task deliveryTask) models.DeliveryOutcome {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, e.options.AttemptTimeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- fmt.Errorf("panic during delivery: %v", r)
			}
		}()
		done <- task.send(ctx)
	}()

	var err error
	select {
	case err = <-done:
	case <-ctx.Done():
		err = fmt.Errorf("delivery timed out after %s", e.options.AttemptTimeout)
	}

	outcome := models.DeliveryOutcome{
		Recipient: task.recipient,
		Channel:   task.channel,
		Success:   err == nil,
		Duration:  time.Since(start),
	}
	if err != nil {
		outcome.ErrorDetail = err.Error()
	}
	return outcome
}

func sendPush(ctx context.Context, provider push.PushProvider, request *push.NotificationRequest) error {
	response, err := provider.SendNotification(ctx, request)
	if err != nil {
		return err
	}
	if response != nil && !response.Success {
		return fmt.Errorf("%s rejected notification: %s", provider.Name(), response.Error)
	}
	return nil
}

func sendSMS(ctx context.Context, provider sms.SMSProvider, request *sms.SMSRequest) error {
	response, err := provider.SendSMS(ctx, request)
	if err != nil {
		return err
	}
	if response != nil && response.Status == sms.StatusFailed {
		return fmt.Errorf("%s rejected message: %s", provider.Name(), response.Error)
	}
	return nil
}
