package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"alertcast/internal/utils"
	"alertcast/pkg/logger"
	"alertcast/pkg/push"
)

var errPushNotConfigured = errors.New("push provider not configured")

// StatusNotifier sends a single ad-hoc push to one device. Unlike a
// dispatch, a failure here is returned to the caller.
type StatusNotifier interface {
	Notify(ctx context.Context, token, title, body string, data map[string]interface{}) error
}

type statusNotifier struct {
	pushProvider push.PushProvider
	timeout      time.Duration
	logger       *logger.Logger
}

func NewStatusNotifier(pushProvider push.PushProvider, timeout time.Duration, log *logger.Logger) StatusNotifier {
	if timeout <= 0 {
		timeout = DefaultAttemptTimeout
	}
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &statusNotifier{
		pushProvider: pushProvider,
		timeout:      timeout,
		logger:       log,
	}
}

func (n *statusNotifier) Notify(ctx context.Context, token, title, body string, data map[string]interface{}) error {
	const op = "send status notification"

	if err := requireFields(op, map[string]string{
		"token": token,
		"title": title,
		"body":  body,
	}); err != nil {
		return err
	}

	if n.pushProvider == nil {
		return newDeliveryError(op, errPushNotConfigured)
	}

	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	request := &push.NotificationRequest{
		Token:    token,
		Title:    title,
		Body:     body,
		Data:     utils.StringifyMap(data),
		Priority: push.PriorityHigh,
	}

	if err := sendPush(ctx, n.pushProvider, request); err != nil {
		n.logger.WithContext(ctx).WithError(err).Warn("Status notification failed")
		return newDeliveryError(op, fmt.Errorf("%s: %w", n.pushProvider.Name(), err))
	}

	n.logger.WithContext(ctx).Debug("Status notification sent")
	return nil
}
