package push

import (
	"context"
	"time"

	"firebase.google.com/go/v4/messaging"
)

// messageSender is the part of *messaging.Client the provider uses.
type messageSender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

type FCMProvider struct {
	client messageSender
}

func NewFCMProvider(client *messaging.Client) *FCMProvider {
	return &FCMProvider{
		client: client,
	}
}

func (f *FCMProvider) Name() string {
	return "fcm"
}

func (f *FCMProvider) SendNotification(ctx context.Context, request *NotificationRequest) (*NotificationResponse, error) {
	message := f.buildMessage(request)

	response, err := f.client.Send(ctx, message)
	if err != nil {
		return &NotificationResponse{
			Success: false,
			Error:   err.Error(),
			Token:   request.Token,
		}, err
	}

	return &NotificationResponse{
		MessageID: response,
		Success:   true,
		Token:     request.Token,
	}, nil
}

func (f *FCMProvider) buildMessage(request *NotificationRequest) *messaging.Message {
	message := &messaging.Message{
		Token: request.Token,
		Data:  request.Data,
	}

	if request.Title != "" || request.Body != "" {
		message.Notification = &messaging.Notification{
			Title: request.Title,
			Body:  request.Body,
		}
	}

	if request.Android != nil || request.Priority != "" || request.TTL > 0 || request.CollapseKey != "" || request.Sound != "" {
		android := &messaging.AndroidConfig{
			Priority:    request.Priority,
			CollapseKey: request.CollapseKey,
		}
		if request.TTL > 0 {
			ttl := time.Duration(request.TTL) * time.Second
			android.TTL = &ttl
		}
		if request.Android != nil || request.Sound != "" {
			notification := &messaging.AndroidNotification{
				Title: request.Title,
				Body:  request.Body,
				Sound: request.Sound,
			}
			if request.Android != nil {
				notification.ChannelID = request.Android.ChannelID
			}
			android.Notification = notification
		}
		message.Android = android
	}

	if request.Sound != "" {
		message.APNS = &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Alert: &messaging.ApsAlert{
						Title: request.Title,
						Body:  request.Body,
					},
					Sound: request.Sound,
				},
			},
		}
	}

	return message
}
