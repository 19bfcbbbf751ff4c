package push

import "context"

type PushProvider interface {
	Name() string
	SendNotification(ctx context.Context, request *NotificationRequest) (*NotificationResponse, error)
}

type NotificationRequest struct {
	Token       string            `json:"token"`
	Title       string            `json:"title"`
	Body        string            `json:"body"`
	Data        map[string]string `json:"data,omitempty"`
	Sound       string            `json:"sound,omitempty"`
	Priority    string            `json:"priority,omitempty"`
	TTL         int               `json:"ttl,omitempty"`
	CollapseKey string            `json:"collapse_key,omitempty"`
	Android     *AndroidConfig    `json:"android,omitempty"`
}

type NotificationResponse struct {
	MessageID string `json:"message_id"`
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
	Token     string `json:"token,omitempty"`
}

// AndroidConfig carries options with no APNs equivalent. Devices show
// notifications on the named channel, which the app must have created.
type AndroidConfig struct {
	ChannelID string `json:"channel_id,omitempty"`
}

const (
	PriorityHigh   = "high"
	PriorityNormal = "normal"
)
