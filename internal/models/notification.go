package models

import "time"

type Channel string

const (
	ChannelPush Channel = "push"
	ChannelSMS  Channel = "sms"
)

// Alert is a composed, channel-neutral alert.
type Alert struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	// SMSBody is the text rendering used for the SMS channel.
	SMSBody  string            `json:"sms_body"`
	Metadata map[string]string `json:"metadata"`
}

// DeliveryOutcome is the result of one attempt to one recipient over one
// channel. It is never persisted.
type DeliveryOutcome struct {
	Recipient   string        `json:"recipient"`
	Channel     Channel       `json:"channel"`
	Success     bool          `json:"success"`
	ErrorDetail string        `json:"error_detail,omitempty"`
	Duration    time.Duration `json:"duration"`
}

type ChannelStats struct {
	Attempted int `json:"attempted"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// DispatchReport aggregates the outcomes of one dispatch.
type DispatchReport struct {
	Channels map[Channel]*ChannelStats `json:"channels"`
	Outcomes []DeliveryOutcome         `json:"outcomes,omitempty"`
	Duration time.Duration             `json:"duration"`
}

func NewDispatchReport() *DispatchReport {
	return &DispatchReport{
		Channels: map[Channel]*ChannelStats{
			ChannelPush: {},
			ChannelSMS:  {},
		},
	}
}

// Record adds one outcome to the report.
func (r *DispatchReport) Record(outcome DeliveryOutcome) {
	stats, ok := r.Channels[outcome.Channel]
	if !ok {
		stats = &ChannelStats{}
		r.Channels[outcome.Channel] = stats
	}
	stats.Attempted++
	if outcome.Success {
		stats.Succeeded++
	} else {
		stats.Failed++
	}
	r.Outcomes = append(r.Outcomes, outcome)
}

func (r *DispatchReport) Attempted() int {
	total := 0
	for _, stats := range r.Channels {
		total += stats.Attempted
	}
	return total
}

func (r *DispatchReport) Failed() int {
	total := 0
	for _, stats := range r.Channels {
		total += stats.Failed
	}
	return total
}

// StatusNotificationRequest is the body of POST /send_status_notification.
type StatusNotificationRequest struct {
	Token string `json:"token" validate:"required"`
	Title string `json:"title" validate:"required"`
	Body  string `json:"body" validate:"required"`
	// Data values are stringified before sending; push payload data is
	// string-only.
	Data map[string]interface{} `json:"data,omitempty"`
}
