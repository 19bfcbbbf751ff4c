package services

import (
	"strings"
	"time"

	"alertcast/internal/models"
	"alertcast/internal/utils"
)

const (
	DefaultAlertTitle = "Alertcast Emergency Alert"

	FallbackEmergencyText = "Emergency Report"
	UnknownTimestamp      = "Unknown"
	SMSPrefix             = "Emergency Alert: "

	MetadataReportID      = "reportId"
	MetadataLocation      = "location"
	MetadataTimestamp     = "timestamp"
	MetadataEmergencyType = "emergencyType"
	MetadataType          = "type"

	alertTypeEmergency = "emergency_alert"
)

// AlertComposer builds the alert text for a report. Timestamps are rendered
// in the composer's time zone.
type AlertComposer struct {
	title    string
	location *time.Location
}

func NewAlertComposer(title string, location *time.Location) *AlertComposer {
	if title == "" {
		title = DefaultAlertTitle
	}
	if location == nil {
		location = time.UTC
	}
	return &AlertComposer{
		title:    title,
		location: location,
	}
}

func (c *AlertComposer) Title() string {
	return c.title
}

func (c *AlertComposer) Compose(report *models.Report) *models.Alert {
	primary := PrimaryMessage(report)
	location := ResolveLocation(report.LocationType, report.LocationRaw)
	reported := c.FormatTimestamp(report.TimestampMillis)

	details := []string{
		"Location: " + location,
		"Reported: " + reported,
	}

	return &models.Alert{
		Title:   c.title,
		Body:    strings.Join(append([]string{primary}, details...), "\n"),
		SMSBody: strings.Join(append([]string{SMSPrefix + primary}, details...), "\n"),
		Metadata: map[string]string{
			MetadataReportID:      report.ID,
			MetadataLocation:      location,
			MetadataTimestamp:     reported,
			MetadataEmergencyType: primary,
			MetadataType:          alertTypeEmergency,
		},
	}
}

// FormatTimestamp renders epoch milliseconds truncated to whole seconds.
func (c *AlertComposer) FormatTimestamp(millis *int64) string {
	if millis == nil {
		return UnknownTimestamp
	}
	return utils.FormatEpochMillis(*millis, c.location)
}

// PrimaryMessage is the first line of every alert.
func PrimaryMessage(report *models.Report) string {
	if report.EmergencyType == models.EmergencyTypeOthers {
		return utils.CoalesceString(report.OtherEmergencyText, FallbackEmergencyText)
	}
	return utils.CoalesceString(report.EmergencyType, FallbackEmergencyText)
}
