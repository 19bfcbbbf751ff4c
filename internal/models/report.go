package models

type LocationType string

const (
	LocationTypeHomeAddress     LocationType = "HomeAddress"
	LocationTypePresentAddress  LocationType = "PresentAddress"
	LocationTypeCurrentLocation LocationType = "CurrentLocation"
	LocationTypeCustomLocation  LocationType = "CustomLocation"
)

// EmergencyTypeOthers marks a report whose category is described in
// OtherEmergencyText instead of EmergencyType.
const EmergencyTypeOthers = "Others"

// Report is an incident record created by the reporting clients. The json
// tags follow the Realtime Database node layout under reports/{id}.
type Report struct {
	ID                 string       `json:"id,omitempty" bson:"_id"`
	EmergencyType      string       `json:"emergencyType" bson:"emergency_type"`
	OtherEmergencyText string       `json:"otherEmergency,omitempty" bson:"other_emergency"`
	LocationType       LocationType `json:"locationType" bson:"location_type"`
	LocationRaw        string       `json:"location" bson:"location"`
	TimestampMillis    *int64       `json:"timestamp,omitempty" bson:"timestamp,omitempty"`
	ReporterID         string       `json:"userId,omitempty" bson:"user_id"`
	Published          bool         `json:"published" bson:"published"`
}

// PublishRequest is the body of POST /publicize_report.
type PublishRequest struct {
	ReportID string `json:"reportId" validate:"required"`
}

// PublishResult is what the publicize flow reports back to the caller.
type PublishResult struct {
	Report           *Report         `json:"report"`
	AlreadyPublished bool            `json:"already_published"`
	Dispatch         *DispatchReport `json:"dispatch,omitempty"`
}
