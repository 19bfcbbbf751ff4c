package utils

// Application Constants
const (
	AppName    = "Alertcast"
	AppVersion = "1.0.0"

	DefaultTimeZone = "UTC"

	// Response status
	StatusSuccess = "success"
	StatusError   = "error"

	HeaderRequestID  = "X-Request-ID"
	ContextRequestID = "request_id"
)

// Error messages
const (
	ErrValidationFailed = "Validation failed"
	ErrInternalServer   = "Internal server error"
	ErrReportNotFound   = "Report not found"
	ErrDeliveryFailed   = "Notification delivery failed"
	ErrDirectoryFailure = "Directory service unavailable"
)
