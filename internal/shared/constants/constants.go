package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Default pagination
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// HTTP Headers
	HeaderContentType   = "Content-Type"
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderXDeviceID     = "X-Device-ID"
	HeaderXAppVersion   = "X-App-Version"
	HeaderUserAgent     = "User-Agent"

	// Context keys. user_id holds the public SID; caller_id holds the
	// internal numeric ID use case commands are keyed by.
	ContextKeyUserID    = "user_id"
	ContextKeyCallerID  = "caller_id"
	ContextKeyUserRoles = "user_roles"
	ContextKeyRequestID = "request_id"
	ContextKeyDeviceID  = "device_id"
	ContextKeyClientIP  = "client_ip"

	// Sync gateway bounds
	MaxSyncBatchSize = 500

	// Prescription summary bounds (characters)
	PrescriptionSummaryMin = 160
	PrescriptionSummaryMax = 300

	// Report envelope version. Major bump on breaking schema changes,
	// minor bump for additive ones.
	ReportVersion = "1.0"

	// Anchor payload schema version
	AnchorVersion = "1.0"

	// Analytics payload schema version
	AnalyticsSchemaVersion = "1.0"

	// Error messages
	ErrMsgInternalServerError = "Internal server error occurred"
	ErrMsgResourceNotFound    = "Resource not found"
	ErrMsgUnauthorized        = "Unauthorized access"
	ErrMsgForbidden           = "Access forbidden"
	ErrMsgValidationFailed    = "Validation failed"
	ErrMsgConflict            = "Resource already exists"
)
