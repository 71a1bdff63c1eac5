package errors

// Error code constants returned in API responses.
// Format: CATEGORY_SPECIFIC_DETAIL. The dashboard maps these to messages.

const (
	// ==================== Auth (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"
	AuthTokenRevoked       = "AUTH_TOKEN_REVOKED"
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"
	AuthForbidden          = "AUTH_FORBIDDEN"

	// ==================== Vehicles (VEHICLE_) ====================
	VehicleNotFound    = "VEHICLE_NOT_FOUND"
	VehicleInvalidVIN  = "VEHICLE_INVALID_VIN"
	VehicleAlreadySold = "VEHICLE_ALREADY_SOLD"
	VehicleSoldViaSale = "VEHICLE_SOLD_VIA_SALE_ONLY"

	// ==================== Customers (CUSTOMER_) ====================
	CustomerNotFound = "CUSTOMER_NOT_FOUND"

	// ==================== Activity records (ACTIVITY_) ====================
	ActivityNotFound          = "ACTIVITY_NOT_FOUND"
	ActivityInvalidStatus     = "ACTIVITY_INVALID_STATUS"
	ActivityInvalidTransition = "ACTIVITY_INVALID_TRANSITION"

	// ==================== Sales (SALE_) ====================
	SalePartiallyCompleted = "SALE_PARTIALLY_COMPLETED"

	// ==================== Validation (VALIDATION_) ====================
	ValidationFailed       = "VALIDATION_FAILED"
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT"

	// ==================== Integrations (INTEGRATION_) ====================
	IntegrationUploadFailed = "INTEGRATION_UPLOAD_FAILED"
	IntegrationNotifyFailed = "INTEGRATION_NOTIFY_FAILED"

	// ==================== Generic ====================
	InternalServerError = "INTERNAL_SERVER_ERROR"
	ResourceNotFound    = "RESOURCE_NOT_FOUND"
)
