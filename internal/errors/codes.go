package errors

// ErrorCode represents a standardized error code used throughout the API
type ErrorCode string

// Authentication error codes (AUTH_*)
const (
	AuthInvalidCredentials     ErrorCode = "AUTH_001"
	AuthMissingToken           ErrorCode = "AUTH_002"
	AuthExpiredToken           ErrorCode = "AUTH_003"
	AuthInvalidTokenFormat     ErrorCode = "AUTH_004"
	AuthInsufficientPermission ErrorCode = "AUTH_005"
	AuthAccountLocked          ErrorCode = "AUTH_006"
	AuthEmailAlreadyExists     ErrorCode = "AUTH_007"
)

// Validation error codes (VALIDATION_*)
const (
	ValidationGeneral       ErrorCode = "VALIDATION_001"
	ValidationRequiredField ErrorCode = "VALIDATION_002"
	ValidationInvalidFormat ErrorCode = "VALIDATION_003"
	ValidationOutOfRange    ErrorCode = "VALIDATION_004"
	ValidationInvalidEmail  ErrorCode = "VALIDATION_005"
	ValidationInvalidDate   ErrorCode = "VALIDATION_006"
)

// Category error codes (CATEGORY_*)
const (
	CategoryNotFound  ErrorCode = "CATEGORY_001"
	CategoryDuplicate ErrorCode = "CATEGORY_002"
	CategoryInUse     ErrorCode = "CATEGORY_003"
	CategoryNameBlank ErrorCode = "CATEGORY_004"
)

// Entry error codes (ENTRY_*)
const (
	EntryNotFound      ErrorCode = "ENTRY_001"
	EntryInvalidAmount ErrorCode = "ENTRY_002"
	EntryInvalidType   ErrorCode = "ENTRY_003"
	EntryInvalidDate   ErrorCode = "ENTRY_004"
)

// Budget error codes (BUDGET_*)
const (
	BudgetNotFound      ErrorCode = "BUDGET_001"
	BudgetInvalidAmount ErrorCode = "BUDGET_002"
	BudgetInvalidMonth  ErrorCode = "BUDGET_003"
)

// Alert error codes (ALERT_*)
const (
	AlertRecipientRequired ErrorCode = "ALERT_001"
	AlertDeliveryFailed    ErrorCode = "ALERT_002"
)

// System error codes (SYSTEM_*)
const (
	SystemInternalError      ErrorCode = "SYSTEM_001"
	SystemDatabaseError      ErrorCode = "SYSTEM_002"
	SystemServiceUnavailable ErrorCode = "SYSTEM_003"
	SystemRateLimitExceeded  ErrorCode = "SYSTEM_004"
)

// errorMessages maps error codes to their default human-readable messages
var errorMessages = map[ErrorCode]string{
	// Authentication errors
	AuthInvalidCredentials:     "Invalid email or password",
	AuthMissingToken:           "Authorization token is required",
	AuthExpiredToken:           "Authorization token has expired",
	AuthInvalidTokenFormat:     "Invalid authorization token format",
	AuthInsufficientPermission: "Insufficient permissions to access this resource",
	AuthAccountLocked:          "Account is locked or disabled",
	AuthEmailAlreadyExists:     "An account with this email already exists",

	// Validation errors
	ValidationGeneral:       "Validation failed",
	ValidationRequiredField: "Required field is missing",
	ValidationInvalidFormat: "Invalid field format",
	ValidationOutOfRange:    "Field value is out of allowed range",
	ValidationInvalidEmail:  "Invalid email address format",
	ValidationInvalidDate:   "Invalid date format or range",

	// Category errors
	CategoryNotFound:  "Category not found",
	CategoryDuplicate: "A category with this name already exists",
	CategoryInUse:     "Category is referenced by existing entries and cannot be deleted",
	CategoryNameBlank: "Category name must not be blank",

	// Entry errors
	EntryNotFound:      "Entry not found",
	EntryInvalidAmount: "Entry amount must be a non-negative number",
	EntryInvalidType:   "Entry type must be 'income' or 'expense'",
	EntryInvalidDate:   "Entry date must be a valid date (YYYY-MM-DD)",

	// Budget errors
	BudgetNotFound:      "No budget set for this month",
	BudgetInvalidAmount: "Budget amount must be greater than zero",
	BudgetInvalidMonth:  "Budget month must be in YYYY-MM format",

	// Alert errors
	AlertRecipientRequired: "Alert recipient email is required",
	AlertDeliveryFailed:    "Alert email could not be delivered",

	// System errors
	SystemInternalError:      "An unexpected error occurred. Please contact support with trace ID",
	SystemDatabaseError:      "Database connection error",
	SystemServiceUnavailable: "Service temporarily unavailable",
	SystemRateLimitExceeded:  "Rate limit exceeded. Please try again later",
}

// GetErrorMessage returns the default message for a given error code
// If the error code is not found, it returns a generic error message
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "An error occurred"
}

// IsValidErrorCode checks if the provided error code is a valid registered code
func IsValidErrorCode(code ErrorCode) bool {
	_, ok := errorMessages[code]
	return ok
}
