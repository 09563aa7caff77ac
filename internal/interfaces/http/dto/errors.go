package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	// ErrCodeValidation is the base code for validation errors
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeValidationRequired is used when a required field is missing
	ErrCodeValidationRequired = "ERR_VALIDATION_REQUIRED"
	// ErrCodeValidationFormat is used when a field has invalid format
	ErrCodeValidationFormat = "ERR_VALIDATION_FORMAT"
	// ErrCodeValidationRange is used when a value is out of range
	ErrCodeValidationRange = "ERR_VALIDATION_RANGE"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeAlreadyExists is used when trying to create a duplicate resource
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	// ErrCodeConflict is used for general resource conflicts
	ErrCodeConflict = "ERR_CONFLICT"
	// ErrCodeConcurrencyConflict is used when optimistic locking fails
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"
)

// Invoice error codes
const (
	// ErrCodeInvalidInvoiceNo is used when an invoice number fails format checks
	ErrCodeInvalidInvoiceNo = "ERR_INVALID_INVOICE_NO"
	// ErrCodeInvalidCustomerName is used when a customer name is empty or too long
	ErrCodeInvalidCustomerName = "ERR_INVALID_CUSTOMER_NAME"
	// ErrCodeInvalidStatus is used when a status filter value is unknown
	ErrCodeInvalidStatus = "ERR_INVALID_STATUS"
	// ErrCodeInvalidPreset is used when a proposal preset is not configured
	ErrCodeInvalidPreset = "ERR_INVALID_PRESET"
)

// Payment rule error codes
const (
	// ErrCodeInvalidAmount is used when a payment amount is not positive
	ErrCodeInvalidAmount = "ERR_INVALID_AMOUNT"
	// ErrCodeInvalidMethod is used when a payment method is unknown
	ErrCodeInvalidMethod = "ERR_INVALID_METHOD"
	// ErrCodeInvalidDate is used when a payment date is malformed
	ErrCodeInvalidDate = "ERR_INVALID_DATE"
	// ErrCodeMissingBankAccount is used when a transfer lacks bank details
	ErrCodeMissingBankAccount = "ERR_MISSING_BANK_ACCOUNT"
	// ErrCodeExceedsOutstanding is used when a payment exceeds the open balance
	ErrCodeExceedsOutstanding = "ERR_EXCEEDS_OUTSTANDING"
)

// Input error codes
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
	// ErrCodeRequestTooLarge is used when a request body exceeds the size limit
	ErrCodeRequestTooLarge = "ERR_REQUEST_TOO_LARGE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	// General errors
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	// Validation errors -> 400 Bad Request
	ErrCodeValidation:         http.StatusBadRequest,
	ErrCodeValidationRequired: http.StatusBadRequest,
	ErrCodeValidationFormat:   http.StatusBadRequest,
	ErrCodeValidationRange:    http.StatusBadRequest,

	// Resource errors
	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConflict:            http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,

	// Invoice errors -> 400 Bad Request
	ErrCodeInvalidInvoiceNo:    http.StatusBadRequest,
	ErrCodeInvalidCustomerName: http.StatusBadRequest,
	ErrCodeInvalidStatus:       http.StatusBadRequest,
	ErrCodeInvalidPreset:       http.StatusBadRequest,

	// Payment rule errors -> 422 Unprocessable Entity
	ErrCodeInvalidAmount:      http.StatusUnprocessableEntity,
	ErrCodeInvalidMethod:      http.StatusUnprocessableEntity,
	ErrCodeInvalidDate:        http.StatusUnprocessableEntity,
	ErrCodeMissingBankAccount: http.StatusUnprocessableEntity,
	ErrCodeExceedsOutstanding: http.StatusUnprocessableEntity,

	// Input errors -> 400 Bad Request
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeInvalidInput:    http.StatusBadRequest,
	ErrCodeInvalidJSON:     http.StatusBadRequest,
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// LegacyErrorCodeMapping maps bare domain error codes to the standardized
// ERR_ prefixed codes used on the wire
var LegacyErrorCodeMapping = map[string]string{
	"NOT_FOUND":             ErrCodeNotFound,
	"ALREADY_EXISTS":        ErrCodeAlreadyExists,
	"CONCURRENCY_CONFLICT":  ErrCodeConcurrencyConflict,
	"INVALID_INVOICE_NO":    ErrCodeInvalidInvoiceNo,
	"INVALID_CUSTOMER_NAME": ErrCodeInvalidCustomerName,
	"INVALID_STATUS":        ErrCodeInvalidStatus,
	"INVALID_PRESET":        ErrCodeInvalidPreset,
	"INVALID_AMOUNT":        ErrCodeInvalidAmount,
	"INVALID_METHOD":        ErrCodeInvalidMethod,
	"INVALID_DATE":          ErrCodeInvalidDate,
	"MISSING_BANK_ACCOUNT":  ErrCodeMissingBankAccount,
	"EXCEEDS_OUTSTANDING":   ErrCodeExceedsOutstanding,
	"INVALID_INPUT":         ErrCodeInvalidInput,
	"VALIDATION_ERROR":      ErrCodeValidation,
	"BAD_REQUEST":           ErrCodeBadRequest,
	"INTERNAL_ERROR":        ErrCodeInternal,
}

// NormalizeErrorCode converts a bare domain error code to the standardized format
// If the code is already in the new format or unknown, returns it as-is
func NormalizeErrorCode(code string) string {
	if newCode, ok := LegacyErrorCodeMapping[code]; ok {
		return newCode
	}
	return code
}
