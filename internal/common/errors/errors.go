// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeProfileValidationFailed ErrorCode = "PROFILE_VALIDATION_FAILED"
	ErrCodeProfileNotFound         ErrorCode = "PROFILE_NOT_FOUND"

	ErrCodeSchemeNotFound    ErrorCode = "SCHEME_NOT_FOUND"
	ErrCodeCatalogLoadFailed ErrorCode = "CATALOG_LOAD_FAILED"
	ErrCodeCatalogEmpty      ErrorCode = "CATALOG_EMPTY"

	ErrCodePredictorUnavailable ErrorCode = "PREDICTOR_UNAVAILABLE"
	ErrCodePredictorTimeout     ErrorCode = "PREDICTOR_TIMEOUT"
	ErrCodePredictorBadResponse ErrorCode = "PREDICTOR_BAD_RESPONSE"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeQueryExecutionFailed     ErrorCode = "QUERY_EXECUTION_FAILED"
	ErrCodeQueryTimeout             ErrorCode = "QUERY_TIMEOUT"
	ErrCodeDatabaseInsertFailed     ErrorCode = "DATABASE_INSERT_FAILED"

	ErrCodeElasticsearchConnectionFailed ErrorCode = "ELASTICSEARCH_CONNECTION_FAILED"
	ErrCodeSearchQueryFailed             ErrorCode = "SEARCH_QUERY_FAILED"

	ErrCodeDuplicateApplication ErrorCode = "DUPLICATE_APPLICATION"
	ErrCodeApplicationNotFound  ErrorCode = "APPLICATION_NOT_FOUND"
	ErrCodeInvalidStatus        ErrorCode = "INVALID_APPLICATION_STATUS"

	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"

	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// WithMetadata attaches a key to the error and returns it for chaining.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

func newError(code ErrorCode, message, details string, retryable bool) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
	}
}

// NewProfileValidationError reports a citizen profile that failed form rules.
// fieldErrors maps field name to the first failing rule message.
func NewProfileValidationError(fieldErrors map[string]string) *StandardError {
	parts := make([]string, 0, len(fieldErrors))
	for field, msg := range fieldErrors {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	e := newError(ErrCodeProfileValidationFailed, "Profile validation failed", strings.Join(parts, "; "), false)
	e.Metadata = map[string]interface{}{"fieldErrors": fieldErrors}
	return e
}

func NewProfileNotFoundError(citizenID string) *StandardError {
	return newError(ErrCodeProfileNotFound, "Citizen profile not found", fmt.Sprintf("citizenId: %s", citizenID), false)
}

func NewSchemeNotFoundError(schemeID string) *StandardError {
	return newError(ErrCodeSchemeNotFound, "Scheme not found in catalog", fmt.Sprintf("schemeId: %s", schemeID), false)
}

// NewCatalogLoadFailedError is retryable, sources are remote stores.
func NewCatalogLoadFailedError(source string, err error) *StandardError {
	return newError(ErrCodeCatalogLoadFailed, "Failed to load scheme catalog", fmt.Sprintf("source: %s, error: %s", source, err.Error()), true)
}

func NewCatalogEmptyError(source string) *StandardError {
	return newError(ErrCodeCatalogEmpty, "Scheme catalog source returned no schemes", fmt.Sprintf("source: %s", source), false)
}

func NewPredictorUnavailableError(err error) *StandardError {
	return newError(ErrCodePredictorUnavailable, "Failed to connect to the recommendation service", err.Error(), true)
}

func NewPredictorTimeoutError(timeout time.Duration) *StandardError {
	return newError(ErrCodePredictorTimeout, "Request timeout - the API took too long to respond", fmt.Sprintf("timeout: %s", timeout), true)
}

// NewPredictorBadResponseError carries the upstream status so callers can mirror it.
func NewPredictorBadResponseError(status int, body string) *StandardError {
	e := newError(ErrCodePredictorBadResponse, fmt.Sprintf("API returned %d: %s", status, body), body, status >= 500)
	e.Metadata = map[string]interface{}{"status": status}
	return e
}

// NewDatabaseConnectionFailedError creates a retryable database connection error.
func NewDatabaseConnectionFailedError(err error) *StandardError {
	return newError(ErrCodeDatabaseConnectionFailed, "Database connection error", err.Error(), true)
}

// NewQueryExecutionFailedError creates a retryable query execution error.
func NewQueryExecutionFailedError(queryType string, err error) *StandardError {
	return newError(ErrCodeQueryExecutionFailed, "Database query execution error", fmt.Sprintf("queryType: %s, error: %s", queryType, err.Error()), true)
}

func NewQueryTimeoutError(queryType string) *StandardError {
	return newError(ErrCodeQueryTimeout, "Database query timeout", fmt.Sprintf("queryType: %s", queryType), true)
}

func NewDatabaseInsertFailedError(table string, err error) *StandardError {
	return newError(ErrCodeDatabaseInsertFailed, "Database insert failed", fmt.Sprintf("table: %s, error: %s", table, err.Error()), true)
}

func NewElasticsearchConnectionFailedError(err error) *StandardError {
	return newError(ErrCodeElasticsearchConnectionFailed, "Elasticsearch connection error", err.Error(), true)
}

func NewSearchQueryFailedError(index string, err error) *StandardError {
	return newError(ErrCodeSearchQueryFailed, "Search query failed", fmt.Sprintf("index: %s, error: %s", index, err.Error()), true)
}

func NewDuplicateApplicationError(schemeName string) *StandardError {
	return newError(ErrCodeDuplicateApplication, "Scheme is already tracked", fmt.Sprintf("schemeName: %s", schemeName), false)
}

func NewApplicationNotFoundError(id string) *StandardError {
	return newError(ErrCodeApplicationNotFound, "Tracked application not found", fmt.Sprintf("id: %s", id), false)
}

func NewInvalidStatusError(status string) *StandardError {
	return newError(ErrCodeInvalidStatus, "Unknown application status", fmt.Sprintf("status: %s", status), false)
}

func NewNotificationSendFailedError(channel string, err error) *StandardError {
	return newError(ErrCodeNotificationSendFailed, "Notification delivery failed", fmt.Sprintf("channel: %s, error: %s", channel, err.Error()), true)
}

// NewInvalidInputError reports a job or request missing what it needs.
func NewInvalidInputError(field, reason string) *StandardError {
	return newError(ErrCodeInvalidInput, "Invalid input", fmt.Sprintf("%s: %s", field, reason), false).
		WithMetadata("field", field)
}

// NewInternalError wraps an unexpected error. Not retryable.
func NewInternalError(err error) *StandardError {
	return newError(ErrCodeInternal, "Unexpected error", err.Error(), false)
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// BPMNErrorMapping maps internal error codes to the codes modelled on
// boundary events. Unlisted codes pass through unchanged.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeProfileValidationFailed:       "PROFILE_VALIDATION_FAILED",
	ErrCodeProfileNotFound:               "PROFILE_NOT_FOUND",
	ErrCodeSchemeNotFound:                "SCHEME_NOT_FOUND",
	ErrCodeCatalogLoadFailed:             "CATALOG_UNAVAILABLE",
	ErrCodeCatalogEmpty:                  "CATALOG_UNAVAILABLE",
	ErrCodePredictorUnavailable:          "PREDICTOR_FAILED",
	ErrCodePredictorTimeout:              "PREDICTOR_FAILED",
	ErrCodePredictorBadResponse:          "PREDICTOR_FAILED",
	ErrCodeDatabaseConnectionFailed:      "DATABASE_CONNECTION_FAILED",
	ErrCodeQueryExecutionFailed:          "QUERY_EXECUTION_FAILED",
	ErrCodeQueryTimeout:                  "QUERY_TIMEOUT",
	ErrCodeDatabaseInsertFailed:          "DATABASE_INSERT_FAILED",
	ErrCodeElasticsearchConnectionFailed: "ELASTICSEARCH_CONNECTION_FAILED",
	ErrCodeSearchQueryFailed:             "SEARCH_QUERY_FAILED",
	ErrCodeDuplicateApplication:          "DUPLICATE_APPLICATION",
	ErrCodeApplicationNotFound:           "APPLICATION_NOT_FOUND",
	ErrCodeInvalidStatus:                 "INVALID_APPLICATION_STATUS",
	ErrCodeNotificationSendFailed:        "NOTIFICATION_SEND_FAILED",
	ErrCodeInvalidInput:                  "INVALID_INPUT",
}

// GetRetryCount returns the recommended retry count for a code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeDatabaseConnectionFailed,
		ErrCodeQueryExecutionFailed,
		ErrCodeDatabaseInsertFailed,
		ErrCodeElasticsearchConnectionFailed,
		ErrCodeSearchQueryFailed,
		ErrCodeCatalogLoadFailed,
		ErrCodeNotificationSendFailed:
		return 3
	case ErrCodeQueryTimeout,
		ErrCodePredictorUnavailable,
		ErrCodePredictorBadResponse:
		return 2
	case ErrCodePredictorTimeout:
		return 1 // the remote service already had 30s
	default:
		return 0
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	vars := map[string]interface{}{
		"originalErrorCode": string(stdErr.Code),
		"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
	}
	if fe, ok := stdErr.Metadata["fieldErrors"]; ok {
		vars["fieldErrors"] = fe
	}

	return &BPMNError{
		Code:           bpmnCode,
		Message:        stdErr.Message,
		Details:        stdErr.Details,
		Retryable:      stdErr.Retryable,
		Retries:        retries,
		ErrorVariables: vars,
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "PROFILE") || strings.Contains(codeStr, "INVALID"):
		return "VALIDATION"
	case strings.Contains(codeStr, "CATALOG") || strings.Contains(codeStr, "SCHEME"):
		return "CATALOG"
	case strings.Contains(codeStr, "PREDICTOR"):
		return "PREDICTOR"
	case strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "QUERY"):
		return "DATABASE"
	case strings.Contains(codeStr, "ELASTICSEARCH") || strings.Contains(codeStr, "SEARCH"):
		return "SEARCH"
	case strings.Contains(codeStr, "APPLICATION"):
		return "TRACKER"
	case strings.Contains(codeStr, "NOTIFICATION"):
		return "NOTIFICATION"
	default:
		return "OTHER"
	}
}
