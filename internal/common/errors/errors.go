// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

// Scoring / Matching Errors
const (
	ErrCodeUnsupportedInstrument ErrorCode = "UNSUPPORTED_INSTRUMENT"
	ErrCodeInvalidResponses      ErrorCode = "INVALID_RESPONSES"
	ErrCodeInvalidCatalog        ErrorCode = "INVALID_CATALOG"
	ErrCodeInvalidNorms          ErrorCode = "INVALID_NORMS"
	ErrCodeInvalidProfile        ErrorCode = "INVALID_PROFILE"
	ErrCodeInvalidInput          ErrorCode = "INVALID_INPUT"

	ErrCodeNormsLoadFailed   ErrorCode = "NORMS_LOAD_FAILED"
	ErrCodeCatalogLoadFailed ErrorCode = "CATALOG_LOAD_FAILED"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeQueryExecutionFailed     ErrorCode = "QUERY_EXECUTION_FAILED"
	ErrCodeRecipientNotFound        ErrorCode = "RECIPIENT_NOT_FOUND"

	ErrCodeElasticsearchConnectionFailed ErrorCode = "ELASTICSEARCH_CONNECTION_FAILED"
	ErrCodeSearchQueryFailed             ErrorCode = "SEARCH_QUERY_FAILED"
	ErrCodeIndexNotFound                 ErrorCode = "INDEX_NOT_FOUND"

	ErrCodeResultCacheFailed      ErrorCode = "RESULT_CACHE_FAILED"
	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
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
	if e.Details != "" {
		return fmt.Sprintf("StandardError[%s]: %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// Is matches any StandardError carrying the same code.
func (e *StandardError) Is(target error) bool {
	t, ok := target.(*StandardError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithMetadata attaches a key to the error and returns it.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// Sentinels for errors.Is comparisons.
var (
	ErrUnsupportedInstrument = &StandardError{Code: ErrCodeUnsupportedInstrument}
	ErrInvalidResponses      = &StandardError{Code: ErrCodeInvalidResponses}
	ErrInvalidCatalog        = &StandardError{Code: ErrCodeInvalidCatalog}
	ErrInvalidNorms          = &StandardError{Code: ErrCodeInvalidNorms}
	ErrInvalidProfile        = &StandardError{Code: ErrCodeInvalidProfile}
)

// CodeOf extracts the code of a wrapped StandardError, or INTERNAL_ERROR.
func CodeOf(err error) ErrorCode {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr.Code
	}
	return ErrCodeInternal
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

// NewUnsupportedInstrumentError creates a non-retryable instrument error.
func NewUnsupportedInstrumentError(code string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnsupportedInstrument,
		Message:   "Instrument is not supported",
		Details:   fmt.Sprintf("instrumentCode: %s", code),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidResponsesError creates a non-retryable response validation error.
func NewInvalidResponsesError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidResponses,
		Message:   "Response set failed validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidCatalogError creates a non-retryable catalog validation error.
func NewInvalidCatalogError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidCatalog,
		Message:   "Career catalog is malformed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidNormsError creates a non-retryable norm table error.
func NewInvalidNormsError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidNorms,
		Message:   "Normative data is malformed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidProfileError creates a non-retryable profile error.
func NewInvalidProfileError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidProfile,
		Message:   "User profile is malformed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidInputError creates a non-retryable job input error.
func NewInvalidInputError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidInput,
		Message:   "Job input failed validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewNormsLoadFailedError creates a retryable norm source error.
func NewNormsLoadFailedError(source string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNormsLoadFailed,
		Message:   "Failed to load normative data",
		Details:   fmt.Sprintf("source: %s, error: %s", source, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewCatalogLoadFailedError creates a retryable catalog source error.
func NewCatalogLoadFailedError(source string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCatalogLoadFailed,
		Message:   "Failed to load career catalog",
		Details:   fmt.Sprintf("source: %s, error: %s", source, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseConnectionFailedError creates a retryable database connection error.
func NewDatabaseConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseConnectionFailed,
		Message:   "Database connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewQueryExecutionFailedError creates a retryable query execution error.
func NewQueryExecutionFailedError(queryType string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryExecutionFailed,
		Message:   "Database query execution error",
		Details:   fmt.Sprintf("queryType: %s, error: %s", queryType, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewRecipientNotFoundError creates a non-retryable lookup error.
func NewRecipientNotFoundError(userID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRecipientNotFound,
		Message:   "No contact details for user",
		Details:   fmt.Sprintf("userId: %s", userID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewElasticsearchConnectionFailedError creates a retryable Elasticsearch connection error.
func NewElasticsearchConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeElasticsearchConnectionFailed,
		Message:   "Elasticsearch connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSearchQueryFailedError creates a retryable search query error.
func NewSearchQueryFailedError(queryType string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSearchQueryFailed,
		Message:   "Elasticsearch query error",
		Details:   fmt.Sprintf("queryType: %s, error: %s", queryType, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewIndexNotFoundError creates a non-retryable index not found error.
func NewIndexNotFoundError(indexName string) *StandardError {
	return &StandardError{
		Code:      ErrCodeIndexNotFound,
		Message:   "Elasticsearch index not found",
		Details:   fmt.Sprintf("indexName: %s", indexName),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewResultCacheFailedError creates a retryable cache error.
func NewResultCacheFailedError(op string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeResultCacheFailed,
		Message:   "Result cache operation failed",
		Details:   fmt.Sprintf("op: %s, error: %s", op, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotificationSendFailedError creates a retryable notification send error.
func NewNotificationSendFailedError(notificationType string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationSendFailed,
		Message:   "Notification delivery failed",
		Details:   fmt.Sprintf("type: %s, error: %s", notificationType, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// BPMNErrorMapping maps internal error codes to BPMN error codes.
// Codes missing here are thrown as-is.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeUnsupportedInstrument:         "UNSUPPORTED_INSTRUMENT",
	ErrCodeInvalidResponses:              "INVALID_RESPONSES",
	ErrCodeInvalidCatalog:                "INVALID_CATALOG",
	ErrCodeInvalidNorms:                  "INVALID_NORMS",
	ErrCodeInvalidProfile:                "INVALID_PROFILE",
	ErrCodeInvalidInput:                  "INVALID_INPUT",
	ErrCodeNormsLoadFailed:               "REFERENCE_DATA_UNAVAILABLE",
	ErrCodeCatalogLoadFailed:             "REFERENCE_DATA_UNAVAILABLE",
	ErrCodeDatabaseConnectionFailed:      "DATABASE_CONNECTION_FAILED",
	ErrCodeQueryExecutionFailed:          "QUERY_EXECUTION_FAILED",
	ErrCodeRecipientNotFound:             "RECIPIENT_NOT_FOUND",
	ErrCodeElasticsearchConnectionFailed: "ELASTICSEARCH_CONNECTION_FAILED",
	ErrCodeSearchQueryFailed:             "SEARCH_QUERY_FAILED",
	ErrCodeIndexNotFound:                 "INDEX_NOT_FOUND",
	ErrCodeResultCacheFailed:             "RESULT_CACHE_FAILED",
	ErrCodeNotificationSendFailed:        "NOTIFICATION_SEND_FAILED",
}

// GetRetryCount returns the recommended retry count for an error code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeDatabaseConnectionFailed,
		ErrCodeQueryExecutionFailed,
		ErrCodeElasticsearchConnectionFailed,
		ErrCodeSearchQueryFailed,
		ErrCodeNotificationSendFailed:
		return 3 // Retryable technical errors

	case ErrCodeNormsLoadFailed,
		ErrCodeCatalogLoadFailed,
		ErrCodeResultCacheFailed:
		return 2

	default:
		return 0 // Business errors: no retry
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

	return &BPMNError{
		Code:      bpmnCode,
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
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
	case strings.Contains(codeStr, "INSTRUMENT") || strings.Contains(codeStr, "RESPONSES") || strings.Contains(codeStr, "PROFILE"):
		return "SCORING"
	case strings.Contains(codeStr, "NORMS") || strings.Contains(codeStr, "CATALOG"):
		return "REFERENCE_DATA"
	case strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "QUERY") || strings.Contains(codeStr, "RECIPIENT"):
		return "DATABASE"
	case strings.Contains(codeStr, "ELASTICSEARCH") || strings.Contains(codeStr, "SEARCH") || strings.Contains(codeStr, "INDEX"):
		return "SEARCH"
	case strings.Contains(codeStr, "CACHE"):
		return "CACHE"
	case strings.Contains(codeStr, "NOTIFICATION"):
		return "NOTIFICATION"
	case strings.Contains(codeStr, "INVALID"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
