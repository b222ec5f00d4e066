// Package errors provides standardized error handling for report workers and the plan API.
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Configuration
	ErrCodeCatalogLoadFailed ErrorCode = "CATALOG_LOAD_FAILED"
	ErrCodeCatalogInvalid    ErrorCode = "CATALOG_INVALID"

	// Input
	ErrCodeInputValidationFailed ErrorCode = "INPUT_VALIDATION_FAILED"

	// Unsupported variants (programmer errors)
	ErrCodeUnsupportedResearchType ErrorCode = "UNSUPPORTED_RESEARCH_TYPE"
	ErrCodeUnsupportedJobTool      ErrorCode = "UNSUPPORTED_JOB_TOOL"
	ErrCodeUnsupportedJobType      ErrorCode = "UNSUPPORTED_JOB_TYPE"

	// External services
	ErrCodeTextGenerationFailed  ErrorCode = "TEXT_GENERATION_FAILED"
	ErrCodeTextGenerationTimeout ErrorCode = "TEXT_GENERATION_TIMEOUT"
	ErrCodeRendererRequestFailed ErrorCode = "RENDERER_REQUEST_FAILED"

	// Job store
	ErrCodePlanAlreadyExists ErrorCode = "PLAN_ALREADY_EXISTS"
	ErrCodePlanNotFound      ErrorCode = "PLAN_NOT_FOUND"
	ErrCodeJobStoreFailed    ErrorCode = "JOB_STORE_FAILED"

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

	cause error
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("StandardError[%s]: %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

func newError(code ErrorCode, message, details string, cause error) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
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

// ToErrorVariables returns a map suitable for setting Camunda job error variables.
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

func NewCatalogLoadFailedError(path string, err error) *StandardError {
	e := newError(ErrCodeCatalogLoadFailed, "Catalog file could not be read", fmt.Sprintf("path: %s, error: %v", path, err), err)
	e.Metadata = map[string]interface{}{"path": path}
	return e
}

func NewCatalogInvalidError(path, details string) *StandardError {
	e := newError(ErrCodeCatalogInvalid, "Catalog file is malformed", details, nil)
	e.Metadata = map[string]interface{}{"path": path}
	return e
}

func NewInputValidationFailedError(details string) *StandardError {
	return newError(ErrCodeInputValidationFailed, "Input validation failed", details, nil)
}

func NewUnsupportedResearchTypeError(researchType string) *StandardError {
	return newError(ErrCodeUnsupportedResearchType, "Unsupported research type", fmt.Sprintf("researchType: %s", researchType), nil)
}

func NewUnsupportedJobToolError(jobTool string) *StandardError {
	return newError(ErrCodeUnsupportedJobTool, "Unsupported slide job tool", fmt.Sprintf("jobTool: %s", jobTool), nil)
}

func NewUnsupportedJobTypeError(jobType string) *StandardError {
	return newError(ErrCodeUnsupportedJobType, "Unsupported slide job type", fmt.Sprintf("type: %s", jobType), nil)
}

func NewTextGenerationFailedError(referenceElementKey string, err error) *StandardError {
	e := newError(ErrCodeTextGenerationFailed, "Text generation service error", err.Error(), err)
	e.Metadata = map[string]interface{}{"referenceElementKey": referenceElementKey}
	return e
}

func NewTextGenerationTimeoutError(referenceElementKey string, err error) *StandardError {
	e := newError(ErrCodeTextGenerationTimeout, "Text generation service timeout", err.Error(), err)
	e.Metadata = map[string]interface{}{"referenceElementKey": referenceElementKey}
	return e
}

func NewRendererRequestFailedError(referenceElementKey string, err error) *StandardError {
	e := newError(ErrCodeRendererRequestFailed, "Failed to update slide", err.Error(), err)
	e.Metadata = map[string]interface{}{"referenceElementKey": referenceElementKey}
	return e
}

func NewPlanAlreadyExistsError(planID string) *StandardError {
	return newError(ErrCodePlanAlreadyExists, "Plan already exists", fmt.Sprintf("planId: %s", planID), nil)
}

func NewPlanNotFoundError(planID string) *StandardError {
	return newError(ErrCodePlanNotFound, "Plan not found", fmt.Sprintf("planId: %s", planID), nil)
}

func NewJobStoreFailedError(operation string, err error) *StandardError {
	return newError(ErrCodeJobStoreFailed, "Job store operation failed", fmt.Sprintf("operation: %s, error: %v", operation, err), err)
}

func NewInternalError(message string, err error) *StandardError {
	return newError(ErrCodeInternal, message, err.Error(), err)
}

// ==========================
// 4. Utility Functions
// ==========================

// CodeOf extracts the error code from any error chain, INTERNAL_ERROR when none is present.
func CodeOf(err error) ErrorCode {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr.Code
	}
	return ErrCodeInternal
}

// HasCode reports whether err carries code anywhere in its chain.
func HasCode(err error, code ErrorCode) bool {
	return err != nil && CodeOf(err) == code
}

// Normalize ensures a StandardError, wrapping unknown errors as INTERNAL_ERROR.
func Normalize(err error) *StandardError {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	return newError(ErrCodeInternal, "Unexpected error", err.Error(), err)
}

// GetRetryCount returns the retry budget for a code. Nothing in the report pipeline is retried.
func GetRetryCount(code ErrorCode) int {
	return 0
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	return &BPMNError{
		Code:           string(stdErr.Code),
		Message:        stdErr.Message,
		Details:        stdErr.Details,
		Retryable:      stdErr.Retryable,
		Retries:        GetRetryCount(stdErr.Code),
		ErrorVariables: stdErr.Metadata,
	}
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	switch code {
	case ErrCodeCatalogLoadFailed, ErrCodeCatalogInvalid:
		return "configuration"
	case ErrCodeInputValidationFailed:
		return "validation"
	case ErrCodeUnsupportedResearchType, ErrCodeUnsupportedJobTool, ErrCodeUnsupportedJobType:
		return "unsupported_variant"
	case ErrCodeTextGenerationFailed, ErrCodeTextGenerationTimeout, ErrCodeRendererRequestFailed:
		return "external_service"
	case ErrCodePlanAlreadyExists, ErrCodePlanNotFound, ErrCodeJobStoreFailed:
		return "job_store"
	default:
		return "internal"
	}
}
