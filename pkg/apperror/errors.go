package apperror

import (
	"errors"
	"net/http"
)

// Kind classifies a rejected operation so callers can react without parsing messages
type Kind string

const (
	KindInvalidAmount          Kind = "invalid_amount"
	KindInvalidInput           Kind = "invalid_input"
	KindDuplicateName          Kind = "duplicate_name"
	KindDuplicateReceiptNumber Kind = "duplicate_receipt_number"
	KindEmptyItemList          Kind = "empty_item_list"
	KindInvalidQuantity        Kind = "invalid_quantity"
	KindNonPositiveAmount      Kind = "non_positive_amount"
	KindOverpaymentRejected    Kind = "overpayment_rejected"
	KindTotalMismatch          Kind = "total_mismatch"
	KindNotFound               Kind = "not_found"
	KindUnauthorized           Kind = "unauthorized"
	KindInternal               Kind = "internal"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int          `json:"code"`
	Kind    Kind         `json:"kind"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Is reports whether target is an AppError of the same kind, so that
// errors.Is(err, ErrOverpaymentRejected) matches any overpayment rejection.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind != "" && t.Kind == e.Kind
}

// Sentinels for errors.Is comparisons. Their messages are generic; the
// constructors below carry the rule that was actually violated.
var (
	ErrInvalidAmount          = &AppError{Code: http.StatusUnprocessableEntity, Kind: KindInvalidAmount, Message: "Invalid amount"}
	ErrInvalidInput           = &AppError{Code: http.StatusUnprocessableEntity, Kind: KindInvalidInput, Message: "Invalid input"}
	ErrDuplicateName          = &AppError{Code: http.StatusConflict, Kind: KindDuplicateName, Message: "Name already registered"}
	ErrDuplicateReceiptNumber = &AppError{Code: http.StatusConflict, Kind: KindDuplicateReceiptNumber, Message: "Receipt number already exists"}
	ErrEmptyItemList          = &AppError{Code: http.StatusUnprocessableEntity, Kind: KindEmptyItemList, Message: "Receipt must have at least one item"}
	ErrInvalidQuantity        = &AppError{Code: http.StatusUnprocessableEntity, Kind: KindInvalidQuantity, Message: "Quantity must be at least 1"}
	ErrNonPositiveAmount      = &AppError{Code: http.StatusUnprocessableEntity, Kind: KindNonPositiveAmount, Message: "Payment amount must be greater than zero"}
	ErrOverpaymentRejected    = &AppError{Code: http.StatusUnprocessableEntity, Kind: KindOverpaymentRejected, Message: "Payment amount cannot exceed balance due"}
	ErrTotalMismatch          = &AppError{Code: http.StatusConflict, Kind: KindTotalMismatch, Message: "Submitted total does not match line items"}
	ErrNotFound               = &AppError{Code: http.StatusNotFound, Kind: KindNotFound, Message: "Resource not found"}
	ErrUnauthorized           = &AppError{Code: http.StatusForbidden, Kind: KindUnauthorized, Message: "Unauthorized"}
	ErrInternalServer         = &AppError{Code: http.StatusInternalServerError, Kind: KindInternal, Message: "Internal server error"}
)

// New creates an error of the given kind with a rule-specific message
func New(kind Kind, message string) *AppError {
	return &AppError{
		Code:    codeFor(kind),
		Kind:    kind,
		Message: message,
	}
}

func codeFor(kind Kind) int {
	switch kind {
	case KindDuplicateName, KindDuplicateReceiptNumber, KindTotalMismatch:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusForbidden
	case KindInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusUnprocessableEntity
	}
}

// NewValidationError creates a new validation error
func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Kind:    KindInvalidInput,
		Message: "Validation failed",
		Errors:  fieldErrors,
	}
}

// NewInvalidInputError creates an invalid input error with a custom message
func NewInvalidInputError(message string) *AppError {
	return New(KindInvalidInput, message)
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return New(KindNotFound, resource+" not found")
}

// NewUnauthorizedError creates an authorization failure naming the missing capability
func NewUnauthorizedError(message string) *AppError {
	return New(KindUnauthorized, message)
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Kind:    KindInternal,
		Message: err.Error(),
	}
}
