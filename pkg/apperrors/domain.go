package apperrors

import (
	"net/http"
)

// Factories and predefined variables for domain-level errors.

// ErrNotFound converts a repository miss (e.g. gorm.ErrRecordNotFound)
// into a 404.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists converts a uniqueness violation into a 409.
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrStorage classifies a ledger/database read or write failure.
// Storage failures must surface as 5xx, never be coerced into a
// business-level "locked"/"denied" answer.
func ErrStorage(err error) *AppError {
	return Wrap(err, CodeStorageError, "storage", "Storage operation failed, try again", http.StatusInternalServerError)
}

// ErrInvalidOperation builds a 400 for operations the domain forbids.
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// ErrInvalidStatus builds a 400 for status transitions the domain forbids.
func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusBadRequest)
}

// ErrInsufficientPermissions is returned when a user acts on a resource
// they do not own.
var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

// ErrJobNotVisible is returned when a job exists but is not publicly
// listed (closed or removed), so the gate is never consulted.
var ErrJobNotVisible = New(
	CodeNotFound,
	"job",
	"Job is not available",
	http.StatusNotFound,
)

// ErrFileTooLarge - uploaded file exceeds the per-request limit.
var ErrFileTooLarge = New(
	CodeLimitExceeded,
	"validation",
	"File size exceeds the allowed limit",
	http.StatusRequestEntityTooLarge,
)

// ErrInvalidFileType - MIME type is not allowed for upload.
var ErrInvalidFileType = New(
	CodeValidationFailed,
	"validation",
	"The provided file type is not allowed",
	http.StatusUnsupportedMediaType,
)
