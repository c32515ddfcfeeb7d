package domain

import "errors"

var (
	ErrImageNotProvided     = errors.New("no image provided")
	ErrImageDataInvalid     = errors.New("image data not valid")
	ErrStorageNotConfigured = errors.New("object storage is not configured")
	ErrHomeNotFound         = errors.New("home not found")
	ErrInvalidHome          = errors.New("invalid home data")
)

// ValidationError carries per-field messages and matches ErrInvalidHome.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	return ErrInvalidHome.Error()
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidHome
}
