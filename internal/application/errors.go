package application

import (
	"errors"
	"fmt"

	repo "github.com/oksasatya/autoforge-api/internal/domain/repository"
)

// Error taxonomy shared by every service. The HTTP layer maps these to status codes.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrValidation         = errors.New("validation failed")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrDuplicateName      = errors.New("name already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("not authorized")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
	ErrStoreUnavailable   = errors.New("store unavailable")
)

var (
	ErrUserNotFound    = fmt.Errorf("user %w", ErrNotFound)
	ErrBrandNotFound   = fmt.Errorf("brand %w", ErrNotFound)
	ErrVehicleNotFound = fmt.Errorf("vehicle %w", ErrNotFound)
	ErrAssetNotFound   = fmt.Errorf("asset %w", ErrNotFound)
)

// FieldError carries per-field messages for ErrInvalidInput or ErrValidation.
type FieldError struct {
	Kind   error
	Fields map[string]string
}

func (e *FieldError) Error() string { return e.Kind.Error() }
func (e *FieldError) Unwrap() error { return e.Kind }

func invalidInput(fields map[string]string) error {
	return &FieldError{Kind: ErrInvalidInput, Fields: fields}
}

func validationFailed(fields map[string]string) error {
	return &FieldError{Kind: ErrValidation, Fields: fields}
}

// storeError translates repository errors into the service taxonomy.
// notFound is returned for repo.ErrNotFound.
func storeError(err error, notFound error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repo.ErrNotFound) && notFound != nil:
		return notFound
	case errors.Is(err, repo.ErrUnavailable):
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	default:
		return err
	}
}
