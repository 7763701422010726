package dto

import (
	"errors"
	"fmt"
)

// Error kinds. Handlers map these to HTTP status codes.
var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrMissingColumns    = errors.New("required mapping columns not found")
	ErrUnsupportedFormat = errors.New("unsupported mapping file format")
	ErrEmptyBatch        = errors.New("no files provided")
)

// WrapError keeps the kind in the chain while adding operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return fmt.Errorf("%s: %w", operation, kind)
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}

var errMappingRequired = errors.New("mapping file is required")
