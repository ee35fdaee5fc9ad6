package xerrors

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds raised by the import pipeline.
var (
	ErrMissingConfiguration = errors.New("missing configuration")
	ErrInvalidInputFile     = errors.New("invalid input file")
	ErrMissingColumns       = errors.New("missing required columns")
	ErrNormalization        = errors.New("row normalization failed")
	ErrRowImport            = errors.New("customer import failed")
	ErrFileRead             = errors.New("failed to read input file")
)

// MissingColumnsError lists the required columns absent from a header.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingColumns.Error(), strings.Join(e.Columns, ", "))
}

// Is lets errors.Is(err, ErrMissingColumns) match.
func (e *MissingColumnsError) Is(target error) bool {
	return target == ErrMissingColumns
}

// Wrap adds context to an error (similar to fmt.Errorf("%w")).
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
