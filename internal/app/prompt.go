package app

import (
	"errors"
	"fmt"
	"io"
	"strings"

	xerrors "github.com/clementatt/Stripe-customers-import/internal/pkg/errors"
	"github.com/clementatt/Stripe-customers-import/internal/sheet"

	"github.com/charmbracelet/huh"
)

// promptPath asks for the input file when none was passed as an argument.
func promptPath(in io.Reader) (string, error) {
	if !isTerminal(in) {
		return "", fmt.Errorf("%w: pass the file path as an argument when not running in a terminal", xerrors.ErrInvalidInputFile)
	}

	var path string
	input := huh.NewInput().
		Title("Spreadsheet path").
		Description(fmt.Sprintf("Booking export to import (%s)", strings.Join(sheet.Extensions, ", "))).
		Value(&path).
		Validate(validatePathInput)

	if err := huh.NewForm(huh.NewGroup(input)).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", fmt.Errorf("%w: aborted", xerrors.ErrInvalidInputFile)
		}
		return "", err
	}
	return strings.TrimSpace(path), nil
}

func validatePathInput(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("a file path is required")
	}
	return nil
}
