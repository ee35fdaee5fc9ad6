package main

import (
	"os"

	"github.com/clementatt/Stripe-customers-import/internal/app"

	"github.com/spf13/afero"
)

func main() {
	if err := app.NewRootCommand(afero.NewOsFs()).Execute(); err != nil {
		app.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}
