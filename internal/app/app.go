// internal/app/app.go
package app

import (
	"context"
	"io"

	"github.com/clementatt/Stripe-customers-import/internal/billing"
	"github.com/clementatt/Stripe-customers-import/internal/config"
	"github.com/clementatt/Stripe-customers-import/internal/domain/customer"
	customersvc "github.com/clementatt/Stripe-customers-import/internal/service/customer"
	"github.com/clementatt/Stripe-customers-import/internal/service/importer"

	"github.com/spf13/afero"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// App wires the importer for one run.
type App struct {
	cfg    config.AppConfig
	fs     afero.Fs
	out    io.Writer
	logger *zap.Logger
}

func NewApp(cfg config.AppConfig, fs afero.Fs, out io.Writer, logger *zap.Logger) *App {
	return &App{cfg: cfg, fs: fs, out: out, logger: logger}
}

// Import runs the import of path and prints its summary.
func (a *App) Import(ctx context.Context, path string) (*customer.Summary, error) {
	// ----- Services -----
	normalizer := customersvc.NewNormalizer(a.cfg)
	stripeClient := billing.NewClient(a.cfg, a.logger.Named("stripe"))
	importService := importer.NewImportService(a.cfg, a.fs, normalizer, stripeClient, a.logger)

	if isTerminal(a.out) {
		importService.SetProgress(newProgressBar(a.out))
		// Row warnings on stderr would break the bar line.
		importService.SetRowLogLevel(zapcore.DebugLevel)
	} else {
		importService.SetProgress(newLineProgress(a.out))
	}

	summary, err := importService.Run(ctx, path)
	if err != nil {
		return nil, err
	}

	printSummary(a.out, summary)
	return summary, nil
}
