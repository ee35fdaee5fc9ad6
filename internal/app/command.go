package app

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/clementatt/Stripe-customers-import/internal/config"
	"github.com/clementatt/Stripe-customers-import/internal/pkg/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

const Version = "1.0.0"

// NewRootCommand builds the importer command reading input files from fsys.
func NewRootCommand(fsys afero.Fs) *cobra.Command {
	var (
		envFile string
		logDir  string
	)

	cmd := &cobra.Command{
		Use:   "stripe-import [file]",
		Short: "Import booking export rows as Stripe customers",
		Long: "Reads a booking export (.xlsx, .xlsm, .xls or .csv) and creates one Stripe customer per row.\n" +
			"STRIPE_SECRET_KEY must be set in the environment or in the env file.",
		Version:       Version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			loadEnvFile(envFile)

			cfg := config.Load()
			if logDir != "" {
				cfg.LogDir = logDir
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			zl, err := logger.New(cfg.LogLevel)
			if err != nil {
				return err
			}
			defer func() { _ = zl.Sync() }()

			path := ""
			if len(args) == 1 {
				path = args[0]
			} else if path, err = promptPath(cmd.InOrStdin()); err != nil {
				return err
			}

			_, err = NewApp(cfg, fsys, cmd.OutOrStdout(), zl).Import(cmd.Context(), path)
			return err
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", ".env", "env file to load before reading the environment (empty to skip)")
	cmd.Flags().StringVar(&logDir, "log-dir", "", "directory for failure logs (overrides IMPORT_LOG_DIR)")

	return cmd
}

func loadEnvFile(path string) {
	if path == "" {
		return
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Printf("[MAIN] No %s file found, relying on system env vars", path)
			return
		}
		fmt.Fprintf(os.Stderr, "warning: could not load %s: %v\n", path, err)
	}
}
