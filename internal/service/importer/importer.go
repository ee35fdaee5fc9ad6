// internal/service/importer/importer.go
package importer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/clementatt/Stripe-customers-import/internal/config"
	"github.com/clementatt/Stripe-customers-import/internal/domain/customer"
	xerrors "github.com/clementatt/Stripe-customers-import/internal/pkg/errors"
	"github.com/clementatt/Stripe-customers-import/internal/pkg/logger"
	"github.com/clementatt/Stripe-customers-import/internal/sheet"

	"github.com/oklog/ulid/v2"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// CustomerCreator is the remote create-customer call.
type CustomerCreator interface {
	CreateCustomer(ctx context.Context, req *customer.CreateCustomerRequest) (string, error)
}

// RowNormalizer builds the create request for a row.
type RowNormalizer interface {
	Normalize(row customer.SourceRow) (*customer.CreateCustomerRequest, error)
}

// Progress receives one tick per processed row.
type Progress interface {
	Start(total int)
	Increment()
	Finish()
}

type ImportService struct {
	cfg        config.AppConfig
	fs         afero.Fs
	schema     customer.Schema
	normalizer RowNormalizer
	creator    CustomerCreator
	logger     *zap.Logger
	progress   Progress
	rowLevel   zapcore.Level
	now        func() time.Time
}

func NewImportService(
	cfg config.AppConfig,
	fs afero.Fs,
	normalizer RowNormalizer,
	creator CustomerCreator,
	logger *zap.Logger,
) *ImportService {
	return &ImportService{
		cfg:        cfg,
		fs:         fs,
		schema:     customer.DefaultSchema,
		normalizer: normalizer,
		creator:    creator,
		logger:     logger,
		progress:   noopProgress{},
		rowLevel:   zapcore.WarnLevel,
		now:        time.Now,
	}
}

// SetProgress installs the indicator advanced after every row.
func (s *ImportService) SetProgress(p Progress) {
	if p == nil {
		p = noopProgress{}
	}
	s.progress = p
}

// SetRowLogLevel sets the console level of per-row failure messages.
// The failure log records every failure regardless.
func (s *ImportService) SetRowLogLevel(level zapcore.Level) {
	s.rowLevel = level
}

// Run imports every row of the file at path, one remote call at a time
// in source order. Row failures are logged and counted; only input,
// column and file-read errors end the run early.
func (s *ImportService) Run(ctx context.Context, path string) (*customer.Summary, error) {
	if err := s.validateInput(path); err != nil {
		return nil, err
	}

	startedAt := s.now()
	summary := &customer.Summary{
		RunID:     ulid.MustNew(ulid.Timestamp(startedAt), ulid.DefaultEntropy()).String(),
		StartedAt: startedAt,
	}
	log := s.logger.With(zap.String("run_id", summary.RunID))

	failures, err := logger.OpenFailureLog(s.fs, s.cfg.LogDir, startedAt)
	if err != nil {
		return nil, err
	}
	defer failures.Close()
	summary.LogPath = failures.Path()

	table, err := sheet.Load(s.fs, path)
	if err != nil {
		err = fmt.Errorf("%w: %v", xerrors.ErrFileRead, err)
		failures.RunFailed(err)
		log.Error("failed to load input file", zap.String("path", path), zap.Error(err))
		return nil, err
	}

	binding, err := s.bindColumns(table.Header)
	if err != nil {
		log.Error("input file is missing required columns", zap.Error(err))
		return nil, err
	}

	summary.Total = len(table.Records)
	log.Info("starting import",
		zap.String("path", path),
		zap.Int("records", summary.Total),
		zap.String("log_file", summary.LogPath),
	)

	s.progress.Start(summary.Total)
	for i, record := range table.Records {
		outcome := s.importRow(ctx, log, failures, binding.Row(table.Positions[i], record))
		summary.Record(outcome)
		s.progress.Increment()
	}
	s.progress.Finish()

	summary.FinishedAt = s.now()
	log.Info("import finished",
		zap.Int("success", summary.SuccessCount),
		zap.Int("errors", summary.ErrorCount),
		zap.Duration("elapsed", summary.FinishedAt.Sub(startedAt)),
	)

	return summary, nil
}

// ========== Helper Methods ==========

func (s *ImportService) validateInput(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("%w: no file path given", xerrors.ErrInvalidInputFile)
	}

	exists, err := afero.Exists(s.fs, path)
	if err != nil || !exists {
		return fmt.Errorf("%w: file %s does not exist", xerrors.ErrInvalidInputFile, path)
	}
	if isDir, _ := afero.IsDir(s.fs, path); isDir {
		return fmt.Errorf("%w: %s is a directory", xerrors.ErrInvalidInputFile, path)
	}

	if !sheet.Supported(path) {
		return fmt.Errorf("%w: provide a spreadsheet (%s)", xerrors.ErrInvalidInputFile, strings.Join(sheet.Extensions, ", "))
	}
	return nil
}

// bindColumns checks the header against the external schema names, then
// re-checks the renamed columns by internal name.
func (s *ImportService) bindColumns(header []string) (*customer.Binding, error) {
	binding, err := s.schema.Bind(header)
	if err != nil {
		return nil, err
	}
	if missing := binding.Missing(s.schema.InternalNames()); len(missing) > 0 {
		return nil, &xerrors.MissingColumnsError{Columns: missing}
	}
	return binding, nil
}

func (s *ImportService) importRow(ctx context.Context, log *zap.Logger, failures *logger.FailureLog, row customer.SourceRow) customer.Outcome {
	orderNumber, _ := row.Get(customer.FieldOrderNumber)

	req, err := s.normalizer.Normalize(row)
	if err != nil {
		return s.fail(log, failures, row, orderNumber, err)
	}

	id, err := s.creator.CreateCustomer(ctx, req)
	if err != nil {
		return s.fail(log, failures, row, orderNumber, fmt.Errorf("%w: %v", xerrors.ErrRowImport, err))
	}

	log.Debug("customer created",
		zap.Int("row", row.Index),
		zap.String("order_number", orderNumber),
		zap.String("customer_id", id),
	)
	return customer.Success(id, orderNumber)
}

func (s *ImportService) fail(log *zap.Logger, failures *logger.FailureLog, row customer.SourceRow, orderNumber string, err error) customer.Outcome {
	failures.RowFailed(orderNumber, err)
	if ce := log.Check(s.rowLevel, "row import failed"); ce != nil {
		ce.Write(
			zap.Int("row", row.Index),
			zap.String("order_number", orderNumber),
			zap.Error(err),
		)
	}
	return customer.Failure(err.Error(), orderNumber)
}

type noopProgress struct{}

func (noopProgress) Start(int)  {}
func (noopProgress) Increment() {}
func (noopProgress) Finish()    {}
