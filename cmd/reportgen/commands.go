package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/simaogato/fipify-backend/internal/adapter/fipe"
	"github.com/simaogato/fipify-backend/internal/adapter/pdf"
	"github.com/simaogato/fipify-backend/internal/adapter/repository/memory"
	"github.com/simaogato/fipify-backend/internal/config"
	"github.com/simaogato/fipify-backend/internal/domain"
	"github.com/simaogato/fipify-backend/internal/logging"
	"github.com/simaogato/fipify-backend/internal/usecase/lookup"
	"github.com/simaogato/fipify-backend/internal/usecase/report"
)

// rootOptions holds global flags
type rootOptions struct {
	configPath string
	outDir     string
	logLevel   string
	now        func() time.Time
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{now: time.Now}

	root := &cobra.Command{
		Use:           "reportgen",
		Short:         "Generate vehicle valuation reports as PDF files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", os.Getenv("FIPIFY_CONFIG"), "Path to config.yaml")
	root.PersistentFlags().StringVarP(&opts.outDir, "out", "o", ".", "Directory the PDF is written to")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level: debug|info|warn|error")

	root.AddCommand(newGenerateCmd(opts), newLookupCmd(opts))
	return root
}

type generateFlags struct {
	brand, model, year, fuel, code, reference string
	value, rate                               string
}

func newGenerateCmd(opts *rootOptions) *cobra.Command {
	f := &generateFlags{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Build a report from a record described by flags",
		RunE: func(cmd *cobra.Command, _ []string) error {
			record, err := f.record(opts.now)
			if err != nil {
				return err
			}
			path, err := writeReport(opts, *record)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&f.brand, "brand", "", "Brand name (required)")
	cmd.Flags().StringVar(&f.model, "model", "", "Model name (required)")
	cmd.Flags().StringVar(&f.year, "year", "", "Model year (required)")
	cmd.Flags().StringVar(&f.fuel, "fuel", "Gasolina", "Fuel type")
	cmd.Flags().StringVar(&f.code, "code", "", "FIPE code (required)")
	cmd.Flags().StringVar(&f.reference, "reference", "", "Reference month, e.g. \"agosto de 2024\" (required)")
	cmd.Flags().StringVar(&f.value, "value", "", "Current value, plain (50000.00) or formatted (R$ 50.000,00) (required)")
	cmd.Flags().StringVar(&f.rate, "rate", "", "Annual depreciation rate in percent; drawn in [5, 12] when empty")
	for _, name := range []string{"brand", "model", "year", "code", "reference", "value"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

func (f *generateFlags) record(now func() time.Time) (*domain.ValuationRecord, error) {
	value, err := parseValue(f.value)
	if err != nil {
		return nil, err
	}

	rate := lookup.UniformRate()
	if f.rate != "" {
		rate, err = decimal.NewFromString(f.rate)
		if err != nil {
			return nil, fmt.Errorf("invalid --rate %q: %w", f.rate, err)
		}
	}

	record := &domain.ValuationRecord{
		ID:                     uuid.New(),
		Brand:                  f.brand,
		Model:                  f.model,
		ModelYear:              f.year,
		FuelType:               f.fuel,
		ReferenceCode:          f.code,
		ReferenceMonth:         f.reference,
		CurrentValue:           value,
		AnnualDepreciationRate: rate,
		CreatedAt:              now().UTC(),
	}
	if err := record.Validate(); err != nil {
		return nil, err
	}
	return record, nil
}

var (
	plainAmount     = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)
	formattedAmount = regexp.MustCompile(`^(R\$\s*)?\d{1,3}(\.\d{3})*,\d{2}$|^(R\$\s*)?\d+,\d{2}$`)
)

// parseValue accepts a plain decimal (50000.00) or a price formatted like the
// FIPE table (R$ 50.000,00). Anything else, including "50.000", is rejected.
func parseValue(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	switch {
	case plainAmount.MatchString(s):
		return decimal.NewFromString(s)
	case formattedAmount.MatchString(s):
		return domain.ParseCurrency(s)
	default:
		return decimal.Zero, fmt.Errorf("%w: %q, use 50000.00 or R$ 50.000,00", domain.ErrInvalidAmount, s)
	}
}

func newLookupCmd(opts *rootOptions) *cobra.Command {
	var brandCode, modelCode, yearCode string

	cmd := &cobra.Command{
		Use:   "lookup",
		Short: "Look a vehicle up in the FIPE table and build its report",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			logger, err := logging.New(logging.LogConfig{Level: opts.logLevel, Format: "console"})
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			svc := lookup.NewLookupService(fipe.NewClient(cfg.FIPEConfig()), memory.NewValuationRepository())
			svc.Now = opts.now

			record, err := svc.Lookup(cmd.Context(), lookup.VehicleSelection{
				BrandCode: brandCode,
				ModelCode: modelCode,
				YearCode:  yearCode,
			})
			if err != nil {
				return err
			}
			logger.Info("vehicle found",
				zap.String("model", record.Model),
				zap.String("value", record.FormattedValue()),
				zap.String("rate", record.AnnualDepreciationRate.String()))

			path, err := writeReport(opts, *record)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&brandCode, "brand-code", "", "FIPE brand code (required)")
	cmd.Flags().StringVar(&modelCode, "model-code", "", "FIPE model code (required)")
	cmd.Flags().StringVar(&yearCode, "year-code", "", "FIPE year code, e.g. 2014-1 (required)")
	for _, name := range []string{"brand-code", "model-code", "year-code"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

// writeReport renders the record and saves it under opts.outDir.
// Nothing is written unless the whole document was produced.
func writeReport(opts *rootOptions, record domain.ValuationRecord) (string, error) {
	svc := report.NewReportService(nil, pdf.NewRenderer())
	svc.Now = opts.now

	doc, err := svc.GenerateFromRecord(record)
	if err != nil {
		return "", err
	}

	return saveFile(opts.outDir, doc.FileName, bytes.NewReader(doc.Content))
}

// saveFile copies content into dir/name through a temp file in the same
// directory, so the final name only ever holds a complete file.
func saveFile(dir, name string, content io.Reader) (path string, err error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".fipify-*.pdf")
	if err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = io.Copy(tmp, content); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}

	path = filepath.Join(dir, name)
	if err = os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}
