package etl

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/rs/xid"

	"github.com/sig-0/bankcaps/config"
	"github.com/sig-0/bankcaps/enrich"
	"github.com/sig-0/bankcaps/rates"
	"github.com/sig-0/bankcaps/report"
	csvsink "github.com/sig-0/bankcaps/sink/csv"
	"github.com/sig-0/bankcaps/sink/xlsx"
	"github.com/sig-0/bankcaps/storage"
	dbpkg "github.com/sig-0/bankcaps/storage/sql"
	"github.com/sig-0/bankcaps/storage/types"
)

// Pipeline is the single-pass largest banks ETL run
type Pipeline struct {
	provider Provider
	storage  storage.Storage
	logger   *slog.Logger
	progress Progress
	config   *config.Config
	out      io.Writer
}

// New creates a new Pipeline instance
func New(provider Provider, storage storage.Storage, opts ...Option) *Pipeline {
	p := &Pipeline{
		provider: provider,
		storage:  storage,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		progress: noopProgress{},
		config:   config.DefaultConfig(),
		out:      io.Discard,
	}

	// Apply the options
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Run executes the extract, transform and load stages in order,
// followed by the fixed queries. Any stage failure aborts the run
func (p *Pipeline) Run(ctx context.Context) error {
	logger := p.logger.With("run_id", xid.New().String())

	p.progress.Log("Preliminaries complete. Initiating ETL process")

	// Extract
	banks, err := p.provider.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("unable to extract banks from %s: %w", p.provider.Name(), err)
	}

	logger.Info(
		"extracted banks",
		"provider", p.provider.Name(),
		"count", len(banks),
	)

	p.printf("Extracted data:\n")
	p.printTable(bankTable(banks))

	p.progress.Log("Data extraction complete. Initiating Transformation process")

	// Transform
	p.progress.Log("Reading exchange rate CSV file")

	rateTable, err := rates.Load(p.config.ExchangeRatePath)
	if err != nil {
		return fmt.Errorf("unable to load exchange rates: %w", err)
	}

	enriched, err := enrich.Project(banks, rateTable)
	if err != nil {
		return fmt.Errorf("unable to transform banks: %w", err)
	}

	p.progress.Log("Data transformation with exchange rates complete")

	p.printf("Transformed data:\n")
	p.printTable(enrichedTable(enriched))

	p.progress.Log("Data transformation complete. Initiating loading process")

	// Load
	if err = csvsink.Write(p.config.CSVPath, enriched); err != nil {
		return fmt.Errorf("unable to load banks to CSV: %w", err)
	}

	p.progress.Log("Data saved to CSV file")

	if p.config.XLSXPath != "" {
		if err = xlsx.Write(p.config.XLSXPath, enriched); err != nil {
			return fmt.Errorf("unable to load banks to workbook: %w", err)
		}

		p.progress.Log("Data saved to Excel file")
	}

	if err = p.storage.SaveBanks(ctx, dbpkg.DefaultTableName, enriched); err != nil {
		return fmt.Errorf("unable to load banks to DB: %w", err)
	}

	logger.Info(
		"loaded banks",
		"table", dbpkg.DefaultTableName,
		"count", len(enriched),
	)

	p.progress.Log("Data loaded to Database as table")

	if err = p.RunQueries(ctx); err != nil {
		return err
	}

	p.progress.Log("Process Complete.")

	return nil
}

// RunQueries runs the fixed queries against the pipeline storage
func (p *Pipeline) RunQueries(ctx context.Context) error {
	return RunQueries(ctx, p.storage, p.out, p.progress)
}

// RunQueries runs the fixed queries against the storage,
// printing every result to out
func RunQueries(
	ctx context.Context,
	store storage.Storage,
	out io.Writer,
	progress Progress,
) error {
	if progress == nil {
		progress = noopProgress{}
	}

	queries, err := dbpkg.FixedQueries()
	if err != nil {
		return err
	}

	progress.Log("Running queries on the database")

	for i, query := range queries {
		_, _ = fmt.Fprintf(out, "Query %d:\nQuery: %s\n", i+1, query.Statement)

		result, err := store.Query(ctx, query.Statement)
		if err != nil {
			return fmt.Errorf("unable to run query %q: %w", query.Name, err)
		}

		_, _ = fmt.Fprintln(out, "Output:")

		if err = report.Write(out, result); err != nil {
			return fmt.Errorf("unable to print query %q: %w", query.Name, err)
		}

		_, _ = fmt.Fprintln(out)

		progress.Log(fmt.Sprintf("Executed Query %d", i+1))
	}

	return nil
}

func (p *Pipeline) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, format, args...)
}

func (p *Pipeline) printTable(table *types.Table) {
	if err := report.Write(p.out, table); err != nil {
		p.logger.Warn(
			"unable to print table",
			"err", err,
		)
	}
}

// bankTable converts the extracted banks to a printable table
func bankTable(banks []*types.Bank) *types.Table {
	table := &types.Table{
		Columns: []string{types.ColumnName, types.ColumnUSD},
		Rows:    make([][]any, 0, len(banks)),
	}

	for _, bank := range banks {
		table.Rows = append(table.Rows, []any{bank.Name, bank.MarketCapUSD})
	}

	return table
}

// enrichedTable converts the enriched banks to a printable table
func enrichedTable(banks []*types.EnrichedBank) *types.Table {
	table := &types.Table{
		Columns: types.Columns,
		Rows:    make([][]any, 0, len(banks)),
	}

	for _, bank := range banks {
		table.Rows = append(table.Rows, []any{
			bank.Name,
			bank.MarketCapUSD,
			bank.MarketCapGBP,
			bank.MarketCapEUR,
			bank.MarketCapINR,
		})
	}

	return table
}
