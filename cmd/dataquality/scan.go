package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JonMunkholm/dataquality/internal/config"
	"github.com/JonMunkholm/dataquality/internal/core"
	"github.com/JonMunkholm/dataquality/internal/csv"
	"github.com/JonMunkholm/dataquality/internal/reference"
	"github.com/JonMunkholm/dataquality/internal/report"
)

// runScan validates the configured input file, writes the cleaned table and
// prints the report to out. Nothing is written unless the scan completes.
func runScan(ctx context.Context, cfg *config.Config, out io.Writer) error {
	if err := csv.CheckOutputDir(cfg.Scan.OutputPath); err != nil {
		return err
	}

	table, err := csv.ReadFile(cfg.Scan.InputFile, cfg.Scan.MaxFileSize)
	if err != nil {
		return err
	}
	slog.Info("input loaded", "file", cfg.Scan.InputFile, "records", table.Len())

	states, zips, err := loadReference(ctx, cfg.Reference)
	if err != nil {
		return err
	}

	format, err := core.ParsePhoneFormat(cfg.Scan.PhoneFormat)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.Scan.Timeout)
	defer cancel()

	scanner := core.NewScanner(states, zips,
		core.WithLogger(slog.Default()),
		core.WithPhoneFormat(format),
	)
	rep, err := scanner.Scan(ctx, table)
	if err != nil {
		return err
	}

	path, err := csv.WriteFile(cfg.Scan.OutputPath, table)
	if err != nil {
		return err
	}
	slog.Info("cleaned table written", "path", path)

	return report.Render(out, rep)
}

// loadReference loads the state and zip directories from PostgreSQL when a
// database URL is configured, otherwise from files.
func loadReference(ctx context.Context, cfg config.ReferenceConfig) (*reference.StateDirectory, *reference.ZipDirectory, error) {
	if !cfg.UseDatabase() {
		states, err := reference.LoadStates(cfg.StatesFile)
		if err != nil {
			return nil, nil, err
		}
		zips, err := reference.LoadZips(cfg.ZipsFile, states)
		if err != nil {
			return nil, nil, err
		}
		slog.Debug("reference data loaded", "source", "file", "states", states.Len(), "zips", zips.Len())
		return states, zips, nil
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.LoadTimeout)
	defer cancel()

	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("load reference database: parse url: %w", err)
	}
	poolConfig.MaxConns = int32(cfg.MaxConns)

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("load reference database: connect: %w", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return nil, nil, fmt.Errorf("load reference database: ping: %w", err)
	}

	states, zips, err := reference.LoadFromDatabase(ctx, pool, reference.Tables{
		States: cfg.StatesTable,
		Zips:   cfg.ZipsTable,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("load reference database: %w", err)
	}
	slog.Info("reference data loaded", "source", "database", "states", states.Len(), "zips", zips.Len())
	return states, zips, nil
}
