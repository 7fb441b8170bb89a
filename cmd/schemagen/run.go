package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"schemagen/internal/apischema"
	"schemagen/internal/config"
	"schemagen/internal/datasource/httpds"
	"schemagen/internal/datasource/postgrest"
	"schemagen/internal/export"
	"schemagen/internal/metrics"
	"schemagen/internal/storage"
	"schemagen/internal/storage/postgres"
	pgddl "schemagen/internal/storage/postgres/ddl"
)

// openRepository connects to the apply target. Tests replace it with a fake.
var openRepository = func(ctx context.Context, dsn string) (storage.Execer, func(), error) {
	repo, closeFn, err := postgres.NewRepository(ctx, postgres.Config{DSN: dsn})
	if err != nil {
		return nil, nil, err
	}
	return repo, closeFn, nil
}

// run executes one export: optional fetch, load, render, write and optional
// apply. The two summary lines are printed to stdout.
func run(ctx context.Context, cfg config.Config, stdout io.Writer) error {
	if cfg.FetchURL != "" {
		if err := step(cfg, "fetch", func() error { return fetch(ctx, cfg) }); err != nil {
			return err
		}
	}

	var doc *apischema.Document
	err := step(cfg, "load", func() error {
		var err error
		doc, err = apischema.Load(cfg.Input)
		return err
	})
	if err != nil {
		return err
	}

	var res export.Result
	err = step(cfg, "render", func() error {
		var err error
		res, err = export.Render(doc, export.Options{Title: cfg.Title})
		return err
	})
	if err != nil {
		return err
	}

	var changed bool
	err = step(cfg, "write", func() error {
		var err error
		changed, err = export.WriteFile(cfg.Output, res.SQL)
		return err
	})
	if err != nil {
		return err
	}

	metrics.RecordTables(cfg.Job, "emitted", len(res.Tables))
	metrics.RecordTables(cfg.Job, "skipped", len(res.Skipped))
	metrics.RecordColumns(cfg.Job, res.Columns)

	log.Printf("export: tables=%d skipped=%d columns=%d checksum=%016x changed=%t",
		len(res.Tables), len(res.Skipped), res.Columns, res.Checksum, changed)
	if cfg.Verbose {
		for _, name := range res.Skipped {
			log.Printf("export: skipped system table %s", name)
		}
	}

	fmt.Fprintf(stdout, "Generated SQL schema with %d tables\n", doc.Len())
	fmt.Fprintf(stdout, "Saved to: %s\n", cfg.Output)

	if cfg.Apply {
		return step(cfg, "apply", func() error { return apply(ctx, cfg, res) })
	}
	return nil
}

// step runs fn and records its outcome.
func step(cfg config.Config, name string, fn func() error) error {
	start := time.Now()
	err := fn()
	metrics.RecordStep(cfg.Job, name, err, time.Since(start))
	return err
}

// fetch downloads the API document and stores it at cfg.Input.
func fetch(ctx context.Context, cfg config.Config) error {
	client := httpds.NewClient(httpds.Config{MaxRetries: 3})
	f := postgrest.NewFetcher(client, cfg.FetchURL, cfg.APIKey)

	body, doc, err := f.Fetch(ctx)
	if err != nil {
		return err
	}
	if err := postgrest.Save(cfg.Input, body); err != nil {
		return err
	}
	log.Printf("fetch: url=%s definitions=%d saved=%s", f.URL(), doc.Len(), cfg.Input)
	return nil
}

// apply executes every emitted statement against cfg.DSN.
func apply(ctx context.Context, cfg config.Config, res export.Result) error {
	repo, closeFn, err := openRepository(ctx, cfg.DSN)
	if err != nil {
		return fmt.Errorf("apply: %w", err)
	}
	defer closeFn()

	n, err := pgddl.EnsureTables(ctx, repo, res.Tables)
	metrics.RecordTables(cfg.Job, "applied", n)
	if err != nil {
		return fmt.Errorf("apply: %d of %d tables applied: %w", n, len(res.Tables), err)
	}
	log.Printf("apply: tables=%d", n)
	return nil
}

// describeErr maps the error taxonomy onto a user-facing message.
func describeErr(err error) string {
	switch {
	case errors.Is(err, apischema.ErrInputNotFound):
		return fmt.Sprintf("Error: input not found: %v", err)
	case errors.Is(err, apischema.ErrInputParse):
		return fmt.Sprintf("Error: input is not a valid API document: %v", err)
	case errors.Is(err, export.ErrOutputWrite):
		return fmt.Sprintf("Error: cannot write output: %v", err)
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}
