package main

import (
	"context"

	"go.uber.org/zap"

	"github.com/policyforge/casegen/internal/catalog"
	"github.com/policyforge/casegen/internal/oracle"
	"github.com/policyforge/casegen/internal/pipeline"
	"github.com/policyforge/casegen/internal/store"
	"github.com/policyforge/casegen/pkg/anthropic"
)

// initCatalog loads the product catalog, applying the override file when
// configured.
func initCatalog() (*catalog.Catalog, error) {
	if cfg.Catalog.Path == "" {
		return catalog.Default(), nil
	}
	return catalog.LoadFile(cfg.Catalog.Path)
}

// initGenerator builds the full pipeline. Without an API key the oracle is
// omitted and generation runs on locally extracted hints alone.
func initGenerator(extra ...pipeline.Option) (*pipeline.Generator, error) {
	cat, err := initCatalog()
	if err != nil {
		return nil, err
	}

	var o oracle.Oracle
	if cfg.Anthropic.Key != "" {
		ai := anthropic.NewClient(cfg.Anthropic.Key)
		ai = anthropic.NewRateLimited(ai, cfg.Anthropic.RequestsPerSec, cfg.Anthropic.Burst)
		o = oracle.New(ai, cfg.Anthropic.Model, cfg.Anthropic.MaxTokens)
	} else {
		zap.L().Warn("no anthropic key configured, generating from hints alone")
	}

	opts := []pipeline.Option{pipeline.WithConcurrency(cfg.Pipeline.Concurrency)}
	if cfg.Pipeline.Seed != 0 {
		opts = append(opts, pipeline.WithSeed(cfg.Pipeline.Seed))
	}
	opts = append(opts, extra...)
	return pipeline.New(o, cat, opts...), nil
}

// initStore opens and migrates the run-history database.
func initStore(ctx context.Context) (store.Store, error) {
	st, err := store.NewSQLite(cfg.Store.Path)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, err
	}
	return st, nil
}
