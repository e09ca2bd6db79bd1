package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pairPool/internal/config"
	"pairPool/internal/pool"
	"pairPool/internal/replay"
	"pairPool/internal/storage"
	"pairPool/internal/storage/postgres"
	"pairPool/internal/token"
)

func runReplay(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadReplay(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.In == "" {
		return fmt.Errorf("input path is required")
	}
	if cfg.Out == "" {
		return fmt.Errorf("output path is required")
	}
	if cfg.Errors == "" {
		return fmt.Errorf("errors path is required")
	}

	assetA, err := replay.ParseAddress(cfg.AssetA)
	if err != nil {
		return fmt.Errorf("asset-a: %w", err)
	}
	assetB, err := replay.ParseAddress(cfg.AssetB)
	if err != nil {
		return fmt.Errorf("asset-b: %w", err)
	}
	poolAddr, err := replay.ParseAddress(cfg.PoolAddress)
	if err != nil {
		return fmt.Errorf("pool-address: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ledger := token.NewLedger()
	engine, err := pool.New(pool.Config{
		AssetA:  assetA,
		AssetB:  assetB,
		Address: poolAddr,
		Tokens:  ledger,
		Logger:  logger,
	})
	if err != nil {
		return fmt.Errorf("create pool: %w", err)
	}

	var store *postgres.Store
	if cfg.PGDSN != "" {
		store, err = postgres.NewStore(ctx, cfg.PGDSN)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer store.Close()
	}

	sink := storage.NewJsonlStorage(cfg.Out)

	runner := replay.NewRunner(replay.RunConfig{
		BatchSize:         cfg.BatchSize,
		CheckpointPath:    cfg.Checkpoint,
		CheckpointEnabled: cfg.CheckpointEnabled,
		MaxRetries:        cfg.MaxRetries,
		RetryBackoff:      cfg.RetryBackoff,
	}, engine, ledger, sink, store, logger)

	logger.Info("replay start",
		zap.String("in", cfg.In),
		zap.String("out", cfg.Out),
		zap.String("errors", cfg.Errors),
		zap.String("asset_a", assetA.Hex()),
		zap.String("asset_b", assetB.Hex()),
		zap.String("pool", poolAddr.Hex()),
		zap.Int("batch_size", cfg.BatchSize),
		zap.Bool("checkpoint_enabled", cfg.CheckpointEnabled),
		zap.Bool("postgres", store != nil),
	)

	return runner.Run(ctx, cfg.In, cfg.Errors)
}
