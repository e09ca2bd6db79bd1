package main

import (
	"fmt"
	"math/big"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"pairPool/internal/pool"
	"pairPool/internal/replay"
)

func main() {
	root := &cobra.Command{
		Use:          "pool",
		Short:        "Constant-product pool engine",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	quoteCmd := &cobra.Command{
		Use:   "quote",
		Short: "Quote a swap output from reserves",
		RunE:  runQuote,
	}

	quoteCmd.Flags().String("amount-in", "", "input amount")
	quoteCmd.Flags().String("reserve-in", "", "input-side reserve")
	quoteCmd.Flags().String("reserve-out", "", "output-side reserve")

	root.AddCommand(quoteCmd)

	priceCmd := &cobra.Command{
		Use:   "price",
		Short: "Fixed-point price of asset A in units of asset B",
		RunE:  runPrice,
	}

	priceCmd.Flags().String("reserve-a", "", "reserve of asset A")
	priceCmd.Flags().String("reserve-b", "", "reserve of asset B")

	root.AddCommand(priceCmd)

	replayCmd := &cobra.Command{
		Use:   "replay",
		Short: "Replay an operation journal against a fresh pool",
		RunE:  runReplay,
	}

	replayCmd.Flags().String("in", "", "input operations JSONL")
	replayCmd.Flags().String("out", "./data/events.jsonl", "output events JSONL")
	replayCmd.Flags().String("errors", "./data/op_errors.jsonl", "rejected operations JSONL")
	replayCmd.Flags().String("asset-a", "", "asset A address")
	replayCmd.Flags().String("asset-b", "", "asset B address")
	replayCmd.Flags().String("pool-address", "", "pool custody address")
	replayCmd.Flags().String("pg-dsn", "", "optional Postgres DSN")
	replayCmd.Flags().Int("batch-size", 500, "events per storage batch")
	replayCmd.Flags().String("checkpoint", "./data/checkpoint.json", "checkpoint file path")
	replayCmd.Flags().Bool("checkpoint-enabled", true, "enable checkpointing")
	replayCmd.Flags().Int("max-retries", 5, "maximum retry attempts for Postgres writes")
	replayCmd.Flags().Duration("retry-backoff", 500*time.Millisecond, "initial retry backoff")
	replayCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(replayCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runQuote(cmd *cobra.Command, _ []string) error {
	amountIn, err := amountFlag(cmd, "amount-in")
	if err != nil {
		return err
	}
	reserveIn, err := amountFlag(cmd, "reserve-in")
	if err != nil {
		return err
	}
	reserveOut, err := amountFlag(cmd, "reserve-out")
	if err != nil {
		return err
	}

	amountOut, err := pool.Quote(amountIn, reserveIn, reserveOut)
	if err != nil {
		return err
	}

	fmt.Println(amountOut.String())
	return nil
}

func runPrice(cmd *cobra.Command, _ []string) error {
	reserveA, err := amountFlag(cmd, "reserve-a")
	if err != nil {
		return err
	}
	reserveB, err := amountFlag(cmd, "reserve-b")
	if err != nil {
		return err
	}

	price, err := pool.Price(reserveA, reserveB)
	if err != nil {
		return err
	}

	fmt.Println(price.String())
	return nil
}

func amountFlag(cmd *cobra.Command, name string) (*big.Int, error) {
	raw, _ := cmd.Flags().GetString(name)
	parsed, err := replay.ParseAmount(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return parsed, nil
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
