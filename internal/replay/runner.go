// Package replay applies a JSONL operation journal to a pool and records the
// resulting events. It is the offline driving surface of the engine: journals
// are deterministic, so the same input over the same funding always produces
// the same event journal and final state.
package replay

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"pairPool/internal/model"
	"pairPool/internal/pool"
	"pairPool/internal/storage"
	"pairPool/internal/storage/postgres"
	"pairPool/internal/token"
)

// RunConfig holds runtime settings for a replay.
type RunConfig struct {
	BatchSize         int
	CheckpointPath    string
	CheckpointEnabled bool
	MaxRetries        int
	RetryBackoff      time.Duration
}

// Runner streams operations from a journal, applies them to the pool, and
// writes event records to storage.
type Runner struct {
	cfg        RunConfig
	pool       *pool.Pool
	ledger     *token.Ledger
	sink       storage.EventSink
	store      *postgres.Store
	logger     *zap.Logger
	checkpoint *CheckpointStore
	summary    *Summary
}

// NewRunner builds a Runner with its dependencies. The Postgres store is
// optional.
func NewRunner(cfg RunConfig, p *pool.Pool, ledger *token.Ledger, sink storage.EventSink, store *postgres.Store, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		cfg:        cfg,
		pool:       p,
		ledger:     ledger,
		sink:       sink,
		store:      store,
		logger:     logger,
		checkpoint: NewCheckpointStore(cfg.CheckpointPath, cfg.CheckpointEnabled),
		summary:    NewSummary(),
	}
}

// Summary returns the counters accumulated so far.
func (r *Runner) Summary() *Summary {
	return r.summary
}

// Run executes the replay loop over the journal at inputPath, writing
// rejected operations to errorsPath.
func (r *Runner) Run(ctx context.Context, inputPath, errorsPath string) error {
	if r.pool == nil {
		return fmt.Errorf("pool is nil")
	}
	if r.ledger == nil {
		return fmt.Errorf("ledger is nil")
	}
	if r.sink == nil {
		return fmt.Errorf("sink is nil")
	}
	if r.cfg.BatchSize <= 0 {
		r.cfg.BatchSize = 500
	}

	lastApplied := uint64(0)
	if r.checkpoint != nil {
		cp, ok, err := r.checkpoint.Load()
		if err != nil {
			return err
		}
		if ok {
			if err := restoreState(r.pool, r.ledger, cp.State); err != nil {
				return fmt.Errorf("restore checkpoint: %w", err)
			}
			lastApplied = cp.LastAppliedSeq
			r.logger.Info("resume from checkpoint", zap.Uint64("last_applied", lastApplied))
		}
	}

	inputFile, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer inputFile.Close()

	errWriter, err := newOpErrorWriter(errorsPath)
	if err != nil {
		return err
	}
	defer errWriter.Close()

	scanner := bufio.NewScanner(inputFile)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 10*1024*1024)

	batch := make([]model.EventRecord, 0, r.cfg.BatchSize)

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var op model.Operation
		if err := json.Unmarshal(line, &op); err != nil {
			r.summary.Rejected++
			errWriter.Write(model.OpError{Error: fmt.Sprintf("decode operation: %v", err)})
			continue
		}

		if op.Seq <= lastApplied {
			r.summary.Skipped++
			continue
		}

		event, err := r.apply(op)
		if err != nil {
			r.summary.Rejected++
			r.logger.Warn("operation rejected", zap.Uint64("seq", op.Seq), zap.String("type", op.Type), zap.Error(err))
			errWriter.Write(model.OpError{Seq: op.Seq, Type: op.Type, Actor: op.Actor, Error: err.Error()})
			continue
		}
		lastApplied = op.Seq

		if event != nil {
			batch = append(batch, *event)
		}

		if len(batch) >= r.cfg.BatchSize {
			if err := r.flush(ctx, batch, lastApplied); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan input: %w", err)
	}

	if err := r.flush(ctx, batch, lastApplied); err != nil {
		return err
	}

	r.logger.Info("replay complete", r.summary.Fields()...)
	return nil
}

func (r *Runner) flush(ctx context.Context, batch []model.EventRecord, lastApplied uint64) error {
	if len(batch) > 0 {
		if err := r.sink.PutEventBatch(batch); err != nil {
			return fmt.Errorf("store events: %w", err)
		}
	}

	snap := snapshotState(r.pool, r.ledger)

	if r.store != nil {
		err := withRetry(ctx, r.cfg.MaxRetries, r.cfg.RetryBackoff, func(ctx context.Context) error {
			if err := r.store.InsertEvents(ctx, batch); err != nil {
				r.logger.Warn("insert events failed", zap.Error(err))
				return err
			}
			if err := r.store.UpsertPoolState(ctx, snap.Pool); err != nil {
				r.logger.Warn("upsert pool state failed", zap.Error(err))
				return err
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("persist to postgres: %w", err)
		}
	}

	if r.checkpoint != nil && lastApplied > 0 {
		if err := r.checkpoint.Save(lastApplied, snap); err != nil {
			return err
		}
	}

	return nil
}

// apply executes one operation against the pool or ledger. Fund operations
// produce no event record.
func (r *Runner) apply(op model.Operation) (*model.EventRecord, error) {
	switch op.Type {
	case model.OpFund:
		return nil, r.applyFund(op)
	case model.OpDeposit:
		return r.applyDeposit(op)
	case model.OpWithdraw:
		return r.applyWithdraw(op)
	case model.OpSwap:
		return r.applySwap(op)
	default:
		return nil, fmt.Errorf("unknown operation type: %q", op.Type)
	}
}

func (r *Runner) applyFund(op model.Operation) error {
	actor, err := ParseAddress(op.Actor)
	if err != nil {
		return err
	}
	asset, err := ParseAddress(op.Asset)
	if err != nil {
		return err
	}
	amount, err := ParseAmount(op.Amount)
	if err != nil {
		return err
	}
	if err := r.ledger.Mint(asset, actor, amount); err != nil {
		return err
	}
	r.summary.Funds++
	return nil
}

func (r *Runner) applyDeposit(op model.Operation) (*model.EventRecord, error) {
	provider, err := ParseAddress(op.Actor)
	if err != nil {
		return nil, err
	}
	recipient := provider
	if op.Recipient != "" {
		if recipient, err = ParseAddress(op.Recipient); err != nil {
			return nil, err
		}
	}
	desiredA, err := ParseAmount(op.DesiredA)
	if err != nil {
		return nil, fmt.Errorf("desired_a: %w", err)
	}
	desiredB, err := ParseAmount(op.DesiredB)
	if err != nil {
		return nil, fmt.Errorf("desired_b: %w", err)
	}
	minA, err := ParseOptionalAmount(op.MinA)
	if err != nil {
		return nil, fmt.Errorf("min_a: %w", err)
	}
	minB, err := ParseOptionalAmount(op.MinB)
	if err != nil {
		return nil, fmt.Errorf("min_b: %w", err)
	}

	result, err := r.pool.Deposit(pool.DepositParams{
		Provider:  provider,
		Recipient: recipient,
		DesiredA:  desiredA,
		DesiredB:  desiredB,
		MinA:      minA,
		MinB:      minB,
		Deadline:  op.Deadline,
	})
	if err != nil {
		return nil, err
	}
	r.summary.Deposits++

	return r.buildEvent(op.Seq, model.EventLiquidityAdded, model.LiquidityAddedData{
		Provider:  provider.Hex(),
		Recipient: recipient.Hex(),
		AmountA:   result.AmountA.String(),
		AmountB:   result.AmountB.String(),
		Shares:    result.Shares.String(),
	})
}

func (r *Runner) applyWithdraw(op model.Operation) (*model.EventRecord, error) {
	provider, err := ParseAddress(op.Actor)
	if err != nil {
		return nil, err
	}
	recipient := provider
	if op.Recipient != "" {
		if recipient, err = ParseAddress(op.Recipient); err != nil {
			return nil, err
		}
	}
	shares, err := ParseAmount(op.Shares)
	if err != nil {
		return nil, fmt.Errorf("shares: %w", err)
	}
	minA, err := ParseOptionalAmount(op.MinA)
	if err != nil {
		return nil, fmt.Errorf("min_a: %w", err)
	}
	minB, err := ParseOptionalAmount(op.MinB)
	if err != nil {
		return nil, fmt.Errorf("min_b: %w", err)
	}

	result, err := r.pool.Withdraw(pool.WithdrawParams{
		Provider:  provider,
		Recipient: recipient,
		Shares:    shares,
		MinA:      minA,
		MinB:      minB,
		Deadline:  op.Deadline,
	})
	if err != nil {
		return nil, err
	}
	r.summary.Withdrawals++

	return r.buildEvent(op.Seq, model.EventLiquidityRemoved, model.LiquidityRemovedData{
		Provider:  provider.Hex(),
		Recipient: recipient.Hex(),
		AmountA:   result.AmountA.String(),
		AmountB:   result.AmountB.String(),
		Shares:    shares.String(),
	})
}

func (r *Runner) applySwap(op model.Operation) (*model.EventRecord, error) {
	trader, err := ParseAddress(op.Actor)
	if err != nil {
		return nil, err
	}
	recipient := trader
	if op.Recipient != "" {
		if recipient, err = ParseAddress(op.Recipient); err != nil {
			return nil, err
		}
	}
	assetIn, err := ParseAddress(op.AssetIn)
	if err != nil {
		return nil, fmt.Errorf("asset_in: %w", err)
	}
	amountIn, err := ParseAmount(op.AmountIn)
	if err != nil {
		return nil, fmt.Errorf("amount_in: %w", err)
	}
	minOut, err := ParseOptionalAmount(op.MinOut)
	if err != nil {
		return nil, fmt.Errorf("min_out: %w", err)
	}

	assetA, assetB := r.pool.Assets()
	assetOut := assetB
	if assetIn == assetB {
		assetOut = assetA
	}

	result, err := r.pool.Swap(pool.SwapParams{
		Trader:       trader,
		Recipient:    recipient,
		AssetIn:      assetIn,
		AssetOut:     assetOut,
		AmountIn:     amountIn,
		AmountOutMin: minOut,
		Deadline:     op.Deadline,
	})
	if err != nil {
		return nil, err
	}
	r.summary.Swaps++
	r.summary.AddSwapVolume(assetIn == assetA, result.AmountIn)

	return r.buildEvent(op.Seq, model.EventSwapExecuted, model.SwapExecutedData{
		Trader:    trader.Hex(),
		Recipient: recipient.Hex(),
		AssetIn:   assetIn.Hex(),
		AssetOut:  assetOut.Hex(),
		AmountIn:  result.AmountIn.String(),
		AmountOut: result.AmountOut.String(),
	})
}

func (r *Runner) buildEvent(seq uint64, eventType string, payload interface{}) (*model.EventRecord, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal event payload: %w", err)
	}
	return &model.EventRecord{
		Seq:       seq,
		Type:      eventType,
		Pool:      r.pool.Address().Hex(),
		Data:      data,
		EmittedAt: time.Now().UTC().Format(time.RFC3339Nano),
	}, nil
}

type opErrorWriter struct {
	file   *os.File
	writer *bufio.Writer
}

func newOpErrorWriter(path string) (*opErrorWriter, error) {
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create errors dir: %w", err)
		}
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open errors file: %w", err)
	}
	return &opErrorWriter{file: file, writer: bufio.NewWriter(file)}, nil
}

func (w *opErrorWriter) Write(record model.OpError) {
	line, err := json.Marshal(record)
	if err != nil {
		return
	}
	w.writer.Write(line)
	w.writer.WriteByte('\n')
}

func (w *opErrorWriter) Close() error {
	if w == nil {
		return nil
	}
	if err := w.writer.Flush(); err != nil {
		w.file.Close()
		return err
	}
	return w.file.Close()
}
