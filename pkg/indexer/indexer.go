package indexer

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/flare-foundation/go-flare-common/pkg/logger"
	"github.com/pkg/errors"

	"github.com/godwoken/web3-indexer/pkg/config"
	"github.com/godwoken/web3-indexer/pkg/database"
	"github.com/godwoken/web3-indexer/pkg/godwoken"
)

//go:generate mockgen -destination=./mocks/mock_chain_source.go -package=mocks github.com/godwoken/web3-indexer/pkg/indexer ChainSource
type ChainSource interface {
	// GetBlockByNumber returns nil without an error when the block has not
	// been produced yet.
	GetBlockByNumber(ctx context.Context, number uint64) (*godwoken.L2Block, error)
}

//go:generate mockgen -destination=./mocks/mock_storage_sink.go -package=mocks github.com/godwoken/web3-indexer/pkg/indexer StorageSink
type StorageSink interface {
	MaxBlockNumber(ctx context.Context) (number uint64, ok bool, err error)
	SaveBlock(ctx context.Context, entities *database.BlockEntities) error
}

type Converter interface {
	Convert(block *godwoken.L2Block) (*database.BlockEntities, error)
}

// Runner mirrors chain blocks into storage one at a time. Only one Runner
// may write to a given store: there is no locking between instances, a
// second writer fails on the blocks primary key.
type Runner struct {
	chain          ChainSource
	storage        StorageSink
	converter      Converter
	tip            *tipTracker
	upToDate       backoff.BackOff
	endBlockNumber uint64
}

func New(cfg *config.BaseConfig, chain ChainSource, storage StorageSink, converter Converter) *Runner {
	return &Runner{
		chain:          newChainWithTimeout(chain, cfg.Godwoken.RequestTimeout()),
		storage:        storage,
		converter:      converter,
		tip:            newTipTracker(storage),
		upToDate:       backoff.NewConstantBackOff(cfg.Indexer.PollInterval()),
		endBlockNumber: cfg.Indexer.EndBlockNumber,
	}
}

// Tip returns the cached tip without querying storage.
func (r *Runner) Tip() (uint64, bool) {
	return r.tip.cached()
}

// Run syncs until ctx is cancelled, the configured end block is reached or
// an error occurs. Errors are not retried.
func (r *Runner) Run(ctx context.Context) error {
	for {
		done, err := r.reachedEnd(ctx)
		if err != nil {
			return r.fatal(err)
		}

		if done {
			logger.Infof("reached end block %d", r.endBlockNumber)
			return nil
		}

		synced, err := r.Insert(ctx)
		if err != nil {
			return r.fatal(err)
		}

		if synced {
			r.upToDate.Reset()
			continue
		}

		if err := r.waitForBlock(ctx); err != nil {
			return err
		}
	}
}

// Insert syncs the block after the current tip. It returns false when the
// chain has not produced that block yet.
func (r *Runner) Insert(ctx context.Context) (bool, error) {
	tip, ok, err := r.tip.Current(ctx)
	if err != nil {
		return false, err
	}

	blockNumber := nextBlockNumber(tip, ok)

	block, err := r.chain.GetBlockByNumber(ctx, blockNumber)
	if err != nil {
		return false, newBlockError(TransportError, blockNumber, err)
	}

	if block == nil {
		idlePollsTotal.Inc()
		return false, nil
	}

	start := time.Now()

	entities, err := r.converter.Convert(block)
	if err != nil {
		return false, newBlockError(ConversionError, blockNumber, err)
	}

	if entities == nil || entities.Block == nil {
		return false, newBlockError(ConversionError, blockNumber, errors.New("converter returned no block"))
	}

	if entities.Block.Number != blockNumber {
		return false, newBlockError(
			ConversionError, blockNumber, errors.Errorf("chain source returned block %d", entities.Block.Number),
		)
	}

	if err := r.storage.SaveBlock(ctx, entities); err != nil {
		return false, newBlockError(StorageError, blockNumber, err)
	}

	r.tip.Advance()

	blockInsertDuration.Observe(time.Since(start).Seconds())
	blocksSyncedTotal.Inc()
	tipBlockNumber.Set(float64(blockNumber))

	logger.Infof("synced block %d", blockNumber)

	return true, nil
}

func (r *Runner) reachedEnd(ctx context.Context) (bool, error) {
	if r.endBlockNumber == 0 {
		return false, nil
	}

	tip, ok, err := r.tip.Current(ctx)
	if err != nil {
		return false, err
	}

	return ok && tip >= r.endBlockNumber, nil
}

func (r *Runner) waitForBlock(ctx context.Context) error {
	d := r.upToDate.NextBackOff()
	if d == backoff.Stop {
		return errors.New("up to date backoff stopped")
	}

	logger.Debugf("no new block on chain, next poll in %v", d)

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (r *Runner) fatal(err error) error {
	var syncErr *SyncError
	if errors.As(err, &syncErr) {
		syncErrorsTotal.WithLabelValues(syncErr.Kind.String()).Inc()
	}

	return errors.Wrap(err, "fatal error in indexer")
}
