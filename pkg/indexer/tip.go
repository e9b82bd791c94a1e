package indexer

import (
	"context"

	"github.com/pkg/errors"
)

// tipTracker caches the number of the last synced block. The value is only
// ever derived from storage or advanced after a confirmed write.
type tipTracker struct {
	storage StorageSink
	tip     uint64
	known   bool
}

func newTipTracker(storage StorageSink) *tipTracker {
	return &tipTracker{storage: storage}
}

// Current returns the tip, asking storage on a cold cache. ok is false when
// nothing has been synced yet; that answer is not cached.
func (t *tipTracker) Current(ctx context.Context) (tip uint64, ok bool, err error) {
	if t.known {
		return t.tip, true, nil
	}

	tip, ok, err = t.storage.MaxBlockNumber(ctx)
	if err != nil {
		return 0, false, &SyncError{Kind: StorageError, Err: errors.Wrap(err, "resolving tip")}
	}

	if ok {
		t.tip = tip
		t.known = true
	}

	return tip, ok, nil
}

// Advance records one more synced block.
func (t *tipTracker) Advance() {
	if !t.known {
		t.tip = 0
		t.known = true

		return
	}

	t.tip++
}

// cached returns the tip without touching storage.
func (t *tipTracker) cached() (uint64, bool) {
	return t.tip, t.known
}

func nextBlockNumber(tip uint64, ok bool) uint64 {
	if !ok {
		return 0
	}

	return tip + 1
}
