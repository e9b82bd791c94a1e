package indexer

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/godwoken/web3-indexer/pkg/indexer/mocks"
)

func TestTipAdvanceIsMonotonic(t *testing.T) {
	tracker := newTipTracker(newMemStorage())

	_, ok := tracker.cached()
	require.False(t, ok)

	for i := uint64(0); i < 100; i++ {
		tracker.Advance()

		tip, ok := tracker.cached()
		require.True(t, ok)
		require.Equal(t, i, tip)
	}
}

func TestTipCurrent(t *testing.T) {
	ctx := context.Background()

	t.Run("empty store is not cached", func(t *testing.T) {
		storage := newMemStorage()
		tracker := newTipTracker(storage)

		for i := 0; i < 2; i++ {
			_, ok, err := tracker.Current(ctx)
			require.NoError(t, err)
			require.False(t, ok)
		}

		require.Equal(t, 2, storage.maxCalls)
		require.Equal(t, uint64(0), nextBlockNumber(tracker.cached()))
	})

	t.Run("stored tip is cached", func(t *testing.T) {
		storage := newMemStorage(0, 1, 2, 3)
		tracker := newTipTracker(storage)

		for i := 0; i < 3; i++ {
			tip, ok, err := tracker.Current(ctx)
			require.NoError(t, err)
			require.True(t, ok)
			require.Equal(t, uint64(3), tip)
		}

		require.Equal(t, 1, storage.maxCalls)
		require.Equal(t, uint64(4), nextBlockNumber(tracker.cached()))

		tracker.Advance()
		tip, _, err := tracker.Current(ctx)
		require.NoError(t, err)
		require.Equal(t, uint64(4), tip)
	})

	t.Run("storage failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		storage := mocks.NewMockStorageSink(ctrl)
		storage.EXPECT().MaxBlockNumber(gomock.Any()).Return(uint64(0), false, errors.New("timeout"))

		tracker := newTipTracker(storage)
		_, _, err := tracker.Current(ctx)
		require.ErrorIs(t, err, ErrStorage)
		require.ErrorContains(t, err, "storage error: resolving tip: timeout")

		_, ok := tracker.cached()
		require.False(t, ok)
	})
}
