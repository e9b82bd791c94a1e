package indexer

import (
	"context"
	"time"

	"github.com/godwoken/web3-indexer/pkg/godwoken"
)

// chainWithTimeout bounds every request to the chain source and records its
// latency. A zero timeout leaves requests unbounded. Failures are returned
// as-is: the sync loop does not retry them.
type chainWithTimeout struct {
	client         ChainSource
	requestTimeout time.Duration
}

func newChainWithTimeout(client ChainSource, requestTimeout time.Duration) ChainSource {
	return &chainWithTimeout{
		client:         client,
		requestTimeout: requestTimeout,
	}
}

func (c *chainWithTimeout) GetBlockByNumber(ctx context.Context, number uint64) (*godwoken.L2Block, error) {
	if c.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.requestTimeout)
		defer cancel()
	}

	start := time.Now()
	block, err := c.client.GetBlockByNumber(ctx, number)
	chainRequestDuration.WithLabelValues(requestStatus(block, err)).Observe(time.Since(start).Seconds())

	return block, err
}

func requestStatus(block *godwoken.L2Block, err error) string {
	switch {
	case err != nil:
		return "error"
	case block == nil:
		return "not_found"
	default:
		return "ok"
	}
}
