package godwoken

import (
	"bytes"
	"context"
	"encoding/json"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

const (
	jsonRPCVersion         = "2.0"
	methodGetBlockByNumber = "gw_get_block_by_number"
)

// Client talks to a Godwoken node over JSON-RPC. Requests are not retried
// and carry no timeout of their own; both are left to the caller's context.
type Client struct {
	client    *resty.Client
	requestID atomic.Uint64
}

func NewClient(rpcURL string) *Client {
	client := resty.New().
		SetBaseURL(rpcURL).
		SetHeader("Content-Type", "application/json")

	return &Client{client: client}
}

// GetBlockByNumber returns the block at number, or nil if the node has not
// produced it yet.
func (c *Client) GetBlockByNumber(ctx context.Context, number uint64) (*L2Block, error) {
	var block *L2Block

	found, err := c.call(ctx, methodGetBlockByNumber, []interface{}{hexutil.Uint64(number)}, &block)
	if err != nil {
		return nil, err
	}

	if !found {
		return nil, nil
	}

	if block == nil || block.Hash == (common.Hash{}) {
		return nil, errors.Errorf("%s: malformed result, block %d has no hash", methodGetBlockByNumber, number)
	}

	return block, nil
}

// call posts a JSON-RPC request and decodes the result into out. found is
// false only when the node answered with an explicit null result.
func (c *Client) call(ctx context.Context, method string, params []interface{}, out interface{}) (found bool, err error) {
	req := rpcRequest{
		JSONRPC: jsonRPCVersion,
		ID:      c.requestID.Add(1),
		Method:  method,
		Params:  params,
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(req).
		Post("")
	if err != nil {
		return false, errors.Wrapf(err, "%s request", method)
	}

	var res rpcResponse
	if err := json.Unmarshal(resp.Body(), &res); err != nil {
		if resp.IsError() {
			return false, errors.Errorf("%s: http status %s", method, resp.Status())
		}

		return false, errors.Wrapf(err, "%s: malformed response", method)
	}

	if res.Error != nil {
		return false, errors.Wrap(res.Error, method)
	}

	if resp.IsError() {
		return false, errors.Errorf("%s: http status %s", method, resp.Status())
	}

	if res.JSONRPC != jsonRPCVersion {
		return false, errors.Errorf("%s: malformed response, jsonrpc version %q", method, res.JSONRPC)
	}

	if res.ID != req.ID {
		return false, errors.Errorf("%s: malformed response, id %d for request %d", method, res.ID, req.ID)
	}

	if len(res.Result) == 0 {
		return false, errors.Errorf("%s: malformed response, no result or error", method)
	}

	if bytes.Equal(res.Result, []byte("null")) {
		return false, nil
	}

	if err := json.Unmarshal(res.Result, out); err != nil {
		return false, errors.Wrapf(err, "%s: malformed result", method)
	}

	return true, nil
}
