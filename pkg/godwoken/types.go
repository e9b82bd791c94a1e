package godwoken

import (
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// L2Block is the block view returned by gw_get_block_by_number.
type L2Block struct {
	Hash         common.Hash       `json:"hash"`
	Raw          RawL2Block        `json:"raw"`
	BlockProof   hexutil.Bytes     `json:"block_proof"`
	Transactions []L2Transaction   `json:"transactions"`
	Withdrawals  []json.RawMessage `json:"withdrawals"`
}

type RawL2Block struct {
	Number              hexutil.Uint64     `json:"number"`
	ParentBlockHash     common.Hash        `json:"parent_block_hash"`
	BlockProducer       hexutil.Bytes      `json:"block_producer"`
	StakeCellOwnerLock  common.Hash        `json:"stake_cell_owner_lock_hash"`
	Timestamp           hexutil.Uint64     `json:"timestamp"`
	PrevAccount         AccountMerkleState `json:"prev_account"`
	PostAccount         AccountMerkleState `json:"post_account"`
	SubmitTransactions  SubmitTransactions `json:"submit_transactions"`
	SubmitWithdrawals   SubmitWithdrawals  `json:"submit_withdrawals"`
	StateCheckpointList []common.Hash      `json:"state_checkpoint_list"`
}

type AccountMerkleState struct {
	MerkleRoot common.Hash    `json:"merkle_root"`
	Count      hexutil.Uint64 `json:"count"`
}

type SubmitTransactions struct {
	TxWitnessRoot       common.Hash    `json:"tx_witness_root"`
	TxCount             hexutil.Uint64 `json:"tx_count"`
	PrevStateCheckpoint common.Hash    `json:"prev_state_checkpoint"`
}

type SubmitWithdrawals struct {
	WithdrawalWitnessRoot common.Hash    `json:"withdrawal_witness_root"`
	WithdrawalCount       hexutil.Uint64 `json:"withdrawal_count"`
}

type L2Transaction struct {
	Hash      common.Hash      `json:"hash"`
	Raw       RawL2Transaction `json:"raw"`
	Signature hexutil.Bytes    `json:"signature"`
}

type RawL2Transaction struct {
	ChainID hexutil.Uint64 `json:"chain_id"`
	FromID  hexutil.Uint64 `json:"from_id"`
	ToID    hexutil.Uint64 `json:"to_id"`
	Nonce   hexutil.Uint64 `json:"nonce"`
	Args    hexutil.Bytes  `json:"args"`
}

type rpcRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      uint64        `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      uint64          `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *RPCError       `json:"error"`
}

// RPCError is an error object returned by the node.
type RPCError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}
