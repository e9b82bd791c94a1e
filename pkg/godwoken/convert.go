package godwoken

import (
	"encoding/json"
	"math"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"gorm.io/datatypes"

	"github.com/godwoken/web3-indexer/pkg/config"
	"github.com/godwoken/web3-indexer/pkg/database"
)

// Converter maps node blocks into storage entities. It holds no state
// besides the configured script hashes, so conversion is a pure function
// of the block.
type Converter struct {
	hashes config.ScriptHashes
}

func NewConverter(hashes config.ScriptHashes) *Converter {
	return &Converter{hashes: hashes}
}

// chainAttributes are the header fields without a dedicated column.
type chainAttributes struct {
	RollupTypeHash      string             `json:"rollup_type_hash,omitempty"`
	StakeCellOwnerLock  common.Hash        `json:"stake_cell_owner_lock_hash"`
	PrevAccount         AccountMerkleState `json:"prev_account"`
	PostAccount         AccountMerkleState `json:"post_account"`
	SubmitTransactions  SubmitTransactions `json:"submit_transactions"`
	SubmitWithdrawals   SubmitWithdrawals  `json:"submit_withdrawals"`
	StateCheckpointList []common.Hash      `json:"state_checkpoint_list"`
}

func (c *Converter) Convert(block *L2Block) (*database.BlockEntities, error) {
	if block == nil {
		return nil, errors.New("nil block")
	}

	raw := block.Raw
	number := uint64(raw.Number)

	if uint64(raw.SubmitTransactions.TxCount) != uint64(len(block.Transactions)) {
		return nil, errors.Errorf(
			"block %d: header declares %d transactions, body has %d",
			number, uint64(raw.SubmitTransactions.TxCount), len(block.Transactions),
		)
	}

	if uint64(raw.SubmitWithdrawals.WithdrawalCount) != uint64(len(block.Withdrawals)) {
		return nil, errors.Errorf(
			"block %d: header declares %d withdrawals, body has %d",
			number, uint64(raw.SubmitWithdrawals.WithdrawalCount), len(block.Withdrawals),
		)
	}

	if uint64(len(block.Transactions)) > math.MaxUint32 {
		return nil, errors.Errorf("block %d: too many transactions", number)
	}

	if uint64(len(block.Withdrawals)) > math.MaxUint32 {
		return nil, errors.Errorf("block %d: too many withdrawals", number)
	}

	attrs, err := json.Marshal(chainAttributes{
		RollupTypeHash:      c.hashes.RollupTypeHash,
		StakeCellOwnerLock:  raw.StakeCellOwnerLock,
		PrevAccount:         raw.PrevAccount,
		PostAccount:         raw.PostAccount,
		SubmitTransactions:  raw.SubmitTransactions,
		SubmitWithdrawals:   raw.SubmitWithdrawals,
		StateCheckpointList: raw.StateCheckpointList,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "block %d: encoding chain attributes", number)
	}

	dbBlock := &database.Block{
		Number:           number,
		Hash:             block.Hash.Hex(),
		ParentHash:       raw.ParentBlockHash.Hex(),
		Timestamp:        uint64(raw.Timestamp),
		BlockProducer:    raw.BlockProducer.String(),
		TransactionCount: uint32(len(block.Transactions)),
		WithdrawalCount:  uint32(len(block.Withdrawals)),
		ChainAttributes:  datatypes.JSON(attrs),
	}

	transactions := make([]database.Transaction, len(block.Transactions))
	for i := range block.Transactions {
		tx, err := convertTransaction(&block.Transactions[i], dbBlock, uint32(i))
		if err != nil {
			return nil, err
		}

		transactions[i] = *tx
	}

	return &database.BlockEntities{
		Block:        dbBlock,
		Transactions: transactions,
	}, nil
}

func convertTransaction(tx *L2Transaction, block *database.Block, index uint32) (*database.Transaction, error) {
	raw := tx.Raw

	for _, id := range []uint64{uint64(raw.FromID), uint64(raw.ToID), uint64(raw.Nonce)} {
		if id > math.MaxUint32 {
			return nil, errors.Errorf(
				"block %d tx %s: account id or nonce %d overflows uint32", block.Number, tx.Hash.Hex(), id,
			)
		}
	}

	return &database.Transaction{
		Hash:        tx.Hash.Hex(),
		BlockNumber: block.Number,
		BlockHash:   block.Hash,
		Index:       index,
		ChainID:     uint64(raw.ChainID),
		FromID:      uint32(raw.FromID),
		ToID:        uint32(raw.ToID),
		Nonce:       uint32(raw.Nonce),
		Args:        raw.Args,
		Signature:   tx.Signature,
	}, nil
}
