package database

import (
	"gorm.io/datatypes"
)

var entities = []interface{}{
	Block{},
	Transaction{},
	Version{},
}

// Block is the persisted form of a Godwoken L2 block. Number is stored as a
// postgres bigint so it scans back into a uint64 without a numeric
// intermediate.
type Block struct {
	Number           uint64 `gorm:"primaryKey;autoIncrement:false"`
	Hash             string `gorm:"type:varchar(66);uniqueIndex;not null"`
	ParentHash       string `gorm:"type:varchar(66);not null"`
	Timestamp        uint64 `gorm:"index"`
	BlockProducer    string
	TransactionCount uint32
	WithdrawalCount  uint32

	// Remaining raw header fields, kept verbatim.
	ChainAttributes datatypes.JSON
}

func (Block) TableName() string {
	return "blocks"
}

type Transaction struct {
	Hash        string `gorm:"primaryKey;type:varchar(66)"`
	BlockNumber uint64 `gorm:"index;not null"`
	Block       *Block `gorm:"foreignKey:BlockNumber;references:Number"`
	BlockHash   string `gorm:"type:varchar(66)"`
	Index       uint32
	ChainID     uint64
	FromID      uint32 `gorm:"index"`
	ToID        uint32 `gorm:"index"`
	Nonce       uint32
	Args        []byte
	Signature   []byte
}

func (Transaction) TableName() string {
	return "transactions"
}

// Version records which build and which rollup populated the store.
type Version struct {
	ID             uint64 `gorm:"primaryKey;unique"`
	GitTag         string
	GitHash        string `gorm:"type:varchar(40)"`
	BuildDate      uint64
	RollupTypeHash string `gorm:"type:varchar(66)"`
}

// BlockEntities is everything written for a single block.
type BlockEntities struct {
	Block        *Block
	Transactions []Transaction
}
