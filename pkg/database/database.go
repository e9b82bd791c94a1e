package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/flare-foundation/go-flare-common/pkg/logger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/godwoken/web3-indexer/pkg/config"
)

const (
	transactionBatchSize = 1000
	globalVersionID      = 1
)

var ErrRollupMismatch = errors.New("database was indexed from a different rollup")

type DB struct {
	g *gorm.DB
}

func InitVersion() *Version {
	return &Version{
		ID: globalVersionID,
	}
}

// New connects to postgres, retrying until cfg.ConnectTimeout elapses, and
// migrates the entities.
func New(ctx context.Context, cfg *config.DB) (*DB, error) {
	var db *gorm.DB

	err := backoff.RetryNotify(
		func() (err error) {
			db, err = Connect(ctx, cfg)
			return err
		},
		backoff.WithContext(backoff.NewExponentialBackOff(
			backoff.WithMaxElapsedTime(cfg.ConnectTimeout()),
		), ctx),
		func(err error, d time.Duration) {
			logger.Errorf("DB connect error: %v. Will retry after %v", err, d)
		},
	)
	if err != nil {
		return nil, errors.Wrap(err, "connecting to the DB")
	}

	logger.Debug("connected to the DB")

	if err := db.WithContext(ctx).AutoMigrate(entities...); err != nil {
		return nil, errors.Wrap(err, "migrating DB entities")
	}

	logger.Debug("migrated DB entities")

	return &DB{g: db}, nil
}

// Connect opens a pooled connection and pings it. A failed ping closes the
// pool.
func Connect(ctx context.Context, cfg *config.DB) (*gorm.DB, error) {
	connCfg, err := pgx.ParseConfig(FormatDSN(cfg))
	if err != nil {
		return nil, backoff.Permanent(errors.Wrap(err, "parsing DB connection string"))
	}

	sqlDB := stdlib.OpenDB(*connCfg)
	sqlDB.SetMaxOpenConns(cfg.MaxConnections)
	sqlDB.SetMaxIdleConns(cfg.MaxConnections)

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, err
	}

	gormCfg := gorm.Config{
		Logger:          newGormLogger(cfg),
		CreateBatchSize: transactionBatchSize,
	}

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gormCfg)
	if err != nil {
		sqlDB.Close()
		return nil, err
	}

	return db, nil
}

// FormatDSN returns cfg.URL when set, otherwise a postgres URL built from
// the individual fields.
func FormatDSN(cfg *config.DB) string {
	if cfg.URL != "" {
		return cfg.URL
	}

	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(cfg.Username, cfg.Password),
		Host:   fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Path:   cfg.DBName,
	}

	return u.String()
}

func (db *DB) Close() error {
	sqlDB, err := db.g.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}

// MaxBlockNumber returns the highest stored block number. ok is false when
// the blocks table is empty.
func (db *DB) MaxBlockNumber(ctx context.Context) (number uint64, ok bool, err error) {
	var maxNumber sql.NullInt64

	err = db.g.WithContext(ctx).
		Model(&Block{}).
		Select("MAX(number)").
		Scan(&maxNumber).
		Error
	if err != nil {
		return 0, false, errors.Wrap(err, "querying max block number")
	}

	if !maxNumber.Valid {
		return 0, false, nil
	}

	if maxNumber.Int64 < 0 {
		return 0, false, errors.Errorf("negative block number %d in the DB", maxNumber.Int64)
	}

	return uint64(maxNumber.Int64), true, nil
}

// SaveBlock writes the block and its transactions in one DB transaction. It
// is not idempotent: saving the same block twice violates the primary key.
func (db *DB) SaveBlock(ctx context.Context, be *BlockEntities) error {
	if be == nil || be.Block == nil {
		return errors.New("no block to save")
	}

	return db.g.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(be.Block).Error; err != nil {
			return errors.Wrapf(err, "inserting block %d", be.Block.Number)
		}

		if len(be.Transactions) != 0 {
			err := tx.Omit("Block").Create(&be.Transactions).Error
			if err != nil {
				return errors.Wrapf(err, "inserting transactions of block %d", be.Block.Number)
			}
		}

		return nil
	})
}

// CheckVersion records build and rollup information in the version row. It
// refuses to continue if the store was populated from a different rollup.
func (db *DB) CheckVersion(ctx context.Context, build *config.BuildConfig, rollupTypeHash string) error {
	version := InitVersion()

	err := db.g.WithContext(ctx).First(version, globalVersionID).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return errors.Wrap(err, "reading version")
	}

	if version.RollupTypeHash != "" && version.RollupTypeHash != rollupTypeHash {
		return errors.Wrapf(ErrRollupMismatch, "stored %s, configured %s", version.RollupTypeHash, rollupTypeHash)
	}

	version.GitTag = build.GitTag
	version.GitHash = build.GitHash
	version.BuildDate = build.BuildDate
	version.RollupTypeHash = rollupTypeHash

	return db.g.WithContext(ctx).Save(version).Error
}
