package config

import (
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/flare-foundation/go-flare-common/pkg/logger"
	"github.com/pkg/errors"
)

const (
	envDatabaseURL    = "DATABASE_URL"
	envDBPassword     = "DB_PASSWORD"
	envGodwokenRPCURL = "GODWOKEN_RPC_URL"

	hashLength = 32
)

func ReadFile(filepath string, cfg interface{}) error {
	_, err := toml.DecodeFile(filepath, cfg)
	return err
}

// ReadBaseConfig decodes the file over DefaultBaseConfig and applies
// environment overrides.
func ReadBaseConfig(filepath string) (*BaseConfig, error) {
	cfg := DefaultBaseConfig
	if err := ReadFile(filepath, &cfg); err != nil {
		return nil, errors.Wrapf(err, "reading config file %s", filepath)
	}

	cfg.ApplyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

type BaseConfig struct {
	DB       DB            `toml:"db"`
	Godwoken Godwoken      `toml:"godwoken"`
	Indexer  Indexer       `toml:"indexer"`
	Metrics  Metrics       `toml:"metrics"`
	Logger   logger.Config `toml:"logger"`
}

var DefaultBaseConfig = BaseConfig{
	DB:       defaultDB,
	Godwoken: defaultGodwoken,
	Indexer:  defaultIndexer,
	Logger:   defaultLogger,
}

func (cfg *BaseConfig) ApplyEnvOverrides() {
	if url := os.Getenv(envDatabaseURL); url != "" {
		cfg.DB.URL = url
	}

	if password := os.Getenv(envDBPassword); password != "" {
		cfg.DB.Password = password
	}

	if url := os.Getenv(envGodwokenRPCURL); url != "" {
		cfg.Godwoken.RPCURL = url
	}
}

func (cfg *BaseConfig) Validate() error {
	if cfg.Godwoken.RPCURL == "" {
		return errors.New("godwoken.rpc_url must be set")
	}

	if cfg.DB.URL == "" && cfg.DB.DBName == "" {
		return errors.New("either db.url or db.db_name must be set")
	}

	if cfg.DB.MaxConnections < 1 {
		return errors.Errorf("db.max_connections must be positive, got %d", cfg.DB.MaxConnections)
	}

	if cfg.Indexer.PollIntervalMillis == 0 {
		return errors.New("indexer.poll_interval_millis must be positive")
	}

	return cfg.Godwoken.ScriptHashes.validate()
}

type DB struct {
	// URL is a postgres connection string. When empty the connection is
	// built from the discrete fields below.
	URL                   string `toml:"url"`
	Host                  string `toml:"host"`
	Port                  int    `toml:"port"`
	Username              string `toml:"username"`
	Password              string `toml:"password"`
	DBName                string `toml:"db_name"`
	MaxConnections        int    `toml:"max_connections"`
	LogQueries            bool   `toml:"log_queries"`
	SlowThresholdMillis   uint64 `toml:"slow_threshold_millis"`
	ConnectTimeoutSeconds uint64 `toml:"connect_timeout_seconds"`
}

var defaultDB = DB{
	Host:                  "localhost",
	Port:                  5432,
	MaxConnections:        5,
	SlowThresholdMillis:   5000,
	ConnectTimeoutSeconds: 30,
}

func (db DB) SlowThreshold() time.Duration {
	return time.Duration(db.SlowThresholdMillis) * time.Millisecond
}

func (db DB) ConnectTimeout() time.Duration {
	return time.Duration(db.ConnectTimeoutSeconds) * time.Second
}

type Godwoken struct {
	RPCURL               string `toml:"rpc_url"`
	RequestTimeoutMillis uint64 `toml:"request_timeout_millis"`
	ScriptHashes
}

var defaultGodwoken = Godwoken{
	RequestTimeoutMillis: 10000,
}

func (g Godwoken) RequestTimeout() time.Duration {
	return time.Duration(g.RequestTimeoutMillis) * time.Millisecond
}

// ScriptHashes identify the rollup and the scripts its accounts use. They
// are forwarded to the converter and recorded in the store.
type ScriptHashes struct {
	L2SudtTypeScriptHash    string `toml:"l2_sudt_type_script_hash"`
	PolyjuiceTypeScriptHash string `toml:"polyjuice_type_script_hash"`
	RollupTypeHash          string `toml:"rollup_type_hash"`
	EthAccountLockHash      string `toml:"eth_account_lock_hash"`
	TronAccountLockHash     string `toml:"tron_account_lock_hash"`
}

func (h ScriptHashes) validate() error {
	fields := []struct {
		name  string
		value string
	}{
		{"l2_sudt_type_script_hash", h.L2SudtTypeScriptHash},
		{"polyjuice_type_script_hash", h.PolyjuiceTypeScriptHash},
		{"rollup_type_hash", h.RollupTypeHash},
		{"eth_account_lock_hash", h.EthAccountLockHash},
		{"tron_account_lock_hash", h.TronAccountLockHash},
	}

	for _, f := range fields {
		// tron lock is optional on rollups without tron accounts
		if f.value == "" && f.name == "tron_account_lock_hash" {
			continue
		}

		b, err := hexutil.Decode(strings.ToLower(f.value))
		if err != nil {
			return errors.Wrapf(err, "godwoken.%s", f.name)
		}

		if len(b) != hashLength {
			return errors.Errorf("godwoken.%s must be %d bytes, got %d", f.name, hashLength, len(b))
		}
	}

	return nil
}

type Indexer struct {
	PollIntervalMillis uint64 `toml:"poll_interval_millis"`
	// EndBlockNumber stops the indexer once it is synced. Zero means run
	// forever.
	EndBlockNumber uint64 `toml:"end_block_number"`
}

var defaultIndexer = Indexer{
	PollIntervalMillis: 3000,
}

func (ix Indexer) PollInterval() time.Duration {
	return time.Duration(ix.PollIntervalMillis) * time.Millisecond
}

type Metrics struct {
	// Address of the /metrics and /healthz server, empty disables it.
	Address string `toml:"address"`
}

var defaultLogger = logger.Config{
	Level:   "INFO",
	Console: true,
}
