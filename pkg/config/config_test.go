package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var (
	testHashA = "0x" + strings.Repeat("a1", 32)
	testHashB = "0x" + strings.Repeat("b2", 32)
)

const testConfig = `
[db]
host = "db.internal"
db_name = "godwoken"
username = "indexer"

[godwoken]
rpc_url = "http://localhost:8119"
l2_sudt_type_script_hash = "%s"
polyjuice_type_script_hash = "%s"
rollup_type_hash = "%s"
eth_account_lock_hash = "%s"

[indexer]
end_block_number = 4294967296
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func validConfigFile(t *testing.T) string {
	return writeConfig(t, strings.NewReplacer("%s", testHashA).Replace(testConfig))
}

func TestReadBaseConfig(t *testing.T) {
	cfg, err := ReadBaseConfig(validConfigFile(t))
	require.NoError(t, err)

	require.Equal(t, "db.internal", cfg.DB.Host)
	require.Equal(t, 5432, cfg.DB.Port, "default kept when not set in file")
	require.Equal(t, 5, cfg.DB.MaxConnections)
	require.Equal(t, 5*time.Second, cfg.DB.SlowThreshold())
	require.Equal(t, "http://localhost:8119", cfg.Godwoken.RPCURL)
	require.Equal(t, testHashA, cfg.Godwoken.RollupTypeHash)
	require.Equal(t, 3*time.Second, cfg.Indexer.PollInterval())
	require.Equal(t, uint64(1)<<32, cfg.Indexer.EndBlockNumber)
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv(envDatabaseURL, "postgres://u:p@host:5432/db")
	t.Setenv(envGodwokenRPCURL, "http://godwoken:8119")
	t.Setenv(envDBPassword, "secret")

	cfg, err := ReadBaseConfig(validConfigFile(t))
	require.NoError(t, err)

	require.Equal(t, "postgres://u:p@host:5432/db", cfg.DB.URL)
	require.Equal(t, "http://godwoken:8119", cfg.Godwoken.RPCURL)
	require.Equal(t, "secret", cfg.DB.Password)
}

func TestValidate(t *testing.T) {
	valid := func() BaseConfig {
		cfg := DefaultBaseConfig
		cfg.DB.DBName = "godwoken"
		cfg.Godwoken.RPCURL = "http://localhost:8119"
		cfg.Godwoken.ScriptHashes = ScriptHashes{
			L2SudtTypeScriptHash:    testHashA,
			PolyjuiceTypeScriptHash: testHashA,
			RollupTypeHash:          testHashB,
			EthAccountLockHash:      testHashA,
		}
		return cfg
	}

	t.Run("valid", func(t *testing.T) {
		cfg := valid()
		require.NoError(t, cfg.Validate())
	})

	t.Run("missing rpc url", func(t *testing.T) {
		cfg := valid()
		cfg.Godwoken.RPCURL = ""
		require.ErrorContains(t, cfg.Validate(), "rpc_url")
	})

	t.Run("missing database", func(t *testing.T) {
		cfg := valid()
		cfg.DB.DBName = ""
		require.Error(t, cfg.Validate())
	})

	t.Run("zero poll interval", func(t *testing.T) {
		cfg := valid()
		cfg.Indexer.PollIntervalMillis = 0
		require.ErrorContains(t, cfg.Validate(), "poll_interval_millis")
	})

	t.Run("short hash", func(t *testing.T) {
		cfg := valid()
		cfg.Godwoken.RollupTypeHash = "0x1234"
		require.ErrorContains(t, cfg.Validate(), "rollup_type_hash")
	})

	t.Run("hash without prefix", func(t *testing.T) {
		cfg := valid()
		cfg.Godwoken.PolyjuiceTypeScriptHash = strings.Repeat("a1", 32)
		require.ErrorContains(t, cfg.Validate(), "polyjuice_type_script_hash")
	})

	t.Run("tron lock optional", func(t *testing.T) {
		cfg := valid()
		cfg.Godwoken.TronAccountLockHash = ""
		require.NoError(t, cfg.Validate())
	})
}

func TestReadBuildVersion(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, projectVersionFile), []byte("v1.2.3\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, projectCommitFile), []byte("abcdef\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, projectBuildDateFile), []byte("2024-01-02T03:04:05Z\n"), 0o600))

	build, err := ReadBuildVersion(dir)
	require.NoError(t, err)
	require.Equal(t, "v1.2.3", build.GitTag)
	require.Equal(t, "abcdef", build.GitHash)
	require.Equal(t, uint64(1704164645), build.BuildDate)

	_, err = ReadBuildVersion(t.TempDir())
	require.Error(t, err)
}
