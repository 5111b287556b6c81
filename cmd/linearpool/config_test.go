// Copyright (c) 2025 The LinearPool developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakemesh/linearpool/kv"
	"github.com/stakemesh/linearpool/ledger"
	"github.com/stakemesh/linearpool/stake"
)

const testConfig = `
owner: "0x0000000000000000000000000000000000000001"
custody: "0x0000000000000000000000000000000000000002"
params:
  acceptedToken: "0x00000000000000000000000000000000000a11ce"
  rewardToken: "0x000000000000000000000000000000000000b0b0"
  apr: 10
  cap: "5000000"
  minInvestment: "100"
  lockDuration: 2592000
  startJoinTime: 1767225600
  endJoinTime: 1769904000
  rewardDistributor: "0x0000000000000000000000000000000000000003"
genesis:
  - token: "0x00000000000000000000000000000000000a11ce"
    account: "0x0000000000000000000000000000000000000a0a"
    amount: "1000000"
`

func writeConfig(t *testing.T) string {
	path := filepath.Join(t.TempDir(), "pool.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testConfig), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	cfg, err := loadConfig(writeConfig(t))
	require.NoError(t, err)

	assert.Equal(t, stake.MustParseAddress("0x0000000000000000000000000000000000000001"), cfg.Owner)
	assert.Equal(t, stake.MustParseAddress("0x0000000000000000000000000000000000000002"), cfg.Custody)

	params, err := cfg.poolParams()
	require.NoError(t, err)
	assert.Equal(t, uint64(10), params.APR)
	assert.Equal(t, big.NewInt(5_000_000), params.Cap)
	assert.Equal(t, big.NewInt(100), params.MinInvestment)
	// amounts left out of the config read as zero, meaning unbounded
	assert.Zero(t, params.MaxInvestment.Sign())
	assert.Equal(t, uint64(2592000), params.LockDuration)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("owner: [not, an, address]"), 0o600))
	_, err = loadConfig(path)
	assert.Error(t, err)
}

func TestApplyGenesisOnce(t *testing.T) {
	cfg, err := loadConfig(writeConfig(t))
	require.NoError(t, err)

	store, err := kv.NewMem()
	require.NoError(t, err)
	defer store.Close()
	ldg := ledger.New(store)

	require.NoError(t, cfg.applyGenesis(store, ldg))
	// a second run must not double the balances
	require.NoError(t, cfg.applyGenesis(store, ldg))

	bal, err := ldg.Balance(
		stake.MustParseAddress("0x00000000000000000000000000000000000a11ce"),
		stake.MustParseAddress("0x0000000000000000000000000000000000000a0a"),
	)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(1_000_000), bal)
}
