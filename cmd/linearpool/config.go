// Copyright (c) 2025 The LinearPool developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"math/big"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/stakemesh/linearpool/kv"
	"github.com/stakemesh/linearpool/ledger"
	"github.com/stakemesh/linearpool/log"
	"github.com/stakemesh/linearpool/pool"
	"github.com/stakemesh/linearpool/stake"
)

var keyGenesisApplied = []byte("config-genesis-applied")

// PoolConfig is the on-disk pool configuration.
type PoolConfig struct {
	Owner   stake.Address `yaml:"owner"`
	Custody stake.Address `yaml:"custody"`

	Params struct {
		AcceptedToken     stake.Address `yaml:"acceptedToken"`
		RewardToken       stake.Address `yaml:"rewardToken"`
		APR               uint64        `yaml:"apr"`
		Cap               string        `yaml:"cap"`
		MinInvestment     string        `yaml:"minInvestment"`
		MaxInvestment     string        `yaml:"maxInvestment"`
		LockDuration      uint64        `yaml:"lockDuration"`
		StartJoinTime     uint64        `yaml:"startJoinTime"`
		EndJoinTime       uint64        `yaml:"endJoinTime"`
		RewardDistributor stake.Address `yaml:"rewardDistributor"`
	} `yaml:"params"`

	// Genesis lists token balances minted into the ledger the first
	// time the pool starts on a data dir.
	Genesis []GenesisBalance `yaml:"genesis"`
}

type GenesisBalance struct {
	Token   stake.Address `yaml:"token"`
	Account stake.Address `yaml:"account"`
	Amount  string        `yaml:"amount"`
}

func loadConfig(path string) (*PoolConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config [%v]", path)
	}
	var cfg PoolConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config [%v]", path)
	}
	return &cfg, nil
}

func parseAmount(s string) (*big.Int, error) {
	if s == "" {
		return &big.Int{}, nil
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, errors.Errorf("invalid amount %q", s)
	}
	return v, nil
}

func (cfg *PoolConfig) poolParams() (pool.Params, error) {
	capAmount, err := parseAmount(cfg.Params.Cap)
	if err != nil {
		return pool.Params{}, errors.WithMessage(err, "cap")
	}
	minInvestment, err := parseAmount(cfg.Params.MinInvestment)
	if err != nil {
		return pool.Params{}, errors.WithMessage(err, "minInvestment")
	}
	maxInvestment, err := parseAmount(cfg.Params.MaxInvestment)
	if err != nil {
		return pool.Params{}, errors.WithMessage(err, "maxInvestment")
	}

	return pool.Params{
		AcceptedToken:     cfg.Params.AcceptedToken,
		RewardToken:       cfg.Params.RewardToken,
		APR:               cfg.Params.APR,
		Cap:               capAmount,
		MinInvestment:     minInvestment,
		MaxInvestment:     maxInvestment,
		LockDuration:      cfg.Params.LockDuration,
		StartJoinTime:     cfg.Params.StartJoinTime,
		EndJoinTime:       cfg.Params.EndJoinTime,
		RewardDistributor: cfg.Params.RewardDistributor,
	}, nil
}

// applyGenesis mints the configured balances once per data dir.
func (cfg *PoolConfig) applyGenesis(store kv.GetPutter, ldg *ledger.Ledger) error {
	if len(cfg.Genesis) == 0 {
		return nil
	}
	applied, err := store.Has(keyGenesisApplied)
	if err != nil {
		return err
	}
	if applied {
		return nil
	}

	for _, bal := range cfg.Genesis {
		amount, err := parseAmount(bal.Amount)
		if err != nil {
			return errors.WithMessage(err, "genesis amount")
		}
		if err := ldg.Mint(bal.Token, bal.Account, amount); err != nil {
			return errors.Wrap(err, "mint genesis balance")
		}
		log.Info("genesis balance minted", "token", bal.Token, "account", bal.Account, "amount", amount)
	}
	return store.Put(keyGenesisApplied, []byte{1})
}
