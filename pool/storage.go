// Copyright (c) 2025 The LinearPool developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/stakemesh/linearpool/kv"
	"github.com/stakemesh/linearpool/stake"
)

var (
	keyParams           = []byte("params")
	keyTotalStaked      = []byte("total-staked")
	keyDistributor      = []byte("reward-distributor")
	keyEmergencyEnabled = []byte("emergency-enabled")
	keyPaused           = []byte("paused")
)

func recordKey(addr stake.Address) []byte {
	return append([]byte("r"), addr.Bytes()...)
}

// storage is the root storage of the pool, persisting staking records and
// the owner-mutable control state.
type storage struct {
	store kv.GetPutter
}

func newStorage(store kv.GetPutter) *storage {
	return &storage{
		store: kv.Bucket("pool-").NewGetPutter(store),
	}
}

// GetRecord loads the staking record of addr, a zeroed record if absent.
func (s *storage) GetRecord(addr stake.Address) (*Record, error) {
	data, err := s.store.Get(recordKey(addr))
	if err != nil {
		if s.store.IsNotFound(err) {
			return newZeroRecord(), nil
		}
		return nil, errors.Wrap(err, "get staking record")
	}
	rec := newZeroRecord()
	if err := rec.Decode(data); err != nil {
		return nil, errors.Wrap(err, "decode staking record")
	}
	return rec, nil
}

func (s *storage) SetRecord(addr stake.Address, rec *Record) error {
	data, err := rec.Encode()
	if err != nil {
		return errors.Wrap(err, "encode staking record")
	}
	if data == nil {
		return s.store.Delete(recordKey(addr))
	}
	return s.store.Put(recordKey(addr), data)
}

// GetParams loads the params the pool was created with, reporting
// false if the store was never initialized.
func (s *storage) GetParams() (*Params, bool, error) {
	data, err := s.store.Get(keyParams)
	if err != nil {
		if s.store.IsNotFound(err) {
			return nil, false, nil
		}
		return nil, false, errors.Wrap(err, "get params")
	}
	var p Params
	if err := rlp.DecodeBytes(data, &p); err != nil {
		return nil, false, errors.Wrap(err, "decode params")
	}
	return &p, true, nil
}

func (s *storage) SetParams(p *Params) error {
	data, err := rlp.EncodeToBytes(p)
	if err != nil {
		return errors.Wrap(err, "encode params")
	}
	return s.store.Put(keyParams, data)
}

func (s *storage) GetTotalStaked() (*big.Int, error) {
	return s.getBigInt(keyTotalStaked)
}

func (s *storage) SetTotalStaked(total *big.Int) error {
	data, err := rlp.EncodeToBytes(total)
	if err != nil {
		return errors.Wrap(err, "encode total staked")
	}
	return s.store.Put(keyTotalStaked, data)
}

func (s *storage) GetDistributor() (stake.Address, bool, error) {
	data, err := s.store.Get(keyDistributor)
	if err != nil {
		if s.store.IsNotFound(err) {
			return stake.Address{}, false, nil
		}
		return stake.Address{}, false, errors.Wrap(err, "get distributor")
	}
	return stake.BytesToAddress(data), true, nil
}

func (s *storage) SetDistributor(addr stake.Address) error {
	return s.store.Put(keyDistributor, addr.Bytes())
}

func (s *storage) GetFlag(key []byte) (bool, error) {
	data, err := s.store.Get(key)
	if err != nil {
		if s.store.IsNotFound(err) {
			return false, nil
		}
		return false, errors.Wrap(err, "get flag")
	}
	return len(data) == 1 && data[0] == 1, nil
}

func (s *storage) SetFlag(key []byte, on bool) error {
	val := []byte{0}
	if on {
		val = []byte{1}
	}
	return s.store.Put(key, val)
}

func (s *storage) getBigInt(key []byte) (*big.Int, error) {
	data, err := s.store.Get(key)
	if err != nil {
		if s.store.IsNotFound(err) {
			return &big.Int{}, nil
		}
		return nil, errors.Wrap(err, "get value")
	}
	var val big.Int
	if err := rlp.DecodeBytes(data, &val); err != nil {
		return nil, errors.Wrap(err, "decode value")
	}
	return &val, nil
}
