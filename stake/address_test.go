// Copyright (c) 2025 The LinearPool developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stake

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddress(t *testing.T) {
	addr := BytesToAddress([]byte("account1"))
	assert.Equal(t, 2+AddressLength*2, len(addr.String()))
	assert.False(t, addr.IsZero())
	assert.True(t, Address{}.IsZero())

	parsed, err := ParseAddress(addr.String())
	assert.Nil(t, err)
	assert.Equal(t, addr, parsed)

	_, err = ParseAddress("0x123")
	assert.Error(t, err)
	_, err = ParseAddress("zz" + addr.String()[2:])
	assert.Error(t, err)
}

func TestAddressJSON(t *testing.T) {
	addr := BytesToAddress([]byte("account1"))
	data, err := json.Marshal(addr)
	assert.Nil(t, err)
	assert.Equal(t, `"`+addr.String()+`"`, string(data))

	var decoded Address
	assert.Nil(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, addr, decoded)
}
