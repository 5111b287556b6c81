// Copyright (c) 2025 The LinearPool developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestErrorKinds(t *testing.T) {
	err := newError(KindLock, "locked until %d", 42)
	assert.True(t, IsKind(err, KindLock))
	assert.False(t, IsKind(err, KindWindow))
	assert.Equal(t, KindLock, ErrKind(err))
	assert.Equal(t, "lock: locked until 42", err.Error())

	// the kind survives wrapping
	wrapped := errors.WithMessage(err, "withdraw")
	assert.True(t, IsKind(wrapped, KindLock))
	assert.Equal(t, KindLock, ErrKind(wrapped))

	// foreign errors have no kind
	assert.False(t, IsKind(errors.New("boom"), KindLock))
	assert.Equal(t, Kind(0), ErrKind(errors.New("boom")))
	assert.Equal(t, Kind(0), ErrKind(nil))
}
