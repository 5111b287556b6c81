// Copyright (c) 2025 The LinearPool developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"errors"
	"fmt"
)

// Kind classifies pool errors so callers can decide whether to wait,
// fund the distributor, or contact the administrator.
type Kind int

const (
	KindConfiguration Kind = iota + 1
	KindWindow
	KindLock
	KindInsufficientBalance
	KindTransfer
	KindAuthorization
	KindPaused
	KindState
)

func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindWindow:
		return "window"
	case KindLock:
		return "lock"
	case KindInsufficientBalance:
		return "insufficient-balance"
	case KindTransfer:
		return "transfer"
	case KindAuthorization:
		return "authorization"
	case KindPaused:
		return "paused"
	case KindState:
		return "state"
	default:
		return "unknown"
	}
}

// Error is the error type returned by every failed pool operation.
// A failed operation never leaves partial state behind.
type Error struct {
	kind    Kind
	message string
}

func newError(kind Kind, format string, args ...interface{}) *Error {
	return &Error{
		kind:    kind,
		message: fmt.Sprintf(format, args...),
	}
}

func (e *Error) Error() string {
	return e.kind.String() + ": " + e.message
}

// Kind returns the error classification.
func (e *Error) Kind() Kind {
	return e.kind
}

// IsKind tests whether err is a pool error of the given kind.
func IsKind(err error, kind Kind) bool {
	var pe *Error
	if !errors.As(err, &pe) {
		return false
	}
	return pe.kind == kind
}

// ErrKind extracts the pool error kind, or 0 if err is not a pool error.
func ErrKind(err error) Kind {
	var pe *Error
	if !errors.As(err, &pe) {
		return 0
	}
	return pe.kind
}
