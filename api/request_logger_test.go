// Copyright (c) 2025 The LinearPool developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakemesh/linearpool/log"
)

func TestRequestLoggerPreservesBody(t *testing.T) {
	var enabled atomic.Bool
	enabled.Store(true)

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		w.Write(body)
	})

	handler := RequestLoggerHandler(inner, log.New(), &enabled)
	req := httptest.NewRequest(http.MethodPost, "/anything", strings.NewReader(`{"hello":"world"}`))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, `{"hello":"world"}`, rr.Body.String())
}

func TestRequestLoggerDisabled(t *testing.T) {
	var enabled atomic.Bool

	var served bool
	inner := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		served = true
		w.WriteHeader(http.StatusNoContent)
	})

	handler := RequestLoggerHandler(inner, log.New(), &enabled)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.True(t, served)
	assert.Equal(t, http.StatusNoContent, rr.Code)
}
