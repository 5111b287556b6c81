// Copyright (c) 2025 The LinearPool developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopMetrics(t *testing.T) {
	assert.True(t, NoOp())
	assert.Nil(t, HTTPHandler())

	// meters on the noop service swallow everything
	Counter("noop_count").Add(1)
	Gauge("noop_gauge").Set(42)
	Histogram("noop_hist", Bucket10s).Observe(100)
	CounterVec("noop_count_vec", []string{"l"}).AddWithLabel(1, map[string]string{"l": "v"})
}

func TestPrometheusMetrics(t *testing.T) {
	InitializePrometheusMetrics()
	assert.False(t, NoOp())

	Counter("test_count").Add(3)
	Gauge("test_gauge").Set(7)
	GaugeVec("test_gauge_vec", []string{"l"}).SetWithLabel(5, map[string]string{"l": "v"})
	HistogramVec("test_hist_vec", []string{"l"}, Bucket10s).
		ObserveWithLabels(250, map[string]string{"l": "v"})

	// duplicate creation returns the same meter
	Counter("test_count").Add(1)

	server := httptest.NewServer(HTTPHandler())
	defer server.Close()

	resp, err := http.Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), "linearpool_test_count 4")
	assert.True(t, strings.Contains(string(body), "linearpool_test_gauge 7"))
}
