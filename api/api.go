// Copyright (c) 2025 The LinearPool developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"net/http/pprof"
	"strings"
	"sync/atomic"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/stakemesh/linearpool/api/events"
	"github.com/stakemesh/linearpool/api/staking"
	"github.com/stakemesh/linearpool/eventdb"
	"github.com/stakemesh/linearpool/log"
	"github.com/stakemesh/linearpool/pool"
)

var logger = log.WithContext("pkg", "api")

type Options struct {
	AllowedOrigins string
	PprofOn        bool
	SkipEvents     bool
	LogsLimit      uint64
	EnableMetrics  bool
	// APILogsEnabled toggles request logging at runtime.
	// The admin API flips the same bool.
	APILogsEnabled *atomic.Bool
}

// New returns the public API router.
func New(p *pool.Pool, eventDB *eventdb.EventDB, opts Options) http.HandlerFunc {
	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}

	router := mux.NewRouter()

	staking.New(p).
		Mount(router, "/staking")
	if !opts.SkipEvents {
		events.New(eventDB, opts.LogsLimit).
			Mount(router, "/events")
	}

	if opts.PprofOn {
		router.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		router.HandleFunc("/debug/pprof/profile", pprof.Profile)
		router.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		router.HandleFunc("/debug/pprof/trace", pprof.Trace)
		router.PathPrefix("/debug/pprof/").HandlerFunc(pprof.Index)
	}

	if opts.EnableMetrics {
		router.Use(metricsMiddleware)
	}

	handler := handlers.CompressHandler(router)
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type"}),
	)(handler)

	if opts.APILogsEnabled != nil {
		handler = RequestLoggerHandler(handler, logger, opts.APILogsEnabled)
	}

	return handler.ServeHTTP
}
