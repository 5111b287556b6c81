// Copyright (c) 2025 The LinearPool developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package admin

import (
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/stakemesh/linearpool/api/admin/apilogs"
	"github.com/stakemesh/linearpool/api/admin/loglevel"
	"github.com/stakemesh/linearpool/api/admin/pooladmin"
	"github.com/stakemesh/linearpool/health"
	"github.com/stakemesh/linearpool/pool"

	healthAPI "github.com/stakemesh/linearpool/api/admin/health"
)

func New(logLevel *slog.LevelVar, health *health.Health, p *pool.Pool, apiLogsEnabled *atomic.Bool) http.HandlerFunc {
	router := mux.NewRouter()
	router.PathPrefix("/admin")

	loglevel.New(logLevel).Mount(router, "/loglevel")
	healthAPI.NewAPI(health).Mount(router, "/health")
	apilogs.New(apiLogsEnabled).Mount(router, "/apilogs")
	pooladmin.New(p).Mount(router, "/pool")

	handler := handlers.CompressHandler(router)

	return handler.ServeHTTP
}
