// Copyright (c) 2025 The LinearPool developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"
	"sync/atomic"

	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/stakemesh/linearpool/api"
	"github.com/stakemesh/linearpool/cmd/linearpool/httpserver"
	"github.com/stakemesh/linearpool/eventdb"
	"github.com/stakemesh/linearpool/health"
	"github.com/stakemesh/linearpool/ledger"
	"github.com/stakemesh/linearpool/log"
	"github.com/stakemesh/linearpool/metrics"
	"github.com/stakemesh/linearpool/node"
	"github.com/stakemesh/linearpool/pool"
)

var (
	version   string
	gitCommit string
	gitTag    string
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "LinearPool",
		Usage:     "Time-locked single-asset staking pool service",
		Copyright: "2025 The LinearPool developers",
		Flags: []cli.Flag{
			configFlag,
			dataDirFlag,
			apiAddrFlag,
			apiCorsFlag,
			apiLogsLimitFlag,
			enableAPILogsFlag,
			pprofFlag,
			skipEventsFlag,
			verbosityFlag,
			jsonLogsFlag,
			enableMetricsFlag,
			metricsAddrFlag,
			enableAdminFlag,
			adminAddrFlag,
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx *cli.Context) error {
	lvl, err := readIntFromUInt64Flag(ctx.Uint64(verbosityFlag.Name))
	if err != nil {
		return errors.Wrap(err, "parse verbosity flag")
	}
	initLogger(lvl, ctx.Bool(jsonLogsFlag.Name))
	defer log.Info("exited")

	cfgPath := ctx.String(configFlag.Name)
	if cfgPath == "" {
		return errors.New("no pool configuration, use -" + configFlag.Name + " to specify one")
	}
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}
	params, err := cfg.poolParams()
	if err != nil {
		return err
	}

	dataDir, err := makeDataDir(ctx)
	if err != nil {
		return err
	}

	mainDB, err := openMainDB(dataDir)
	if err != nil {
		return err
	}
	defer func() { log.Info("closing main database..."); mainDB.Close() }()

	var eventDB *eventdb.EventDB
	if !ctx.Bool(skipEventsFlag.Name) {
		if eventDB, err = openEventDB(dataDir); err != nil {
			return err
		}
		defer func() { log.Info("closing event database..."); eventDB.Close() }()
	}

	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
		url, closeFunc, err := httpserver.StartMetricsServer(ctx.String(metricsAddrFlag.Name))
		if err != nil {
			return errors.Wrap(err, "start metrics server")
		}
		log.Info("metrics server started", "url", url)
		defer closeFunc()
	}

	ldg := ledger.New(mainDB)
	if err := cfg.applyGenesis(mainDB, ldg); err != nil {
		return err
	}

	p, err := pool.New(pool.Options{
		Owner:   cfg.Owner,
		Custody: cfg.Custody,
		Params:  params,
	}, mainDB, ldg, pool.NewAuthority(cfg.Owner), pool.SystemClock())
	if err != nil {
		return err
	}
	defer p.Close()

	var apiLogsEnabled atomic.Bool
	apiLogsEnabled.Store(ctx.Bool(enableAPILogsFlag.Name))

	apiHandler := api.New(p, eventDB, api.Options{
		AllowedOrigins: ctx.String(apiCorsFlag.Name),
		PprofOn:        ctx.Bool(pprofFlag.Name),
		SkipEvents:     ctx.Bool(skipEventsFlag.Name),
		LogsLimit:      ctx.Uint64(apiLogsLimitFlag.Name),
		EnableMetrics:  ctx.Bool(enableMetricsFlag.Name),
		APILogsEnabled: &apiLogsEnabled,
	})
	apiURL, apiClose, err := httpserver.StartAPIServer(ctx.String(apiAddrFlag.Name), apiHandler)
	if err != nil {
		return errors.Wrap(err, "start API server")
	}
	defer func() { log.Info("stopping API server..."); apiClose() }()
	log.Info("API server started", "url", apiURL)

	healthStatus := &health.Health{}
	if ctx.Bool(enableAdminFlag.Name) {
		adminURL, adminClose, err := api.StartAdminServer(
			ctx.String(adminAddrFlag.Name), &logLevel, healthStatus, p, &apiLogsEnabled)
		if err != nil {
			return errors.Wrap(err, "start admin server")
		}
		defer func() { log.Info("stopping admin server..."); adminClose() }()
		log.Info("admin server started", "url", adminURL)
	}

	printStartupMessage(cfg, params, dataDir, apiURL)

	return node.New(p, eventDB, healthStatus).Run(handleExitSignal())
}

func printStartupMessage(cfg *PoolConfig, params pool.Params, dataDir, apiURL string) {
	fmt.Printf(`Starting %v
    Version      %v
    Owner        %v
    Custody      %v
    Pool token   %v
    Reward token %v
    APR          %v%%
    Lock         %vs
    Join window  [%v, %v]
    Data dir     %v
    API portal   %v
`,
		"LinearPool",
		fullVersion(),
		cfg.Owner,
		cfg.Custody,
		params.AcceptedToken,
		params.RewardToken,
		params.APR,
		params.LockDuration,
		params.StartJoinTime, params.EndJoinTime,
		dataDir,
		apiURL,
	)
}
