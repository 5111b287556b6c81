// Copyright (c) 2025 The LinearPool developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/stakemesh/linearpool/eventdb"
	"github.com/stakemesh/linearpool/kv"
	"github.com/stakemesh/linearpool/log"
)

var logLevel slog.LevelVar

func initLogger(lvl int, jsonLogs bool) {
	logLevel.Set(log.FromLegacyLevel(lvl))

	var handler slog.Handler
	if jsonLogs {
		handler = log.JSONHandlerWithLevel(os.Stdout, &logLevel)
	} else {
		useColor := isatty.IsTerminal(os.Stdout.Fd())
		handler = log.NewTerminalHandlerWithLevel(os.Stdout, &logLevel, useColor)
	}
	log.SetDefault(log.NewLogger(handler))
}

func readIntFromUInt64Flag(val uint64) (int, error) {
	i := int(val)
	if i < 0 || val > math.MaxInt {
		return 0, fmt.Errorf("invalid verbosity value %d", val)
	}
	return i, nil
}

func defaultDataDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".linearpool")
	}
	return ""
}

func makeDataDir(ctx *cli.Context) (string, error) {
	dir := ctx.String(dataDirFlag.Name)
	if dir == "" {
		return "", errors.New("unable to infer default data dir, use -" + dataDirFlag.Name + " to specify one")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", errors.Wrapf(err, "create data dir [%v]", dir)
	}
	return dir, nil
}

func openMainDB(dataDir string) (*kv.LevelDB, error) {
	db, err := kv.New(filepath.Join(dataDir, "main.db"), 128, 512)
	if err != nil {
		return nil, errors.Wrap(err, "open main database")
	}
	return db, nil
}

func openEventDB(dataDir string) (*eventdb.EventDB, error) {
	db, err := eventdb.New(filepath.Join(dataDir, "events.db"))
	if err != nil {
		return nil, errors.Wrap(err, "open event database")
	}
	return db, nil
}

// handleExitSignal returns a context canceled on SIGINT or SIGTERM.
func handleExitSignal() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		exitSignalCh := make(chan os.Signal, 1)
		signal.Notify(exitSignalCh, os.Interrupt, syscall.SIGTERM)

		sig := <-exitSignalCh
		log.Info("exit signal received", "signal", sig)
		cancel()
	}()
	return ctx
}
