// Copyright (c) 2023 The Gavel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"

	"github.com/inconshreveable/log15"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/gavelhq/gavel/api"
	"github.com/gavelhq/gavel/api/admin"
	"github.com/gavelhq/gavel/cmd/gavel/httpserver"
	"github.com/gavelhq/gavel/ledger"
	"github.com/gavelhq/gavel/metrics"
)

var (
	version   string
	gitCommit string
	gitTag    string
	log       = log15.New()
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
		Name:      "Gavel",
		Usage:     "Node of the Gavel voting power engine",
		Copyright: "2023 The Gavel developers",
		Flags: []cli.Flag{
			networkFlag,
			dataDirFlag,
			masterFlag,
			apiAddrFlag,
			apiCorsFlag,
			enableAPILogsFlag,
			enableAdminFlag,
			adminAddrFlag,
			enableMetricsFlag,
			metricsAddrFlag,
			powerCacheFlag,
			verbosityFlag,
		},
		Action: defaultAction,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultAction(ctx *cli.Context) error {
	defer func() { log.Info("exited") }()

	initLogger(ctx)

	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
	}

	gene, err := selectGenesis(ctx)
	if err != nil {
		return err
	}

	instanceDir := makeInstanceDir(ctx, gene)
	mainDB := openMainDB(ctx, instanceDir)
	defer func() { log.Info("closing main database..."); mainDB.Close() }()

	led, err := ledger.New(mainDB, gene)
	if err != nil {
		return err
	}

	master := selectMaster(ctx)

	apiHandler := api.New(led, api.Options{
		AllowedOrigins:  ctx.String(apiCorsFlag.Name),
		Network:         gene.Name(),
		PowerCacheSize:  ctx.Int(powerCacheFlag.Name),
		EnableReqLogger: ctx.Bool(enableAPILogsFlag.Name),
		EnableMetrics:   ctx.Bool(enableMetricsFlag.Name),
	})
	apiURL, apiClose, err := httpserver.StartAPIServer(ctx.String(apiAddrFlag.Name), apiHandler)
	if err != nil {
		return err
	}
	defer func() { log.Info("stopping API server..."); apiClose() }()

	if ctx.Bool(enableAdminFlag.Name) {
		url, close, err := httpserver.StartAdminServer(
			ctx.String(adminAddrFlag.Name),
			admin.Handler(led, master),
		)
		if err != nil {
			return err
		}
		defer func() { log.Info("stopping admin server..."); close() }()
		log.Info("admin server started", "url", url, "master", master)
	}

	if ctx.Bool(enableMetricsFlag.Name) {
		url, close, err := httpserver.StartMetricsServer(ctx.String(metricsAddrFlag.Name))
		if err != nil {
			return err
		}
		defer func() { log.Info("stopping metrics server..."); close() }()
		log.Info("metrics server started", "url", url)
	}

	printStartupMessage(gene, led, instanceDir, apiURL)

	<-handleExitSignal()
	return nil
}
