// Copyright (c) 2023 The Gavel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"os/user"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/inconshreveable/log15"
	"github.com/mattn/go-isatty"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/gavelhq/gavel/gavel"
	"github.com/gavelhq/gavel/genesis"
	"github.com/gavelhq/gavel/kv"
	"github.com/gavelhq/gavel/ledger"
)

func fatal(args ...interface{}) {
	fmt.Fprint(os.Stderr, "Fatal: ")
	fmt.Fprintln(os.Stderr, args...)
	os.Exit(1)
}

func fatalf(format string, args ...interface{}) {
	fatal(fmt.Sprintf(format, args...))
}

func initLogger(ctx *cli.Context) {
	logLevel := ctx.Int(verbosityFlag.Name)
	format := log15.LogfmtFormat()
	if isatty.IsTerminal(os.Stderr.Fd()) {
		format = log15.TerminalFormat()
	}
	log15.Root().SetHandler(log15.LvlFilterHandler(
		log15.Lvl(logLevel),
		log15.StreamHandler(os.Stderr, format)))
}

func selectGenesis(ctx *cli.Context) (*genesis.Genesis, error) {
	network := ctx.String(networkFlag.Name)
	if network == "dev" {
		return genesis.NewDevnet(), nil
	}

	data, err := os.ReadFile(network)
	if err != nil {
		return nil, fmt.Errorf("read genesis file '%v': %w", network, err)
	}
	var custom genesis.CustomGenesis
	if err := json.Unmarshal(data, &custom); err != nil {
		return nil, fmt.Errorf("parse genesis file '%v': %w", network, err)
	}
	return genesis.NewCustomNet(&custom)
}

func selectMaster(ctx *cli.Context) gavel.Address {
	if str := ctx.String(masterFlag.Name); str != "" {
		master, err := gavel.ParseAddress(str)
		if err != nil {
			fatalf("parse master address '%v': %v", str, err)
		}
		return master
	}
	return genesis.DevAccounts()[0].Address
}

func makeInstanceDir(ctx *cli.Context, gene *genesis.Genesis) string {
	dataDir := ctx.String(dataDirFlag.Name)
	if dataDir == "" {
		fatalf("unable to infer default data dir, use -%s to specify one", dataDirFlag.Name)
	}

	instanceDir := filepath.Join(dataDir, fmt.Sprintf("instance-%x", gene.ID().Bytes()[24:]))
	if err := os.MkdirAll(instanceDir, 0700); err != nil {
		fatalf("create data dir at '%v': %v", instanceDir, err)
	}
	return instanceDir
}

func openMainDB(_ *cli.Context, instanceDir string) *kv.LevelDB {
	dir := filepath.Join(instanceDir, "main.db")
	db, err := kv.New(dir, kv.Options{})
	if err != nil {
		fatalf("open main database at '%v': %v", dir, err)
	}
	return db
}

func handleExitSignal() <-chan os.Signal {
	exit := make(chan os.Signal, 1)
	signal.Notify(exit, os.Interrupt, syscall.SIGTERM)
	return exit
}

func printStartupMessage(gene *genesis.Genesis, led *ledger.Ledger, instanceDir, apiURL string) {
	fmt.Printf(`Starting %v
    Network     [ %v ]
    Genesis     [ %v ]
    Instance    [ %v ]
    API portal  [ %v ]
`,
		"Gavel",
		gene.Name(),
		led.ID(),
		instanceDir,
		apiURL)
}

// copied from go-ethereum's default data dir logic
func defaultDataDir() string {
	if home := homeDir(); home != "" {
		if runtime.GOOS == "darwin" {
			return filepath.Join(home, "Library", "Application Support", "org.gavelhq.gavel")
		} else if runtime.GOOS == "windows" {
			return filepath.Join(home, "AppData", "Roaming", "org.gavelhq.gavel")
		}
		return filepath.Join(home, ".org.gavelhq.gavel")
	}
	return ""
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}
