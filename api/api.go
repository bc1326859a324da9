// Copyright (c) 2023 The Gavel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package api assembles the node's HTTP query surface.
package api

import (
	"net/http"
	"strings"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/inconshreveable/log15"

	"github.com/gavelhq/gavel/api/node"
	"github.com/gavelhq/gavel/api/power"
	"github.com/gavelhq/gavel/api/registry"
	"github.com/gavelhq/gavel/ledger"
)

var logger = log15.New("pkg", "api")

// Options configures the query surface.
type Options struct {
	AllowedOrigins  string
	Network         string
	PowerCacheSize  int
	EnableReqLogger bool
	EnableMetrics   bool
}

// New return api router
func New(ledger *ledger.Ledger, opts Options) http.HandlerFunc {
	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}

	router := mux.NewRouter()

	power.New(ledger, opts.PowerCacheSize).
		Mount(router, "/power")
	registry.New(ledger).
		Mount(router, "/registry")
	node.New(ledger, opts.Network).
		Mount(router, "/node")

	if opts.EnableMetrics {
		router.Use(metricsMiddleware)
	}

	handler := handlers.CompressHandler(router)
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type", "x-genesis-id"}),
		handlers.ExposedHeaders([]string{"x-genesis-id"}),
	)(handler)

	if opts.EnableReqLogger {
		handler = RequestLoggerHandler(handler, logger)
	}

	return handler.ServeHTTP
}
