// Copyright (c) 2023 The Gavel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package node_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gavelhq/gavel/api/node"
	"github.com/gavelhq/gavel/genesis"
	"github.com/gavelhq/gavel/kv"
	"github.com/gavelhq/gavel/ledger"
)

func TestGetInfo(t *testing.T) {
	store, err := kv.NewMem()
	require.Nil(t, err)
	defer store.Close()

	led, err := ledger.New(store, genesis.NewDevnet())
	require.Nil(t, err)

	router := mux.NewRouter()
	node.New(led, "devnet").Mount(router, "/node")
	srv := httptest.NewServer(router)
	defer srv.Close()

	res, err := http.Get(srv.URL + "/node")
	require.Nil(t, err)
	body, err := io.ReadAll(res.Body)
	require.Nil(t, err)
	require.Nil(t, res.Body.Close())
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var info node.Info
	require.Nil(t, json.Unmarshal(body, &info))
	assert.Equal(t, genesis.NewDevnet().ID(), info.GenesisID)
	assert.Equal(t, "devnet", info.Network)
	assert.Equal(t, uint64(0), info.StateVersion)
	assert.True(t, info.Now > 0)
}
