// Copyright (c) 2023 The Gavel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package node

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/gavelhq/gavel/api/utils"
	"github.com/gavelhq/gavel/gavel"
	"github.com/gavelhq/gavel/ledger"
)

// Node reports the node's identity and state version.
type Node struct {
	ledger  *ledger.Ledger
	network string
}

func New(ledger *ledger.Ledger, network string) *Node {
	return &Node{ledger, network}
}

// Info describes the running node.
type Info struct {
	GenesisID    gavel.Bytes32 `json:"genesisId"`
	Network      string        `json:"network"`
	StateVersion uint64        `json:"stateVersion"`
	Now          uint64        `json:"now"`
}

func (n *Node) handleGetInfo(w http.ResponseWriter, _ *http.Request) error {
	return utils.WriteJSON(w, &Info{
		GenesisID:    n.ledger.ID(),
		Network:      n.network,
		StateVersion: n.ledger.Version(),
		Now:          uint64(time.Now().Unix()),
	})
}

func (n *Node) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("node_get_info").
		HandlerFunc(utils.WrapHandlerFunc(n.handleGetInfo))
}
