// Copyright (c) 2023 The Gavel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package registry

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/gavelhq/gavel/api/utils"
	"github.com/gavelhq/gavel/builtin"
	"github.com/gavelhq/gavel/gavel"
	"github.com/gavelhq/gavel/ledger"
)

// Registry exposes the source registry's read surface over HTTP.
type Registry struct {
	ledger *ledger.Ledger
}

func New(ledger *ledger.Ledger) *Registry {
	return &Registry{ledger}
}

func (r *Registry) handleGetFarms(w http.ResponseWriter, _ *http.Request) error {
	var farms []gavel.Address
	if err := r.ledger.Query(func(env *ledger.Env) error {
		var err error
		farms, err = builtin.Registry.WithState(env.State).Farms()
		return err
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, &Entries{Entries: farms})
}

func (r *Registry) handleGetVesting(w http.ResponseWriter, _ *http.Request) error {
	var grants []gavel.Address
	if err := r.ledger.Query(func(env *ledger.Env) error {
		var err error
		grants, err = builtin.Registry.WithState(env.State).VestingGrants()
		return err
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, &Entries{Entries: grants})
}

func (r *Registry) handleGetStakedPool(w http.ResponseWriter, _ *http.Request) error {
	var pool StakedPool
	if err := r.ledger.Query(func(env *ledger.Env) error {
		var err error
		pool.Vault, pool.PoolID, err = builtin.Registry.WithState(env.State).StakedPool()
		return err
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, &pool)
}

func (r *Registry) handleGetOwner(w http.ResponseWriter, _ *http.Request) error {
	var owner gavel.Address
	if err := r.ledger.Query(func(env *ledger.Env) error {
		var err error
		owner, err = builtin.Registry.WithState(env.State).Owner()
		return err
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, &Owner{Owner: owner})
}

func (r *Registry) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/farms").
		Methods(http.MethodGet).
		Name("registry_get_farms").
		HandlerFunc(utils.WrapHandlerFunc(r.handleGetFarms))
	sub.Path("/vesting").
		Methods(http.MethodGet).
		Name("registry_get_vesting").
		HandlerFunc(utils.WrapHandlerFunc(r.handleGetVesting))
	sub.Path("/staked-pool").
		Methods(http.MethodGet).
		Name("registry_get_staked_pool").
		HandlerFunc(utils.WrapHandlerFunc(r.handleGetStakedPool))
	sub.Path("/owner").
		Methods(http.MethodGet).
		Name("registry_get_owner").
		HandlerFunc(utils.WrapHandlerFunc(r.handleGetOwner))
}
