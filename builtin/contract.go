// Copyright (c) 2023 The Gavel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"github.com/gavelhq/gavel/gavel"
)

type contract struct {
	name    string
	Address gavel.Address
	Code    []byte
}

func newContract(name string, code []byte) *contract {
	return &contract{
		name,
		gavel.BytesToAddress([]byte(name)),
		code,
	}
}
