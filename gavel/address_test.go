// Copyright (c) 2023 The Gavel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package gavel

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAddress(t *testing.T) {
	addr, err := ParseAddress("0x7567d83b7b8d80addcb281a71d54fc7b3364ffed")
	assert.NoError(t, err)
	assert.Equal(t, "0x7567d83b7b8d80addcb281a71d54fc7b3364ffed", addr.String())

	// without 0x prefix
	addr2, err := ParseAddress("7567d83b7b8d80addcb281a71d54fc7b3364ffed")
	assert.NoError(t, err)
	assert.Equal(t, addr, addr2)

	_, err = ParseAddress("0x7567")
	assert.Error(t, err)

	_, err = ParseAddress("zz67d83b7b8d80addcb281a71d54fc7b3364ffed")
	assert.Error(t, err)
}

func TestAddressJSON(t *testing.T) {
	raw := `"0x7567d83b7b8d80addcb281a71d54fc7b3364ffed"`

	var addr Address
	assert.NoError(t, json.Unmarshal([]byte(raw), &addr))

	data, err := json.Marshal(&addr)
	assert.NoError(t, err)
	assert.Equal(t, raw, string(data))
}

func TestCreateContractAddress(t *testing.T) {
	creator := BytesToAddress([]byte("creator"))

	a0 := CreateContractAddress(creator, 0)
	a1 := CreateContractAddress(creator, 1)

	assert.False(t, a0.IsZero())
	assert.NotEqual(t, a0, a1)
	// deterministic
	assert.Equal(t, a0, CreateContractAddress(creator, 0))
}
