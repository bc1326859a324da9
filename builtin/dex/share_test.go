// Copyright (c) 2023 The Gavel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package dex

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShare(t *testing.T) {
	tests := []struct {
		balance  int64
		reserve  int64
		supply   int64
		expected int64
	}{
		{0, 0, 0, 0},
		{10, 100, 0, 0}, // zero supply yields zero, never a fault
		{0, 100, 50, 0},
		{50, 100, 50, 100},
		{25, 100, 50, 50},
		{1, 100, 3, 33}, // floor division
		{2, 100, 3, 66},
		{7, 10, 3, 23},
	}

	for _, tt := range tests {
		got := Share(big.NewInt(tt.balance), big.NewInt(tt.reserve), big.NewInt(tt.supply))
		assert.Equal(t, big.NewInt(tt.expected).String(), got.String(),
			"share(%v,%v,%v)", tt.balance, tt.reserve, tt.supply)
	}
}

func TestShareNoOverflow(t *testing.T) {
	// intermediate product far beyond 64 bits
	balance, _ := new(big.Int).SetString("123456789012345678901234567890", 10)
	reserve, _ := new(big.Int).SetString("987654321098765432109876543210", 10)
	supply, _ := new(big.Int).SetString("123456789012345678901234567890", 10)

	assert.Equal(t, reserve, Share(balance, reserve, supply))
}

func TestShareMonotonic(t *testing.T) {
	reserve := big.NewInt(1_000_000)
	supply := big.NewInt(777)

	prev := &big.Int{}
	for balance := int64(0); balance <= 777; balance += 7 {
		got := Share(big.NewInt(balance), reserve, supply)
		assert.True(t, got.Cmp(prev) >= 0, "share must not shrink as balance grows")
		prev = got
	}
	// full ownership claims the full reserve
	assert.Equal(t, reserve, Share(supply, reserve, supply))

	prev = &big.Int{}
	for r := int64(0); r <= 1000; r += 13 {
		got := Share(big.NewInt(500), big.NewInt(r), supply)
		assert.True(t, got.Cmp(prev) >= 0, "share must not shrink as reserve grows")
		prev = got
	}
}
