// Copyright (c) 2023 The Gavel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestLRUGetOrLoad(t *testing.T) {
	c, err := NewLRU(16)
	assert.NoError(t, err)

	loads := 0
	loader := func(key interface{}) (interface{}, error) {
		loads++
		return key.(string) + "-value", nil
	}

	v, err := c.GetOrLoad("k", loader)
	assert.NoError(t, err)
	assert.Equal(t, "k-value", v)
	assert.Equal(t, 1, loads)

	// second get hits the cache
	v, err = c.GetOrLoad("k", loader)
	assert.NoError(t, err)
	assert.Equal(t, "k-value", v)
	assert.Equal(t, 1, loads)
}

func TestLRULoadError(t *testing.T) {
	c, err := NewLRU(16)
	assert.NoError(t, err)

	loadErr := errors.New("load failed")
	_, err = c.GetOrLoad("k", func(interface{}) (interface{}, error) {
		return nil, loadErr
	})
	assert.Equal(t, loadErr, err)

	// failed loads are not cached
	_, ok := c.Get("k")
	assert.False(t, ok)
}
