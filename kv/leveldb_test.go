// Copyright (c) 2023 The Gavel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelDBMem(t *testing.T) {
	db, err := NewMem()
	assert.NoError(t, err)
	defer db.Close()

	key := []byte("key")
	value := []byte("value")

	_, err = db.Get(key)
	assert.True(t, db.IsNotFound(err))

	has, err := db.Has(key)
	assert.NoError(t, err)
	assert.False(t, has)

	assert.NoError(t, db.Put(key, value))

	got, err := db.Get(key)
	assert.NoError(t, err)
	assert.Equal(t, value, got)

	assert.NoError(t, db.Delete(key))
	_, err = db.Get(key)
	assert.True(t, db.IsNotFound(err))
}

func TestLevelDBBatch(t *testing.T) {
	db, err := NewMem()
	assert.NoError(t, err)
	defer db.Close()

	batch := db.NewBatch()
	assert.NoError(t, batch.Put([]byte("k1"), []byte("v1")))
	assert.NoError(t, batch.Put([]byte("k2"), []byte("v2")))
	assert.Equal(t, 2, batch.Len())

	// nothing visible before write
	has, _ := db.Has([]byte("k1"))
	assert.False(t, has)

	assert.NoError(t, batch.Write())

	v1, err := db.Get([]byte("k1"))
	assert.NoError(t, err)
	assert.Equal(t, []byte("v1"), v1)
	v2, err := db.Get([]byte("k2"))
	assert.NoError(t, err)
	assert.Equal(t, []byte("v2"), v2)
}
