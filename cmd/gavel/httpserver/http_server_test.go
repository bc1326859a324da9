// Copyright (c) 2023 The Gavel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package httpserver

import (
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartAPIServer(t *testing.T) {
	url, close, err := StartAPIServer("127.0.0.1:0", http.HandlerFunc(
		func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte("ok"))
		}))
	require.Nil(t, err)
	defer close()

	res, err := http.Get(url)
	require.Nil(t, err)
	body, err := io.ReadAll(res.Body)
	require.Nil(t, err)
	require.Nil(t, res.Body.Close())
	assert.Equal(t, "ok", string(body))
}

func TestStartAPIServerBadAddr(t *testing.T) {
	_, _, err := StartAPIServer("localhost:-1", nil)
	assert.Error(t, err)
}
