package mcpserver

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/bandhan/bandhan/internal/draft"
	"github.com/bandhan/bandhan/internal/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServer_StartStop(t *testing.T) {
	srv := New(draft.New(state.NewMemoryStore()))

	port, err := srv.Start(context.Background(), 0)
	require.NoError(t, err)
	assert.NotZero(t, port)
	assert.Contains(t, srv.URL(), "/mcp")

	_, err = srv.Start(context.Background(), 0)
	assert.Error(t, err, "second start")

	resp, err := http.Post(srv.URL(), "application/json", strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"ping"}`))
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.NotEqual(t, http.StatusNotFound, resp.StatusCode)

	require.NoError(t, srv.Stop())
	require.NoError(t, srv.Stop())
}
