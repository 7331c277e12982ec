package server_test

import (
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/neurocore/internal/config"
	"github.com/JaimeStill/neurocore/internal/server"
	"github.com/JaimeStill/neurocore/pkg/lifecycle"
	"github.com/JaimeStill/neurocore/pkg/logging"
)

func TestServer_ReadyAfterListen(t *testing.T) {
	lc := lifecycle.New()
	cfg := &config.ServerConfig{Host: "127.0.0.1", Port: 0, ShutdownTimeout: "1s"}
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("hello"))
	})

	srv := server.New(cfg, handler, logging.Discard())
	require.NoError(t, srv.Start(lc))
	require.NoError(t, lc.WaitForStartup())
	assert.True(t, lc.Ready())

	resp, err := http.Get("http://" + srv.Addr())
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, "hello", string(body))

	require.NoError(t, lc.Shutdown(2*time.Second))
}

func TestServer_ListenFailureNotReady(t *testing.T) {
	taken, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer taken.Close()

	port := taken.Addr().(*net.TCPAddr).Port

	lc := lifecycle.New()
	cfg := &config.ServerConfig{Host: "127.0.0.1", Port: port, ShutdownTimeout: "1s"}

	srv := server.New(cfg, http.NotFoundHandler(), logging.Discard())
	require.NoError(t, srv.Start(lc))

	assert.Error(t, lc.WaitForStartup())
	assert.False(t, lc.Ready())

	require.NoError(t, lc.Shutdown(2*time.Second))
}
