package server

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/dmitrijs2005/portalroom/internal/config"
	"github.com/dmitrijs2005/portalroom/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freeAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func testConfig(t *testing.T) *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.StorageDriver = storage.DriverMemory
	c.HTTPAddr = freeAddr(t)
	return c
}

func TestNewApp_Errors(t *testing.T) {
	c := testConfig(t)
	c.LogFormat = "xml"
	_, err := NewApp(context.Background(), c)
	require.Error(t, err)

	c = testConfig(t)
	c.StorageDriver = "oracle"
	_, err = NewApp(context.Background(), c)
	require.Error(t, err)
}

func TestNewApp_DefaultSecretIsRandom(t *testing.T) {
	first, err := NewApp(context.Background(), testConfig(t))
	require.NoError(t, err)
	second, err := NewApp(context.Background(), testConfig(t))
	require.NoError(t, err)

	assert.Len(t, first.server.secret, 64)
	assert.NotEqual(t, "secretKey", string(first.server.secret))
	assert.NotEqual(t, first.server.secret, second.server.secret)
}

func TestNewApp_ConfiguredSecret(t *testing.T) {
	c := testConfig(t)
	c.SecretKey = "configured"
	app, err := NewApp(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, []byte("configured"), app.server.secret)
}

func TestApp_RunServesUntilCancelled(t *testing.T) {
	c := testConfig(t)
	app, err := NewApp(context.Background(), c)
	require.NoError(t, err)
	require.NotEmpty(t, app.server.secret)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + c.HTTPAddr + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("app did not stop")
	}
}
