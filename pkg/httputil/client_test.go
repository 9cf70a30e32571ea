package httputil

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserAgent(t *testing.T) {
	agents := make(chan string, 2)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		agents <- r.Header.Get("User-Agent")
	}))
	defer srv.Close()

	client := NewHTTPClient(time.Second)

	req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
	require.NoError(t, err)
	resp, err := client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, DefaultUserAgent, <-agents)
	assert.Empty(t, req.Header.Get("User-Agent"))

	req, err = http.NewRequest(http.MethodGet, srv.URL, nil)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "custom/2.0")
	resp, err = client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "custom/2.0", <-agents)
}

func TestClientDefaults(t *testing.T) {
	assert.Equal(t, 30*time.Second, NewDefaultHTTPClient().Timeout)
	assert.Equal(t, 30*time.Second, NewHTTPClient(0).Timeout)
	assert.Equal(t, 5*time.Second, NewHTTPClientWithAgent(5*time.Second, "").Timeout)
}
