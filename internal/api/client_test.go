package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClientFor(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	c, err := NewClient(ClientConfig{BaseURL: ts.URL + "/api", Token: "secret-token"})
	require.NoError(t, err)
	return c
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	_, err := NewClient(ClientConfig{})
	assert.Error(t, err)
}

func TestDoSetsHeaders(t *testing.T) {
	var gotAuth, gotContentType, gotPath string
	c := newClientFor(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		gotPath = r.URL.Path
		_ = json.NewEncoder(w).Encode(map[string]string{"ok": "yes"})
	})

	var out map[string]string
	err := c.do(context.Background(), "test op", "POST", "/things", map[string]string{"a": "b"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "Bearer secret-token", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "/api/things", gotPath)
	assert.Equal(t, "yes", out["ok"])
}

func TestDoExtractsDetailFromErrorBody(t *testing.T) {
	c := newClientFor(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail": "Patient not found"}`))
	})

	err := c.do(context.Background(), "get patient", "GET", "/patients/x", nil, nil)
	var rerr *RemoteError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, http.StatusNotFound, rerr.StatusCode)
	assert.Equal(t, "Patient not found", rerr.Message)
	assert.Equal(t, "get patient", rerr.Op)
}

func TestDoFallsBackWhenBodyIsNotJSON(t *testing.T) {
	c := newClientFor(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	})

	err := c.do(context.Background(), "list patients", "GET", "/patients", nil, nil)
	var rerr *RemoteError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, http.StatusBadGateway, rerr.StatusCode)
	assert.Equal(t, "request failed", rerr.Message)
}

func TestDoDoesNotWriteOutOnFailure(t *testing.T) {
	c := newClientFor(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"detail": "boom"}`))
	})

	out := map[string]string{"kept": "yes"}
	err := c.do(context.Background(), "op", "GET", "/x", nil, &out)
	require.Error(t, err)
	assert.Equal(t, "yes", out["kept"])
}

func TestDoOmitsBodyOnGet(t *testing.T) {
	var gotContentType string
	var gotBody []byte
	c := newClientFor(t, func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		_, _ = w.Write([]byte(`[]`))
	})

	var out []string
	require.NoError(t, c.do(context.Background(), "op", "GET", "/x", nil, &out))
	assert.Empty(t, gotContentType)
	assert.Empty(t, gotBody)
}
