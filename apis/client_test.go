package apis

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientAppliesAPIKeyCredential(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.Header.Get("X-API-Key"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"sandboxID":"sb-1","status":"running"}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, APIKey("secret"), nil)
	sb, err := c.GetSandbox(context.Background(), "sb-1")
	require.NoError(t, err)
	assert.Equal(t, "sb-1", sb.SandboxID)
}

func TestClientAppliesBearerCredential(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"exitCode":0,"stdout":"","stderr":""}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, BearerToken("tok"), nil)
	_, err := c.RunCommand(context.Background(), "sb-1", RunCommandRequest{Cmd: "true"})
	require.NoError(t, err)
}

func TestClientReturnsAPIErrorWithBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"code":"conflict","message":"repository exists"}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, APIKey("k"), nil)
	_, err := c.CreateRepository(context.Background(), CreateRepositoryRequest{Name: "demo"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, "conflict", apiErr.Code)
	assert.Equal(t, "repository exists", apiErr.Message)
	assert.True(t, IsConflict(err))
}

func TestClientReturnsConnectionError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // 立刻关掉，模拟服务不可达

	c := NewClient(server.URL, APIKey("k"), nil)
	_, err := c.GetSandbox(context.Background(), "sb-1")
	var connErr *ConnectionError
	require.ErrorAs(t, err, &connErr)
	assert.NotNil(t, errors.Unwrap(connErr))
}

func TestClientTrimsEndpointSlash(t *testing.T) {
	c := NewClient("http://host/api/", APIKey("k"), nil)
	assert.Equal(t, "http://host/api", c.Endpoint())
}

func TestUpgradeHeaderCarriesCredential(t *testing.T) {
	c := NewClient("http://host/api", BearerToken("tok"), nil)
	assert.Equal(t, "Bearer tok", c.UpgradeHeader().Get("Authorization"))
}

func TestPathQuery(t *testing.T) {
	q := pathQuery("/tmp/a b.txt")
	assert.Equal(t, "/tmp/a b.txt", q.Get("path"))
}

func TestListFilesNormalizesNull(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/empty", r.URL.Query().Get("path"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("null"))
	}))
	defer server.Close()

	c := NewClient(server.URL, APIKey("k"), nil)
	entries, err := c.ListFiles(context.Background(), "sb-1", "/empty")
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestWriteFileSendsRawBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "application/octet-stream", r.Header.Get("Content-Type"))
	}))
	defer server.Close()

	c := NewClient(server.URL, APIKey("k"), nil)
	err := c.WriteFile(context.Background(), "sb-1", "/tmp/x", []byte{0x00, 0x01})
	require.NoError(t, err)
}
