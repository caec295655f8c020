package sandbox

import (
	"context"
	"net/http"
	"path/filepath"
	"testing"
)

func TestNewClientNormalizesEndpoint(t *testing.T) {
	cases := []struct {
		endpoint string
		base     string
		apiBase  string
	}{
		{"http://host:8080", "http://host:8080", "http://host:8080/api"},
		{"http://host:8080/", "http://host:8080", "http://host:8080/api"},
		{"http://host:8080/api", "http://host:8080/api", "http://host:8080/api"},
		{"https://app.example.com ", "https://app.example.com", "https://app.example.com/api"},
	}
	for _, tc := range cases {
		c, err := NewClient(&Config{APIKey: "k", Endpoint: tc.endpoint})
		if err != nil {
			t.Fatalf("NewClient(%q): %v", tc.endpoint, err)
		}
		if c.Endpoint() != tc.base {
			t.Errorf("Endpoint(%q) = %q, want %q", tc.endpoint, c.Endpoint(), tc.base)
		}
		if got := c.API().Endpoint(); got != tc.apiBase {
			t.Errorf("api base for %q = %q, want %q", tc.endpoint, got, tc.apiBase)
		}
	}
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	t.Setenv("OPENSANDBOX_API_KEY", "")
	t.Setenv("OPENSANDBOX_CONFIG_FILE", filepath.Join(t.TempDir(), "missing-config"))

	if _, err := NewClient(&Config{Endpoint: "http://host"}); err == nil {
		t.Fatal("NewClient without an API key should fail")
	}
}

func TestNewClientAPIKeyFromEnvironment(t *testing.T) {
	t.Setenv("OPENSANDBOX_API_KEY", "env-key")

	c, err := NewClient(&Config{Endpoint: "http://host"})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if c.config.APIKey != "env-key" {
		t.Errorf("APIKey = %q, want env-key", c.config.APIKey)
	}
}

func TestConnectNotFound(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"code":"not_found","message":"no such sandbox"}`))
	}))

	_, err := c.Connect(context.Background(), "missing")
	if !IsNotFound(err) {
		t.Fatalf("err = %v, want not-found *APIError", err)
	}
}

func TestListSandboxes(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/sandboxes" {
			t.Errorf("path = %q, want /api/sandboxes", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"sandboxID":"sb-1","status":"running"},{"sandboxID":"sb-2","status":"stopped"}]`))
	}))

	infos, err := c.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("len(infos) = %d, want 2", len(infos))
	}
	if infos[0].SandboxID != "sb-1" || infos[0].Status != StatusRunning {
		t.Errorf("unexpected info %+v", infos[0])
	}
	if infos[1].Status != StatusStopped {
		t.Errorf("unexpected info %+v", infos[1])
	}
}

func TestWebsocketURL(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"http://host:8080", "ws://host:8080"},
		{"https://host", "wss://host"},
		{"ws://host", "ws://host"},
	}
	for _, tc := range cases {
		if got := websocketURL(tc.in); got != tc.want {
			t.Errorf("websocketURL(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
