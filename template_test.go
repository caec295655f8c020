package sandbox

import (
	"context"
	"net/http"
	"testing"
	"time"
)

func TestBuildTemplateValidation(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not reach the server")
	}))

	if _, err := c.BuildTemplate(context.Background(), BuildParams{Name: "only-name"}); err == nil {
		t.Fatal("BuildTemplate without a Dockerfile should fail")
	}
}

func TestWaitForBuild(t *testing.T) {
	polls := 0
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/templates/tpl-1" {
			t.Errorf("path = %q, want /api/templates/tpl-1", r.URL.Path)
		}
		polls++
		status := "building"
		if polls >= 3 {
			status = "ready"
		}
		writeJSON(t, w, map[string]string{"templateID": "tpl-1", "name": "demo", "status": status})
	}))

	tpl, err := c.WaitForBuild(context.Background(), "tpl-1", WithPollInterval(time.Millisecond))
	if err != nil {
		t.Fatalf("WaitForBuild: %v", err)
	}
	if tpl.Status != "ready" {
		t.Errorf("Status = %q, want ready", tpl.Status)
	}
	if polls < 3 {
		t.Errorf("polls = %d, want at least 3", polls)
	}
}

func TestWaitForBuildFailure(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]string{"templateID": "tpl-1", "name": "demo", "status": "error"})
	}))

	if _, err := c.WaitForBuild(context.Background(), "tpl-1", WithPollInterval(time.Millisecond)); err == nil {
		t.Fatal("WaitForBuild should fail when the build errors")
	}
}

func TestListTemplates(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"templateID":"tpl-1","name":"base","status":"ready"}]`))
	}))

	templates, err := c.ListTemplates(context.Background())
	if err != nil {
		t.Fatalf("ListTemplates: %v", err)
	}
	if len(templates) != 1 || templates[0].TemplateID != "tpl-1" {
		t.Errorf("unexpected templates %+v", templates)
	}
}
