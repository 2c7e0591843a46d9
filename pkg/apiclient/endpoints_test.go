package apiclient

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadRegistryYAML(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "endpoints.yaml")
	content := `
endpoints:
  - id: submit_feature
    method: post
    path: new-endpoint
    headers:
      X-Api-Key: local
  - id: list_users
    method: GET
    path: /users
    timeout_seconds: 5
`
	if err := os.WriteFile(file, []byte(content), 0o644); err != nil {
		t.Fatalf("write endpoints file: %v", err)
	}

	reg, err := LoadRegistry(file)
	if err != nil {
		t.Fatalf("LoadRegistry returned error: %v", err)
	}

	if got := len(reg.All()); got != 2 {
		t.Fatalf("expected 2 endpoints, got %d", got)
	}

	ep, ok := reg.ByID("submit_feature")
	if !ok {
		t.Fatalf("expected endpoint id submit_feature to be loaded")
	}
	if ep.Method != http.MethodPost {
		t.Fatalf("expected method to be upper-cased, got %q", ep.Method)
	}
	if ep.Path != "/new-endpoint" {
		t.Fatalf("expected path to gain a leading slash, got %q", ep.Path)
	}
	if ep.Headers["X-Api-Key"] != "local" {
		t.Fatalf("unexpected headers: %v", ep.Headers)
	}

	users, _ := reg.ByID("list_users")
	if users.TimeoutSeconds != 5 {
		t.Fatalf("unexpected timeout: %d", users.TimeoutSeconds)
	}
}

func TestLoadRegistryJSON(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "endpoints.json")
	content := `{"endpoints":[{"id":"book_journey","method":"POST","path":"/user/book-journey"}]}`
	if err := os.WriteFile(file, []byte(content), 0o644); err != nil {
		t.Fatalf("write endpoints file: %v", err)
	}

	reg, err := LoadRegistry(file)
	if err != nil {
		t.Fatalf("LoadRegistry returned error: %v", err)
	}
	if _, ok := reg.ByID("book_journey"); !ok {
		t.Fatalf("expected endpoint id book_journey to be loaded")
	}
}

func TestNewRegistryDuplicateID(t *testing.T) {
	_, err := NewRegistry([]Endpoint{
		{ID: "dup", Method: "GET", Path: "/one"},
		{ID: "dup", Method: "GET", Path: "/two"},
	})
	if err == nil {
		t.Fatalf("expected duplicate endpoint error, got nil")
	}
}

func TestNewRegistryRejectsUnsupportedMethod(t *testing.T) {
	_, err := NewRegistry([]Endpoint{{ID: "weird", Method: "DELETE", Path: "/gone"}})
	if err == nil {
		t.Fatalf("expected unsupported method error, got nil")
	}
}

func TestDefaultRegistryCoversJourneysAPI(t *testing.T) {
	reg := DefaultRegistry()
	for _, id := range []string{EndpointSubmitFeature, EndpointBookJourney, EndpointListUsers} {
		if _, ok := reg.ByID(id); !ok {
			t.Fatalf("missing built-in endpoint %q", id)
		}
	}
}
