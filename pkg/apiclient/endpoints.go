// Package apiclient exposes one typed operation per declared API endpoint.
// Endpoints are configuration (YAML/JSON), not code: adding one means adding
// a registry entry and the typed call that binds to it.
package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Well-known endpoint ids the typed operations bind to.
const (
	EndpointSubmitFeature = "submit_feature"
	EndpointBookJourney   = "book_journey"
	EndpointListUsers     = "list_users"
)

// Endpoint declares one API operation: the verb and path a typed call uses,
// plus optional per-endpoint headers and timeout.
type Endpoint struct {
	ID             string            `json:"id" yaml:"id"`
	Method         string            `json:"method" yaml:"method"`
	Path           string            `json:"path" yaml:"path"`
	Headers        map[string]string `json:"headers" yaml:"headers"`
	TimeoutSeconds int               `json:"timeout_seconds" yaml:"timeout_seconds"`
}

type registryFile struct {
	Endpoints []Endpoint `json:"endpoints" yaml:"endpoints"`
}

// Registry holds the declared endpoints keyed by id. It is immutable after
// construction and safe for concurrent readers.
type Registry struct {
	endpoints []Endpoint
	idx       map[string]Endpoint
}

// NewRegistry builds a registry from the given entries after sanitizing and
// validating each one.
func NewRegistry(endpoints []Endpoint) (*Registry, error) {
	if len(endpoints) == 0 {
		return nil, errors.New("registry contains no endpoint entries")
	}

	reg := &Registry{
		endpoints: make([]Endpoint, 0, len(endpoints)),
		idx:       make(map[string]Endpoint, len(endpoints)),
	}
	for i := range endpoints {
		ep := sanitizeEndpoint(endpoints[i])
		if err := validateEndpoint(ep); err != nil {
			return nil, fmt.Errorf("endpoint[%d]: %w", i, err)
		}
		if _, exists := reg.idx[ep.ID]; exists {
			return nil, fmt.Errorf("duplicate endpoint id %q", ep.ID)
		}
		reg.endpoints = append(reg.endpoints, ep)
		reg.idx[ep.ID] = ep
	}
	return reg, nil
}

// LoadRegistry loads an endpoint registry from a YAML or JSON file.
func LoadRegistry(path string) (*Registry, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("endpoints file path is empty")
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open endpoints file: %w", err)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read endpoints file: %w", err)
	}

	entries, err := parseEndpoints(raw, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	return NewRegistry(entries)
}

// DefaultRegistry returns the built-in registry covering the journeys API.
func DefaultRegistry() *Registry {
	reg, err := NewRegistry([]Endpoint{
		{ID: EndpointSubmitFeature, Method: http.MethodPost, Path: "/new-endpoint"},
		{ID: EndpointBookJourney, Method: http.MethodPost, Path: "/user/book-journey"},
		{ID: EndpointListUsers, Method: http.MethodGet, Path: "/users"},
	})
	if err != nil {
		panic(fmt.Sprintf("built-in endpoint registry invalid: %v", err))
	}
	return reg
}

// ByID returns the endpoint entry for the given id, if declared.
func (r *Registry) ByID(id string) (Endpoint, bool) {
	id = strings.TrimSpace(id)
	if r == nil || id == "" {
		return Endpoint{}, false
	}
	ep, ok := r.idx[id]
	return ep, ok
}

// All returns a copy of the declared endpoints in declaration order.
func (r *Registry) All() []Endpoint {
	if r == nil || len(r.endpoints) == 0 {
		return nil
	}
	out := make([]Endpoint, len(r.endpoints))
	copy(out, r.endpoints)
	return out
}

func parseEndpoints(data []byte, ext string) ([]Endpoint, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))

	decoders := []struct {
		name string
		ext  string
		fn   unmarshalFn
	}{
		{name: "yaml", ext: ".yaml", fn: yaml.Unmarshal},
		{name: "yaml", ext: ".yml", fn: yaml.Unmarshal},
		{name: "json", ext: ".json", fn: json.Unmarshal},
	}

	for _, d := range decoders {
		if ext != "" && ext != d.ext {
			continue
		}
		if entries, err := unmarshalEndpoints(d.name, data, d.fn); err == nil {
			return entries, nil
		}
	}

	return nil, errors.New("endpoints file format not recognized (expected YAML or JSON)")
}

type unmarshalFn func([]byte, any) error

func unmarshalEndpoints(name string, data []byte, fn unmarshalFn) ([]Endpoint, error) {
	var reg registryFile
	if err := fn(data, &reg); err != nil {
		return nil, fmt.Errorf("decode %s endpoints: %w", name, err)
	}
	if len(reg.Endpoints) == 0 {
		return nil, fmt.Errorf("%s endpoints empty", name)
	}
	return reg.Endpoints, nil
}

func sanitizeEndpoint(ep Endpoint) Endpoint {
	ep.ID = strings.TrimSpace(ep.ID)
	ep.Method = strings.ToUpper(strings.TrimSpace(ep.Method))
	ep.Path = strings.TrimSpace(ep.Path)

	if ep.Path != "" && !strings.HasPrefix(ep.Path, "/") {
		ep.Path = "/" + ep.Path
	}
	if ep.Headers == nil {
		ep.Headers = map[string]string{}
	}
	if ep.TimeoutSeconds < 0 {
		ep.TimeoutSeconds = 0
	}

	return ep
}

func validateEndpoint(ep Endpoint) error {
	if ep.ID == "" {
		return errors.New("id is required")
	}
	if ep.Path == "" {
		return fmt.Errorf("path is required for endpoint %q", ep.ID)
	}
	switch ep.Method {
	case http.MethodGet, http.MethodPost:
		return nil
	case "":
		return fmt.Errorf("method is required for endpoint %q", ep.ID)
	default:
		return fmt.Errorf("unsupported method %q for endpoint %q", ep.Method, ep.ID)
	}
}
