package apiclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/Erhabor-Fona/using-retriofit/internal/domain"
	"github.com/Erhabor-Fona/using-retriofit/pkg/httpclient"
)

// RawResponse carries a reply the caller interprets itself. Body round-trips
// as-is when logged or re-encoded.
type RawResponse struct {
	Status int                 `json:"status"`
	Body   jsoniter.RawMessage `json:"body"`
}

// Client binds the declared endpoints to typed operations. All operations
// are safe for concurrent use.
type Client struct {
	base     string
	registry *Registry
	http     httpclient.Client
	log      Logger
}

// DefaultHTTPClient returns a tuned transport for API calls.
func DefaultHTTPClient() httpclient.Client { return httpclient.NewRestyClient(15 * time.Second) }

// New builds a Client for the API rooted at baseURL. A nil transport falls
// back to DefaultHTTPClient, a nil registry to DefaultRegistry and a nil
// logger to a no-op one.
func New(baseURL string, registry *Registry, client httpclient.Client, log Logger) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("base url is empty")
	}
	if registry == nil {
		registry = DefaultRegistry()
	}
	if client == nil {
		client = DefaultHTTPClient()
	}

	return &Client{
		base:     baseURL,
		registry: registry,
		http:     client,
		log:      ensureLogger(log),
	}, nil
}

// SubmitFeature posts a feature request and decodes the reply envelope.
func (c *Client) SubmitFeature(ctx context.Context, req domain.FeatureRequest) (domain.FeatureResponse, error) {
	body, _, err := c.call(ctx, EndpointSubmitFeature, req)
	if err != nil {
		return domain.FeatureResponse{}, err
	}

	out, err := domain.DecodeFeatureResponse(body)
	if err != nil {
		return domain.FeatureResponse{}, &TransportError{Endpoint: EndpointSubmitFeature, Kind: KindDecode, Err: err}
	}
	return out, nil
}

// BookJourney posts a booking and returns the raw reply document. The booking
// endpoint pins no response schema, so interpretation stays with the caller.
func (c *Client) BookJourney(ctx context.Context, req domain.JourneyBookingRequest) (RawResponse, error) {
	body, status, err := c.call(ctx, EndpointBookJourney, req)
	if err != nil {
		return RawResponse{}, err
	}
	return RawResponse{Status: status, Body: body}, nil
}

// ListUsers fetches the user directory. Entries keep the order the server
// sent them in.
func (c *Client) ListUsers(ctx context.Context) (domain.UsersResponse, error) {
	body, _, err := c.call(ctx, EndpointListUsers, nil)
	if err != nil {
		return domain.UsersResponse{}, err
	}

	out, err := domain.DecodeUsersResponse(body)
	if err != nil {
		return domain.UsersResponse{}, &TransportError{Endpoint: EndpointListUsers, Kind: KindDecode, Err: err}
	}
	return out, nil
}

// call resolves the endpoint, performs the request and returns the body of a
// 2xx reply. Anything else becomes a TransportError.
func (c *Client) call(ctx context.Context, id string, body any) ([]byte, int, error) {
	ep, ok := c.registry.ByID(id)
	if !ok {
		return nil, 0, fmt.Errorf("endpoint %q is not declared", id)
	}
	if ep.TimeoutSeconds > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(ep.TimeoutSeconds)*time.Second)
		defer cancel()
	}

	url := c.base + ep.Path
	var (
		resp httpclient.Response
		err  error
	)
	switch ep.Method {
	case http.MethodGet:
		resp, err = c.http.Get(ctx, url, ep.Headers)
	case http.MethodPost:
		resp, err = c.http.Post(ctx, url, ep.Headers, body)
	default:
		return nil, 0, fmt.Errorf("endpoint %q: unsupported method %q", id, ep.Method)
	}
	if err != nil {
		c.log.WarnObj("endpoint call failed", "call_error", map[string]any{
			"endpoint": id,
			"url":      url,
			"error":    err.Error(),
		})
		return nil, 0, &TransportError{Endpoint: id, Kind: classify(err), Err: err}
	}

	raw := resp.Body()
	status := resp.StatusCode()
	if status < 200 || status > 299 {
		c.log.WarnObj("endpoint returned non-2xx status", "call_error", map[string]any{
			"endpoint": id,
			"url":      url,
			"status":   status,
		})
		return nil, 0, &TransportError{Endpoint: id, Kind: KindHTTP, Status: status, Err: errors.New(responseSnippet(raw))}
	}

	c.log.DebugObj("endpoint call completed", "call_result", map[string]any{
		"endpoint": id,
		"status":   status,
		"bytes":    len(raw),
	})
	return raw, status, nil
}

func responseSnippet(body []byte) string {
	const maxLen = 512
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	if s == "" {
		return "<empty>"
	}
	return s
}
