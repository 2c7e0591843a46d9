// Package repository fronts the API client for state controllers. Operations
// pass results through untouched and normalize every failure into a
// RequestError that keeps the cause reachable for classification.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Erhabor-Fona/using-retriofit/internal/domain"
	"github.com/Erhabor-Fona/using-retriofit/internal/logger"
	"github.com/Erhabor-Fona/using-retriofit/pkg/apiclient"
)

// RequestError wraps a lower-layer failure with the operation that ran.
type RequestError struct {
	Op  string
	Err error
}

func (e *RequestError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s: request failed: %v", e.Op, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// Repository is the single data-access entry point for the journeys API.
type Repository struct {
	api *apiclient.Client
	log logger.Logger
}

// New builds a Repository over the given client.
func New(api *apiclient.Client, log logger.Logger) (*Repository, error) {
	if api == nil {
		return nil, errors.New("api client must not be nil")
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Repository{api: api, log: log}, nil
}

// SubmitFeature submits a feature request.
func (r *Repository) SubmitFeature(ctx context.Context, req domain.FeatureRequest) (domain.FeatureResponse, error) {
	resp, err := r.api.SubmitFeature(ctx, req)
	if err != nil {
		return domain.FeatureResponse{}, r.fail("submit feature", err)
	}
	return resp, nil
}

// BookJourney submits a journey booking and returns the raw reply.
func (r *Repository) BookJourney(ctx context.Context, req domain.JourneyBookingRequest) (apiclient.RawResponse, error) {
	resp, err := r.api.BookJourney(ctx, req)
	if err != nil {
		return apiclient.RawResponse{}, r.fail("book journey", err)
	}
	return resp, nil
}

// ListUsers fetches the user directory.
func (r *Repository) ListUsers(ctx context.Context) (domain.UsersResponse, error) {
	resp, err := r.api.ListUsers(ctx)
	if err != nil {
		return domain.UsersResponse{}, r.fail("list users", err)
	}
	return resp, nil
}

func (r *Repository) fail(op string, err error) error {
	r.log.WarnObj("repository operation failed", "request_error", map[string]any{
		"op":    op,
		"kind":  string(apiclient.KindOf(err)),
		"error": err.Error(),
	})
	return &RequestError{Op: op, Err: err}
}
