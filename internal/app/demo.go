package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Erhabor-Fona/using-retriofit/internal/config"
	"github.com/Erhabor-Fona/using-retriofit/internal/domain"
	"github.com/Erhabor-Fona/using-retriofit/internal/logger"
	"github.com/Erhabor-Fona/using-retriofit/internal/repository"
	"github.com/Erhabor-Fona/using-retriofit/pkg/apiclient"
	"github.com/Erhabor-Fona/using-retriofit/pkg/httpclient"
	"github.com/Erhabor-Fona/using-retriofit/pkg/viewstate"
)

// Demo drives the three journeys API flows through the layered stack and
// renders every state transition they produce.
type Demo struct {
	cfg  *config.Config
	log  logger.Logger
	repo *repository.Repository
}

// NewDemo builds the demo runtime from config files.
func NewDemo(cfg *config.Config, log logger.Logger) (*Demo, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = logger.NopLogger{}
	}

	registry, err := apiclient.LoadRegistry(cfg.EndpointsFile)
	if err != nil {
		return nil, fmt.Errorf("load endpoints registry: %w", err)
	}
	endpoints := registry.All()
	endpointIDs := make([]string, 0, len(endpoints))
	for _, ep := range endpoints {
		endpointIDs = append(endpointIDs, ep.ID)
	}
	log.InfoObj("endpoints registry loaded", "endpoints_meta", map[string]any{
		"count": len(endpointIDs),
		"ids":   endpointIDs,
	})

	api, err := apiclient.New(cfg.APIBaseURL, registry, httpclient.NewRestyClient(cfg.HTTPTimeout), log)
	if err != nil {
		return nil, fmt.Errorf("build api client: %w", err)
	}
	repo, err := repository.New(api, log)
	if err != nil {
		return nil, fmt.Errorf("build repository: %w", err)
	}

	return &Demo{cfg: cfg, log: log, repo: repo}, nil
}

// Run executes the three flows concurrently. A flow that ends in a failed
// state is rendered, not returned as an error; Run fails only when a flow
// cannot be observed to completion. All observation failures are reported,
// not just the first.
func (d *Demo) Run(ctx context.Context) error {
	if d == nil || d.repo == nil {
		return fmt.Errorf("demo is not initialized")
	}

	start := time.Now()
	d.log.InfoObj("demo starting", "demo_state", map[string]any{
		"base_url": d.cfg.APIBaseURL,
	})

	flows := []struct {
		name string
		run  func(context.Context) error
	}{
		{name: "feature", run: d.runFeatureFlow},
		{name: "booking", run: d.runBookingFlow},
		{name: "users", run: d.runUsersFlow},
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for _, f := range flows {
		wg.Add(1)
		go func(name string, run func(context.Context) error) {
			defer wg.Done()
			if err := run(ctx); err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s flow: %w", name, err))
				mu.Unlock()
			}
		}(f.name, f.run)
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return err
	}

	d.log.InfoObj("demo completed", "demo_state", map[string]any{
		"elapsed_ms": time.Since(start).Milliseconds(),
	})
	return nil
}

func (d *Demo) runFeatureFlow(ctx context.Context) error {
	store := viewstate.New[domain.FeatureResponse]()
	defer store.Close()
	sub := store.Subscribe()
	defer sub.Cancel()

	req := domain.FeatureRequest{Param1: "TestValue", Param2: 123}
	token := store.Perform(ctx, func(ctx context.Context) (domain.FeatureResponse, error) {
		return d.repo.SubmitFeature(ctx, req)
	})

	_, err := observeFlow(ctx, d.log, "feature", sub, token)
	return err
}

func (d *Demo) runBookingFlow(ctx context.Context) error {
	store := viewstate.New[apiclient.RawResponse]()
	defer store.Close()
	sub := store.Subscribe()
	defer sub.Cancel()

	req := domain.JourneyBookingRequest{
		JourneyID:     "JNY-0042",
		StartLocation: "Lagos",
		EndLocation:   "Ibadan",
		StartTime:     "2026-09-01T08:30:00Z",
		EndTime:       "2026-09-01T10:45:00Z",
		Passengers: []domain.Passenger{
			{Name: "Ada Eze", Email: "ada.eze@example.com", Type: "adult"},
			{Name: "Seyi Eze", Email: "seyi.eze@example.com", Type: "child"},
		},
		CardID:      "CARD-001",
		TotalAmount: 15000,
		TestMode:    true,
	}
	token := store.Perform(ctx, func(ctx context.Context) (apiclient.RawResponse, error) {
		return d.repo.BookJourney(ctx, req)
	})

	_, err := observeFlow(ctx, d.log, "booking", sub, token)
	return err
}

func (d *Demo) runUsersFlow(ctx context.Context) error {
	store := viewstate.New[domain.UsersResponse]()
	defer store.Close()
	sub := store.Subscribe()
	defer sub.Cancel()

	token := store.Perform(ctx, func(ctx context.Context) (domain.UsersResponse, error) {
		return d.repo.ListUsers(ctx)
	})

	final, err := observeFlow(ctx, d.log, "users", sub, token)
	if err != nil {
		return err
	}
	if final.Phase == viewstate.PhaseSucceeded {
		for _, u := range final.Value.Data {
			d.log.InfoObj("user entry", "user", u)
		}
	}
	return nil
}
