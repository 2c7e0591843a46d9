package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Erhabor-Fona/using-retriofit/internal/config"
	"github.com/Erhabor-Fona/using-retriofit/internal/logger"
	"github.com/Erhabor-Fona/using-retriofit/internal/server"
	"github.com/Erhabor-Fona/using-retriofit/internal/storage"
)

const shutdownGrace = 5 * time.Second

// sampleUsers seeds an empty directory so GET /users has something to serve.
var sampleUsers = []struct {
	name  string
	email string
}{
	{name: "Ada Eze", email: "ada.eze@example.com"},
	{name: "Tunde Bakare", email: "tunde.bakare@example.com"},
}

// APIServer wires storage, handlers and the HTTP engine into the journeys
// backend runtime.
type APIServer struct {
	cfg   *config.Config
	log   logger.Logger
	store storage.Store
	srv   *http.Server
}

// NewAPIServer builds the backend runtime from config.
func NewAPIServer(cfg *config.Config, log logger.Logger) (*APIServer, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = logger.NopLogger{}
	}

	store, err := storage.NewStore(cfg.StorageType, cfg.BBoltPath)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}
	log.InfoObj("storage initialized", "storage_config", map[string]any{
		"type": cfg.StorageType,
		"path": cfg.BBoltPath,
	})

	seeded, err := seedSampleUsers(store)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("seed users: %w", err)
	}
	if seeded > 0 {
		log.InfoObj("user directory seeded", "seed_meta", map[string]any{"count": seeded})
	}

	router := server.NewRouter(server.NewHandlers(store, log))

	return &APIServer{
		cfg:   cfg,
		log:   log,
		store: store,
		srv:   &http.Server{Addr: cfg.ListenAddr, Handler: router},
	}, nil
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (a *APIServer) Run(ctx context.Context) error {
	if a == nil || a.srv == nil {
		return fmt.Errorf("api server is not initialized")
	}
	defer a.closeStore()

	a.log.InfoObj("api server listening", "server_state", map[string]any{
		"addr":    a.cfg.ListenAddr,
		"storage": a.cfg.StorageType,
	})

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := a.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := a.srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	a.log.InfoObj("api server stopped", "reason", ctx.Err())
	return nil
}

// seedSampleUsers fills an empty directory and reports how many entries it
// added. A directory with existing users is left alone.
func seedSampleUsers(store storage.Store) (int, error) {
	users, err := store.ListUsers()
	if err != nil {
		return 0, err
	}
	if len(users) > 0 {
		return 0, nil
	}

	for _, u := range sampleUsers {
		if _, err := store.AddUser(u.name, u.email); err != nil {
			return 0, err
		}
	}
	return len(sampleUsers), nil
}

// closeStore safely closes the storage backend, logging any errors encountered.
func (a *APIServer) closeStore() {
	if a == nil || a.store == nil {
		return
	}
	if err := a.store.Close(); err != nil {
		a.log.ErrorObj("storage close failed", "error", err.Error())
	}
}
