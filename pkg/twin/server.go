/*
Copyright 2026 the ServeRest API Tests Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package twin is an in-memory stand-in for the users and login endpoints
// of ServeRest, so the end-to-end suites can run without network access.
package twin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

// Server serves the twin API.
type Server struct {
	options *Options
	store   *MemoryStore
	tokens  *TokenManager
	logger  *zap.Logger
}

// New creates a twin and loads its seed users.
func New(options *Options, logger *zap.Logger) (*Server, error) {
	if options == nil {
		options = DefaultOptions()
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	tokens, err := NewTokenManager(options.SigningKey, options.TokenTTL)
	if err != nil {
		return nil, err
	}

	users, err := loadSeed(options.SeedFile)
	if err != nil {
		return nil, err
	}

	store := NewMemoryStore()

	if err := store.Load(users); err != nil {
		return nil, fmt.Errorf("loading seed users: %w", err)
	}

	logger.Info("twin initialised",
		zap.Int("seed_users", store.Len()),
		zap.Bool("require_auth", options.RequireAuth),
		zap.Bool("omit_bearer_prefix", options.OmitBearerPrefix),
	)

	return &Server{
		options: options,
		store:   store,
		tokens:  tokens,
		logger:  logger,
	}, nil
}

// Store exposes the backing store.
func (s *Server) Store() *MemoryStore {
	return s.store
}

// Handler returns the routed API.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Post("/login", s.Login)

	r.Get("/usuarios", s.ListUsers)
	r.Post("/usuarios", s.CreateUser)
	r.Get("/usuarios/{id}", s.GetUser)
	r.With(s.authorize).Put("/usuarios/{id}", s.UpdateUser)
	r.With(s.authorize).Delete("/usuarios/{id}", s.DeleteUser)

	return r
}

// ListenAndServe serves on the configured address until the context is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.options.Listen,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)

	go func() {
		s.logger.Info("listening", zap.String("address", s.options.Listen))

		errs <- server.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}

	if err := <-errs; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving: %w", err)
	}

	return nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(body)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}
