// Copyright 2024 The babeld Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package mgmtapi implements the http status API of the daemon.
package mgmtapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/babelrouting/babeld/babeld/control"
	"github.com/babelrouting/babeld/babeld/iface"
	"github.com/babelrouting/babeld/pkg/log"
)

// BaseURL is the prefix of all API routes.
const BaseURL = "/api/v1"

// DefaultTimeout bounds the time a request waits for the event loop.
const DefaultTimeout = 2 * time.Second

// Source provides the state exposed by the API. It is implemented by
// *control.Loop.
type Source interface {
	Interfaces(ctx context.Context) ([]iface.Status, error)
	Interface(ctx context.Context, name string) (iface.Status, error)
	Enabled(ctx context.Context) ([]string, error)
	RunningConfig(ctx context.Context) ([]control.InterfaceSettings, error)
}

// Server implements the http status API of the daemon.
type Server struct {
	Source Source
	// LogLevel serves the log level. If nil, the route is not registered.
	LogLevel http.Handler
	// Timeout bounds each request. If zero, DefaultTimeout is used.
	Timeout time.Duration
	// Logger is the base of the per-request loggers. If nil, the root logger
	// is used.
	Logger log.Logger
}

// Problem is an RFC 7807 error response.
type Problem struct {
	Type   string `json:"type,omitempty"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// EnabledResponse lists the interfaces the protocol is enabled on.
type EnabledResponse struct {
	Interfaces []string `json:"interfaces"`
}

// ConfigResponse lists the interface settings that differ from the defaults.
type ConfigResponse struct {
	Interfaces []control.InterfaceSettings `json:"interfaces"`
}

// Handler returns the router serving the API under BaseURL.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
	}))
	r.Route(BaseURL, func(r chi.Router) {
		r.Get("/interfaces", s.GetInterfaces)
		r.Get("/interfaces/{name}", s.GetInterface)
		r.Get("/enabled", s.GetEnabled)
		r.Get("/config", s.GetConfig)
		if s.LogLevel != nil {
			r.Get("/log/level", s.LogLevel.ServeHTTP)
			r.Put("/log/level", s.LogLevel.ServeHTTP)
		}
	})
	return r
}

// GetInterfaces lists all known interfaces.
func (s *Server) GetInterfaces(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.context(r)
	defer cancel()
	st, err := s.Source.Interfaces(ctx)
	if err != nil {
		fail(w, r, err, "error getting interfaces")
		return
	}
	if st == nil {
		st = []iface.Status{}
	}
	respond(w, st)
}

// GetInterface describes one interface.
func (s *Server) GetInterface(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.context(r)
	defer cancel()
	st, err := s.Source.Interface(ctx, chi.URLParam(r, "name"))
	if err != nil {
		fail(w, r, err, "error getting interface")
		return
	}
	respond(w, st)
}

// GetEnabled lists the enable set.
func (s *Server) GetEnabled(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.context(r)
	defer cancel()
	names, err := s.Source.Enabled(ctx)
	if err != nil {
		fail(w, r, err, "error getting enabled interfaces")
		return
	}
	if names == nil {
		names = []string{}
	}
	respond(w, EnabledResponse{Interfaces: names})
}

// GetConfig returns the running interface configuration.
func (s *Server) GetConfig(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.context(r)
	defer cancel()
	cfg, err := s.Source.RunningConfig(ctx)
	if err != nil {
		fail(w, r, err, "error getting configuration")
		return
	}
	if cfg == nil {
		cfg = []control.InterfaceSettings{}
	}
	respond(w, ConfigResponse{Interfaces: cfg})
}

func (s *Server) context(r *http.Request) (context.Context, context.CancelFunc) {
	timeout := s.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return context.WithTimeout(r.Context(), timeout)
}

// requestLogger attaches a logger carrying the request id to the request
// context.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if s.Logger != nil {
			ctx = log.CtxWith(ctx, s.Logger)
		}
		ctx, _ = log.WithLabels(ctx, "request_id", middleware.GetReqID(ctx))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func fail(w http.ResponseWriter, r *http.Request, err error, title string) {
	p := problemFor(err, title)
	logger := log.FromCtx(r.Context())
	if p.Status >= http.StatusInternalServerError {
		logger.Error("Request failed", "path", r.URL.Path, "status", p.Status, "err", err)
	} else {
		logger.Debug("Request rejected", "path", r.URL.Path, "status", p.Status, "err", err)
	}
	ErrorResponse(w, p)
}

func problemFor(err error, title string) Problem {
	p := Problem{
		Title:  title,
		Status: http.StatusInternalServerError,
		Type:   "internal-error",
		Detail: err.Error(),
	}
	switch {
	case errors.Is(err, control.ErrUnknownInterface):
		p.Status = http.StatusNotFound
		p.Type = "not-found"
	case errors.Is(err, control.ErrLoopStopped),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		p.Status = http.StatusServiceUnavailable
		p.Type = "unavailable"
	}
	return p
}

func respond(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	if err := enc.Encode(v); err != nil {
		ErrorResponse(w, Problem{
			Detail: err.Error(),
			Status: http.StatusInternalServerError,
			Title:  "unable to marshal response",
			Type:   "internal-error",
		})
	}
}

// ErrorResponse writes a problem response.
func ErrorResponse(w http.ResponseWriter, p Problem) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	// no point in catching error here, there is nothing we can do about it anymore.
	_ = enc.Encode(p)
}
