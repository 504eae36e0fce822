// Package api implements the blockswap HTTP server.
//
// The server exposes the same pipeline the CLI uses: conversion, analysis,
// and auditing of uploaded blueprint documents, plus read endpoints for
// categories, profiles, and run history. All responses are JSON; domain
// error codes map onto HTTP status codes in one place.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/blockswap/blockswap/pkg/history"
	"github.com/blockswap/blockswap/pkg/pipeline"
	"github.com/blockswap/blockswap/pkg/profile"
)

// maxUploadBytes bounds request bodies; blueprint documents run to a few
// megabytes at most.
const maxUploadBytes = 32 << 20

// Server wires the pipeline runner into HTTP handlers.
type Server struct {
	runner   *pipeline.Runner
	profiles *profile.Manager
	history  history.Store
	logger   *log.Logger
}

// NewServer creates a server. profiles and hist may be nil, disabling the
// corresponding endpoints' content.
func NewServer(runner *pipeline.Runner, profiles *profile.Manager, hist history.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		runner:   runner,
		profiles: profiles,
		history:  hist,
		logger:   logger,
	}
}

// Router builds the chi router with all routes and middleware.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/convert", s.handleConvert)
		r.Post("/analyze", s.handleAnalyze)
		r.Post("/audit", s.handleAudit)
		r.Get("/categories", s.handleCategories)
		r.Get("/profiles", s.handleProfiles)
		r.Get("/history", s.handleHistory)
		r.Get("/history/{id}", s.handleHistoryRun)
	})

	return r
}

// Serve runs the server until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

// logRequests logs one line per request with status and duration.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).Round(time.Millisecond))
	})
}
