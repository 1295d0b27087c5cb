// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"countrydata/cli/internal/dataset"
	"countrydata/cli/internal/logging"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ShutdownTimeout bounds the graceful stop of both listeners.
const ShutdownTimeout = 15 * time.Second

// Options configures a Server.
type Options struct {
	// Addr is the HTTP listen address.
	Addr string
	// GRPCAddr is the gRPC health listen address. Empty disables it.
	GRPCAddr string
	// Countries is the selector list of the landing page.
	Countries []string
	// PingInterval overrides DefaultPingInterval.
	PingInterval time.Duration
	Logger        *slog.Logger
}

// Server runs the HTTP API and the gRPC health service over one dataset.
type Server struct {
	opts   Options
	src    dataset.Source
	log    *slog.Logger
	httpLn net.Listener
	grpcLn net.Listener
	health *health.Server
}

// New creates a server for src. Call Listen, then Serve.
func New(src dataset.Source, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.PingInterval <= 0 {
		opts.PingInterval = DefaultPingInterval
	}
	return &Server{opts: opts, src: src, log: opts.Logger, health: health.NewServer()}
}

// Listen binds the listeners so that Addr and GRPCAddr report the real ports.
func (s *Server) Listen() error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.opts.Addr, err)
	}
	s.httpLn = ln
	if s.opts.GRPCAddr == "" {
		return nil
	}
	gln, err := net.Listen("tcp", s.opts.GRPCAddr)
	if err != nil {
		_ = ln.Close()
		return fmt.Errorf("listen %s: %w", s.opts.GRPCAddr, err)
	}
	s.grpcLn = gln
	return nil
}

// Addr returns the bound HTTP address, or "" before Listen.
func (s *Server) Addr() string {
	if s.httpLn == nil {
		return ""
	}
	return s.httpLn.Addr().String()
}

// GRPCAddr returns the bound gRPC address, or "" when disabled.
func (s *Server) GRPCAddr() string {
	if s.grpcLn == nil {
		return ""
	}
	return s.grpcLn.Addr().String()
}

// Serve runs until ctx is canceled or a listener fails, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context) error {
	if s.httpLn == nil {
		if err := s.Listen(); err != nil {
			return err
		}
	}

	srv := &http.Server{
		Handler:      NewHandler(s.src, s.opts.Countries, s.log).Routes(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrors := make(chan error, 2)
	go func() {
		if err := srv.Serve(s.httpLn); !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("http: %w", err)
		}
	}()

	var gs *grpc.Server
	watchCtx, stopWatch := context.WithCancel(ctx)
	defer stopWatch()
	if s.grpcLn != nil {
		gs = grpc.NewServer()
		healthpb.RegisterHealthServer(gs, s.health)
		s.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
		go watchDataset(watchCtx, s.health, s.src, s.opts.PingInterval, s.log)
		go func() {
			if err := gs.Serve(s.grpcLn); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
				serverErrors <- fmt.Errorf("grpc: %w", err)
			}
		}()
	}
	s.log.Info("server started", "addr", s.Addr(), "grpc", s.GRPCAddr(), "dataset", s.src.Kind())

	var runErr error
	select {
	case runErr = <-serverErrors:
	case <-ctx.Done():
		s.log.Info("shutdown signal received")
	}

	stopWatch()
	s.health.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if gs != nil {
		stopped := make(chan struct{})
		go func() { gs.GracefulStop(); close(stopped) }()
		select {
		case <-stopped:
		case <-shutdownCtx.Done():
			gs.Stop()
		}
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Join(runErr, fmt.Errorf("server shutdown failed: %w", err))
	}
	s.log.Info("server stopped")
	return runErr
}
