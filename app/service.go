// Package app assembles the dispatch service from configuration.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/floodops/dispatch/api/dispatch"
	"github.com/floodops/dispatch/config"
	coredispatch "github.com/floodops/dispatch/core/dispatch"
	"github.com/floodops/dispatch/core/dispatch/audit"
	coremetrics "github.com/floodops/dispatch/core/metrics"
	"github.com/floodops/dispatch/core/store"
	"github.com/floodops/dispatch/infra/logger"
	"github.com/floodops/dispatch/infra/metrics"
	"github.com/floodops/dispatch/infra/mqtt"
	"github.com/floodops/dispatch/internal/eventbus"
)

// Service orchestrates the dispatch engine, API server and notifiers.
type Service struct {
	Dispatch *coredispatch.Service
	Store    *store.MemoryStore

	bus         *eventbus.Bus
	audit       audit.Store
	notifier    *mqtt.Notifier
	log         logger.Logger
	apiAddr     string
	shutdown    time.Duration
	promEnabled bool
	promPort    string
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	st := store.NewMemoryStore()
	if cfg.Seed.Path != "" {
		seed, err := store.LoadSeed(cfg.Seed.Path)
		if err != nil {
			return nil, fmt.Errorf("load seed: %w", err)
		}
		if err := seed.Apply(st); err != nil {
			return nil, fmt.Errorf("apply seed: %w", err)
		}
	}

	var sinks []coremetrics.Sink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(cfg.Metrics)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sink := metrics.NewInfluxSinkWithFallback(cfg.Metrics.InfluxURL, cfg.Metrics.InfluxToken, cfg.Metrics.InfluxOrg, cfg.Metrics.InfluxBucket)
		sinks = append(sinks, sink)
	}
	var sink coremetrics.Sink
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	var auditStore audit.Store
	var err error
	switch cfg.Audit.Backend {
	case config.AuditBackendJSONL:
		auditStore, err = audit.NewJSONLStore(cfg.Audit.Path)
	case config.AuditBackendSQLite:
		auditStore, err = audit.NewSQLiteStore(cfg.Audit.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("audit store: %w", err)
	}

	bus := eventbus.New()
	engine, err := coredispatch.NewService(st, bus, sink, auditStore, logger.New("dispatch"), cfg.Dispatch)
	if err != nil {
		return nil, fmt.Errorf("dispatch service: %w", err)
	}

	svc := &Service{
		Dispatch:    engine,
		Store:       st,
		bus:         bus,
		audit:       auditStore,
		log:         logg,
		apiAddr:     cfg.API.Addr,
		shutdown:    time.Duration(cfg.API.ShutdownTimeout) * time.Second,
		promEnabled: cfg.Metrics.PrometheusEnabled,
		promPort:    cfg.Metrics.PrometheusPort,
	}

	if cfg.MQTT.Enabled {
		notifier, err := mqtt.NewNotifier(cfg.MQTT.Config)
		if err != nil {
			return nil, fmt.Errorf("mqtt notifier: %w", err)
		}
		svc.notifier = notifier
	}
	return svc, nil
}

// Run starts the HTTP servers and notifier and blocks until the context is
// cancelled.
func (s *Service) Run(ctx context.Context) error {
	if s.notifier != nil {
		sub := s.bus.Subscribe()
		go s.notifier.Run(sub)
	}
	if s.promEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.promPort); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	srv := &http.Server{Addr: s.apiAddr, Handler: dispatch.NewMux(s.Dispatch, s.audit)}
	errCh := make(chan error, 1)
	go func() {
		s.log.Infof("API listening on %s", s.apiAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdown)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	s.bus.Close()
	if s.notifier != nil {
		s.notifier.Disconnect()
	}
	if s.audit != nil {
		return s.audit.Close()
	}
	return nil
}
