package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/avoronova/announcements-service/internal/config"
	apihttp "github.com/avoronova/announcements-service/internal/http"
	"github.com/avoronova/announcements-service/internal/service"
	"github.com/avoronova/announcements-service/internal/storage/mongo"
	"github.com/avoronova/announcements-service/pkg/log"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.Parse()

	cfg := config.MustLoad(configPath)

	lg := log.New(cfg.Env)
	slog.SetDefault(lg)
	lg.Info("starting announcements-service", "env", cfg.Env)

	rootCtx, rootCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer rootCancel()

	// Инициализация хранилища с собственным таймаутом:
	// стартовать бесконечно при недоступной БД нельзя.
	initCtx, initCancel := context.WithTimeout(rootCtx, 10*time.Second)
	store, err := mongo.New(initCtx, cfg)
	initCancel()
	if err != nil {
		lg.Error("storage_init_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}

	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if cerr := store.Close(closeCtx); cerr != nil {
			lg.Warn("storage_close_failed", slog.String("err", cerr.Error()))
		}
	}()

	lg.Info("storage_initialized")

	svc := service.New(store, *cfg)

	apiHandler := apihttp.NewRouter(svc, apihttp.Options{
		Logger:  lg,
		Timeout: cfg.Timeouts.Service,
	})

	apiAddr := cfg.HTTP.Addr()
	apiSrv := &http.Server{
		Addr:              apiAddr,
		Handler:           apiHandler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	apiLn, err := net.Listen("tcp", apiAddr)
	if err != nil {
		lg.Error("http_listen_failed", slog.String("addr", apiAddr), slog.String("err", err.Error()))
		os.Exit(1)
	}

	lg.Info("http_listen_start", slog.String("addr", apiAddr))

	serveErrCh := make(chan error, 1)
	go func() {
		if err := apiSrv.Serve(apiLn); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErrCh <- err
		}
		close(serveErrCh)
	}()

	// Отдельный порт для liveness/readiness и метрик.
	var ready int32 // 0 — not ready; 1 — ready

	metricsMux := http.NewServeMux()
	metricsMux.HandleFunc("/livez", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	metricsMux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if atomic.LoadInt32(&ready) == 1 {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
			return
		}

		http.Error(w, "not ready", http.StatusServiceUnavailable)
	})

	metricsMux.Handle("/metrics", promhttp.Handler())

	metricsAddr := cfg.Metrics.Addr()
	metricsSrv := &http.Server{
		Addr:              metricsAddr,
		Handler:           metricsMux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	metricsErrCh := make(chan error, 1)
	go func() {
		lg.Info("metrics_listen_start", slog.String("addr", metricsAddr))
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			metricsErrCh <- err
		}
		close(metricsErrCh)
	}()

	atomic.StoreInt32(&ready, 1)
	lg.Info("service_ready")

	select {
	case <-rootCtx.Done():
		lg.Info("shutdown_requested")
	case err := <-serveErrCh:
		if err != nil {
			lg.Error("http_serve_failed", slog.String("err", err.Error()))
		}
	case err := <-metricsErrCh:
		if err != nil {
			lg.Error("metrics_serve_failed", slog.String("err", err.Error()))
		}
	}

	atomic.StoreInt32(&ready, 0)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := apiSrv.Shutdown(shutdownCtx); err != nil {
		lg.Warn("http_shutdown_incomplete", slog.String("err", err.Error()))
	} else {
		lg.Info("http_stopped")
	}

	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		lg.Warn("metrics_shutdown_incomplete", slog.String("err", err.Error()))
	} else {
		lg.Info("metrics_stopped")
	}

	lg.Info("service_stopped")
}
