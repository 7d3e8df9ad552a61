package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	pkgdb "github.com/Skotchmaster/online_pharmacy/pkg/db"
	"github.com/Skotchmaster/online_pharmacy/pkg/events"
	"github.com/Skotchmaster/online_pharmacy/pkg/search"

	shopcfg "github.com/Skotchmaster/online_pharmacy/internal/config"
	"github.com/Skotchmaster/online_pharmacy/internal/httpserver"
	"github.com/Skotchmaster/online_pharmacy/internal/repo"
	"github.com/Skotchmaster/online_pharmacy/internal/service"
)

var (
	port        int
	autoMigrate bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().IntVar(&port, "port", 0, "listen port (default $SERVER_PORT or 8080)")
	serveCmd.Flags().BoolVar(&autoMigrate, "migrate", true, "create or update the schema before serving")
}

func runServe(ctx context.Context) error {
	cfg, err := shopcfg.Load()
	if err != nil {
		return err
	}
	if port > 0 {
		cfg.ServerPort = port
	}

	db, err := openDB(ctx, cfg.Config)
	if err != nil {
		return fmt.Errorf("db open: %w", err)
	}
	defer func() {
		if err := pkgdb.Close(db); err != nil {
			logger.Error("db_close_error", "error", err)
		}
	}()

	r := repo.New(db)
	if autoMigrate {
		if err := r.Migrate(ctx); err != nil {
			return err
		}
	}

	pub := events.New(cfg.KafkaBrokers)
	defer func() {
		if err := pub.Close(); err != nil {
			logger.Error("kafka_close_error", "error", err)
		}
	}()

	idx, err := search.NewIndex(ctx, search.Config{
		URL:      cfg.ESURL,
		User:     cfg.ESUser,
		Password: cfg.ESPassword,
		Index:    cfg.ESIndex,
	})
	if err != nil {
		logger.Warn("search_unavailable", "error", err)
		idx = nil
	}

	e := httpserver.New(logger)
	httpserver.Register(e, &httpserver.Deps{
		AuthHandler: &httpserver.AuthHTTP{Svc: &service.AuthService{
			Repo:      r,
			Events:    pub,
			JWTSecret: cfg.JWTSecret,
			TokenTTL:  cfg.JWTTTL,
		}},
		CatalogHandler: &httpserver.CatalogHTTP{Svc: &service.CatalogService{Repo: r, Index: idx}},
		OrderHandler:   &httpserver.OrderHTTP{Svc: &service.OrderService{Repo: r, Events: pub}},
		JWTSecret:      cfg.JWTSecret,
		Ready:          func(ctx context.Context) error { return pkgdb.Ping(ctx, db) },
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http_listening", "addr", srv.Addr, "search", idx.Enabled(), "kafka", len(cfg.KafkaBrokers) > 0)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	stop, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
	case <-stop.Done():
	}

	logger.Info("shutting_down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server_shutdown_error", "error", err)
	}
	logger.Info("shutdown_complete")
	return nil
}
