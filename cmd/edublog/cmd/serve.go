package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"edublog/internal/config"
	"edublog/internal/jwtsigner"
	"edublog/internal/observability/metrics"
	impl "edublog/internal/service/impl"
	"edublog/internal/store"
	"edublog/internal/store/redisstore"
	httpx "edublog/internal/transport/http"
	"edublog/pkg/db"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownGrace = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		gdb, err := db.OpenGorm(dbConfig())
		if err != nil {
			return err
		}
		st := store.New(gdb)
		if err := st.Ping(ctx); err != nil {
			return fmt.Errorf("database unreachable: %w", err)
		}
		logger.Info("connected to database")

		var sessions impl.SessionStore
		if cfg.SessionBackend == config.SessionBackendRedis {
			rdb, err := redisstore.Dial(ctx, cfg.RedisAddr, cfg.RedisPassword)
			if err != nil {
				return err
			}
			defer rdb.Close()
			sessions = redisstore.NewSessionStore(rdb)
			logger.Info("sessions stored in redis", "addr", cfg.RedisAddr)
		}

		signer, err := jwtsigner.New([]byte(cfg.JWTSecret), cfg.TokenTTL)
		if err != nil {
			return err
		}

		metrics.MustRegister(serviceName)

		handler := httpx.NewRouter(httpx.Services{
			Auth:        impl.NewAuthServiceImpl(st, sessions, signer, cfg.SessionTTL),
			Posts:       impl.NewPostServiceImpl(st),
			Reads:       impl.NewPostReadServiceImpl(st),
			Disciplines: impl.NewDisciplineServiceImpl(st),
		}, httpx.Options{
			CORSOrigins:    cfg.CORSOrigins,
			LoginRateLimit: cfg.LoginRateLimit,
			RequestTimeout: cfg.RequestTimeout,
		})

		srv := &http.Server{
			Addr:              cfg.Addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			logger.Info("edublog listening", "addr", srv.Addr, "env", cfg.Environment)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			logger.Info("shutting down")
			sctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
			defer cancel()
			return srv.Shutdown(sctx)
		})
		if err := g.Wait(); err != nil {
			return err
		}

		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
		return nil
	},
}
