package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kopesha/internal/cache"
	"kopesha/internal/cache/memory"
	redcache "kopesha/internal/cache/redis"
	"kopesha/internal/config"
	httpx "kopesha/internal/http"
	"kopesha/internal/provider/payhero"
	loansvc "kopesha/internal/services/loan"
	"kopesha/internal/store/postgres"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool := postgres.MustOpen(ctx, cfg.DB.DSN)
	defer pool.Close()
	repo := postgres.NewRepo(pool)

	var statusCache cache.StatusCache = memory.New()
	if cfg.Redis.Addr != "" {
		statusCache = redcache.New(cfg.Redis.Addr)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("using redis status cache")
	}

	gw := payhero.New(cfg.PayHero)
	svc := loansvc.NewService(repo, repo, statusCache, gw)

	r := httpx.NewRouter(cfg, svc)

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Msgf("Kopesha API listening on :%s", cfg.App.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	cancel()
	ctx2, cancel2 := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	log.Info().Msg("server stopped")
}
