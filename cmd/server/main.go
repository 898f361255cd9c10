package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/LauraSouzaCastro/projeto13-batepapo-uol-api/internal/config"
	httpapi "github.com/LauraSouzaCastro/projeto13-batepapo-uol-api/internal/http"
	"github.com/LauraSouzaCastro/projeto13-batepapo-uol-api/internal/log"
	"github.com/LauraSouzaCastro/projeto13-batepapo-uol-api/internal/metrics"
	"github.com/LauraSouzaCastro/projeto13-batepapo-uol-api/internal/queue"
	"github.com/LauraSouzaCastro/projeto13-batepapo-uol-api/internal/repo"
	"github.com/LauraSouzaCastro/projeto13-batepapo-uol-api/internal/sweeper"
)

func main() {
	cfg := config.Load()

	logger, err := log.Init(cfg.Prod())
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	metrics.MustRegister()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := repo.NewStore(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Errorf("mongo connect: %v", err)
		os.Exit(1)
	}
	defer store.Close(context.Background())

	if err := store.EnsureIndexes(ctx); err != nil {
		log.Errorf("ensure indexes: %v", err)
		os.Exit(1)
	}

	var rds *repo.Redis
	if cfg.RedisAddr != "" {
		rds = repo.NewRedis(cfg.RedisAddr)
		if err := rds.Ping(ctx); err != nil {
			log.Errorf("redis connect: %v", err)
			os.Exit(1)
		}
		defer rds.Close()
	}

	pub := queue.NewNoop()
	if cfg.RabbitURL != "" {
		pub, err = queue.NewRabbit(cfg.RabbitURL, queue.Exchange)
		if err != nil {
			log.Errorf("rabbit connect: %v", err)
			os.Exit(1)
		}
	}
	defer pub.Close()

	h := httpapi.NewHandler(store, pub, rds, cfg.RateLimitPerMin)
	r := httpapi.NewRouter(h)

	sw := sweeper.New(store, pub,
		time.Duration(cfg.SweepIntervalMS)*time.Millisecond,
		time.Duration(cfg.StaleAfterMS)*time.Millisecond,
	)
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go sw.Run(sweepCtx)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	srvErr := make(chan error, 1)
	go func() { srvErr <- srv.ListenAndServe() }()

	log.Infof("chat backend listening on :%s", cfg.Port)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		log.Infof("signal: %s, shutting down", s)
	case err := <-srvErr:
		log.Errorf("server error: %v", err)
	}

	stopSweep()
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("shutdown: %v", err)
	}
}
