package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/redis/go-redis/v9"

	"github.com/rqxKnicklicht/visynet-productivity-tool/internal/config"
	"github.com/rqxKnicklicht/visynet-productivity-tool/internal/db"
	api "github.com/rqxKnicklicht/visynet-productivity-tool/internal/http"
	"github.com/rqxKnicklicht/visynet-productivity-tool/internal/http/handlers"
	rl "github.com/rqxKnicklicht/visynet-productivity-tool/internal/http/rate_limiter"
	"github.com/rqxKnicklicht/visynet-productivity-tool/internal/logging"
	"github.com/rqxKnicklicht/visynet-productivity-tool/internal/redissvc"
	"github.com/rqxKnicklicht/visynet-productivity-tool/internal/repo"
)

// @title Visynet Product API
// @version 1.0
// @description CRUD API for visynet product price records.
// @host localhost:8080
// @BasePath /
func main() {
	cfg := config.Load()

	log := logging.New(cfg.Env)
	slog.SetDefault(log)

	database, err := db.Connect(cfg)
	if err != nil {
		log.Error("could not connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	handlers.SetProductRepo(repo.NewPostgresProductRepository(database))

	limiter := rl.New(cfg.RateLimitPerSecond, cfg.RateLimitBurst)
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Error("could not connect to Redis", "error", err)
			os.Exit(1)
		}
		defer rdb.Close()
		limiter.SetStrikeStore(redissvc.NewStrikeStore(rdb), cfg.BanStrikeLimit, cfg.BanDuration)
	}
	go limiter.StartCleanupLoop()

	r := api.NewRouter(log, limiter)
	log.Info("server listening", "addr", cfg.HTTPAddr)
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
