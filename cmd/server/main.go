package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gerai-retail/api/internal/cache"
	"github.com/gerai-retail/api/internal/config"
	"github.com/gerai-retail/api/internal/database"
	"github.com/gerai-retail/api/internal/report"
	"github.com/gerai-retail/api/internal/router"
	"github.com/gerai-retail/api/internal/ws"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("Unable to ping database: %v", err)
	}
	log.Println("Connected to database")

	queries := database.New(pool)

	// Redis is optional: without it, reports hit the database directly.
	var reportCache report.Cache
	if cfg.RedisAddr != "" {
		rc := cache.NewRedisReportCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := rc.Ping(ctx); err != nil {
			log.Printf("WARN: redis unreachable at %s, report caching disabled: %v", cfg.RedisAddr, err)
		} else {
			log.Println("Connected to redis")
			reportCache = rc
			defer rc.Close()
		}
	}

	hub := ws.NewHub()
	go hub.Run()

	r := router.New(cfg, queries, pool, hub, reportCache)

	log.Printf("Starting server on :%s", cfg.Port)
	if err := http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), r); err != nil {
		log.Fatal(err)
	}
}
