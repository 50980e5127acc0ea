package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/smashscrap/marketplace/pkg/appraisal"
	"github.com/smashscrap/marketplace/pkg/bidding"
	"github.com/smashscrap/marketplace/pkg/cache"
	"github.com/smashscrap/marketplace/pkg/config"
	"github.com/smashscrap/marketplace/pkg/database"
	"github.com/smashscrap/marketplace/pkg/limiter"
	"github.com/smashscrap/marketplace/pkg/server"
	"github.com/smashscrap/marketplace/pkg/service"
)

const (
	gracefulTimeout = time.Second * 15
)

func main() {
	cfg := config.New()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLogLevel(cfg.LogLevel)}))
	slog.SetDefault(logger)

	db, closeDB, err := database.New(cfg.PostgresAddr, cfg.PostgresDB, cfg.PostgresUser, cfg.PostgresPassword)
	if err != nil {
		log.Fatalf("### Can't init database: %v", err)
	}
	defer closeDB()

	redisClient, closeRedis, err := cache.NewRedis(cfg.RedisAddr, cfg.RedisUser, cfg.RedisPassword)
	if err != nil {
		log.Fatalf("### Can't init redis: %v", err)
	}
	defer closeRedis()

	biddingSvc, itemSvc, packageSvc, saleSvc, err := composeServices(db, redisClient, cfg)
	if err != nil {
		log.Fatalf("### Can't compose services: %v", err)
	}

	srv, err := server.New(cfg.ListenAddr, biddingSvc, itemSvc, packageSvc, saleSvc)
	if err != nil {
		log.Fatalf("### Can't create server: %v", err)
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("### Can't listen and serve: %v", err)
		}
	}()
	slog.Info(fmt.Sprintf("HTTP server listening at %s", srv.Addr))

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	<-shutdown

	ctx, cancel := context.WithTimeout(context.Background(), gracefulTimeout)
	defer cancel()

	srv.Shutdown(ctx)
}

func composeServices(db *sql.DB, redisClient *redis.Client, cfg *config.Config) (biddingSvc service.Bidding, item service.Item, pkg service.Package, sale service.Sale, err error) {
	itemDB, err := database.NewItemDatabase(db)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("can't init item database: %w", err)
	}

	saleDB := &database.SaleDatabase{DB: db}

	source := appraisal.NewCachedSource(&database.AppraisalCategoryDatabase{DB: db}, cfg.AppraisalRefreshTTL)

	biddingSvc = &service.BiddingGeneric{
		Items:    itemDB,
		Sales:    saleDB,
		Bids:     &database.BidDatabase{DB: db},
		Rollup:   &database.RollupDatabase{DB: db},
		Attempts: database.NewAttemptBatchingDatabase(db, cfg.AttemptsBatchSize, cfg.AttemptsFlushInterval),

		Resolver:  &appraisal.Resolver{Source: source},
		Publisher: &bidding.RedisPublisher{Redis: redisClient},
	}

	if cfg.CachePrices {
		biddingSvc = &service.BiddingCaching{Bidding: biddingSvc, Redis: redisClient, TTL: cfg.PriceCacheTTL}
	}

	biddingSvc = &service.BiddingLimiting{Bidding: biddingSvc, Limiter: &limiter.Limiter{Redis: redisClient, Limit: cfg.BidsLimit, Window: cfg.BidsLimitWindow}, FailOpen: cfg.LimiterFailOpen}
	biddingSvc = &service.BiddingLogging{Bidding: biddingSvc}

	item = &service.ItemGeneric{ItemRepository: itemDB}
	pkg = &service.PackageGeneric{PackageRepository: &database.PackageDatabase{DB: db}}
	sale = &service.SaleGeneric{SaleRepository: saleDB}

	return
}

func parseLogLevel(lvl string) slog.Level {
	switch lvl {
	case slog.LevelDebug.String():
		return slog.LevelDebug
	case slog.LevelInfo.String():
		return slog.LevelInfo
	case slog.LevelWarn.String():
		return slog.LevelWarn
	case slog.LevelError.String():
		return slog.LevelError
	default:
		return slog.LevelDebug
	}
}
