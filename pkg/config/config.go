package config

import (
	"flag"
	"time"
)

type Config struct {
	LogLevel   string
	ListenAddr string

	PostgresAddr     string // Postgres address in host[:port] format
	PostgresDB       string
	PostgresUser     string
	PostgresPassword string

	RedisAddr     string // Redis address in host[:port] format
	RedisUser     string
	RedisPassword string

	LimiterFailOpen bool
	CachePrices     bool // whether to keep item prices in redis for the fast rejection path
	BidsLimit       int
	BidsLimitWindow time.Duration
	PriceCacheTTL   time.Duration

	AppraisalRefreshTTL time.Duration

	AttemptsBatchSize     int
	AttemptsFlushInterval time.Duration

	// Seed generator params
	SellerID     int
	PackageCount int
	ItemsPerPkg  int
	BidWindow    time.Duration
}

func New() *Config {
	c := &Config{}

	flag.StringVar(&c.LogLevel, "logLevel", LookupEnvString("LOG_LEVEL", "DEBUG"), "Set log level: DEBUG, INFO, WARNING, ERROR.")
	flag.StringVar(&c.ListenAddr, "listenAddr", LookupEnvString("LISTEN_ADDR", ":8000"), `Address in form of "[host]:port" that HTTP server should be listening on.`)

	flag.StringVar(&c.PostgresAddr, "postgresAddr", LookupEnvString("POSTGRES_ADDR", "127.0.0.1:5432"), "Set PostgreSQL address as host:port, where port is optional (without TLS).")
	flag.StringVar(&c.PostgresDB, "postgresDB", LookupEnvString("POSTGRES_DB", "marketplace"), "Set PostgreSQL DB.")
	flag.StringVar(&c.PostgresUser, "postgresUser", LookupEnvString("POSTGRES_USER", "develop"), "Set PostgreSQL user.")
	flag.StringVar(&c.PostgresPassword, "postgresPassword", LookupEnvString("POSTGRES_PASSWORD", "develop"), "Set PostgreSQL password.")

	flag.StringVar(&c.RedisAddr, "redisAddr", LookupEnvString("REDIS_ADDR", "127.0.0.1:6379"), "Redis address in host[:port] format.")
	flag.StringVar(&c.RedisUser, "redisUser", LookupEnvString("REDIS_USER", ""), "Redis user.")
	flag.StringVar(&c.RedisPassword, "redisPassword", LookupEnvString("REDIS_PASSWORD", ""), "Redis password.")

	flag.BoolVar(&c.LimiterFailOpen, "limiterFailOpen", LookupEnvBool("LIMITER_FAIL_OPEN", false), "Set to make limiter allow request if failed to check limits.")
	flag.BoolVar(&c.CachePrices, "cachePrices", LookupEnvBool("CACHE_PRICES", false), "Set to keep item prices in redis. May be useful when single item draws many bids.")
	flag.IntVar(&c.BidsLimit, "bidsLimit", LookupEnvInt("BIDS_LIMIT", 100), "Number of bids that single user can place within one limit window.")
	flag.DurationVar(&c.BidsLimitWindow, "bidsLimitWindow", LookupEnvDuration("BIDS_LIMIT_WINDOW", time.Hour), "Bid limit window in format that can be parsed by go's time.ParseDuration.")
	flag.DurationVar(&c.PriceCacheTTL, "priceCacheTTL", LookupEnvDuration("PRICE_CACHE_TTL", 10*time.Minute), "How long cached item prices live in redis.")

	flag.DurationVar(&c.AppraisalRefreshTTL, "appraisalRefreshTTL", LookupEnvDuration("APPRAISAL_REFRESH_TTL", 5*time.Minute), "How often the appraisal category snapshot is refreshed.")

	flag.IntVar(&c.AttemptsBatchSize, "attemptsBatchSize", LookupEnvInt("ATTEMPTS_BATCH_SIZE", 500), "Number of bid attempts to be stored in buffer before being flushed.")
	flag.DurationVar(&c.AttemptsFlushInterval, "attemptsFlushInterval", LookupEnvDuration("ATTEMPTS_FLUSH_INTERVAL", 10*time.Second), "How often bid attempts buffer should be flushed.")

	flag.IntVar(&c.SellerID, "sellerID", LookupEnvInt("SELLER_ID", 1), "Seller to own the generated data (only for seed-generator).")
	flag.IntVar(&c.PackageCount, "packageCount", LookupEnvInt("PACKAGE_COUNT", 3), "Number of packages to generate (only for seed-generator).")
	flag.IntVar(&c.ItemsPerPkg, "itemsPerPkg", LookupEnvInt("ITEMS_PER_PKG", 25), "Number of items per package (only for seed-generator).")
	flag.DurationVar(&c.BidWindow, "bidWindow", LookupEnvDuration("BID_WINDOW", 7*24*time.Hour), "How long the generated sale accepts bids (only for seed-generator).")

	flag.Parse()

	return c
}
