package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"

	"github.com/sgladkov2017/currency-converter-agent/internal/facades"
	"github.com/sgladkov2017/currency-converter-agent/internal/handlers"
	"github.com/sgladkov2017/currency-converter-agent/internal/logger"
	"github.com/sgladkov2017/currency-converter-agent/internal/middlewares"
	"github.com/sgladkov2017/currency-converter-agent/internal/repositories"
	"github.com/sgladkov2017/currency-converter-agent/internal/services"

	pb "github.com/sbilibin2017/proto-exchange/exchange"
	httpSwagger "github.com/swaggo/http-swagger"
	"google.golang.org/genai"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// @title currency-converter-agent API
// @version 1.0.0
// @description Conversational service for currency conversion with LLM fallback
// @host localhost:8080
// @BasePath /api/v1
// @schemes http
func main() {
	printBuildInfo()
	configPath := parseFlags()

	appHost, appPort, logLevel,
		rateProvider, frankfurterURL,
		gwHost, gwPort,
		redisHost, redisPort, redisDB, redisPassword,
		redisPoolSize, redisMinIdleConns, rateCacheTTLSecond,
		geminiAPIKey, geminiModel, geminiTemperature, geminiMaxTokens, geminiTimeoutSecond,
		rateTimeoutSecond, sessionTimeoutSecond, maxHistory,
		kafkaBrokers, kafkaTopic,
		err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(),
		appHost, appPort, logLevel,
		rateProvider, frankfurterURL,
		gwHost, gwPort,
		redisHost, redisPort, redisDB, redisPassword,
		redisPoolSize, redisMinIdleConns, rateCacheTTLSecond,
		geminiAPIKey, geminiModel, geminiTemperature, geminiMaxTokens, geminiTimeoutSecond,
		rateTimeoutSecond, sessionTimeoutSecond, maxHistory,
		kafkaBrokers, kafkaTopic,
	); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Starting service version %s, commit %s, build %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file and returns all
// application, rate-provider, Redis, Gemini, session, and Kafka configuration.
func parseConfig(path string) (
	appHost, appPort, logLevel string,
	rateProvider, frankfurterURL string,
	gwHost, gwPort string,
	redisHost string, redisPort, redisDB int, redisPassword string,
	redisPoolSize, redisMinIdleConns, rateCacheTTLSecond int,
	geminiAPIKey, geminiModel string, geminiTemperature float64, geminiMaxTokens, geminiTimeoutSecond int,
	rateTimeoutSecond, sessionTimeoutSecond, maxHistory int,
	kafkaBrokers, kafkaTopic string,
	err error,
) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}

	// Application config
	appHost = getEnv("APP_HOST", "localhost")
	appPort = getEnv("APP_PORT", "8080")
	logLevel = getEnv("APP_LOG_LEVEL", "info")

	// Rate provider config
	rateProvider = getEnv("RATE_PROVIDER", "frankfurter")
	frankfurterURL = getEnv("FRANKFURTER_BASE_URL", "https://api.frankfurter.app")
	gwHost = getEnv("GW_EXCHANGER_HOST", "localhost")
	gwPort = getEnv("GW_EXCHANGER_PORT", "50051")
	if rateTimeoutSecond, err = strconv.Atoi(getEnv("RATE_TIMEOUT_SECOND", "5")); err != nil {
		return
	}

	// Redis config
	redisHost = getEnv("REDIS_HOST", "localhost")
	if redisPort, err = strconv.Atoi(getEnv("REDIS_PORT", "6379")); err != nil {
		return
	}
	if redisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0")); err != nil {
		return
	}
	redisPassword = getEnv("REDIS_PASSWORD", "")
	if redisPoolSize, err = strconv.Atoi(getEnv("REDIS_POOL_SIZE", "10")); err != nil {
		return
	}
	if redisMinIdleConns, err = strconv.Atoi(getEnv("REDIS_MIN_IDLE_CONNS", "2")); err != nil {
		return
	}
	if rateCacheTTLSecond, err = strconv.Atoi(getEnv("RATE_CACHE_TTL_SECOND", "60")); err != nil {
		return
	}

	// Gemini config
	geminiAPIKey = getEnv("GEMINI_API_KEY", "")
	geminiModel = getEnv("GEMINI_MODEL", "gemini-2.0-flash")
	if geminiTemperature, err = strconv.ParseFloat(getEnv("GEMINI_TEMPERATURE", "0.1"), 64); err != nil {
		return
	}
	if geminiMaxTokens, err = strconv.Atoi(getEnv("GEMINI_MAX_TOKENS", "500")); err != nil {
		return
	}
	if geminiTimeoutSecond, err = strconv.Atoi(getEnv("GEMINI_TIMEOUT_SECOND", "30")); err != nil {
		return
	}

	// Session config
	if sessionTimeoutSecond, err = strconv.Atoi(getEnv("SESSION_TIMEOUT_SECOND", "3600")); err != nil {
		return
	}
	if maxHistory, err = strconv.Atoi(getEnv("MAX_HISTORY", "20")); err != nil {
		return
	}

	// Kafka config, publishing is disabled when no brokers are set
	kafkaBrokers = getEnv("KAFKA_BROKERS", "")
	kafkaTopic = getEnv("KAFKA_TOPIC", "conversion-events")

	return
}

// run initializes the logger, Redis, the rate provider, the Gemini client,
// and the HTTP server. It sets up routes, applies middleware, and handles
// graceful shutdown.
func run(ctx context.Context,
	appHost, appPort, logLevel string,
	rateProvider, frankfurterURL string,
	gwHost, gwPort string,
	redisHost string, redisPort, redisDB int, redisPassword string,
	redisPoolSize, redisMinIdleConns, rateCacheTTLSecond int,
	geminiAPIKey, geminiModel string, geminiTemperature float64, geminiMaxTokens, geminiTimeoutSecond int,
	rateTimeoutSecond, sessionTimeoutSecond, maxHistory int,
	kafkaBrokers, kafkaTopic string,
) error {
	// Initialize logger
	if err := logger.Initialize(logLevel); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Sync()
	logger.Log.Infof("Logger initialized with level %s", logLevel)

	// Connect to Redis. The rate cache is optional: when Redis is down the
	// service runs without caching.
	var rateCache services.RateCache
	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", redisHost, redisPort),
		Password:     redisPassword,
		DB:           redisDB,
		PoolSize:     redisPoolSize,
		MinIdleConns: redisMinIdleConns,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Log.Warnw("Redis unavailable, rate caching disabled", "error", err)
	} else {
		rateCache = repositories.NewRateCacheRepository(rdb, time.Duration(rateCacheTTLSecond)*time.Second)
	}
	defer rdb.Close()

	// Select the rate provider
	var provider interface {
		services.RateProvider
		services.CurrencyLister
	}
	switch rateProvider {
	case "grpc":
		grpcAddr := fmt.Sprintf("%s:%s", gwHost, gwPort)
		conn, err := grpc.NewClient(grpcAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
		if err != nil {
			logger.Log.Errorw("failed to connect to gRPC exchanger", "addr", grpcAddr, "error", err)
			return err
		}
		defer conn.Close()
		provider = facades.NewExchangeRatesGRPCFacade(pb.NewExchangeServiceClient(conn))
		logger.Log.Infof("Using gRPC exchanger at %s", grpcAddr)
	default:
		provider = facades.NewFrankfurterFacade(frankfurterURL, nil)
		logger.Log.Infof("Using Frankfurter API at %s", frankfurterURL)
	}

	rateService := services.NewRateService(provider, rateCache)

	// Initialize the Gemini fallback
	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  geminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		logger.Log.Errorw("failed to create Gemini client", "error", err)
		return err
	}
	resolver := services.NewFallbackResolver(
		facades.NewGeminiFacade(genaiClient, geminiModel),
		float32(geminiTemperature),
		int32(geminiMaxTokens),
		time.Duration(geminiTimeoutSecond)*time.Second,
	)

	// Initialize Kafka publishing when brokers are configured
	var eventWriter services.KafkaWriter
	if kafkaBrokers != "" {
		w := &kafka.Writer{
			Addr:     kafka.TCP(strings.Split(kafkaBrokers, ",")...),
			Topic:    kafkaTopic,
			Balancer: &kafka.LeastBytes{},
		}
		defer w.Close()
		eventWriter = w
		logger.Log.Infof("Publishing conversion events to %s", kafkaTopic)
	}

	// Initialize the conversation store and orchestrator
	conversations := repositories.NewConversationRepository(
		time.Duration(sessionTimeoutSecond)*time.Second, maxHistory)

	chatService := services.NewChatService(
		services.NewExtractor(),
		resolver,
		rateService,
		conversations,
		provider,
		eventWriter,
		time.Duration(rateTimeoutSecond)*time.Second,
	)

	// Initialize handlers
	chatHandler := handlers.NewChatHandler(chatService)
	getConversationHandler := handlers.NewGetConversationHandler(conversations)
	clearConversationHandler := handlers.NewClearConversationHandler(conversations)
	healthHandler := handlers.NewHealthHandler(buildVersion)

	// Setup router
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/chat", chatHandler)
		r.Get("/conversations/{session_id}", getConversationHandler)
		r.Post("/conversations/{session_id}/clear", clearConversationHandler)
		r.Get("/health", healthHandler)
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s:%s/swagger/doc.json", appHost, appPort)),
	))

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", appHost, appPort),
		Handler: r,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		logger.Log.Infof("HTTP server listening on %s:%s", appHost, appPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}

	logger.Log.Info("HTTP server stopped gracefully")
	return nil
}
