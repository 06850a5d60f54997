package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"travelbot/internal/config"
	"travelbot/internal/handler"
	"travelbot/internal/repository"
	"travelbot/internal/service"
	"travelbot/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logg, err := logger.New(logger.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logg.Sync()

	logg.Info("travelbot server starting",
		logger.String("version", Version),
		logger.String("build_time", BuildTime),
		logger.String("git_commit", GitCommit))

	gin.SetMode(cfg.Server.GinMode)

	// Reference tables: loaded once, read-only afterwards.
	flights, err := repository.LoadFlights(cfg.Data.FlightsCSV)
	if err != nil {
		logg.Fatal("failed to load flight table", logger.Error(err))
	}
	hotels, err := repository.LoadHotels(cfg.Data.HotelsCSV)
	if err != nil {
		logg.Fatal("failed to load hotel table", logger.Error(err))
	}
	features, err := repository.LoadFlightFeatures(cfg.Data.FlightFeaturesCSV)
	if err != nil {
		logg.Fatal("failed to load flight feature table", logger.Error(err))
	}
	logg.Info("reference tables loaded",
		logger.Int("flights", len(flights)),
		logger.Int("hotels", len(hotels)),
		logger.Int("flight_features", len(features)))

	var openaiClient *service.OpenAIClient
	if cfg.OpenAI.Enabled {
		openaiClient = service.NewOpenAIClient(&cfg.OpenAI, logg)
		logg.Info("OpenAI client initialized",
			logger.String("api_base", cfg.OpenAI.APIBase),
			logger.String("chat_model", cfg.OpenAI.ChatModel),
			logger.String("embedding_model", cfg.OpenAI.EmbeddingModel))
	} else {
		logg.Warn("OpenAI is disabled - extraction and retrieval agents will degrade; set OPENAI_API_KEY to enable")
	}

	// Document store for the retrieval agents (optional).
	var faqAnswerer, loyaltyAnswerer *service.RetrievalAnswerer
	if cfg.PostgreSQL.Enabled {
		store, err := repository.NewDocumentStore(
			cfg.GetPostgreSQLDSN(),
			cfg.PostgreSQL.MaxConnections,
			cfg.PostgreSQL.MaxIdleConnections,
		)
		if err != nil {
			logg.Fatal("failed to connect to document store", logger.Error(err))
		}
		defer store.Close()
		faqAnswerer = service.NewRetrievalAnswerer(store, openaiClient, cfg.Retrieval.FAQTable, cfg.Retrieval.TopK, logg)
		loyaltyAnswerer = service.NewRetrievalAnswerer(store, openaiClient, cfg.Retrieval.LoyaltyTable, cfg.Retrieval.TopK, logg)
		logg.Info("document store connected")
	} else {
		logg.Warn("document store is disabled - FAQ and loyalty agents will be unavailable")
	}

	extractor := service.NewCriteriaExtractor(openaiClient, logg)
	filterEngine := service.NewFlightFilterEngine(flights)
	bookingBuilder := service.NewBookingLinkBuilder()
	recommender := service.NewRecommendationComposer(hotels, nil)
	dialog := service.NewDialogController(extractor, filterEngine, bookingBuilder, recommender, logg)
	amenityAgent := service.NewAmenityAgent(features, openaiClient, logg)

	askHandler := handler.NewAskHandler(faqAnswerer, loyaltyAnswerer, amenityAgent)
	chatHandler := handler.NewChatHandler(dialog, logg)

	router := gin.New()
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = strings.Split(cfg.Server.AllowedOrigins, ",")
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization"}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "travelbot",
			"version": Version,
		})
	})
	router.GET("/version", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/faq", askHandler.AskFAQ)
		apiV1.POST("/loyalty", askHandler.AskLoyalty)
		apiV1.POST("/flights/details", askHandler.AskFlightDetails)
		apiV1.GET("/flights/:number", askHandler.GetFlightFeatures)
	}

	router.GET("/ws/chat", chatHandler.Serve)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logg.Info("server listening", logger.String("addr", addr))

	go func() {
		if err := router.Run(addr); err != nil {
			logg.Fatal("server failed", logger.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logg.Info("shutting down")
}
