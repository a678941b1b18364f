package main

import (
	"context"
	"log"

	"LearnScout/be/internal/auth"
	"LearnScout/be/internal/cache"
	"LearnScout/be/internal/chatbot"
	"LearnScout/be/internal/config"
	LSDb "LearnScout/be/internal/db"
	"LearnScout/be/internal/discovery"
	"LearnScout/be/internal/llm"
	"LearnScout/be/internal/ratelimit"
	"LearnScout/be/internal/scorer"
	"LearnScout/be/internal/search"
	"LearnScout/be/internal/tracking"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/generative-ai-go/genai"
	_ "github.com/lib/pq"
	"github.com/sashabaranov/go-openai"
	"google.golang.org/api/option"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("config/config.yaml", "config/.env")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize router
	router := gin.Default()
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Initialize database
	db, err := LSDb.NewLSDb("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.EnsureSchema(); err != nil {
		log.Fatalf("Failed to apply schema: %v", err)
	}

	defer func() {
		if err := db.Close(); err != nil {
			log.Fatalf("Failed to close database: %v", err)
		}
	}()

	// Configure CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowOrigins,
		AllowMethods:     cfg.CORS.AllowMethods,
		AllowHeaders:     cfg.CORS.AllowHeaders,
		ExposeHeaders:    cfg.CORS.ExposeHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
	}))

	// Initialize AI providers. OpenAI drives the chat assistant; Gemini
	// scores content when a key is configured, otherwise OpenAI does both.
	openAIClient := openai.NewClient(cfg.OpenAI.APIKey)
	openAIProvider := llm.NewOpenAIProvider(openAIClient)

	scorerProvider := llm.AIProvider(openAIProvider)
	scorerModel := cfg.OpenAI.Model
	if cfg.GeminiAI.APIKey != "" {
		geminiClient, err := genai.NewClient(context.Background(), option.WithAPIKey(cfg.GeminiAI.APIKey))
		if err != nil {
			log.Fatalf("Failed to create Gemini client: %v", err)
		}
		defer geminiClient.Close()
		scorerProvider = llm.NewGeminiAIProvider(geminiClient)
		scorerModel = cfg.GeminiAI.Model
	}

	scorerService := scorer.NewServiceImpl(scorerProvider, scorerModel, cfg.Discovery.CallTimeout)

	// Content sources
	videoAPI, err := search.NewYouTubeAPI(context.Background(), cfg.YouTube.APIKey)
	if err != nil {
		log.Fatalf("Failed to create YouTube client: %v", err)
	}
	videoFetcher := search.NewVideoFetcher(videoAPI, cfg.Discovery)
	websiteFetcher := search.NewWebsiteFetcher(search.NewSerpAPISearcher(cfg.SerpAPI.APIKey))
	blogFetcher := search.NewBlogFetcher()

	cacheStore := cache.NewRepositoryImpl(db, cfg.Discovery.CacheTTL)

	authn := auth.NewMiddleware(cfg.JWT)

	// Search history, notes and progress
	trackingService := tracking.NewServiceImpl(tracking.NewRepositoryImpl(db))
	trackingController := tracking.NewControllerImpl(trackingService)
	trackingController.RegisterRoutes(router, authn)

	// Discovery pipeline
	discoveryService := discovery.NewServiceImpl(
		videoFetcher,
		websiteFetcher,
		blogFetcher,
		scorerService,
		cacheStore,
		videoAPI,
		cfg.Discovery,
	)
	discoveryController := discovery.NewController(discoveryService, scorerService, trackingService)
	discoveryController.RegisterRoutes(router, authn)

	// Chat assistant
	chatService := chatbot.NewServiceImpl(openAIProvider, cfg.OpenAI.Model)
	chatLimiter := ratelimit.NewMemoryStore(cfg.RateLimit.Requests, cfg.RateLimit.Window)
	chatController := chatbot.NewController(chatService, chatLimiter)
	chatController.RegisterRoutes(router, authn)

	// Start server
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Error starting server: %v", err)
	}
}
