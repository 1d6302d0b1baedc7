package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"ats-screener/internal/config"
	"ats-screener/internal/handlers"
	"ats-screener/internal/repositories"
	"ats-screener/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	docRepo := repositories.NewDocumentRepository(db)
	jobRepo := repositories.NewJobRepository(db)
	screeningRepo := repositories.NewScreeningRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize storage
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	extractorService := services.NewTextExtractorService()

	skillService, err := services.NewSkillExtractorService(cfg.Screening.SkillsFile)
	if err != nil {
		log.Fatalf("❌ Failed to load skill vocabulary: %v", err)
	}
	log.Printf("✅ Skill vocabulary loaded (%d entries)", skillService.VocabularySize())

	// Initialize model backends. Both are optional; with neither configured
	// the screener runs on the deterministic fallback path.
	var geminiService services.GeminiService
	if cfg.Models.RemoteModelAPIKey != "" {
		geminiService, err = services.NewGeminiService(
			cfg.Models.RemoteModelAPIKey,
			cfg.Models.RemoteModelName,
			cfg.Models.EmbeddingModelName,
		)
		if err != nil {
			log.Fatalf("❌ Failed to initialize remote model client: %v", err)
		}
		log.Println("✅ Remote model client initialized")
	}

	ollamaService := services.NewOllamaService(
		cfg.Models.OllamaHost,
		cfg.Models.LocalModelName,
		cfg.Models.EmbeddingModelName,
		cfg.Models.RequestTimeout,
	)

	// Prefer the remote embedding backend when an API key is present.
	embedderFactory := func() (services.Embedder, error) {
		if geminiService != nil {
			return services.NewGeminiEmbedder(geminiService), nil
		}
		return services.NewOllamaEmbedder(ollamaService), nil
	}
	similarityService := services.NewSimilarityService(embedderFactory)

	// Narrative chain: local model first, remote second, deterministic
	// fallback last.
	generators := []services.TextGenerator{
		services.NewLocalGenerator(ollamaService, cfg.Models.LocalModelName != ""),
		services.NewRemoteGenerator(geminiService, cfg.Models.UseRemoteModel && geminiService != nil, cfg.Models.RequestTimeout),
	}
	narrativeService := services.NewNarrativeService(generators, cfg.Screening.SummaryMaxChars)

	// Initialize talent index. Best-effort: screening works without it.
	var talentService services.TalentIndexService
	talent, err := services.NewTalentIndexService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
		cfg.Qdrant.VectorSize,
	)
	if err != nil {
		log.Printf("⚠️  Talent index unavailable, continuing without it: %v", err)
	} else if err := talent.InitCollection(); err != nil {
		log.Printf("⚠️  Failed to initialize talent index collection, continuing without it: %v", err)
	} else {
		talentService = talent
		log.Println("✅ Talent index initialized successfully")
	}

	// Initialize screener
	screenerService := services.NewScreenerService(
		extractorService,
		skillService,
		similarityService,
		narrativeService,
		talentService,
	)
	log.Println("✅ Screener service initialized")

	// Initialize worker
	worker := services.NewWorker(
		screeningRepo,
		jobRepo,
		docRepo,
		storageService,
		screenerService,
		cfg.Worker.Concurrency,
	)
	log.Println("✅ Worker initialized successfully")

	// Start worker
	ctx := context.Background()
	worker.Start(ctx)
	log.Println("✅ Worker started successfully")

	// Initialize handlers
	uploadHandler := handlers.NewUploadHandler(
		docRepo,
		storageService,
		cfg.Storage.MaxFileSize,
	)
	jobHandler := handlers.NewJobHandler(jobRepo)
	screeningHandler := handlers.NewScreeningHandler(
		screeningRepo,
		jobRepo,
		docRepo,
		worker,
	)
	screenHandler := handlers.NewScreenHandler(screenerService, cfg.Storage.MaxFileSize)
	searchHandler := handlers.NewSearchHandler(similarityService, talentService)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "ATS Screener API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// API endpoints
	api.Post("/upload", uploadHandler.HandleUpload)
	api.Post("/jobs", jobHandler.HandleCreate)
	api.Get("/jobs", jobHandler.HandleList)
	api.Get("/jobs/:id", jobHandler.HandleGet)
	api.Post("/screenings", screeningHandler.HandleCreate)
	api.Get("/screenings/:id", screeningHandler.HandleGetResult)
	api.Post("/screen", screenHandler.HandleScreen)
	api.Post("/candidates/search", searchHandler.HandleSearch)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "ATS Screener API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/upload",
				"POST /api/v1/jobs",
				"GET /api/v1/jobs",
				"GET /api/v1/jobs/:id",
				"POST /api/v1/screenings",
				"GET /api/v1/screenings/:id",
				"POST /api/v1/screen",
				"POST /api/v1/candidates/search",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		worker.Stop()
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
