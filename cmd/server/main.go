package main

import (
	"context"
	"errors"
	"log"
	"runtime"
	"time"

	"github.com/fadilmartias/job-portal/internal/config"
	"github.com/fadilmartias/job-portal/internal/domain/fiber/handler"
	"github.com/fadilmartias/job-portal/internal/middleware"
	"github.com/fadilmartias/job-portal/internal/model"
	"github.com/fadilmartias/job-portal/internal/parser"
	"github.com/fadilmartias/job-portal/internal/repository"
	"github.com/fadilmartias/job-portal/internal/service"
	"github.com/fadilmartias/job-portal/internal/usecase"
	"github.com/fadilmartias/job-portal/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Load .env file
	ctx := context.Background()
	err := godotenv.Load()
	if err != nil {
		log.Println("Could not load .env file")
	}

	appConfig := config.LoadAppConfig()

	app := fiber.New(fiber.Config{
		AppName:   appConfig.Name,
		BodyLimit: 6 * 1024 * 1024,
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			// Status code defaults to 500
			code := fiber.StatusInternalServerError

			// Retrieve the custom status code if it's a *fiber.Error
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}

			message := err.Error()
			if message == "" {
				message = "Internal Server Error"
			}

			return util.ErrorResponse(ctx, util.ErrorResponseFormat{
				Code:    code,
				Message: message,
			})
		},
	})
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: !appConfig.IsProduction(),
	}))

	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed, // 1
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return appConfig.IsProduction()
		},
	}))
	app.Use(healthcheck.New())

	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))

	app.Use(middleware.RateLimiter(50, 1*time.Minute))

	db := ConnectDB()

	parserConfig := config.LoadParserConfig()
	generator, apiKey, embedder := newAIClients(ctx, parserConfig)

	profileRepo := repository.NewCandidateProfileRepository(db)
	jobRepo := repository.NewJobRepository(db)
	storage := service.NewStorageService(config.LoadStorageConfig())

	extractor := util.NewTextExtractor(
		util.PDFTextSource{},
		util.NewOCRTextSource(parserConfig.OCREnabled, parserConfig.OCRLanguage),
		parserConfig.MinTextLength,
	)
	aiParser := parser.NewAIParser(generator, parser.AIParserConfig{
		APIKey:  apiKey,
		Timeout: parserConfig.AITimeout,
	})

	resumeUsecase := usecase.NewResumeUsecase(profileRepo, storage, extractor, aiParser, parser.NewHeuristicParser())
	jobUsecase := usecase.NewJobUsecase(jobRepo, profileRepo, embedder)

	handler.NewResumeHandler(resumeUsecase).RegisterRoutes(app)
	handler.NewJobHandler(jobUsecase).RegisterRoutes(app)

	// Monitor goroutine count
	go func() {
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			log.Printf("Active goroutines: %d", runtime.NumGoroutine())
		}
	}()

	log.Println("Server running on ", appConfig.Port)
	if err := app.Listen(appConfig.Port); err != nil {
		log.Fatal(err)
	}
}

// newAIClients builds the generator used for resume parsing and the Gemini
// embedder used for job matching. Missing credentials are not fatal: the
// service then runs on the heuristic parser alone.
func newAIClients(ctx context.Context, cfg *config.ParserConfig) (parser.Generator, string, usecase.Embedder) {
	var (
		generator parser.Generator
		apiKey    string
		embedder  usecase.Embedder
	)

	geminiConfig := config.LoadGeminiConfig()
	gemini, err := service.NewGeminiService(ctx, geminiConfig)
	if err != nil {
		log.Printf("Gemini disabled: %v", err)
	} else {
		embedder = gemini
	}

	switch cfg.AIProvider {
	case config.AIProviderOpenRouter:
		openRouterConfig := config.LoadOpenRouterConfig()
		generator = service.NewOpenRouterService(openRouterConfig)
		apiKey = openRouterConfig.APIKey
	default:
		if gemini != nil {
			generator = gemini
			apiKey = geminiConfig.APIKey
		}
	}

	if apiKey == "" {
		log.Printf("No API key for AI provider %q, resumes will be parsed heuristically", cfg.AIProvider)
	}
	return generator, apiKey, embedder
}

func ConnectDB() *gorm.DB {
	dbConfig := config.LoadDBConfig()
	appConfig := config.LoadAppConfig()

	db, err := gorm.Open(postgres.Open(dbConfig.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Could not connect to database: %v", err)
	}
	pgDB, err := db.DB()
	if err != nil {
		log.Fatalf("Could not get database instance: %v", err)
	}
	if !appConfig.IsProduction() {
		pgDB.SetMaxIdleConns(5)
		pgDB.SetMaxOpenConns(10)
		pgDB.SetConnMaxLifetime(30 * time.Minute)
	} else {
		pgDB.SetMaxIdleConns(20)
		pgDB.SetMaxOpenConns(200)
		pgDB.SetConnMaxLifetime(time.Hour)
	}

	for _, ext := range []string{`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`, `CREATE EXTENSION IF NOT EXISTS vector`} {
		if err := db.Exec(ext).Error; err != nil {
			log.Fatal("enable extension failed: ", err)
		}
	}

	// migrasi tabel
	err = db.AutoMigrate(&model.CandidateProfile{}, &model.Job{})
	if err != nil {
		log.Fatal("migration failed: ", err)
	}
	return db
}
