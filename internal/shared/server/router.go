package server

import (
	"context"
	"database/sql"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"applyai-backend/internal/analysis"
	"applyai-backend/internal/llm"
	"applyai-backend/internal/llm/anthropic"
	"applyai-backend/internal/resumes"
	"applyai-backend/internal/shared/config"
	"applyai-backend/internal/shared/server/middleware"
	"applyai-backend/internal/shared/server/respond"
	"applyai-backend/internal/shared/storage/db"
	"applyai-backend/internal/shared/storage/object"
	localstore "applyai-backend/internal/shared/storage/object/local"
	s3store "applyai-backend/internal/shared/storage/object/s3"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
	)

	// Dependencies
	store := newObjectStore(cfg)
	sqlDB := openDatabase(cfg)
	client := newLLMClient(cfg)

	var resumeRepo resumes.Repo
	if sqlDB != nil {
		resumeRepo = &resumes.PGRepo{DB: sqlDB}
	} else {
		resumeRepo = resumes.NewMemoryRepo()
	}
	resumeSvc := &resumes.Service{Repo: resumeRepo, Store: store}
	resumeHandler := resumes.NewHandler(resumeSvc)

	var analysisRepo analysis.Repo
	if sqlDB != nil {
		analysisRepo = analysis.NewPGRepo(sqlDB)
	} else {
		analysisRepo = analysis.NewMemoryRepo()
	}
	analysisSvc := analysis.NewService(analysisRepo, resumeRepo, client)
	analysisHandler := analysis.NewHandler(analysisSvc)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})

	protected := api.Group("", middleware.Identity())
	resumeHandler.RegisterRoutes(protected)
	analysisHandler.RegisterRoutes(protected)

	return r
}

// openDatabase connects to Postgres when configured. Any failure falls back
// to in-memory repositories so dev setups run with no database at all.
func openDatabase(cfg config.Config) *sql.DB {
	if cfg.DatabaseURL == "" {
		return nil
	}
	ctx := context.Background()
	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		log.Printf("failed to connect database, falling back to memory: %v", err)
		return nil
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		log.Printf("failed to run migrations, falling back to memory: %v", err)
		sqlDB.Close()
		return nil
	}
	return sqlDB
}

func newObjectStore(cfg config.Config) object.ObjectStore {
	if cfg.ObjectStoreType == "s3" {
		store, err := s3store.New(context.Background(), cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
		if err != nil {
			log.Printf("failed to init s3 store, falling back to local: %v", err)
		} else {
			return store
		}
	}
	return localstore.New(cfg.LocalStoreDir)
}

// newLLMClient wires the configured provider. An unconfigured provider gets
// the placeholder client so the API serves resume routes regardless.
func newLLMClient(cfg config.Config) llm.Client {
	if cfg.LLMProvider != "anthropic" {
		log.Printf("unknown LLM provider %q, analyses disabled", cfg.LLMProvider)
		return llm.PlaceholderClient{}
	}
	client, err := anthropic.NewClient(cfg.AnthropicAPIKey, cfg.LLMModel)
	if err != nil {
		log.Printf("anthropic client not configured, analyses disabled: %v", err)
		return llm.PlaceholderClient{}
	}
	return client
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
