package server

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"docarchive-backend/internal/documents"
	"docarchive-backend/internal/embedding"
	embeddingopenai "docarchive-backend/internal/embedding/openai"
	"docarchive-backend/internal/extract"
	"docarchive-backend/internal/filing"
	"docarchive-backend/internal/ingest"
	"docarchive-backend/internal/metadata"
	metadataopenai "docarchive-backend/internal/metadata/openai"
	"docarchive-backend/internal/search"
	"docarchive-backend/internal/services/health"
	"docarchive-backend/internal/shared/config"
	"docarchive-backend/internal/shared/metrics"
	"docarchive-backend/internal/shared/server/middleware"
	"docarchive-backend/internal/shared/server/respond"
	"docarchive-backend/internal/shared/storage/db"
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
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				"DEFAULT": {Rate: 10, Burst: 20},
				"UPLOAD":  {Rate: 1, Burst: 5},
			},
			GroupFor: func(c *gin.Context) string {
				if c.Request.Method == http.MethodPost && strings.HasSuffix(c.FullPath(), "/documents") {
					return "UPLOAD"
				}
				return "DEFAULT"
			},
		}),
	)

	// Dependencies
	var sqlDB *sql.DB
	if cfg.DatabaseURL != "" {
		opts := db.OptionsFromEnv(db.DefaultServerOptions())
		dbConn, err := db.Connect(context.Background(), cfg.DatabaseURL, opts)
		if err != nil {
			log.Printf("failed to connect database, falling back to memory: %v", err)
		} else {
			if err := db.RunMigrations(context.Background(), dbConn); err != nil {
				log.Printf("failed to run migrations, falling back to memory: %v", err)
				dbConn = nil
			}
		}
		sqlDB = dbConn
	}

	var store documents.Store
	if sqlDB != nil {
		store = &documents.PGStore{DB: sqlDB}
	} else {
		store = documents.NewMemoryStore()
	}

	metaSvc := &metadata.Service{Gen: metadataGenerator(cfg)}
	embedder := newEmbedder(cfg)

	ingestSvc := &ingest.Service{
		Extractor:  &extract.PDFExtractor{},
		Metadata:   metaSvc,
		Embedder:   embedder,
		Resolver:   filing.ResolverFor(cfg.CategoryStrategy),
		Filer:      filing.NewFiler(cfg.ArchiveDir),
		Store:      store,
		StagingDir: cfg.StagingDir,
	}
	ingestHandler := ingest.NewHandler(ingestSvc)

	searchSvc := &search.Service{Store: store, Embedder: embedder, Limit: cfg.SearchLimit}
	searchHandler := search.NewHandler(searchSvc)

	healthSvc := health.NewService(store)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		report := healthSvc.Status(c.Request.Context())
		status := http.StatusOK
		if report.Status != "healthy" {
			status = http.StatusServiceUnavailable
		}
		respond.JSON(c, status, report)
	})
	api.GET("/metrics", metrics.Handler())
	ingestHandler.RegisterRoutes(api)
	searchHandler.RegisterRoutes(api)

	return r
}

// metadataGenerator picks the configured model provider, falling back to the
// local heuristic when no API key is available.
func metadataGenerator(cfg config.Config) metadata.Generator {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if cfg.LLMProvider != "openai" || apiKey == "" {
		log.Printf("no metadata model configured, using heuristic extraction")
		return metadata.HeuristicGenerator{}
	}
	client, err := metadataopenai.NewClient(apiKey, cfg.LLMModel)
	if err != nil {
		log.Printf("metadata model unavailable, using heuristic extraction: %v", err)
		return metadata.HeuristicGenerator{}
	}
	return client
}

func newEmbedder(cfg config.Config) embedding.Embedder {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if cfg.LLMProvider != "openai" || apiKey == "" {
		log.Printf("no embedding provider configured, semantic search disabled")
		return embedding.Disabled{}
	}
	client, err := embeddingopenai.NewClient(apiKey, cfg.EmbeddingModel)
	if err != nil {
		log.Printf("embedding provider unavailable, semantic search disabled: %v", err)
		return embedding.Disabled{}
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
