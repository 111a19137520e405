package server

import (
	"context"
	"database/sql"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"skillmatch-backend/internal/analyses"
	googleauth "skillmatch-backend/internal/auth"
	"skillmatch-backend/internal/llm"
	"skillmatch-backend/internal/llm/groq"
	"skillmatch-backend/internal/resumes"
	"skillmatch-backend/internal/shared/config"
	"skillmatch-backend/internal/shared/metrics"
	"skillmatch-backend/internal/shared/server/middleware"
	"skillmatch-backend/internal/shared/server/respond"
	"skillmatch-backend/internal/shared/storage/db"
	"skillmatch-backend/internal/shared/storage/object"
	localstore "skillmatch-backend/internal/shared/storage/object/local"
	s3store "skillmatch-backend/internal/shared/storage/object/s3"
	"skillmatch-backend/internal/uploads"
	"skillmatch-backend/internal/users"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
	)

	// Dependencies
	store := newObjectStore(cfg)
	sqlDB := connectDatabase(cfg)

	var resumesRepo resumes.ResumesRepo
	var usersRepo users.Repo
	if sqlDB != nil {
		resumesRepo = &resumes.PGRepo{DB: sqlDB}
		usersRepo = &users.PGRepo{DB: sqlDB}
	} else {
		resumesRepo = resumes.NewMemoryRepo()
		usersRepo = users.NewMemoryRepo()
	}

	var llmClient llm.Client
	if client, err := groq.NewClient(cfg.GroqAPIKey, cfg.GroqModel); err != nil {
		log.Printf("LLM client not configured, text analysis disabled: %v", err)
		llmClient = llm.PlaceholderClient{}
	} else {
		llmClient = client
	}

	userSvc := users.NewService(usersRepo)
	analysisHandler := analyses.NewHandler(analyses.NewService(llmClient))
	uploadHandler := uploads.NewHandler(store)
	resumesHandler := resumes.NewHandler(resumesRepo)
	usersHandler := users.NewHandler(userSvc)
	googleAuthSvc := googleauth.NewGoogleService(
		cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL, cfg.UIRedirectURL, userSvc)

	root := r.Group("/")
	root.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	root.GET("/metrics", metrics.Handler())
	analysisHandler.RegisterRoutes(root)
	uploadHandler.RegisterRoutes(root)
	resumesHandler.RegisterRoutes(root)
	usersHandler.RegisterRoutes(root)
	googleAuthSvc.RegisterRoutes(root)

	return r
}

func newObjectStore(cfg config.Config) object.ObjectStore {
	if cfg.ObjectStoreType == "s3" {
		store, err := s3store.New(context.Background(), cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
		if err != nil {
			log.Printf("failed to init s3 store, falling back to local: %v", err)
			return localstore.New(cfg.LocalStoreDir)
		}
		return store
	}
	return localstore.New(cfg.LocalStoreDir)
}

func connectDatabase(cfg config.Config) *sql.DB {
	if cfg.DatabaseURL == "" {
		return nil
	}
	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(context.Background(), cfg.DatabaseURL, opts)
	if err != nil {
		log.Printf("failed to connect database, falling back to memory: %v", err)
		return nil
	}
	if err := db.RunMigrations(context.Background(), sqlDB); err != nil {
		log.Printf("failed to run migrations, falling back to memory: %v", err)
		_ = sqlDB.Close()
		return nil
	}
	return sqlDB
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
