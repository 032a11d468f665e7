package app

import (
	"database/sql"
	"os"
	"time"

	"topcv/internal/application"
	"topcv/internal/auth"
	"topcv/internal/catalog"
	"topcv/internal/company"
	"topcv/internal/jobpost"
	"topcv/internal/messaging/kafka"
	"topcv/internal/middleware"
	"topcv/internal/recommend"
	"topcv/internal/resume"
	"topcv/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	router.Use(middleware.RequestID(), middleware.ContextLogger(zap.L()))

	// --- Repositories ---
	userRepo := user.NewRepository(gormDB)
	companyRepo := company.NewRepository(gormDB)
	catalogRepo := catalog.NewRepository(gormDB)
	jobPostRepo := jobpost.NewRepository(gormDB)
	resumeRepo := resume.NewRepository(gormDB)
	applicationRepo := application.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Collaborators ---
	registrationStore := user.NewRegistrationStore(rdb)
	resumeStorage := resume.NewLocalStorage(resumeStorageDir())
	matcherClient := recommend.NewHTTPClient(os.Getenv("RECOMMEND_SERVICE_URL"), matcherTimeout())

	// --- Services ---
	userService := user.NewService(db, userRepo, registrationStore, outboxRepo)
	authService := auth.NewService(userRepo)
	companyService := company.NewService(db, companyRepo, catalogRepo)
	catalogService := catalog.NewService(catalogRepo, rdb)
	jobPostService := jobpost.NewService(db, jobPostRepo, companyRepo)
	resumeService := resume.NewService(resumeRepo, resumeStorage)
	applicationService := application.NewService(db, applicationRepo, jobPostRepo, resumeRepo, userRepo, outboxRepo)
	recommendService := recommend.NewService(matcherClient, resumeRepo, jobPostRepo)

	// --- Handlers ---
	userHandler := user.NewHandler(userService)
	authHandler := auth.NewHandler(authService)
	companyHandler := company.NewHandler(companyService)
	catalogHandler := catalog.NewHandler(catalogService)
	jobPostHandler := jobpost.NewHandler(jobPostService)
	resumeHandler := resume.NewHandler(resumeService)
	applicationHandler := application.NewHandlerWithRedis(applicationService, rdb)
	recommendHandler := recommend.NewHandler(recommendService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		user.RegisterRoutes(api, userHandler)
		company.RegisterRoutes(api, companyHandler)
		catalog.RegisterRoutes(api, catalogHandler)
		jobpost.RegisterRoutes(api, jobPostHandler)
		resume.RegisterRoutes(api, resumeHandler)
		application.RegisterRoutes(api, applicationHandler, rdb)
		recommend.RegisterRoutes(api, recommendHandler)
	}

	return nil
}

func resumeStorageDir() string {
	if dir := os.Getenv("RESUME_STORAGE_DIR"); dir != "" {
		return dir
	}
	return "storage/resumes"
}

func matcherTimeout() time.Duration {
	if raw := os.Getenv("RECOMMEND_TIMEOUT"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			return d
		}
	}
	return 30 * time.Second
}
