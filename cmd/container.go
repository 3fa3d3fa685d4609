package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/talenthub/portal/pkg/fsx"
	"github.com/talenthub/portal/pkg/fsx/fsxs3"
	"github.com/talenthub/portal/pkg/iam/auth"
	"github.com/talenthub/portal/pkg/iam/user/userinfra"
	"github.com/talenthub/portal/pkg/logx"
	"github.com/talenthub/portal/recruitment/application/applicationapi"
	"github.com/talenthub/portal/recruitment/application/applicationinfra"
	"github.com/talenthub/portal/recruitment/application/applicationsrv"
	"github.com/talenthub/portal/recruitment/cv/cvapi"
	"github.com/talenthub/portal/recruitment/cv/cvinfra"
	"github.com/talenthub/portal/recruitment/cv/cvsrv"
	"github.com/talenthub/portal/recruitment/cv/worker"
	"github.com/talenthub/portal/recruitment/search/searchapi"
	"github.com/talenthub/portal/recruitment/search/searchinfra"
	"github.com/talenthub/portal/recruitment/search/searchsrv"
)

const cleanupQueueName = "cv:file-cleanup"

// Container holds all application dependencies
type Container struct {
	// Infrastructure
	DB          *sqlx.DB
	Redis       *redis.Client
	S3Client    *s3.Client
	FileStorage fsx.FileStorage

	// Services
	TokenService       *auth.TokenService
	SearchService      *searchsrv.SearchService
	CvService          *cvsrv.CvService
	ApplicationService *applicationsrv.ApplicationService

	// Background
	CleanupWorker *worker.CleanupWorker

	// API Handlers
	SearchHandlers      *searchapi.Handlers
	CvHandlers          *cvapi.Handlers
	ApplicationHandlers *applicationapi.Handlers

	// Middleware
	AuthMiddleware *auth.Middleware
}

// NewContainer initializes the dependency injection container
func NewContainer() *Container {
	c := &Container{}
	c.initInfrastructure()
	c.initServices()
	return c
}

func (c *Container) initInfrastructure() {
	// 1. Database Connection
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPass := os.Getenv("DB_PASS")
	dbName := os.Getenv("DB_NAME")
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		dbHost, dbPort, dbUser, dbPass, dbName)

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		logx.Fatalf("Failed to connect to database: %v", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	c.DB = db

	// 2. Redis Connection
	c.Redis = redis.NewClient(&redis.Options{
		Addr:     os.Getenv("REDIS_ADDR"),
		Password: os.Getenv("REDIS_PASS"),
		DB:       0,
	})
	if _, err := c.Redis.Ping(context.Background()).Result(); err != nil {
		logx.Warnf("Failed to connect to Redis: %v", err)
	}

	// 3. File Storage
	storageCfg := fsxs3.Config{
		Region:          os.Getenv("AWS_REGION"),
		Bucket:          os.Getenv("AWS_BUCKET"),
		FolderName:      os.Getenv("STORAGE_FOLDER"),
		Credentials:     fsxs3.CredentialSource(os.Getenv("STORAGE_CREDENTIALS")),
		AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
		Profile:         os.Getenv("AWS_PROFILE"),
	}
	awsCfg, err := fsxs3.LoadAWSConfig(context.Background(), storageCfg)
	if err != nil {
		logx.Fatalf("Failed to load AWS config: %v", err)
	}
	c.S3Client = s3.NewFromConfig(awsCfg)
	c.FileStorage = fsxs3.NewS3FileStorage(c.S3Client, storageCfg)

	// 4. Token Service
	authCfg := auth.DefaultConfig()
	authCfg.SecretKey = os.Getenv("JWT_SECRET")
	if authCfg.SecretKey == "" {
		logx.Warn("JWT_SECRET is not set, using default (unsafe for production)")
		authCfg.SecretKey = "super-secret-key-please-change-me-in-production"
	}
	c.TokenService = auth.NewTokenService(authCfg)
}

func (c *Container) initServices() {
	// --- Repositories ---
	userRepo := userinfra.NewPostgresUserRepository(c.DB)
	searchRepo := searchinfra.NewPostgresSearchRepository(c.DB)
	cvRepo := cvinfra.NewPostgresCvRepository(c.DB)
	applicationRepo := applicationinfra.NewPostgresApplicationRepository(c.DB)
	cleanupQueue := cvinfra.NewRedisCleanupQueue(c.Redis, cleanupQueueName)

	// --- Domain Services ---
	c.SearchService = searchsrv.NewSearchService(searchRepo)
	c.CvService = cvsrv.NewCvService(cvRepo, c.FileStorage, cleanupQueue)
	c.ApplicationService = applicationsrv.NewApplicationService(
		applicationRepo,
		searchRepo,
		cvRepo,
		userRepo,
		applicationsrv.Config{
			StrictTransitions: os.Getenv("STRICT_TRANSITIONS") == "true",
		},
	)

	// --- Background ---
	c.CleanupWorker = worker.NewCleanupWorker(c.FileStorage, cleanupQueue, 2)

	// --- Handlers ---
	c.SearchHandlers = searchapi.NewHandlers(c.SearchService)
	c.CvHandlers = cvapi.NewHandlers(c.CvService)
	c.ApplicationHandlers = applicationapi.NewHandlers(c.ApplicationService)

	// --- Middleware ---
	c.AuthMiddleware = auth.NewMiddleware(c.TokenService)
}
