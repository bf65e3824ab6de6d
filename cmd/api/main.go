package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"jobboard/internal/blob"
	"jobboard/internal/database"
	"jobboard/internal/domain/application"
	"jobboard/internal/domain/conversation"
	"jobboard/internal/domain/identity"
	"jobboard/internal/domain/job"
	"jobboard/internal/domain/notification"
	"jobboard/internal/middleware"
	jwtsvc "jobboard/internal/pkg/jwt"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is empty")
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is empty")
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal(err)
	}
	if err := db.AutoMigrate(
		&identity.User{},
		&job.Job{},
		&application.Application{},
		&conversation.Conversation{},
		&conversation.Message{},
		&notification.Notification{},
	); err != nil {
		log.Fatal(err)
	}

	resumes, staticDir := newBlobStore()

	j := jwtsvc.New(secret, 24*time.Hour)

	identityRepo := identity.NewRepository(db)
	identityService := identity.NewService(identityRepo, j)
	identityHandler := identity.NewHandler(identityService)

	jobRepo := job.NewRepository(db)
	jobService := job.NewService(jobRepo)
	jobHandler := job.NewHandler(jobService)

	countHub := notification.NewCountHub()
	notificationRepo := notification.NewRepository(db)
	notificationService := notification.NewService(notificationRepo, countHub)
	notificationHandler := notification.NewHandler(notificationService)
	notificationWS := notification.NewWSHandler(notificationService)

	applicationRepo := application.NewRepository(db)
	applicationService := application.NewService(applicationRepo, jobService, resumes, notificationService)
	applicationHandler := application.NewHandler(applicationService)

	messageHub := conversation.NewHub()
	conversationRepo := conversation.NewRepository(db)
	conversationService := conversation.NewService(conversationRepo, identityService, notificationService, messageHub)
	conversationHandler := conversation.NewHandler(conversationService)
	conversationWS := conversation.NewWSHandler(conversationService)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	if staticDir != "" {
		r.Static("/static/uploads", staticDir)
	}

	v1 := r.Group("/api/v1")
	{
		// public
		identityHandler.RegisterRoutes(v1)
		jobHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			identityHandler.RegisterProtectedRoutes(protected)
			jobHandler.RegisterEmployerRoutes(protected)
			applicationHandler.RegisterSeekerRoutes(protected)
			applicationHandler.RegisterEmployerRoutes(protected)
			conversationHandler.RegisterRoutes(protected)
			conversationWS.RegisterRoutes(protected)
			notificationHandler.RegisterRoutes(protected)
			notificationWS.RegisterRoutes(protected)
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}

// newBlobStore picks the resume store from STORAGE_DRIVER. The second return
// value is the directory to serve statically, empty unless the local driver
// is active.
func newBlobStore() (blob.Store, string) {
	switch os.Getenv("STORAGE_DRIVER") {
	case "minio":
		store, err := blob.NewMinIOStore(blob.MinIOConfig{
			Endpoint:        os.Getenv("MINIO_ENDPOINT"),
			AccessKeyID:     os.Getenv("MINIO_ACCESS_KEY"),
			SecretAccessKey: os.Getenv("MINIO_SECRET_KEY"),
			Bucket:          envOr("MINIO_BUCKET", "resumes"),
			UseSSL:          os.Getenv("MINIO_USE_SSL") == "true",
			PublicBaseURL:   os.Getenv("MINIO_PUBLIC_URL"),
		})
		if err != nil {
			log.Fatalf("minio init failed: %v", err)
		}
		return store, ""
	case "memory":
		return blob.NewMemoryStore(), ""
	default:
		dir := envOr("UPLOAD_DIR", "./uploads")
		return blob.NewLocalStore(dir, "/static/uploads"), dir
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
