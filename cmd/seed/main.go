package main

import (
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm/clause"

	"jobboard/internal/database"
	"jobboard/internal/domain/application"
	"jobboard/internal/domain/conversation"
	"jobboard/internal/domain/identity"
	"jobboard/internal/domain/job"
	"jobboard/internal/domain/notification"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "jobboard.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := db.AutoMigrate(
		&identity.User{},
		&job.Job{},
		&application.Application{},
		&conversation.Conversation{},
		&conversation.Message{},
		&notification.Notification{},
	); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM notifications")
	db.Exec("DELETE FROM conversation_messages")
	db.Exec("DELETE FROM conversations")
	db.Exec("DELETE FROM applications")
	db.Exec("DELETE FROM jobs")
	db.Exec("DELETE FROM users")

	log.Println("Creating users...")
	now := time.Now()

	employerHash, _ := bcrypt.GenerateFromPassword([]byte("employer123"), bcrypt.DefaultCost)
	employer := identity.User{
		ID:           uuid.NewString(),
		Email:        "employer@jobboard.dev",
		PasswordHash: string(employerHash),
		Name:         "Demo Employer",
		Role:         identity.RoleEmployer,
		CreatedAt:    now,
	}

	seekerHash, _ := bcrypt.GenerateFromPassword([]byte("seeker123"), bcrypt.DefaultCost)
	seeker := identity.User{
		ID:           uuid.NewString(),
		Email:        "seeker@jobboard.dev",
		PasswordHash: string(seekerHash),
		Name:         "Demo Seeker",
		Role:         identity.RoleJobSeeker,
		CreatedAt:    now,
	}

	if err := db.Create(&employer).Error; err != nil {
		log.Fatal("Create employer failed:", err)
	}
	if err := db.Create(&seeker).Error; err != nil {
		log.Fatal("Create seeker failed:", err)
	}

	log.Println("Creating jobs...")
	jobs := job.SampleJobs(now)
	for _, j := range jobs {
		j.EmployerID = employer.ID
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(j).Error; err != nil {
			log.Fatal("Create job failed:", err)
		}
	}

	log.Printf("Seeded %d jobs and 2 users", len(jobs))
	log.Println("  employer@jobboard.dev / employer123")
	log.Println("  seeker@jobboard.dev / seeker123")
}
