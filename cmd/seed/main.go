package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/transcript-iq/internal/adapter/repository"
	"github.com/johnquangdev/transcript-iq/internal/domain/entities"
	"github.com/johnquangdev/transcript-iq/internal/infrastructure/database"
	"github.com/johnquangdev/transcript-iq/pkg/config"
	pkgjwt "github.com/johnquangdev/transcript-iq/pkg/jwt"
)

const sampleTranscript = `Jamie Horton: Thanks for joining. How do you handle onboarding today?
Dr. Smith: Mostly spreadsheets. Honestly the handoff between sales and support is where it breaks.
Jamie Horton: What would you change first?
Dr. Smith: A single place to see what the customer was promised.`

const sampleTranscript2 = `Interviewer: Walk me through your first week with the product.
Priya Nair: Setup was quick, but I didn't trust the numbers until I could export them.
Interviewer: Would a single dashboard help?
Priya Nair: Not really. I'd rather have the raw data than another dashboard.`

func main() {
	tokenTTL := flag.Duration("token-ttl", 30*24*time.Hour, "lifetime of the printed bearer tokens")
	flag.Parse()

	log.Println("🚀 Seeding demo projects...")

	// Load configuration from .env
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	verifier := pkgjwt.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.Issuer)
	if !verifier.Enabled() {
		log.Fatalf("JWT_SECRET is required to issue demo tokens")
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	// Initialize database
	log.Println("📦 Connecting to database...")
	ctx := context.Background()
	db, err := database.NewPostgresDB(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	if _, err := database.AutoMigrate(db, logger); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	projects := repository.NewProjectRepository(db)
	transcripts := repository.NewTranscriptRepository(db)

	demoUsers := []struct {
		Email   string
		Project string
		Files   map[string]string
	}{
		{"alice@test.local", "Onboarding study", map[string]string{"smith.txt": sampleTranscript, "nair.txt": sampleTranscript2}},
		{"bob@test.local", "Reporting interviews", map[string]string{"nair.txt": sampleTranscript2}},
	}

	for i, u := range demoUsers {
		userID := uuid.New()

		project, err := entities.NewProject(&userID, u.Project, "Seeded demo project", "")
		if err != nil {
			log.Printf("❌ Invalid project %s: %v", u.Project, err)
			continue
		}
		if err := projects.Create(ctx, project); err != nil {
			log.Printf("❌ Failed to create project for %s: %v", u.Email, err)
			continue
		}
		if err := projects.UpdateContext(ctx, project.ID, "Goal: understand why new customers stall in their first month."); err != nil {
			log.Printf("⚠️  Failed to set context for %s: %v", u.Project, err)
		}

		for name, content := range u.Files {
			t, err := entities.NewTranscript(project.ID, name, content)
			if err != nil {
				log.Printf("❌ Invalid transcript %s: %v", name, err)
				continue
			}
			if err := transcripts.Create(ctx, t); err != nil {
				log.Printf("❌ Failed to create transcript %s: %v", name, err)
			}
		}

		token, err := verifier.Issue(userID, u.Email, "authenticated", *tokenTTL)
		if err != nil {
			log.Printf("❌ Failed to issue token for %s: %v", u.Email, err)
			continue
		}

		fmt.Printf("═══════════════════════════════════════════════════════════════\n")
		fmt.Printf("🟢 User %d: %s\n", i+1, u.Email)
		fmt.Printf("═══════════════════════════════════════════════════════════════\n")
		fmt.Printf("User ID:      %s\n", userID)
		fmt.Printf("Project:      %s (%s)\n", project.Name, project.ID)
		fmt.Printf("\n📋 Access Token (Copy to Postman, expires in %v):\n", *tokenTTL)
		fmt.Printf("%s\n", token)
		fmt.Printf("───────────────────────────────────────────────────────────────\n\n")
	}

	log.Println("✅ Demo projects created successfully!")
	log.Println("💡 Usage: set header Authorization: Bearer <access_token>")
}
