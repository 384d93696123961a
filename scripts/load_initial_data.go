package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"astralis-ops-backend/internal/config"
	"astralis-ops-backend/internal/database"
	"astralis-ops-backend/internal/database/models"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Simple structures that directly match DB schema
type OrganizationData struct {
	Name        string `yaml:"name"`
	DisplayName string `yaml:"display_name"`
	Domain      string `yaml:"domain"`
	Description string `yaml:"description"`
}

type UserData struct {
	OrganizationName string `yaml:"organization_name"`
	Email            string `yaml:"email"`
	Password         string `yaml:"password"`
	FirstName        string `yaml:"first_name"`
	LastName         string `yaml:"last_name"`
	Role             string `yaml:"role"`
}

type PostData struct {
	OrganizationName string `yaml:"organization_name"`
	Slug             string `yaml:"slug"`
	Title            string `yaml:"title"`
	Body             string `yaml:"body"`
	Published        bool   `yaml:"published"`
}

type BookingData struct {
	OrganizationName string `yaml:"organization_name"`
	ContactName      string `yaml:"contact_name"`
	ContactEmail     string `yaml:"contact_email"`
	ScheduledAt      string `yaml:"scheduled_at"`
	DurationMinutes  int    `yaml:"duration_minutes"`
	Status           string `yaml:"status"`
	Notes            string `yaml:"notes"`
}

// File structure
type SeedFile struct {
	Organizations []OrganizationData `yaml:"organizations"`
	Users         []UserData         `yaml:"users"`
	Posts         []PostData         `yaml:"posts"`
	Bookings      []BookingData      `yaml:"bookings"`
}

func main() {
	log.Println("🚀 Loading initial data from YAML files...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database with retry (for dockerized Postgres startup)
	db, err := connectWithRetry(cfg.DatabaseURL, 60, time.Second)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	seedPath := "scripts/data/seed.yaml"
	if len(os.Args) > 1 {
		seedPath = os.Args[1]
	}

	if err := loadSeedFile(db, seedPath); err != nil {
		log.Fatalf("Failed to load seed data: %v", err)
	}

	log.Println("✅ Initial data loaded successfully!")
}

// connectWithRetry attempts to initialize the DB with retries to wait for Postgres readiness.
func connectWithRetry(dsn string, maxAttempts int, delay time.Duration) (*gorm.DB, error) {
	// Suppress verbose GORM logging during data loading
	opts := &database.Options{
		LogLevel: logger.Silent,
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		db, err := database.Initialize(dsn, opts)
		if err == nil {
			return db, nil
		}
		// Only log every 10 attempts to reduce noise
		if attempt%10 == 0 || attempt == maxAttempts {
			log.Printf("Database not ready (%d/%d): %v", attempt, maxAttempts, err)
		}
		time.Sleep(delay)
	}
	return nil, fmt.Errorf("database not ready after %d attempts", maxAttempts)
}

func loadSeedFile(db *gorm.DB, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	var seed SeedFile
	if err := yaml.Unmarshal(raw, &seed); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	orgsByName, err := upsertOrganizations(db, seed.Organizations)
	if err != nil {
		return fmt.Errorf("failed to load organizations: %w", err)
	}

	if err := upsertUsers(db, orgsByName, seed.Users); err != nil {
		return fmt.Errorf("failed to load users: %w", err)
	}

	if err := upsertPosts(db, orgsByName, seed.Posts); err != nil {
		return fmt.Errorf("failed to load posts: %w", err)
	}

	if err := insertBookings(db, orgsByName, seed.Bookings); err != nil {
		return fmt.Errorf("failed to load bookings: %w", err)
	}

	return nil
}

func upsertOrganizations(db *gorm.DB, data []OrganizationData) (map[string]*models.Organization, error) {
	orgsByName := make(map[string]*models.Organization, len(data))

	for _, item := range data {
		var org models.Organization
		err := db.Where("name = ?", item.Name).First(&org).Error
		if err == gorm.ErrRecordNotFound {
			org = models.Organization{
				Name:        item.Name,
				DisplayName: item.DisplayName,
				Domain:      item.Domain,
				Description: item.Description,
			}
			if err := db.Create(&org).Error; err != nil {
				return nil, fmt.Errorf("create organization %s: %w", item.Name, err)
			}
			log.Printf("Created organization %s", item.Name)
		} else if err != nil {
			return nil, err
		} else {
			org.DisplayName = item.DisplayName
			org.Domain = item.Domain
			org.Description = item.Description
			if err := db.Save(&org).Error; err != nil {
				return nil, fmt.Errorf("update organization %s: %w", item.Name, err)
			}
		}
		orgsByName[item.Name] = &org
	}

	return orgsByName, nil
}

func upsertUsers(db *gorm.DB, orgsByName map[string]*models.Organization, data []UserData) error {
	for _, item := range data {
		org, ok := orgsByName[item.OrganizationName]
		if !ok {
			return fmt.Errorf("user %s references unknown organization %s", item.Email, item.OrganizationName)
		}

		var user models.User
		err := db.Where("email = ?", item.Email).First(&user).Error
		if err == gorm.ErrRecordNotFound {
			hash, err := bcrypt.GenerateFromPassword([]byte(item.Password), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("hash password for %s: %w", item.Email, err)
			}
			user = models.User{
				OrganizationID: org.ID,
				Email:          item.Email,
				PasswordHash:   string(hash),
				FirstName:      item.FirstName,
				LastName:       item.LastName,
				Role:           models.UserRole(item.Role),
			}
			if err := db.Create(&user).Error; err != nil {
				return fmt.Errorf("create user %s: %w", item.Email, err)
			}
			log.Printf("Created user %s", item.Email)
		} else if err != nil {
			return err
		}
		// Existing users are left untouched so seeded passwords do not
		// overwrite changed ones.
	}

	return nil
}

func upsertPosts(db *gorm.DB, orgsByName map[string]*models.Organization, data []PostData) error {
	for _, item := range data {
		org, ok := orgsByName[item.OrganizationName]
		if !ok {
			return fmt.Errorf("post %s references unknown organization %s", item.Slug, item.OrganizationName)
		}

		var post models.Post
		err := db.Where("org_id = ? AND slug = ?", org.ID, item.Slug).First(&post).Error
		if err == gorm.ErrRecordNotFound {
			post = models.Post{
				OrganizationID: org.ID,
				Slug:           item.Slug,
				Title:          item.Title,
				Body:           item.Body,
				Published:      item.Published,
			}
			if item.Published {
				now := time.Now().UTC()
				post.PublishedAt = &now
			}
			if err := db.Create(&post).Error; err != nil {
				return fmt.Errorf("create post %s: %w", item.Slug, err)
			}
			log.Printf("Created post %s/%s", item.OrganizationName, item.Slug)
		} else if err != nil {
			return err
		} else {
			post.Title = item.Title
			post.Body = item.Body
			if err := db.Save(&post).Error; err != nil {
				return fmt.Errorf("update post %s: %w", item.Slug, err)
			}
		}
	}

	return nil
}

func insertBookings(db *gorm.DB, orgsByName map[string]*models.Organization, data []BookingData) error {
	for _, item := range data {
		org, ok := orgsByName[item.OrganizationName]
		if !ok {
			return fmt.Errorf("booking for %s references unknown organization %s", item.ContactEmail, item.OrganizationName)
		}

		scheduledAt, err := time.Parse(time.RFC3339, item.ScheduledAt)
		if err != nil {
			return fmt.Errorf("booking for %s has invalid scheduled_at: %w", item.ContactEmail, err)
		}

		// Bookings have no natural key, so skip when an identical one exists.
		var count int64
		if err := db.Model(&models.Booking{}).
			Where("org_id = ? AND contact_email = ? AND scheduled_at = ?", org.ID, item.ContactEmail, scheduledAt).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		status := models.BookingStatus(item.Status)
		if status == "" {
			status = models.BookingStatusPending
		}
		duration := item.DurationMinutes
		if duration == 0 {
			duration = 30
		}

		booking := models.Booking{
			OrganizationID:  org.ID,
			ContactName:     item.ContactName,
			ContactEmail:    item.ContactEmail,
			ScheduledAt:     scheduledAt,
			DurationMinutes: duration,
			Status:          status,
			Notes:           item.Notes,
		}
		if err := db.Create(&booking).Error; err != nil {
			return fmt.Errorf("create booking for %s: %w", item.ContactEmail, err)
		}
		log.Printf("Created booking for %s", item.ContactEmail)
	}

	return nil
}
