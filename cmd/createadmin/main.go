// Command createadmin creates or refreshes an admin account from environment
// variables (ADMIN_EMAIL, ADMIN_PASSWORD, ADMIN_NAME).
package main

import (
	"context"
	"log"
	"os"
	"regexp"
	"strings"

	"ambassador_portal/internal/common/security"
	"ambassador_portal/internal/domain/model"
	"ambassador_portal/internal/domain/repository"
	"ambassador_portal/internal/platform/config"
	"ambassador_portal/internal/platform/database"

	"github.com/google/uuid"
)

var emailRe = regexp.MustCompile(`^[\w-.]+@([\w-]+\.)+[\w-]{2,}$`)

func main() {
	config.Load()

	email := strings.ToLower(strings.TrimSpace(os.Getenv("ADMIN_EMAIL")))
	password := os.Getenv("ADMIN_PASSWORD")
	name := strings.TrimSpace(os.Getenv("ADMIN_NAME"))
	if name == "" {
		name = "Admin User"
	}

	if email == "" || !emailRe.MatchString(email) {
		log.Fatal("ADMIN_EMAIL must be a valid email address")
	}
	if len(password) < 8 {
		log.Fatal("ADMIN_PASSWORD must be at least 8 characters")
	}

	database.Connect()
	defer database.Close()

	hashedPassword, err := security.HashPassword(password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	adminRepo := repository.NewPgAdminRepository(database.DB)
	admin := &model.Admin{
		ID:             uuid.NewString(),
		Name:           name,
		Email:          email,
		HashedPassword: hashedPassword,
	}

	if err := adminRepo.Upsert(context.Background(), admin); err != nil {
		log.Fatalf("Failed to upsert admin: %v", err)
	}
	log.Printf("Admin account ready for %s", email)
}
