// Command create-admin creates an admin account with random credentials
// and prints them once.
package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"

	"gorm.io/gorm"

	"jobportal-backend/internal/database"
	"jobportal-backend/internal/model"
	"jobportal-backend/internal/utilities"
)

// generateRandomString creates a random hex string of length 2n
func generateRandomString(n int) string {
	bytes := make([]byte, n)
	if _, err := rand.Read(bytes); err != nil {
		log.Fatal(err)
	}
	return hex.EncodeToString(bytes)
}

// generateUniqueEmail tries until an unused admin email is found
func generateUniqueEmail(db *gorm.DB) string {
	for {
		email := "admin_" + generateRandomString(4) + "@jobportal.local"
		var count int64
		db.Model(&model.User{}).Where("email = ?", email).Count(&count)
		if count == 0 {
			return email
		}
	}
}

func main() {
	db, err := database.GetMainDB()
	if err != nil {
		log.Fatalf("Database failed to initialized: %s", err)
	}

	email := generateUniqueEmail(db.DB)
	password := generateRandomString(8)

	utilities.CreateAdmin(email, password, "admin", db.DB)

	fmt.Println("Admin account created")
	fmt.Println("email:   ", email)
	fmt.Println("password:", password)
}
