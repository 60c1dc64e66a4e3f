package main

import (
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
)

// Prints the bcrypt hash of the admin key for the ADMIN_KEY_HASH env
// var. The plain key is never stored server-side.
func main() {
	key := os.Getenv("ADMIN_KEY")
	if len(os.Args) > 1 {
		key = os.Args[1]
	}
	if key == "" {
		log.Fatal("Usage: hash-admin-key <key> (or set ADMIN_KEY)")
	}
	if len(key) < 8 {
		log.Fatal("Admin key must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash key: %v", err)
	}

	fmt.Printf("ADMIN_KEY_HASH=%s\n", string(hash))
}
