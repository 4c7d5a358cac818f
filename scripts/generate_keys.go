//go:build ignore

// This script generates secure random keys for API key and JWT authentication.
// When JWT_SECRET_KEY is already set it also mints an inventory:write token.
// Run with: go run scripts/generate_keys.go
package main

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"
	"time"

	"github.com/guttosm/fulfillment-service/internal/service"
)

func generateSecureKey(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(bytes), nil
}

func mustKey(name string, length int) string {
	key, err := generateSecureKey(length)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating %s: %v\n", name, err)
		os.Exit(1)
	}
	return key
}

func main() {
	fmt.Println("=== Fulfillment Service Key Generator ===")
	fmt.Println()

	if secret := os.Getenv("JWT_SECRET_KEY"); secret != "" {
		tokens, err := service.NewTokenService(service.TokenConfig{SecretKey: secret, TTL: 24 * time.Hour})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating token service: %v\n", err)
			os.Exit(1)
		}
		token, expiresAt, err := tokens.IssueToken("operator", []string{service.ScopeInventoryWrite})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error issuing token: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("# inventory:write token, expires %s\n", expiresAt.Format(time.RFC3339))
		fmt.Printf("Authorization: Bearer %s\n", token)
		return
	}

	fmt.Println("Add these to your .env file:")
	fmt.Println()
	fmt.Println("# JWT Configuration (guards catalog and restock writes)")
	fmt.Printf("JWT_SECRET_KEY=%s\n", mustKey("JWT secret", 32))
	fmt.Println()
	fmt.Println("# API Key (optional, for API key authentication)")
	fmt.Printf("API_KEYS=%s\n", mustKey("API key", 24))
	fmt.Println()
	fmt.Println("Re-run with JWT_SECRET_KEY set to mint an inventory:write token.")
	fmt.Println()
	fmt.Println("=== IMPORTANT ===")
	fmt.Println("- Never commit these keys to version control")
	fmt.Println("- Use different keys for each environment (dev, staging, prod)")
	fmt.Println("- Store production keys in a secure secret manager")
}
