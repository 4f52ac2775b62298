package configs

import (
	"encoding/base64"
	"fmt"

	"github.com/gorilla/securecookie"
)

// GenerateAndPrintJWTSecret prints a fresh signing secret for JWT_SECRET.
// Regenerating invalidates every outstanding token.
func GenerateAndPrintJWTSecret() error {
	key := securecookie.GenerateRandomKey(64)
	if key == nil {
		return fmt.Errorf("error: could not generate signing key")
	}

	fmt.Println("\n================================================")
	fmt.Printf("JWT_SECRET=%s\n", base64.URLEncoding.EncodeToString(key))
	fmt.Println("================================================")
	fmt.Println("Copy this line into your .env file.")

	return nil
}
