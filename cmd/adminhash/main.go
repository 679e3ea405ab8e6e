package main

import (
	"fmt"
	"log"
	"os"

	"seatbook/internal/auth"
)

// Prints the bcrypt hash for ADMIN_PASSWORD_HASH.
func main() {
	if len(os.Args) != 2 {
		log.Fatalf("usage: %s <password>", os.Args[0])
	}

	hash, err := auth.HashPassword(os.Args[1])
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	fmt.Printf("ADMIN_PASSWORD_HASH=%s\n", hash)
}
