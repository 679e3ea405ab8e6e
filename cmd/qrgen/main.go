package main

import (
	"fmt"
	"log"
	"os"

	"seatbook/internal/qr"
	"seatbook/internal/shared/config"

	"github.com/joho/godotenv"
)

// Writes qr_code.png pointing at APP_BASE_URL + QR_ENDPOINT, for printing.
// An optional argument overrides the endpoint path.
func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	endpoint := ""
	if len(os.Args) > 1 {
		endpoint = os.Args[1]
	}

	target, err := qr.NewService(cfg).TargetURL(endpoint)
	if err != nil {
		log.Fatalf("Invalid endpoint: %v", err)
	}

	const filename = "qr_code.png"
	if err := qr.WriteFile(target, cfg.QR.Size, filename); err != nil {
		log.Fatalf("Failed to generate QR code: %v", err)
	}

	fmt.Printf("✅ QR code saved as %s for URL: %s\n", filename, target)
}
