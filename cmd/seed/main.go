package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"seatbook/internal/bookings"
	"seatbook/internal/intake"
	"seatbook/internal/shared/config"
	"seatbook/internal/shared/database"

	"github.com/joho/godotenv"
)

type Seeder struct {
	db    *database.DB
	store bookings.RecordStore
	cfg   *config.Config
}

func main() {
	fmt.Println("🌱 Starting Seatbook Seeder...")

	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	cfg.Redis.Enabled = false

	// Initialize database
	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	store, err := bookings.OpenRecordStore(ctx, cfg, db.GetPostgreSQL())
	if err != nil {
		log.Fatalf("Failed to open record store: %v", err)
	}

	seeder := &Seeder{db: db, store: store, cfg: cfg}

	if db.GetPostgreSQL() != nil {
		fmt.Println("\n🧹 Cleaning booking records...")
		if err := seeder.CleanDatabase(); err != nil {
			log.Fatalf("Failed to clean database: %v", err)
		}
		fmt.Println("✅ Booking records cleaned")
	}

	fmt.Printf("\n🌱 Seeding %s store...\n", cfg.StoreBackend)
	if err := seeder.SeedAll(ctx); err != nil {
		log.Fatalf("Failed to seed store: %v", err)
	}

	fmt.Println("\n🎉 Seeding completed! Store is ready for testing.")
}

// CleanDatabase truncates the booking records table
func (s *Seeder) CleanDatabase() error {
	return s.db.GetPostgreSQL().Exec(`TRUNCATE TABLE "booking_records" RESTART IDENTITY`).Error
}

func (s *Seeder) SeedAll(ctx context.Context) error {
	if err := s.SeedLegacyRecords(ctx); err != nil {
		return fmt.Errorf("legacy records: %w", err)
	}
	if err := s.SeedBookings(ctx); err != nil {
		return fmt.Errorf("bookings: %w", err)
	}
	return nil
}

// SeedLegacyRecords writes rows in the old one-row-per-submission shape,
// several seats joined into one cell.
func (s *Seeder) SeedLegacyRecords(ctx context.Context) error {
	stamp := time.Now().Add(-48 * time.Hour).Format(bookings.TimestampLayout)
	legacy := []bookings.Record{
		{Timestamp: stamp, UserCode: "LEG-01", Name: "Ravi Kumar", Mobile: "9876543210", Seats: "1, 2, 3"},
		{Timestamp: stamp, UserCode: "LEG-02", Name: "Meera Shah", Mobile: "9123456780", Seats: "10, 11"},
		{Timestamp: stamp, UserCode: "LEG-03", Name: "Imran Ali", Mobile: "9988776655", Seats: "Seat 40"},
	}

	for _, record := range legacy {
		if err := s.store.Append(ctx, record); err != nil {
			return err
		}
	}
	fmt.Printf("✅ Seeded %d legacy records\n", len(legacy))
	return nil
}

// SeedBookings pushes demo groups through the same validation and pairing
// as the HTTP API, one group per pairing rule.
func (s *Seeder) SeedBookings(ctx context.Context) error {
	groups := []intake.Group{
		{
			UserCode: intake.String("DEMO-EXACT"),
			Name:     intake.String("Asha, Vikram"),
			Mobile:   intake.String("+91 99999-11111, +91 99999-22222"),
			Seats:    intake.Ints(21, 22),
		},
		{
			UserCode: intake.String("DEMO-SINGLE"),
			Name:     intake.String("Neha"),
			Mobile:   intake.String("9000000001"),
			Seats:    intake.String("Seat: 30, Seat: 31, Seat: 32"),
		},
		{
			UserCode: intake.String("DEMO-NAME"),
			Name:     intake.String("Family Joshi"),
			Mobile:   intake.Strings("9000000002", "9000000003"),
			Seats:    intake.Ints(50, 51),
		},
		{
			UserCode: intake.String("DEMO-MOBILE"),
			Name:     intake.Strings("Kabir", "Tara", "Zoya"),
			Mobile:   intake.String("9000000004"),
			Seats:    intake.List(intake.Number("60"), intake.String("61"), intake.Number("62")),
		},
	}

	result, err := bookings.NewService(s.store, s.cfg).Submit(ctx, groups)
	if err != nil {
		return err
	}
	fmt.Printf("✅ Seeded %d booking rows across %d groups\n", len(result.Rows), result.Groups)
	return nil
}
