// Command seed loads demo equipment and accounts into a migrated database.
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	"heavyrent-backend/internal/config"
	"heavyrent-backend/internal/logger"
)

type Equipment struct {
	Name             string            `yaml:"name"`
	Description      string            `yaml:"description"`
	Brand            string            `yaml:"brand"`
	Model            string            `yaml:"model"`
	YearManufactured int               `yaml:"year_manufactured"`
	Category         string            `yaml:"category"`
	DailyRate        int64             `yaml:"daily_rate"`
	WeeklyRate       int64             `yaml:"weekly_rate"`
	MonthlyRate      int64             `yaml:"monthly_rate"`
	Location         string            `yaml:"location"`
	Available        *bool             `yaml:"available"`
	Features         []string          `yaml:"features"`
	Specifications   map[string]string `yaml:"specifications"`
	Images           []string          `yaml:"images"`
}

type User struct {
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Role     string `yaml:"role"`
	FullName string `yaml:"full_name"`
	Company  string `yaml:"company_name"`
	Phone    string `yaml:"phone"`
}

type SetupData struct {
	Equipment []Equipment `yaml:"equipment"`
	Users     []User      `yaml:"users"`
}

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	seedPath := flag.String("data", "config/seed.yaml", "Path to seed data file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)

	data, err := readSetupFile(*seedPath)
	if err != nil {
		log.Fatalf("Failed to read seed file: %v", err)
	}

	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := populateData(context.Background(), db, data); err != nil {
		logger.Error("Seeding failed", "error", err)
		os.Exit(1)
	}
	logger.Info("Seed data loaded", "equipment", len(data.Equipment), "users", len(data.Users))
}

func readSetupFile(filename string) (*SetupData, error) {
	raw, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	var data SetupData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// populateData is safe to rerun: accounts are keyed by email and equipment by name.
func populateData(ctx context.Context, db *sql.DB, data *SetupData) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, e := range data.Equipment {
		specs, err := json.Marshal(e.Specifications)
		if err != nil {
			return fmt.Errorf("equipment %q: %w", e.Name, err)
		}
		status := "available"
		if e.Available != nil && !*e.Available {
			status = "unavailable"
		}
		var year sql.NullInt64
		if e.YearManufactured > 0 {
			year = sql.NullInt64{Int64: int64(e.YearManufactured), Valid: true}
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO equipment (id, name, description, brand, model, year_manufactured, category_id,
				daily_rate, weekly_rate, monthly_rate, location, availability_status, features, specifications, images)
			SELECT $1, $2, $3, $4, $5, $6, (SELECT id FROM equipment_categories WHERE name = $7),
				$8, $9, $10, $11, $12, $13, $14, $15
			WHERE NOT EXISTS (SELECT 1 FROM equipment WHERE name = $2)`,
			uuid.NewString(), e.Name, e.Description, e.Brand, e.Model, year, e.Category,
			e.DailyRate, e.WeeklyRate, e.MonthlyRate, e.Location, status,
			pq.Array(nonNil(e.Features)), specs, pq.Array(nonNil(e.Images)),
		)
		if err != nil {
			return fmt.Errorf("equipment %q: %w", e.Name, err)
		}
		logger.Debug("Seeded equipment", "name", e.Name)
	}

	for _, u := range data.Users {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("user %q: %w", u.Email, err)
		}
		role := u.Role
		if role == "" {
			role = "customer"
		}
		var id string
		err = tx.QueryRowContext(ctx, `
			INSERT INTO auth_users (id, email, password_hash, role, email_confirmed_at)
			VALUES ($1, $2, $3, $4, NOW())
			ON CONFLICT (email) DO UPDATE SET role = EXCLUDED.role
			RETURNING id`,
			uuid.NewString(), strings.ToLower(u.Email), string(hash), role,
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("user %q: %w", u.Email, err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO profiles (id, full_name, company_name, phone)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (id) DO NOTHING`,
			id, u.FullName, u.Company, u.Phone,
		)
		if err != nil {
			return fmt.Errorf("profile %q: %w", u.Email, err)
		}
		logger.Debug("Seeded user", "email", u.Email, "role", role)
	}

	return tx.Commit()
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
