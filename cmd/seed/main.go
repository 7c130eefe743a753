package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/revuehub/api/config"
	"github.com/revuehub/api/pkg/helpers"
)

// Seeds a superuser plus a starter set of categories and genres. The printed
// confirmation code can be exchanged for a token right away.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	username := "admin"
	email := "admin@revuehub.local"

	var id string
	err = db.QueryRow(`
		INSERT INTO users (username, email, role, is_superuser)
		VALUES ($1, $2, 'admin', TRUE)
		ON CONFLICT (username) DO UPDATE SET role = 'admin', is_superuser = TRUE
		RETURNING id
	`, username, email).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed admin user: %v", err)
	}

	code, err := helpers.NewConfirmationCode()
	if err != nil {
		log.Fatalf("failed to generate confirmation code: %v", err)
	}
	if _, err := db.Exec(`
		INSERT INTO email_verifications (user_id, confirmation_code)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET confirmation_code = EXCLUDED.confirmation_code, updated_at = now()
	`, id, code); err != nil {
		log.Fatalf("failed to seed confirmation code: %v", err)
	}
	fmt.Printf("seeded admin: id=%s username=%s email=%s confirmation_code=%s\n", id, username, email, code)

	categories := map[string]string{
		"books": "Books",
		"films": "Films",
		"music": "Music",
	}
	for slug, name := range categories {
		if _, err := db.Exec(`
			INSERT INTO categories (name, slug) VALUES ($1, $2)
			ON CONFLICT (slug) DO NOTHING
		`, name, slug); err != nil {
			log.Fatalf("failed to seed category %s: %v", slug, err)
		}
	}

	genres := map[string]string{
		"drama":    "Drama",
		"comedy":   "Comedy",
		"sci-fi":   "Sci-Fi",
		"thriller": "Thriller",
	}
	for slug, name := range genres {
		if _, err := db.Exec(`
			INSERT INTO genres (name, slug) VALUES ($1, $2)
			ON CONFLICT (slug) DO NOTHING
		`, name, slug); err != nil {
			log.Fatalf("failed to seed genre %s: %v", slug, err)
		}
	}
	fmt.Println("seeded base categories and genres")
}
