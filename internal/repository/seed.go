package repository

import (
	"database/sql"
	"fmt"

	"github.com/taskboard/taskboard/internal/auth"
	"github.com/taskboard/taskboard/internal/models"
)

type seedUser struct {
	name     string
	email    string
	password string
	role     models.Role
}

var seedUsers = []seedUser{
	{"Administrador", "admin@todolist.com", "admin123", models.RoleAdmin},
	{"João Silva", "joao@test.com", "123456", models.RoleManager},
	{"Maria Santos", "maria@test.com", "123456", models.RoleReader},
	{"Pedro Costa", "pedro@test.com", "123456", models.RoleReader},
	{"Ana Oliveira", "ana@test.com", "123456", models.RoleManager},
}

var seedCategories = []string{"Trabalho", "Pessoal", "Estudos", "Casa"}

// Seed inserts the default admin account, sample users, and default
// categories. Unique constraints on email and category name make it
// idempotent across restarts.
func Seed(db *sql.DB) error {
	for _, u := range seedUsers {
		hash, err := auth.HashPassword(u.password)
		if err != nil {
			return fmt.Errorf("hash seed password: %w", err)
		}

		_, err = db.Exec(
			`INSERT OR IGNORE INTO users (name, email, password, role) VALUES (?, ?, ?, ?)`,
			u.name, u.email, hash, u.role,
		)
		if err != nil {
			return fmt.Errorf("seed user %s: %w", u.email, err)
		}
	}

	for _, name := range seedCategories {
		_, err := db.Exec(
			`INSERT OR IGNORE INTO categories (name, user_id) VALUES (?, NULL)`,
			name,
		)
		if err != nil {
			return fmt.Errorf("seed category %s: %w", name, err)
		}
	}

	return nil
}
