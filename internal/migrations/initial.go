package migrations

import (
	"database/sql"
)

// GetInitialMigrations returns the migrations that create the catalogue tables
func GetInitialMigrations() []Migration {
	return []Migration{
		{
			Version: 1,
			Name:    "create_initial_tables",
			Up: func(tx *sql.Tx) error {
				statements := []string{
					`CREATE TABLE countries (
						id INTEGER PRIMARY KEY AUTOINCREMENT,
						name TEXT NOT NULL,
						created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
						updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
					)`,
					// Owners keep their country; a country with owners cannot be removed
					`CREATE TABLE owners (
						id INTEGER PRIMARY KEY AUTOINCREMENT,
						name TEXT NOT NULL,
						gym TEXT NOT NULL DEFAULT '',
						country_id INTEGER,
						created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
						updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
						FOREIGN KEY (country_id) REFERENCES countries(id) ON DELETE RESTRICT
					)`,
					`CREATE TABLE pokemon (
						id INTEGER PRIMARY KEY AUTOINCREMENT,
						name TEXT NOT NULL,
						birth_date TEXT NOT NULL,
						created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
						updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
					)`,
					`CREATE TABLE categories (
						id INTEGER PRIMARY KEY AUTOINCREMENT,
						name TEXT NOT NULL,
						created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
						updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
					)`,
					`CREATE TABLE reviewers (
						id INTEGER PRIMARY KEY AUTOINCREMENT,
						first_name TEXT NOT NULL,
						last_name TEXT NOT NULL,
						created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
						updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
					)`,
					`CREATE TABLE reviews (
						id INTEGER PRIMARY KEY AUTOINCREMENT,
						title TEXT NOT NULL,
						text TEXT NOT NULL,
						rating INTEGER NOT NULL,
						reviewer_id INTEGER NOT NULL,
						pokemon_id INTEGER NOT NULL,
						created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
						updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
						FOREIGN KEY (reviewer_id) REFERENCES reviewers(id) ON DELETE CASCADE,
						FOREIGN KEY (pokemon_id) REFERENCES pokemon(id) ON DELETE CASCADE
					)`,
					// Join tables for the many-to-many relations
					`CREATE TABLE pokemon_owners (
						pokemon_id INTEGER NOT NULL,
						owner_id INTEGER NOT NULL,
						PRIMARY KEY (pokemon_id, owner_id),
						FOREIGN KEY (pokemon_id) REFERENCES pokemon(id) ON DELETE CASCADE,
						FOREIGN KEY (owner_id) REFERENCES owners(id) ON DELETE CASCADE
					)`,
					`CREATE TABLE pokemon_categories (
						pokemon_id INTEGER NOT NULL,
						category_id INTEGER NOT NULL,
						PRIMARY KEY (pokemon_id, category_id),
						FOREIGN KEY (pokemon_id) REFERENCES pokemon(id) ON DELETE CASCADE,
						FOREIGN KEY (category_id) REFERENCES categories(id) ON DELETE CASCADE
					)`,
				}

				for _, stmt := range statements {
					if _, err := tx.Exec(stmt); err != nil {
						return err
					}
				}
				return nil
			},
			Down: func(tx *sql.Tx) error {
				// Drop tables in reverse order due to foreign key constraints
				tables := []string{
					"pokemon_categories",
					"pokemon_owners",
					"reviews",
					"reviewers",
					"categories",
					"pokemon",
					"owners",
					"countries",
				}
				for _, table := range tables {
					if _, err := tx.Exec("DROP TABLE IF EXISTS " + table); err != nil {
						return err
					}
				}
				return nil
			},
		},
	}
}
