package migrations

import (
	"database/sql"
)

// GetIndexMigrations returns the uniqueness and lookup index migrations
func GetIndexMigrations() []Migration {
	return []Migration{
		{
			Version: 2,
			Name:    "add_name_uniqueness_and_lookup_indices",
			Up: func(tx *sql.Tx) error {
				indices := []string{
					// Names compare case-insensitively with surrounding spaces ignored
					"CREATE UNIQUE INDEX IF NOT EXISTS ux_countries_name ON countries(lower(trim(name)))",
					"CREATE UNIQUE INDEX IF NOT EXISTS ux_pokemon_name ON pokemon(lower(trim(name)))",
					"CREATE UNIQUE INDEX IF NOT EXISTS ux_categories_name ON categories(lower(trim(name)))",
					"CREATE INDEX IF NOT EXISTS idx_owners_country_id ON owners(country_id)",
					"CREATE INDEX IF NOT EXISTS idx_reviews_pokemon_id ON reviews(pokemon_id)",
					"CREATE INDEX IF NOT EXISTS idx_reviews_reviewer_id ON reviews(reviewer_id)",
					"CREATE INDEX IF NOT EXISTS idx_pokemon_owners_owner_id ON pokemon_owners(owner_id)",
					"CREATE INDEX IF NOT EXISTS idx_pokemon_categories_category_id ON pokemon_categories(category_id)",
				}

				for _, indexSQL := range indices {
					if _, err := tx.Exec(indexSQL); err != nil {
						return err
					}
				}

				return nil
			},
			Down: func(tx *sql.Tx) error {
				indices := []string{
					"DROP INDEX IF EXISTS ux_countries_name",
					"DROP INDEX IF EXISTS ux_pokemon_name",
					"DROP INDEX IF EXISTS ux_categories_name",
					"DROP INDEX IF EXISTS idx_owners_country_id",
					"DROP INDEX IF EXISTS idx_reviews_pokemon_id",
					"DROP INDEX IF EXISTS idx_reviews_reviewer_id",
					"DROP INDEX IF EXISTS idx_pokemon_owners_owner_id",
					"DROP INDEX IF EXISTS idx_pokemon_categories_category_id",
				}

				for _, dropSQL := range indices {
					if _, err := tx.Exec(dropSQL); err != nil {
						return err
					}
				}

				return nil
			},
		},
	}
}
