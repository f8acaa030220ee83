package domain

import "time"

// Country represents a country owners come from
type Country struct {
	ID   int64  // Unique identifier
	Name string // Country name, unique ignoring case and surrounding whitespace
}

// Owner represents a pokemon trainer
type Owner struct {
	ID        int64  // Unique identifier
	Name      string // Owner name
	Gym       string // Gym the owner belongs to
	CountryID *int64 // Foreign key to Country (optional)
}

// Pokemon represents a single pokemon in the catalogue
type Pokemon struct {
	ID        int64     // Unique identifier
	Name      string    // Pokemon name, unique ignoring case and surrounding whitespace
	BirthDate time.Time // Birth date, stored in UTC
}

// Category represents a pokemon type such as "Electric" or "Water"
type Category struct {
	ID   int64  // Unique identifier
	Name string // Category name, unique ignoring case and surrounding whitespace
}

// Review represents a reviewer's opinion of a pokemon
type Review struct {
	ID         int64  // Unique identifier
	Title      string // Short headline
	Text       string // Review body
	Rating     int    // Rating from 1 to 5
	ReviewerID int64  // Foreign key to Reviewer
	PokemonID  int64  // Foreign key to Pokemon
}

// Reviewer represents a person writing reviews
type Reviewer struct {
	ID        int64  // Unique identifier
	FirstName string // Given name
	LastName  string // Family name
}

// PokemonOwner links an Owner to a Pokemon
type PokemonOwner struct {
	PokemonID int64
	OwnerID   int64
}

// PokemonCategory links a Category to a Pokemon
type PokemonCategory struct {
	PokemonID  int64
	CategoryID int64
}
