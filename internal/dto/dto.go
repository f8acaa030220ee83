// Package dto holds the JSON shapes the API speaks and the conversions
// between them and the domain entities. DTOs never carry related entities.
package dto

import "time"

// CountryDto is the wire form of a country
type CountryDto struct {
	ID   int64  `json:"id"`
	Name string `json:"name" validate:"required,notblank,max=100"`
}

// OwnerDto is the wire form of an owner. The country is set through the
// countryId query parameter, not the body.
type OwnerDto struct {
	ID   int64  `json:"id"`
	Name string `json:"name" validate:"required,notblank,max=100"`
	Gym  string `json:"gym" validate:"max=100"`
}

// PokemonDto is the wire form of a pokemon. birthDate is RFC 3339.
type PokemonDto struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name" validate:"required,notblank,max=100"`
	BirthDate time.Time `json:"birthDate" validate:"required,notfuture"`
}

// CategoryDto is the wire form of a category
type CategoryDto struct {
	ID   int64  `json:"id"`
	Name string `json:"name" validate:"required,notblank,max=100"`
}

// ReviewDto is the wire form of a review
type ReviewDto struct {
	ID     int64  `json:"id"`
	Title  string `json:"title" validate:"required,notblank,max=100"`
	Text   string `json:"text" validate:"required,notblank,max=2000"`
	Rating int    `json:"rating" validate:"min=1,max=5"`
}

// ReviewerDto is the wire form of a reviewer
type ReviewerDto struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName" validate:"required,notblank,max=100"`
	LastName  string `json:"lastName" validate:"required,notblank,max=100"`
}
