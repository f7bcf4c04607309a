package domain

import "github.com/google/uuid"

// Movie is the catalog projection joined into booking listings.
type Movie struct {
	ID        uuid.UUID
	Title     string
	Genre     string
	PosterUrl *string
}
