package model

import (
	"time"

	"github.com/google/uuid"
)

// Book is a catalog entry. AvgRating and RatingsCount are derived from
// the ratings table and never written by catalog management.
type Book struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Genre       string    `json:"genre"`
	Year        int       `json:"year"`
	Description string    `json:"description"`
	CoverURL    string    `json:"cover_url"`
	FileURL     string    `json:"file_url"`
	IsPremium   bool      `json:"is_premium"`

	AvgRating    float64 `json:"avg_rating"`
	RatingsCount int     `json:"ratings_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
