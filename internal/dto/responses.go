package dto

import "github.com/ignatzorin/plumbing-backend/internal/models"

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// SeedResponse reports how many professionals were inserted
type SeedResponse struct {
	Inserted int `json:"inserted"`
}

// CatalogResponse lists the price list by specialty
type CatalogResponse struct {
	Fallback    string                  `json:"fallback"`
	Specialties []models.CatalogSection `json:"specialties"`
}
