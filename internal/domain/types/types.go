// Package types contains common types used across the application
package types

// Standing represents one row of the final ranking
type Standing struct {
	Rank   int     `json:"rank"`
	ID     string  `json:"id"`
	Rating float64 `json:"elo"`
}

// Summary is the machine-readable form of a finished run
type Summary struct {
	InitialRating float64    `json:"initial_rating"`
	KFactor       float64    `json:"k_factor"`
	Matches       int        `json:"matches"`
	Standings     []Standing `json:"standings"`
}
