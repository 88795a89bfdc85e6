// Package rating implements sequential Elo rating over a log of pairwise matches.
package rating

import "math"

// Default rating configuration constants.
const (
	DefaultInitialRating = 1500.0
	DefaultKFactor       = 32.0

	// logisticScale is the rating gap at which the stronger side is expected
	// to win ten times as often.
	logisticScale = 400.0
)

// Expected returns the logistic probability that a player rated ratingA beats
// a player rated ratingB. The result lies strictly in (0, 1) for finite inputs
// of realistic magnitude.
func Expected(ratingA, ratingB float64) float64 {
	return 1 / (1 + math.Pow(10, (ratingB-ratingA)/logisticScale))
}

// Update computes post-match ratings for A and B given A's observed score
// (1 win, 0 loss, 0.5 draw) and the K-factor. B's score and expectation are
// the complements of A's, so the sum of both ratings is preserved.
// Inputs are not clamped.
func Update(ratingA, ratingB, scoreA, k float64) (float64, float64) {
	expectedA := Expected(ratingA, ratingB)
	scoreB := 1 - scoreA
	expectedB := 1 - expectedA

	newA := ratingA + k*(scoreA-expectedA)
	newB := ratingB + k*(scoreB-expectedB)
	return newA, newB
}
