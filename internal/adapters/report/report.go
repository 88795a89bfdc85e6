// Package report renders final Elo standings.
package report

import (
	"cmp"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"unicode/utf8"

	"github.com/okian/elorank/internal/domain/rating"
	"github.com/okian/elorank/internal/domain/types"
)

// Rank orders the table by rating, highest first. The sort is stable, so equal
// ratings keep the order in which their identifiers were first seen.
func Rank(t *rating.Table) []types.Standing {
	entries := t.Entries()
	slices.SortStableFunc(entries, func(a, b rating.Entry) int {
		return cmp.Compare(b.Rating, a.Rating)
	})

	out := make([]types.Standing, len(entries))
	for i, e := range entries {
		out[i] = types.Standing{Rank: i + 1, ID: e.ID, Rating: e.Rating}
	}
	return out
}

// Write renders the standings of t to w.
//
// The text form is a header naming the initial rating and K-factor followed
// by one "<id> | Elo: <rating>" line per participant, ids padded to a common
// width and ratings printed with two decimals.
func Write(w io.Writer, t *rating.Table, opts ...Option) error {
	cfg := config{format: FormatText, kFactor: rating.DefaultKFactor}
	for _, opt := range opts {
		opt(&cfg)
	}

	standings := Rank(t)
	if cfg.top > 0 && cfg.top < len(standings) {
		standings = standings[:cfg.top]
	}

	if cfg.format == FormatJSON {
		return writeJSON(w, types.Summary{
			InitialRating: t.Initial(),
			KFactor:       cfg.kFactor,
			Matches:       cfg.matches,
			Standings:     standings,
		})
	}
	return writeText(w, t.Initial(), cfg.kFactor, standings)
}

func writeText(w io.Writer, initial, k float64, standings []types.Standing) error {
	if _, err := fmt.Fprintf(w, "--- Final Elo score (initial=%g, K=%g) ---\n", initial, k); err != nil {
		return fmt.Errorf("write report header: %w", err)
	}

	width := 0
	for _, s := range standings {
		width = max(width, utf8.RuneCountInString(s.ID))
	}

	for _, s := range standings {
		if _, err := fmt.Fprintf(w, "%-*s | Elo: %.2f\n", width, s.ID, s.Rating); err != nil {
			return fmt.Errorf("write report line: %w", err)
		}
	}
	return nil
}

func writeJSON(w io.Writer, s types.Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("write json report: %w", err)
	}
	return nil
}
