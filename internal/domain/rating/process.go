package rating

import (
	"context"
	"fmt"

	"github.com/okian/elorank/internal/domain/model"
)

// Seed registers every identifier appearing in records, left before right
// within a row, so the table's key set is fixed before any update runs.
// It returns the number of identifiers added.
func Seed(t *Table, records []model.MatchRecord) int {
	added := 0
	for _, r := range records {
		if t.Ensure(r.Left) {
			added++
		}
		if t.Ensure(r.Right) {
			added++
		}
	}
	return added
}

// ProcessAll seeds t from records and then applies each record in order.
// Every update sees the ratings left behind by all earlier records, so the
// result depends on record order. The same table is returned.
//
// Cancellation is checked between records; a cancelled run returns the
// partially updated table together with the context error.
func ProcessAll(ctx context.Context, records []model.MatchRecord, t *Table, k float64, opts ...ProcessOption) (*Table, error) {
	cfg := processConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	Seed(t, records)

	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return t, fmt.Errorf("processing stopped before row %d: %w", rec.Row, err)
		}

		left, _ := t.Get(rec.Left)
		right, _ := t.Get(rec.Right)

		newLeft, newRight := Update(left, right, rec.Outcome.ScoreLeft(), k)
		// A row pairing an identifier with itself keeps the right-hand write.
		t.Set(rec.Left, newLeft)
		t.Set(rec.Right, newRight)

		if len(cfg.observers) > 0 {
			step := Step{
				Record:      rec,
				Expected:    Expected(left, right),
				LeftBefore:  left,
				RightBefore: right,
				LeftAfter:   newLeft,
				RightAfter:  newRight,
			}
			for _, fn := range cfg.observers {
				fn(step)
			}
		}
	}
	return t, nil
}
