// Package matchlog reads pairwise comparison logs from CSV.
package matchlog

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/okian/elorank/internal/domain/model"
)

// Required header columns.
const (
	ColumnLeft   = "model_left"
	ColumnRight  = "model_right"
	ColumnWinner = "winner"
)

const utf8BOM = "\ufeff"

// Read opens path and parses it with Parse. A missing file yields an error
// wrapping ErrNotFound.
func Read(ctx context.Context, path string) ([]model.MatchRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("open match log %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	records, err := Parse(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// columns holds header positions of the required fields.
type columns struct {
	left, right, winner int
}

func (c columns) minFields() int {
	return max(c.left, c.right, c.winner) + 1
}

// Parse decodes a CSV stream with a header row into records, preserving row
// order. Extra columns are ignored and identifiers are kept byte-exact.
// Any bad row aborts the whole parse.
func Parse(ctx context.Context, r io.Reader) ([]model.MatchRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrMissingHeader
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols, err := locate(header)
	if err != nil {
		return nil, err
	}
	need := cols.minFields()

	var records []model.MatchRecord
	for row := 1; ; row++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("read match log: %w", err)
		}

		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				return nil, &RowError{Row: row, Err: perr.Err}
			}
			return nil, &RowError{Row: row, Err: err}
		}
		if len(fields) < need {
			return nil, &RowError{Row: row, Err: fmt.Errorf("expected at least %d fields, got %d", need, len(fields))}
		}

		winner := fields[cols.winner]
		records = append(records, model.MatchRecord{
			Row:     row,
			Left:    fields[cols.left],
			Right:   fields[cols.right],
			Outcome: model.ParseOutcome(winner),
			Raw:     winner,
		})
	}
	return records, nil
}

// locate finds the required columns in header. The first occurrence of a
// duplicated column name wins.
func locate(header []string) (columns, error) {
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	pos := make(map[string]int, len(header))
	for i, name := range header {
		if _, seen := pos[name]; !seen {
			pos[name] = i
		}
	}

	var cols columns
	for _, c := range []struct {
		name string
		dst  *int
	}{
		{ColumnLeft, &cols.left},
		{ColumnRight, &cols.right},
		{ColumnWinner, &cols.winner},
	} {
		i, ok := pos[c.name]
		if !ok {
			return columns{}, fmt.Errorf("%w: %s", ErrMissingColumn, c.name)
		}
		*c.dst = i
	}
	return cols, nil
}
