package client

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/MikeSquared-Agency/Matrix/internal/scoring"
)

// Row is one criterion as written in a seed CSV: name,weight,A,B,I,N.
type Row struct {
	Name   string
	Weight int
	Scores map[scoring.Option]int
}

// ParseRows reads seed CSV. A first record whose name cell is "name" is taken
// as a header, and lines starting with # are comments.
func ParseRows(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = 2 + len(scoring.Options)
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}

	var rows []Row
	for i, rec := range records {
		if i == 0 && strings.EqualFold(rec[0], "name") {
			continue
		}
		weight, err := strconv.Atoi(rec[1])
		if err != nil {
			return nil, fmt.Errorf("record %d: weight %q: %w", i+1, rec[1], err)
		}
		row := Row{Name: rec[0], Weight: weight, Scores: make(map[scoring.Option]int, len(scoring.Options))}
		for j, opt := range scoring.Options {
			v, err := strconv.Atoi(rec[2+j])
			if err != nil {
				return nil, fmt.Errorf("record %d: score %s %q: %w", i+1, opt, rec[2+j], err)
			}
			row.Scores[opt] = v
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ReplaceCriteria removes every criterion on the server and then adds rows in
// order. It stops at the first request that fails or is not applied, so the
// caller never mistakes a partial matrix for a complete one.
func (c *HTTPClient) ReplaceCriteria(ctx context.Context, rows []Row) error {
	existing, err := c.ListCriteria(ctx)
	if err != nil {
		return fmt.Errorf("list criteria: %w", err)
	}
	for _, e := range existing {
		m, err := c.RemoveCriterion(ctx, e.ID)
		if err != nil {
			return fmt.Errorf("remove %q: %w", e.Name, err)
		}
		if !m.Applied {
			return fmt.Errorf("remove %q: not applied", e.Name)
		}
	}
	for _, r := range rows {
		m, err := c.AddRow(ctx, r)
		if err != nil {
			return fmt.Errorf("add %q: %w", r.Name, err)
		}
		if !m.Applied {
			return fmt.Errorf("add %q: not applied", r.Name)
		}
	}
	return nil
}
