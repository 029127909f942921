// Package domain defines sales reps, their segments and the roster file format
package domain

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"introspect/internal/platform/net/http/bind"
	pstrings "introspect/internal/platform/strings"
)

// DateLayout is the joining date format in roster files
const DateLayout = "01/02/2006"

// Rep is one sales rep
type Rep struct {
	Email       string    `json:"email"`
	Segment     string    `json:"segment"`
	JoiningDate time.Time `json:"joining_date"`
	TenureDays  int       `json:"tenure_days"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SegmentCount is the number of reps in one segment
type SegmentCount struct {
	Segment string `json:"segment"`
	Reps    int    `json:"reps"`
}

// LoadResult summarises one roster load
type LoadResult struct {
	Inserted int            `json:"inserted"`
	Updated  int            `json:"updated"`
	Skipped  int            `json:"skipped"`
	Segments map[string]int `json:"segments"`
	Warnings []string       `json:"warnings,omitempty"`
}

// Row is one parsed roster line
type Row struct {
	Line        int
	Email       string `validate:"required,email"`
	Segment     string `validate:"required"`
	JoiningDate time.Time
}

// ParseRoster reads "email,segment,MM/DD/YYYY" lines. Blank lines are
// ignored; malformed lines are returned as warnings and left out
func ParseRoster(r io.Reader) ([]Row, []string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	var (
		rows     []Row
		warnings []string
	)
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return rows, warnings, nil
		}
		var pe *csv.ParseError
		if errors.As(err, &pe) {
			warnings = append(warnings, fmt.Sprintf("line %d: %v, skipping", pe.Line, pe.Err))
			continue
		}
		if err != nil {
			return nil, warnings, err
		}
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		line, _ := cr.FieldPos(0)
		if len(rec) != 3 {
			warnings = append(warnings, fmt.Sprintf("line %d has %d fields (expected 3), skipping", line, len(rec)))
			continue
		}
		date := strings.TrimSpace(rec[2])
		joined, derr := time.Parse(DateLayout, date)
		if derr != nil {
			warnings = append(warnings, fmt.Sprintf("line %d has invalid date %q, skipping", line, date))
			continue
		}
		row := Row{
			Line:        line,
			Email:       pstrings.FoldEmail(rec[0]),
			Segment:     strings.TrimSpace(rec[1]),
			JoiningDate: joined,
		}
		if verr := bind.Struct(row); verr != nil {
			warnings = append(warnings, fmt.Sprintf("line %d: %v, skipping", line, verr))
			continue
		}
		rows = append(rows, row)
	}
}

// TenureDays is the number of whole days between joined and now, never negative
func TenureDays(joined, now time.Time) int {
	d := int(now.Sub(joined).Hours() / 24)
	return max(d, 0)
}
