// Package feed reads sample rows from CSV.
//
// Every record is a list of floats; with labels enabled the last column is
// an integer class label (used only for plotting). Lines starting with '#'
// are skipped.
package feed

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var (
	// ErrRowWidth indicates a record whose width differs from the first one.
	ErrRowWidth = errors.New("feed: inconsistent row width")

	// ErrParse indicates a field that is not a number.
	ErrParse = errors.New("feed: malformed field")
)

// Row is one parsed record.
type Row struct {
	Line   int       // 1-based record number in the input
	Values []float64 // sample, length D
	Label  int       // class label, 0 when labels are disabled
}

// Reader yields Rows from a CSV stream.
type Reader struct {
	r      *csv.Reader
	labels bool
	header bool
	width  int // fields per record, fixed by the first record
	line   int
}

// Option configures a Reader.
type Option func(*Reader)

// WithLabels treats the last column as an integer label.
func WithLabels() Option { return func(r *Reader) { r.labels = true } }

// WithHeader skips the first record.
func WithHeader() Option { return func(r *Reader) { r.header = true } }

// NewReader wraps src.
func NewReader(src io.Reader, opts ...Option) *Reader {
	cr := csv.NewReader(src)
	cr.Comment = '#'
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1 // width is checked here to report ErrRowWidth
	cr.ReuseRecord = true
	r := &Reader{r: cr}
	for _, set := range opts {
		set(r)
	}

	return r
}

// Next returns the next row, or io.EOF after the last one.
func (r *Reader) Next() (Row, error) {
	rec, err := r.r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Row{}, io.EOF
		}

		return Row{}, fmt.Errorf("feed: record %d: %w", r.line+1, err)
	}
	r.line++
	if r.header && r.line == 1 {
		return r.Next()
	}
	if r.width == 0 {
		r.width = len(rec)
		if r.labels && r.width < 2 {
			return Row{}, fmt.Errorf("feed: record %d: need a value and a label: %w", r.line, ErrRowWidth)
		}
	}
	if len(rec) != r.width {
		return Row{}, fmt.Errorf("feed: record %d has %d fields, want %d: %w", r.line, len(rec), r.width, ErrRowWidth)
	}

	n := len(rec)
	row := Row{Line: r.line}
	if r.labels {
		n--
		row.Label, err = strconv.Atoi(strings.TrimSpace(rec[n]))
		if err != nil {
			return Row{}, fmt.Errorf("feed: record %d label %q: %w", r.line, rec[n], ErrParse)
		}
	}
	row.Values = make([]float64, n)
	for i := 0; i < n; i++ {
		row.Values[i], err = strconv.ParseFloat(strings.TrimSpace(rec[i]), 64)
		if err != nil {
			return Row{}, fmt.Errorf("feed: record %d field %d %q: %w", r.line, i, rec[i], ErrParse)
		}
	}

	return row, nil
}

// ReadN reads up to n rows; fewer are returned only at end of input.
func (r *Reader) ReadN(n int) ([]Row, error) {
	out := make([]Row, 0, n)
	for len(out) < n {
		row, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return out, err
		}
		out = append(out, row)
	}

	return out, nil
}

// ReadAll reads every remaining row.
func (r *Reader) ReadAll() ([]Row, error) {
	var out []Row
	for {
		row, err := r.Next()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, row)
	}
}

// Values extracts the sample vectors of rows.
func Values(rows []Row) [][]float64 {
	out := make([][]float64, len(rows))
	for i, r := range rows {
		out[i] = r.Values
	}

	return out
}

// Labels extracts the labels of rows.
func Labels(rows []Row) []int {
	out := make([]int, len(rows))
	for i, r := range rows {
		out[i] = r.Label
	}

	return out
}
