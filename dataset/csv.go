package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	pieceHeader = "piece"
	timeHeader  = "time"
)

// ReadCSV parses a table with header "piece,time,<columns...>". Time is in
// seconds. Empty cells take the value of the same column in the previous
// row (NaN on the first row).
func ReadCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty csv: %w", ErrMissingColumn)
		}
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}
	if len(header) < 2 || header[0] != pieceHeader || header[1] != timeHeader {
		return nil, fmt.Errorf("%w: header must start with %q,%q", ErrMissingColumn, pieceHeader, timeHeader)
	}

	t, err := New(header[2:]...)
	if err != nil {
		return nil, err
	}

	prev := make([]float64, len(header)-2)
	for i := range prev {
		prev[i] = math.NaN()
	}

	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		seconds, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid time %q: %w", line, record[1], err)
		}

		values := make([]float64, len(prev))
		for c, cell := range record[2:] {
			cell = strings.TrimSpace(cell)
			if cell == "" {
				values[c] = prev[c]
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid value %q in column %q: %w", line, cell, header[c+2], err)
			}
			values[c] = v
		}
		prev = values

		if err := t.AppendRow(Key{Piece: record[0], Time: Seconds(seconds)}, values); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}

	return t, nil
}

// ReadChromaCSV reads a chroma table and checks that it carries the 12
// chroma columns and unique keys
func ReadChromaCSV(r io.Reader) (*Table, error) {
	t, err := ReadCSV(r)
	if err != nil {
		return nil, err
	}
	if err := t.ValidateChroma(); err != nil {
		return nil, err
	}
	return t, nil
}

// ReadChromaFiles reads and concatenates chroma tables from several files
func ReadChromaFiles(paths ...string) (*Table, error) {
	tables := make([]*Table, 0, len(paths))
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		t, err := ReadChromaCSV(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		tables = append(tables, t)
	}

	t, err := Concat(tables...)
	if err != nil {
		return nil, err
	}
	if err := t.UniqueKeys(); err != nil {
		return nil, err
	}
	return t, nil
}

// ValidateChroma checks the chroma columns, their values and key
// uniqueness. A table with a chroma count other than 12 fails with
// ErrShapeMismatch, a NaN or infinite chroma cell with ErrInvalidValue.
func (t *Table) ValidateChroma() error {
	n := 0
	for _, name := range t.columns {
		if isChromaColumn(name) {
			n++
		}
	}
	if n != len(ChromaColumns) {
		return fmt.Errorf("%w: expected %d chroma columns, found %d", ErrShapeMismatch, len(ChromaColumns), n)
	}
	if err := t.Require(ChromaColumns...); err != nil {
		return err
	}
	for _, name := range ChromaColumns {
		for r, v := range t.data[t.index[name]] {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: %s %s is %v", ErrInvalidValue, t.keys[r], name, v)
			}
		}
	}
	return t.UniqueKeys()
}

func isChromaColumn(name string) bool {
	if len(name) < 2 || name[0] != 'c' {
		return false
	}
	_, err := strconv.Atoi(name[1:])
	return err == nil
}

// WriteCSV writes the table with header "piece,time,<columns...>"
func WriteCSV(w io.Writer, t *Table) error {
	writer := csv.NewWriter(w)

	header := append([]string{pieceHeader, timeHeader}, t.columns...)
	if err := writer.Write(header); err != nil {
		return err
	}

	record := make([]string, len(header))
	for i, k := range t.keys {
		record[0] = k.Piece
		record[1] = strconv.FormatFloat(k.Time.Seconds(), 'f', -1, 64)
		for c := range t.columns {
			record[c+2] = strconv.FormatFloat(t.data[c][i], 'g', -1, 64)
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// Seconds converts a time in seconds into a Duration rounded to the
// nanosecond
func Seconds(s float64) time.Duration {
	return time.Duration(math.Round(s * float64(time.Second)))
}
