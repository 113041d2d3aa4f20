package lut

import (
	"errors"
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
	"github.com/zeusync/fxnet/pkg/fx"
)

// Table data file errors
var (
	ErrMalformedTable = errors.New("lut: malformed table data")
	ErrUnknownTable   = errors.New("lut: unknown table")
	ErrMissingTable   = errors.New("lut: missing table")
)

// SampleRecord is one row of the table data file.
type SampleRecord struct {
	Table string `csv:"table"`
	Shift uint   `csv:"shift"`
	Range int64  `csv:"range_raw"`
	Index int    `csv:"index"`
	Raw   int64  `csv:"raw"`
}

// Records flattens the tables into data file rows in canonical order.
func (ts *Tables) Records() []SampleRecord {
	var n int
	for _, t := range ts.All() {
		n += t.Len()
	}

	records := make([]SampleRecord, 0, n)
	for _, t := range ts.All() {
		for i, s := range t.samples {
			records = append(records, SampleRecord{
				Table: t.name,
				Shift: t.shift,
				Range: t.rangeRaw,
				Index: i,
				Raw:   s,
			})
		}
	}
	return records
}

// WriteCSV writes the table data file consumed by ReadCSV.
func WriteCSV(w io.Writer, ts *Tables) error {
	if err := gocsv.Marshal(ts.Records(), w); err != nil {
		return fmt.Errorf("writing table data: %w", err)
	}
	return nil
}

// ReadCSV loads externally generated tables and checks their structure:
// known names, one shift and range per table, contiguous indices starting at
// zero, floor(range/step)+2 samples, and a range covering the reduced domain.
func ReadCSV(r io.Reader) (*Tables, error) {
	var records []SampleRecord
	if err := gocsv.Unmarshal(r, &records); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedTable, err)
	}
	return FromRecords(records)
}

// FromRecords assembles tables from data file rows.
func FromRecords(records []SampleRecord) (*Tables, error) {
	built := make(map[string]*Table, 4)
	var cur *Table

	for _, rec := range records {
		if cur == nil || cur.name != rec.Table {
			if _, seen := built[rec.Table]; seen {
				return nil, fmt.Errorf("%w: table %q is not contiguous", ErrMalformedTable, rec.Table)
			}
			if rec.Shift >= 62 || rec.Range <= 0 {
				return nil, fmt.Errorf("%w: table %q has shift %d and range %d", ErrMalformedTable, rec.Table, rec.Shift, rec.Range)
			}
			cur = &Table{name: rec.Table, shift: rec.Shift, rangeRaw: rec.Range}
			built[rec.Table] = cur
		}

		if rec.Shift != cur.shift || rec.Range != cur.rangeRaw {
			return nil, fmt.Errorf("%w: table %q changes parameters at index %d", ErrMalformedTable, rec.Table, rec.Index)
		}
		if rec.Index != len(cur.samples) {
			return nil, fmt.Errorf("%w: table %q expected index %d, got %d", ErrMalformedTable, rec.Table, len(cur.samples), rec.Index)
		}
		cur.samples = append(cur.samples, rec.Raw)
	}

	ts := &Tables{}
	// minRange is the domain fxmath reduces each function's argument into.
	slots := []struct {
		name     string
		dst      **Table
		minRange int64
	}{
		{SqrtName, &ts.Sqrt, 4 * fx.OneRaw},
		{CosName, &ts.Cos, PiRaw / 2},
		{AsinName, &ts.Asin, fx.OneRaw},
		{AtanName, &ts.Atan, fx.OneRaw},
	}
	for _, slot := range slots {
		t, ok := built[slot.name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingTable, slot.name)
		}
		if want := expectedLen(t.rangeRaw, t.shift); len(t.samples) != want {
			return nil, fmt.Errorf("%w: table %q has %d samples, want %d", ErrMalformedTable, t.name, len(t.samples), want)
		}
		if t.rangeRaw < slot.minRange {
			return nil, fmt.Errorf("%w: table %q covers %s, need at least %s",
				ErrMalformedTable, t.name, fx.FromRaw(t.rangeRaw), fx.FromRaw(slot.minRange))
		}
		*slot.dst = newTable(t.name, t.shift, t.rangeRaw, t.samples)
		delete(built, slot.name)
	}
	for name := range built {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTable, name)
	}

	return ts, nil
}
