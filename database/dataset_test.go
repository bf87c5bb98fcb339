package db

import (
	"bytes"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"
)

func cell(s string) sql.NullString {
	return sql.NullString{String: s, Valid: true}
}

func TestReadCSV(t *testing.T) {
	input := "sku,qty\nX1,5\nY2,\n"

	ds, err := ReadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}

	if len(ds.Columns) != 2 || ds.Columns[0] != "sku" || ds.Columns[1] != "qty" {
		t.Errorf("unexpected columns: %v", ds.Columns)
	}
	if len(ds.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(ds.Rows))
	}
	if ds.Rows[0][0] != cell("X1") || ds.Rows[0][1] != cell("5") {
		t.Errorf("unexpected first row: %v", ds.Rows[0])
	}
	if ds.Rows[1][1].Valid {
		t.Errorf("empty field should be NULL, got %v", ds.Rows[1][1])
	}
}

func TestReadCSVNullLiteral(t *testing.T) {
	ds, err := ReadCSV(strings.NewReader("sku,qty\nNULL,5\n"))
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}
	if ds.Rows[0][0].Valid {
		t.Errorf("literal NULL should be a NULL cell, got %v", ds.Rows[0][0])
	}
}

func TestReadCSVEmptyFile(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	if !errors.Is(err, ErrEmptyFile) {
		t.Errorf("expected ErrEmptyFile, got %v", err)
	}
}

func TestReadCSVUnparsable(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"bare quote", "sku,qty\n\"X1,5\n"},
		{"ragged row", "sku,qty\nX1,5,extra\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ReadCSV(strings.NewReader(tc.input)); !errors.Is(err, ErrUnparsable) {
				t.Errorf("expected ErrUnparsable, got %v", err)
			}
		})
	}
}

func TestReadCSVHeaderOnly(t *testing.T) {
	ds, err := ReadCSV(strings.NewReader("sku,qty\n"))
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}
	if len(ds.Rows) != 0 {
		t.Errorf("expected no rows, got %d", len(ds.Rows))
	}
}

func TestWriteCSV(t *testing.T) {
	ds := &Dataset{
		Columns: []string{"sku", "qty"},
		Rows: [][]sql.NullString{
			{cell("X1"), cell("5")},
			{cell("Y2"), {}},
		},
	}

	var buf bytes.Buffer
	if err := ds.WriteCSV(&buf); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	want := "sku,qty\nX1,5\nY2,\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestCSVRoundTrip(t *testing.T) {
	ds := &Dataset{
		Columns: []string{"sku", "qty", "note"},
		Rows: [][]sql.NullString{
			{cell("X1"), cell("5"), cell("has, comma")},
			{cell("Y2"), {}, cell("line\nbreak")},
		},
	}

	var buf bytes.Buffer
	if err := ds.WriteCSV(&buf); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	back, err := ReadCSV(&buf)
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}

	if len(back.Columns) != len(ds.Columns) {
		t.Fatalf("column count changed: %v", back.Columns)
	}
	for i, row := range ds.Rows {
		for j := range row {
			if back.Rows[i][j] != row[j] {
				t.Errorf("cell (%d,%d) changed: got %v, want %v", i, j, back.Rows[i][j], row[j])
			}
		}
	}
}

func TestDropColumn(t *testing.T) {
	ds := &Dataset{
		Columns: []string{"id", "sku", "qty"},
		Rows: [][]sql.NullString{
			{cell("1"), cell("X1"), cell("5")},
		},
	}

	ds.DropColumn("id")

	if len(ds.Columns) != 2 || ds.Columns[0] != "sku" || ds.Columns[1] != "qty" {
		t.Errorf("unexpected columns after drop: %v", ds.Columns)
	}
	if len(ds.Rows[0]) != 2 || ds.Rows[0][0] != cell("X1") {
		t.Errorf("unexpected row after drop: %v", ds.Rows[0])
	}
}

func TestDropColumnMiddle(t *testing.T) {
	ds := &Dataset{
		Columns: []string{"sku", "id", "qty"},
		Rows: [][]sql.NullString{
			{cell("X1"), cell("1"), cell("5")},
		},
	}

	ds.DropColumn("id")

	if ds.Columns[0] != "sku" || ds.Columns[1] != "qty" {
		t.Errorf("column order not preserved: %v", ds.Columns)
	}
	if ds.Rows[0][0] != cell("X1") || ds.Rows[0][1] != cell("5") {
		t.Errorf("cells not aligned after drop: %v", ds.Rows[0])
	}
}

func TestDropColumnAbsent(t *testing.T) {
	ds := &Dataset{
		Columns: []string{"sku", "qty"},
		Rows: [][]sql.NullString{
			{cell("X1"), cell("5")},
		},
	}

	ds.DropColumn("id")

	if len(ds.Columns) != 2 || len(ds.Rows[0]) != 2 {
		t.Errorf("drop of absent column modified dataset: %v %v", ds.Columns, ds.Rows)
	}
}

func TestRenderValue(t *testing.T) {
	if v := renderValue(nil); v.Valid {
		t.Errorf("nil should render as NULL, got %v", v)
	}
	if v := renderValue([]byte("abc")); v != cell("abc") {
		t.Errorf("[]byte rendered as %v", v)
	}
	if v := renderValue(int64(42)); v != cell("42") {
		t.Errorf("int64 rendered as %v", v)
	}

	ts := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	if v := renderValue(ts); !strings.HasPrefix(v.String, "2024-03-01 12:30:00") {
		t.Errorf("time rendered as %v", v)
	}
}
