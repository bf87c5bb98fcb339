package db

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"time"
)

// Dataset is an in-memory table: an ordered list of column names and
// rows of nullable text cells. An invalid NullString cell is SQL NULL.
type Dataset struct {
	Columns []string
	Rows    [][]sql.NullString
}

// ReadCSV parses an entire CSV stream into a Dataset. The first record
// is the header. Empty and literal NULL fields become SQL NULL.
func ReadCSV(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparsable, err)
	}

	ds := &Dataset{Columns: header}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnparsable, err)
		}

		row := make([]sql.NullString, len(record))
		for i, v := range record {
			if v == "" || v == "NULL" {
				continue
			}
			row[i] = sql.NullString{String: v, Valid: true}
		}
		ds.Rows = append(ds.Rows, row)
	}

	return ds, nil
}

// WriteCSV serializes the dataset: header row first, then data rows.
// NULL cells render as empty fields.
func (d *Dataset) WriteCSV(w io.Writer) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(d.Columns); err != nil {
		return fmt.Errorf("writing CSV header: %v", err)
	}

	for _, row := range d.Rows {
		record := make([]string, len(row))
		for i, cell := range row {
			if cell.Valid {
				record[i] = cell.String
			}
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("writing CSV row: %v", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// DropColumn removes the named column and its cells from every row,
// preserving the order of the remaining columns. Dropping a column
// that does not exist is a no-op.
func (d *Dataset) DropColumn(name string) {
	idx := -1
	for i, col := range d.Columns {
		if col == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}

	d.Columns = append(d.Columns[:idx], d.Columns[idx+1:]...)
	for r, row := range d.Rows {
		if idx < len(row) {
			d.Rows[r] = append(row[:idx], row[idx+1:]...)
		}
	}
}

// renderValue converts a value scanned from database/sql into a cell.
func renderValue(v interface{}) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	switch val := v.(type) {
	case []byte:
		return sql.NullString{String: string(val), Valid: true}
	case time.Time:
		return sql.NullString{String: val.Format("2006-01-02 15:04:05.999999 -0700 MST"), Valid: true}
	default:
		return sql.NullString{String: fmt.Sprintf("%v", val), Valid: true}
	}
}
