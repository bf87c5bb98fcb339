package db

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// PostgresManager wraps a single database/sql handle to one PostgreSQL
// endpoint. One manager is created per invocation and never reused.
type PostgresManager struct {
	DB *sql.DB
}

func (p *PostgresManager) ConnectWithDSN(dsn string) error {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return err
	}
	p.DB = db
	return nil
}

func (p *PostgresManager) Close() error {
	if p.DB == nil {
		return nil
	}
	return p.DB.Close()
}

// ReadTable scans the whole table into a Dataset, columns in
// result-set order.
func (p *PostgresManager) ReadTable(table string) (*Dataset, error) {
	if p.DB == nil {
		return nil, errors.New("no database connection")
	}

	rows, err := p.DB.Query(fmt.Sprintf("SELECT * FROM %s", pq.QuoteIdentifier(table)))
	if err != nil {
		return nil, fmt.Errorf("querying table %s: %w", table, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("reading columns: %w", err)
	}

	ds := &Dataset{Columns: columns}

	values := make([]interface{}, len(columns))
	valuePtrs := make([]interface{}, len(columns))
	for i := range values {
		valuePtrs[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		row := make([]sql.NullString, len(columns))
		for i, val := range values {
			row[i] = renderValue(val)
		}
		ds.Rows = append(ds.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}

	return ds, nil
}

// ClearTable deletes every row of the table in its own committed
// transaction, released on all exit paths.
func (p *PostgresManager) ClearTable(table string) error {
	if p.DB == nil {
		return errors.New("no database connection")
	}

	tx, err := p.DB.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	if _, err := tx.Exec(fmt.Sprintf("DELETE FROM %s", pq.QuoteIdentifier(table))); err != nil {
		tx.Rollback()
		return fmt.Errorf("clearing table %s: %w", table, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// AppendRows bulk-loads the dataset into the table with COPY. NULL
// cells travel as SQL NULL; everything else goes as text and is
// coerced by the server against the existing column types.
func (p *PostgresManager) AppendRows(table string, ds *Dataset) error {
	if p.DB == nil {
		return errors.New("no database connection")
	}

	tx, err := p.DB.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	stmt, err := tx.Prepare(pq.CopyIn(table, ds.Columns...))
	if err != nil {
		return fmt.Errorf("preparing COPY statement: %w", err)
	}

	for i, row := range ds.Rows {
		values := make([]interface{}, len(row))
		for j, cell := range row {
			if cell.Valid {
				values[j] = cell.String
			}
		}
		if _, err = stmt.Exec(values...); err != nil {
			stmt.Close()
			return fmt.Errorf("copying row %d into %s: %w", i+1, table, err)
		}
	}

	if err = stmt.Close(); err != nil {
		return fmt.Errorf("closing COPY statement: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// ListTables returns the names of all public base tables.
func (p *PostgresManager) ListTables() ([]string, error) {
	if p.DB == nil {
		return nil, errors.New("no database connection")
	}

	rows, err := p.DB.Query(`
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = 'public'
		AND table_type = 'BASE TABLE'
		ORDER BY table_name
	`)
	if err != nil {
		return nil, fmt.Errorf("querying tables: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning table name: %w", err)
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

// CountRows returns the current row count of the table.
func (p *PostgresManager) CountRows(table string) (int64, error) {
	if p.DB == nil {
		return 0, errors.New("no database connection")
	}

	var n int64
	err := p.DB.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", pq.QuoteIdentifier(table))).Scan(&n)
	return n, err
}
