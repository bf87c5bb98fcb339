package db

// Manager defines the database operations the CLI commands depend on.
type Manager interface {
	ConnectWithDSN(dsn string) error
	Close() error
	ReadTable(table string) (*Dataset, error)
	ClearTable(table string) error
	AppendRows(table string, ds *Dataset) error
	ListTables() ([]string, error)
	CountRows(table string) (int64, error)
}
