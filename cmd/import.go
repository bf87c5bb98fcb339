package cmd

import (
	"errors"
	"os"

	db "csvport/database"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func ImportCommand() *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "Import a CSV file into a table, replacing its contents",
		ArgsUsage: "<table_name>",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:  "csv_file",
				Usage: "Path to the source CSV file (required)",
			},
		}, connectionFlags()...),
		Action: func(c *cli.Context) error {
			table, err := tableArg(c)
			if err != nil {
				return err
			}

			// Checked here rather than by the parser: a missing path
			// is a logged, zero-exit abort, not a usage error.
			csvFile := c.String("csv_file")
			if csvFile == "" {
				zap.S().Error("CSV file path is required for import.")
				return nil
			}

			pg := &db.PostgresManager{}
			if err := pg.ConnectWithDSN(buildDSN(c)); err != nil {
				zap.S().Errorf("Error importing data: %v", err)
				return nil
			}
			defer pg.Close()

			runImport(pg, table, csvFile)
			return nil
		},
	}
}

// runImport parses the source file completely before any database
// write, so a missing or malformed file leaves the destination table
// untouched. Only then is the table cleared and reloaded.
func runImport(pg db.Manager, table, csvFile string) {
	file, err := os.Open(csvFile)
	if err != nil {
		if os.IsNotExist(err) {
			zap.S().Errorf("The file %s was not found.", csvFile)
		} else {
			zap.S().Errorf("Error importing data: %v", err)
		}
		return
	}
	defer file.Close()

	ds, err := db.ReadCSV(file)
	if err != nil {
		switch {
		case errors.Is(err, db.ErrEmptyFile):
			zap.S().Error("The file is empty.")
		case errors.Is(err, db.ErrUnparsable):
			zap.S().Error("The file could not be parsed.")
		default:
			zap.S().Errorf("Error importing data: %v", err)
		}
		return
	}
	ds.DropColumn("id")

	if err := pg.ClearTable(table); err != nil {
		logImportError(err)
		return
	}
	zap.S().Info("Table cleared successfully.")

	if err := pg.AppendRows(table, ds); err != nil {
		logImportError(err)
		return
	}

	zap.S().Infof("Data uploaded successfully! %d records imported.", len(ds.Rows))
}

func logImportError(err error) {
	switch {
	case db.IsIntegrityViolation(err):
		zap.S().Errorf("Integrity error during import: %v", err)
	case db.IsOperational(err):
		zap.S().Errorf("Database connection error: %v", err)
	default:
		zap.S().Errorf("Error importing data: %v", err)
	}
}
