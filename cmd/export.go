package cmd

import (
	"os"

	db "csvport/database"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func ExportCommand() *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     "Export a table to <table_name>.csv in the current directory",
		ArgsUsage: "<table_name>",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:  "csv_file",
				Usage: "Ignored; the output path is always <table_name>.csv",
			},
		}, connectionFlags()...),
		Action: func(c *cli.Context) error {
			table, err := tableArg(c)
			if err != nil {
				return err
			}

			pg := &db.PostgresManager{}
			if err := pg.ConnectWithDSN(buildDSN(c)); err != nil {
				zap.S().Errorf("Error exporting data: %v", err)
				return nil
			}
			defer pg.Close()

			runExport(pg, table)
			return nil
		},
	}
}

// runExport reads the whole table, drops the id column and writes the
// CSV into the working directory, overwriting any existing file.
// Failures are logged and swallowed: the exit code stays zero.
func runExport(pg db.Manager, table string) {
	csvPath := table + ".csv"

	ds, err := pg.ReadTable(table)
	if err != nil {
		zap.S().Errorf("Error exporting data: %v", err)
		return
	}
	ds.DropColumn("id")

	file, err := os.Create(csvPath)
	if err != nil {
		zap.S().Errorf("Error exporting data: %v", err)
		return
	}
	defer file.Close()

	if err := ds.WriteCSV(file); err != nil {
		zap.S().Errorf("Error exporting data: %v", err)
		return
	}

	zap.S().Infof("Data exported successfully to %s.", csvPath)
}
