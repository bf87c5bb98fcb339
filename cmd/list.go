package cmd

import (
	"io"
	"os"
	"strconv"

	db "csvport/database"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func ListCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List tables in the database with their row counts",
		Flags: connectionFlags(),
		Action: func(c *cli.Context) error {
			pg := &db.PostgresManager{}
			if err := pg.ConnectWithDSN(buildDSN(c)); err != nil {
				zap.S().Errorf("Error listing tables: %v", err)
				return nil
			}
			defer pg.Close()

			runList(pg, os.Stdout)
			return nil
		},
	}
}

func runList(pg db.Manager, out io.Writer) {
	tables, err := pg.ListTables()
	if err != nil {
		zap.S().Errorf("Error listing tables: %v", err)
		return
	}
	if len(tables) == 0 {
		zap.S().Info("No tables found.")
		return
	}

	w := tablewriter.NewWriter(out)
	w.SetHeader([]string{"Table", "Rows"})
	w.SetBorder(false)
	w.SetColumnSeparator(" ")

	for _, table := range tables {
		count, err := pg.CountRows(table)
		if err != nil {
			zap.S().Errorf("Error counting rows in %s: %v", table, err)
			return
		}
		w.Append([]string{table, strconv.FormatInt(count, 10)})
	}

	w.Render()
}
