package main

import (
	"log"
	"os"

	"csvport/cmd"
	"csvport/internal/logutil"

	"github.com/urfave/cli/v2"
)

func main() {
	logutil.Init()
	defer logutil.Sync()

	app := &cli.App{
		Name:  "csvport",
		Usage: "Export a PostgreSQL table to CSV or import a CSV file into a table",
		Commands: []*cli.Command{
			cmd.ExportCommand(),
			cmd.ImportCommand(),
			cmd.ListCommand(),
		},
	}

	if err := app.Run(cmd.NormalizeArgs(os.Args)); err != nil {
		log.Fatal(err)
	}
}
