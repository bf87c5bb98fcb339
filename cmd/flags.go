package cmd

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"
)

// NormalizeArgs moves the positional table name, which the CLI accepts
// directly after the command name, behind that command's flags.
// Flag parsing stops at the first non-flag argument, so
// "import orders --db_user u" would otherwise leave every flag unseen.
func NormalizeArgs(args []string) []string {
	if len(args) < 4 || strings.HasPrefix(args[2], "-") {
		return args
	}
	out := make([]string, 0, len(args))
	out = append(out, args[0], args[1])
	out = append(out, args[3:]...)
	return append(out, args[2])
}

// connectionFlags are shared by every command that reaches the
// database. User, password and database name are enforced by the
// parser; host and port carry the usual defaults.
func connectionFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "db_user",
			Required: true,
			Usage:    "Database user name",
		},
		&cli.StringFlag{
			Name:     "db_password",
			Required: true,
			Usage:    "Database password",
		},
		&cli.StringFlag{
			Name:     "db_name",
			Required: true,
			Usage:    "Database name",
		},
		&cli.StringFlag{
			Name:  "db_host",
			Value: "localhost",
			Usage: "Database host",
		},
		&cli.StringFlag{
			Name:  "db_port",
			Value: "5432",
			Usage: "Database port",
		},
	}
}

// buildDSN assembles the connection URL from the shared flags. lib/pq
// refuses plain TCP connections unless sslmode is set, so disable is
// appended here.
func buildDSN(c *cli.Context) string {
	return fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=disable",
		c.String("db_user"),
		c.String("db_password"),
		c.String("db_host"),
		c.String("db_port"),
		c.String("db_name"))
}

// tableArg returns the required table name positional argument.
func tableArg(c *cli.Context) (string, error) {
	table := c.Args().First()
	if table == "" {
		return "", fmt.Errorf("missing required argument: table_name")
	}
	return table, nil
}
