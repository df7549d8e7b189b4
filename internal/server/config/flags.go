package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/profilevault/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   PostgreSQL DSN
//	-m int      max open connections
//	-l int      connection max lifetime, minutes
//
// Notes:
//   - The function first filters os.Args to only the flags it recognizes using
//     flagx.FilterArgs, avoiding collisions with other components.
//   - Duration flags are accepted as integers in minutes and then converted
//     to time.Duration values.
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-m", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.IntVar(&config.MaxOpenConns, "m", config.MaxOpenConns, "max open connections")

	connMaxLifetime := fs.Int("l", int(config.ConnMaxLifetime.Minutes()), "conn_max_lifetime (in minutes)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.ConnMaxLifetime = time.Duration(*connMaxLifetime) * time.Minute
}
