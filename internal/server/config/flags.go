package config

import (
	"flag"
	"os"
	"time"

	"github.com/agency/cryptoservice/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-n string   NATS server URL (e.g., "nats://localhost:4222")
//	-d string   PostgreSQL DSN
//	-t int      max redemption attempts before self-destruct
//	-i int      cleanup interval, minutes
//	-m int      cleanup max age, hours
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components (the JSON
// config loader owns -c/-config). Interval flags are accepted as integers
// and converted to time.Duration values.
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-n", "-d", "-t", "-i", "-m"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.NatsURL, "n", config.NatsURL, "NATS server URL")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.IntVar(&config.MaxTries, "t", config.MaxTries, "max redemption attempts")

	cleanupInterval := fs.Int("i", int(config.CleanupInterval.Minutes()), "cleanup interval (in minutes)")
	cleanupMaxAge := fs.Int("m", int(config.CleanupMaxAge.Hours()), "cleanup max age (in hours)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.CleanupInterval = time.Duration(*cleanupInterval) * time.Minute
	config.CleanupMaxAge = time.Duration(*cleanupMaxAge) * time.Hour
}
