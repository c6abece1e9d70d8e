package config

import (
	"flag"
	"os"
	"time"

	"github.com/andresMonthn/OpticSave-sub000/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-u string   base URL of the hosted backend (default from Config)
//	-k string   application api key
//	-d string   path to the local database file
//	-i int      online check interval in seconds (default from Config)
//	-m string   metrics listen address (empty disables the endpoint)
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-u", "-k", "-d", "-i", "-m"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.BaseURL, "u", cfg.BaseURL, "base URL of the hosted backend")
	fs.StringVar(&cfg.APIKey, "k", cfg.APIKey, "application api key")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the local database file")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.StringVar(&cfg.MetricsAddr, "m", cfg.MetricsAddr, "metrics listen address")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
}
