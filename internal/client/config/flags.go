package config

import (
	"flag"
	"os"
	"time"

	"github.com/mghilardi/vidlib/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the catalog server
//	-f string   path to the ffprobe binary
//	-d string   path of the local catalog cache database
//	-i int      online check interval in seconds
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-f", "-d", "-i"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "base URL of the catalog server")
	fs.StringVar(&cfg.FFProbePath, "f", cfg.FFProbePath, "path to the ffprobe binary")
	fs.StringVar(&cfg.CacheDSN, "d", cfg.CacheDSN, "path of the local catalog cache database")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
}
