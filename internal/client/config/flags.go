package config

import (
	"flag"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/dmitrijs2005/cmsadmin/internal/flagx"
)

var knownFlags = []string{"-a", "-t", "-d", "-l", "-f", "-s"}

type flagValues struct {
	timeout  *int
	statuses flagx.IntList
}

func newFlagSet(cfg *Config) (*flag.FlagSet, *flagValues) {
	fs := flag.NewFlagSet("cmsadmin", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	v := &flagValues{statuses: flagx.IntList(cfg.RefreshStatuses)}
	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the CMS API")
	v.timeout = fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.SessionDSN, "d", cfg.SessionDSN, "session database file")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogFormat, "f", cfg.LogFormat, "log format (text, json, zap)")
	fs.Var(&v.statuses, "s", "comma separated statuses that trigger a token refresh")
	return fs, v
}

// parseFlags overlays cfg with the flags it knows about. Other arguments
// (the JSON config path, REPL input) are filtered out with
// flagx.FilterArgs first.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, knownFlags)

	fs, v := newFlagSet(cfg)
	if err := fs.Parse(args); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.RequestTimeout = time.Duration(*v.timeout) * time.Second
		}
	})
	cfg.RefreshStatuses = []int(v.statuses)
	return nil
}

// HelpRequested reports whether args ask for the usage text.
func HelpRequested(args []string) bool {
	return slices.ContainsFunc(args, func(a string) bool {
		return a == "-h" || a == "-help" || a == "--help"
	})
}

// PrintUsage writes the flags and environment variables to w.
func PrintUsage(w io.Writer) error {
	cfg := &Config{}
	cfg.LoadDefaults()
	fs, _ := newFlagSet(cfg)

	fmt.Fprintln(w, "Usage: cmsadmin [-c config.json] [flags]")
	fs.SetOutput(w)
	fs.PrintDefaults()

	env, err := EnvUsage()
	if err != nil {
		return err
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, env)
	return nil
}
