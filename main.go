package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sugawarayuuta/sonnet"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/2767mr/polycubes/internal/config"
	"github.com/2767mr/polycubes/internal/logger"
	"github.com/2767mr/polycubes/internal/polycube"
)

var errUsage = errors.New("usage")

type summary struct {
	N       int     `json:"n"`
	Threads int     `json:"threads"`
	Count   uint64  `json:"count"`
	Elapsed float64 `json:"elapsed_seconds"`
}

func main() {
	err := run(os.Args[1:], os.Stdout, os.Stderr)
	logger.OnExit()

	switch {
	case err == nil, errors.Is(err, flag.ErrHelp):
	case errors.Is(err, errUsage):
		os.Exit(2)
	default:
		fmt.Fprintln(os.Stderr, "polycubes:", err)
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (config.Config, error) {
	fs := flag.NewFlagSet("polycubes", flag.ContinueOnError)
	fs.SetOutput(stderr)

	defaults := config.Default()
	n := fs.Int("n", 0, "the number of cubes within each polycube")
	threads := fs.Int("t", defaults.Workers, "the number of worker threads to use")
	cutoff := fs.Int("cutoff", defaults.Cutoff, "shape size at which work is handed to the workers")
	configPath := fs.String("config", "", "TOML file with default settings")
	logLevel := fs.String("log-level", defaults.LogLevel, "log level (debug, info, warn, error, or NOOP)")
	format := fs.String("format", defaults.Format, "output format: text or json")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return config.Config{}, err
		}
		return config.Config{}, fmt.Errorf("%w: %v", errUsage, err)
	}

	cfg := defaults
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}

	// flags given on the command line win over the file
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "n":
			cfg.Cubes = *n
		case "t":
			cfg.Workers = *threads
		case "cutoff":
			cfg.Cutoff = *cutoff
		case "log-level":
			cfg.LogLevel = *logLevel
		case "format":
			cfg.Format = *format
		}
	})

	if cfg.Cubes < 1 {
		fmt.Fprintln(stderr, "polycubes: -n must be a positive number of cubes")
		fs.Usage()
		return config.Config{}, errUsage
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func run(args []string, stdout, stderr io.Writer) error {
	cfg, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	if err := logger.New(cfg.LogLevel); err != nil {
		return err
	}
	log := logger.Sugar.WithServiceName("polycubes")

	undo, err := maxprocs.Set(maxprocs.Logger(log.Debugf))
	if err != nil {
		log.Warnw("could not align GOMAXPROCS with the CPU quota", "err", err)
	}
	defer undo()

	start := time.Now()

	pool, err := polycube.NewPool(cfg.Workers,
		polycube.WithCutoff(cfg.Cutoff),
		polycube.WithLogger(log.SugaredLogger),
	)
	if err != nil {
		return err
	}
	count, err := pool.Count(cfg.Cubes)
	pool.Shutdown()
	if err != nil {
		return err
	}

	elapsed := time.Since(start)
	log.Infow("done", "n", cfg.Cubes, "count", count, "elapsed", elapsed)

	if cfg.Format == config.FormatJSON {
		out, err := sonnet.Marshal(summary{
			N:       cfg.Cubes,
			Threads: cfg.Workers,
			Count:   count,
			Elapsed: elapsed.Seconds(),
		})
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(stdout, "%s\n", out)
		return err
	}

	fmt.Fprintf(stdout, "Found %d unique polycubes\n", count)
	fmt.Fprintf(stdout, "Elapsed time: %f s\n", elapsed.Seconds())
	return nil
}
