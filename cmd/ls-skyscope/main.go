// Command ls-skyscope reports which bright planets, the Moon and a few named
// stars are above the horizon for an observer.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
	"golang.org/x/time/rate"

	"github.com/litescript/ls-skyscope/internal/api"
	"github.com/litescript/ls-skyscope/internal/config"
	"github.com/litescript/ls-skyscope/internal/ephem"
	"github.com/litescript/ls-skyscope/internal/export"
	"github.com/litescript/ls-skyscope/internal/logging"
	"github.com/litescript/ls-skyscope/internal/site"
	"github.com/litescript/ls-skyscope/internal/sky"
	"github.com/litescript/ls-skyscope/internal/ui"
	"github.com/litescript/ls-skyscope/internal/version"
)

// CLI flags
var (
	latFlag       float64
	lonFlag       float64
	siteName      string
	timeFlag      string
	jsonMode      bool
	ephemMode     string
	configPath    string
	logLevel      string
	logFormat     string
	serveAddr     string
	tuiMode       bool
	watchInterval time.Duration
	showVersion   bool
)

const minWatch = 10 * time.Second

func main() {
	flag.Float64Var(&latFlag, "lat", math.NaN(), "Observer latitude in degrees (north positive)")
	flag.Float64Var(&lonFlag, "lon", math.NaN(), "Observer longitude in degrees (east positive)")
	flag.StringVar(&siteName, "site", "", "Named site instead of -lat/-lon (e.g. London)")
	flag.StringVar(&timeFlag, "time", "", "Observation time, RFC 3339 (default now)")
	flag.BoolVar(&jsonMode, "json", false, "Print a JSON snapshot instead of a table")
	flag.StringVar(&ephemMode, "ephem", "", "Ephemeris engine: local, horizons or auto")
	flag.StringVar(&configPath, "config", "", "YAML configuration file")
	flag.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&logFormat, "log-format", "", "Log format (text, json)")
	flag.StringVar(&serveAddr, "serve", "", "Serve the HTTP API on this address (e.g. :8080)")
	flag.BoolVar(&tuiMode, "tui", false, "Start the interactive site picker")
	flag.DurationVar(&watchInterval, "watch", 0, "Repeat the query at this interval (e.g. 5m)")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("ls-skyscope v%s\n", version.Version)
		return
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	logger := logging.NewWithOutput(os.Stderr, logging.ParseLevel(cfg.LogLevel), logging.ParseFormat(cfg.LogFormat))

	sites, err := cfg.SiteRegistry()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	eph := ephem.New(cfg.Mode(), ephem.Options{
		HorizonsURL: cfg.HorizonsURL,
		Logger:      logger.With("component", "ephem"),
	})
	query := sky.New(eph, sky.WithLogger(logger.With("component", "sky")))
	logger.Debug("ephemeris engine: %s", query.Engine())

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch {
	case cfg.Server.Enabled:
		srv := api.NewServer(cfg.Server.Addr, api.Options{
			Query:       query,
			Sites:       sites,
			Logger:      logger,
			RateLimit:   rate.Limit(cfg.Server.RateLimit),
			Burst:       cfg.Server.Burst,
			AllowOrigin: cfg.Server.AllowOrigin,
		})
		if err := srv.Run(ctx); err != nil {
			logger.Error("%v", err)
			os.Exit(1)
		}

	case tuiMode:
		model := ui.New(query, sites.Sites(), cfg.DefaultSite)
		p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
		if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
			os.Exit(1)
		}

	default:
		if err := runHeadless(ctx, query, sites, cfg.DefaultSite, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
}

// loadConfig reads the config file, if any, and applies flag overrides.
func loadConfig() (config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return cfg, err
		}
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if logFormat != "" {
		cfg.LogFormat = logFormat
	}
	if ephemMode != "" {
		cfg.Ephemeris = ephemMode
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
		cfg.Server.Enabled = true
	}
	return cfg, cfg.Validate()
}

// resolveObserver picks the observer from -lat/-lon, -site or the default
// site, in that order.
func resolveObserver(sites *site.Registry, defaultSite string) (site.Site, error) {
	latSet, lonSet := !math.IsNaN(latFlag), !math.IsNaN(lonFlag)
	switch {
	case latSet != lonSet:
		return site.Site{}, errors.New("-lat and -lon must be given together")
	case latSet && siteName != "":
		return site.Site{}, errors.New("-site cannot be combined with -lat/-lon")
	case latSet:
		return site.Site{LatDeg: latFlag, LonDeg: lonFlag}, nil
	}

	name := siteName
	if name == "" {
		name = defaultSite
	}
	s, ok := sites.Lookup(name)
	if !ok {
		return site.Site{}, fmt.Errorf("unknown site %q (known: %v)", name, sites.Names())
	}
	return s, nil
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid -time %q: want RFC 3339", s)
	}
	return t, nil
}

// runHeadless prints one observation, or one per -watch interval.
func runHeadless(ctx context.Context, query *sky.Query, sites *site.Registry, defaultSite string, logger *logging.Logger) error {
	obsSite, err := resolveObserver(sites, defaultSite)
	if err != nil {
		return err
	}
	at, err := parseTime(timeFlag)
	if err != nil {
		return err
	}
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))

	outputOnce := func(w io.Writer) error {
		obs, err := query.Observe(ctx, obsSite.LatDeg, obsSite.LonDeg, at)
		if err != nil {
			return err
		}
		obs.Observer.Name = obsSite.Name

		if jsonMode {
			snap := export.NewSnapshot(obs, time.Now())
			snap.Engine = query.Engine()
			if err := snap.WriteJSON(w); err != nil {
				return fmt.Errorf("write JSON: %w", err)
			}
			return nil
		}
		export.WriteTable(w, obs, isTTY)
		return nil
	}

	// A fixed -time makes repeats pointless.
	if watchInterval == 0 || !at.IsZero() {
		return outputOnce(os.Stdout)
	}

	if watchInterval < minWatch {
		watchInterval = minWatch
	}
	if err := outputOnce(os.Stdout); err != nil {
		logger.Error("query failed: %v", err)
	}

	ticker := time.NewTicker(watchInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if !jsonMode {
				fmt.Println()
			}
			if err := outputOnce(os.Stdout); err != nil {
				logger.Error("query failed: %v", err)
			}
		}
	}
}
