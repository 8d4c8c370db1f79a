// whispers is a terminal viewer for short posts ("whispers").
//
// It polls a feed of whispers, shows them as a card grid, and opens any
// card in a full-screen viewer that rotates to a random whisper after a
// dwell time.
//
// Usage:
//
//	whispers [flags]
//
// Flags:
//
//	-config string    Path to configuration file (default: ~/.config/whispers/config.toml)
//	-mode string      Dwell preset: development or production
//	-endpoint string  HTTP endpoint serving the post list
//	-file string      Read whispers from a local JSON or YAML file
//	-theme string     Theme name (auto, default, light, gruvbox, nord, dracula)
//	-demo             Use generated whispers instead of a real feed
//	-seed uint        Seed for -demo (0 = time based)
//	-print            Print the list once and exit
//	-starship         Print a one-line summary of the cached feed for a starship module
//	-emacs string     Print the cached feed for Emacs (json|text)
//	-verbose          Enable verbose logging
//	-version          Print version and exit
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"golang.org/x/sync/errgroup"

	"gitlab.com/tinyland/lab/whispers/pkg/app"
	"gitlab.com/tinyland/lab/whispers/pkg/cache"
	"gitlab.com/tinyland/lab/whispers/pkg/config"
	"gitlab.com/tinyland/lab/whispers/pkg/emacs"
	"gitlab.com/tinyland/lab/whispers/pkg/feed"
	"gitlab.com/tinyland/lab/whispers/pkg/starship"
	"gitlab.com/tinyland/lab/whispers/pkg/theme"
	"gitlab.com/tinyland/lab/whispers/pkg/tui"
)

var (
	version = "0.1.0"
	commit  = "dev"
	date    = "unknown"
)

// demoCount is the number of whispers the -demo source starts with.
const demoCount = 12

func main() {
	var (
		configPath  = flag.String("config", "", "Path to configuration file")
		mode        = flag.String("mode", "", "Dwell preset: development or production")
		endpoint    = flag.String("endpoint", "", "HTTP endpoint serving the post list")
		file        = flag.String("file", "", "Read whispers from a local JSON or YAML file")
		themeName   = flag.String("theme", "", "Theme name (auto, default, light, gruvbox, nord, dracula)")
		demo        = flag.Bool("demo", false, "Use generated whispers instead of a real feed")
		seed        = flag.Uint64("seed", 0, "Seed for -demo (0 = time based)")
		printOnce   = flag.Bool("print", false, "Print the list once and exit")
		emacsOut    = flag.String("emacs", "", "Print the cached feed for Emacs (json|text)")
		starshipOut = flag.Bool("starship", false, "Print a one-line summary of the cached feed for a starship module")
		verbose     = flag.Bool("verbose", false, "Enable verbose logging")
		showVersion = flag.Bool("version", false, "Print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("whispers %s (%s) built %s\n", version, commit, date)
		os.Exit(0)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *mode != "" {
		cfg.General.Mode = *mode
	}
	if *endpoint != "" {
		cfg.Feed.Endpoint = *endpoint
	}
	if *file != "" {
		cfg.Feed.File = *file
	}
	if *themeName != "" {
		cfg.Theme.Name = *themeName
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	interactive := !*printOnce && !*starshipOut && *emacsOut == "" && isatty.IsTerminal(os.Stdout.Fd())

	level := cfg.Level()
	if *verbose {
		level = slog.LevelDebug
	}
	logger, closeLog := newLogger(cfg.General.LogFile, level, interactive)
	defer closeLog()

	th := resolveTheme(cfg, logger)

	src := newSource(cfg, *demo, *seed)
	logger.Info("starting whispers",
		"version", version,
		"source", src.Name(),
		"mode", cfg.General.Mode,
		"theme", th.Name,
	)

	var store *cache.Store
	if !*demo {
		store, err = cache.NewStore(cache.Config{
			Dir: cfg.General.CacheDir,
			TTL: cfg.Feed.SnapshotTTL.Duration,
		})
		if err != nil {
			logger.Warn("snapshot cache disabled", "error", err)
		} else if n, err := store.Prune(); err != nil {
			logger.Warn("cache prune failed", "error", err)
		} else if n > 0 {
			logger.Debug("pruned cache entries", "count", n)
		}
	}

	if *starshipOut {
		fmt.Print(starship.Render(starship.DefaultConfig(store, src.Name())))
		return
	}

	switch *emacsOut {
	case "":
	case "json":
		out, err := emacs.RenderJSON(store, src.Name(), time.Now())
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		fmt.Println(out)
		return
	case "text":
		fmt.Println(emacs.RenderPropertized(store, src.Name(), time.Now()))
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown emacs format: %s (supported: json, text)\n", *emacsOut)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if !interactive {
		if err := printList(ctx, src, store, th, logger); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := runTUI(ctx, cfg, src, store, th, logger); err != nil {
		logger.Error("TUI error", "error", err)
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFromFile(path)
}

// newLogger writes to the configured log file. The TUI owns the terminal,
// so interactive runs never log to stderr.
func newLogger(logFile string, level slog.Level, interactive bool) (*slog.Logger, func()) {
	opts := &slog.HandlerOptions{Level: level}
	if logFile != "" {
		if err := ensureLogDir(logFile); err == nil {
			f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err == nil {
				return slog.New(slog.NewTextHandler(f, opts)), func() { f.Close() }
			}
		}
	}
	var w io.Writer = os.Stderr
	if interactive {
		w = io.Discard
	}
	return slog.New(slog.NewTextHandler(w, opts)), func() {}
}

func ensureLogDir(logFile string) error {
	return os.MkdirAll(filepath.Dir(logFile), 0o755)
}

// resolveTheme loads a custom theme file if configured, picks the named
// palette and downsamples it to what the terminal can show.
func resolveTheme(cfg *config.Config, logger *slog.Logger) theme.Theme {
	name := cfg.Theme.Name
	if cfg.Theme.File != "" {
		t, err := theme.LoadFile(cfg.Theme.File)
		if err != nil {
			logger.Warn("failed to load theme file", "path", cfg.Theme.File, "error", err)
		} else {
			name = t.Name
		}
	}
	t := theme.Resolve(name)
	return theme.Adapt(t, theme.ColorDepth(termenv.EnvColorProfile()))
}

func newSource(cfg *config.Config, demo bool, seed uint64) feed.Source {
	interval := cfg.Feed.PollInterval.Duration
	switch {
	case demo:
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		return feed.NewMockSource(seed, demoCount, interval, feed.WithGrowth())
	case cfg.Feed.File != "":
		return feed.NewFileSource(cfg.Feed.File, interval)
	default:
		return feed.NewHTTPSource(feed.HTTPConfig{
			Endpoint: cfg.Feed.Endpoint,
			Interval: interval,
			Timeout:  cfg.Feed.Timeout.Duration,
		}, nil)
	}
}

// printList fetches once and writes a plain list to stdout. A failed fetch
// falls back to the last saved snapshot.
func printList(ctx context.Context, src feed.Source, store *cache.Store, th theme.Theme, logger *slog.Logger) error {
	ws, err := src.Fetch(ctx)
	if err != nil {
		logger.Warn("fetch failed", "source", src.Name(), "error", err)
		cached, _, cerr := feed.LoadSnapshot(store, src.Name())
		if cerr != nil {
			return fmt.Errorf("fetch %s: %w", src.Name(), err)
		}
		ws = cached
	} else if store != nil {
		if err := feed.SaveSnapshot(store, src.Name(), ws); err != nil {
			logger.Warn("snapshot save failed", "error", err)
		}
	}

	width := 80
	if w, _, err := term.GetSize(os.Stdout.Fd()); err == nil && w > 0 {
		width = w
	}
	return tui.PrintList(os.Stdout, ws, tui.NewStyles(th), width, time.Now())
}

// runTUI runs the poller and the Bubbletea program side by side. Quitting
// the program stops the poller; a signal stops both.
func runTUI(ctx context.Context, cfg *config.Config, src feed.Source, store *cache.Store, th theme.Theme, logger *slog.Logger) error {
	updates := make(chan feed.Update, feed.DefaultUpdateBufferSize)
	popts := []feed.PollerOption{feed.WithLogger(logger)}
	if store != nil {
		popts = append(popts, feed.WithCache(store))
	}
	poller := feed.NewPoller(src, updates, popts...)

	acfg := app.DefaultConfig()
	acfg.Viewer = cfg.ViewerTiming()
	acfg.Theme = th

	opts := []app.Option{
		app.WithLogger(logger),
		app.WithUpdates(updates),
		app.WithRefresh(poller.Refresh),
	}
	if u, ok := poller.Cached(); ok {
		logger.Debug("seeding from snapshot", "count", len(u.Whispers), "saved_at", u.Timestamp)
		opts = append(opts, app.WithInitial(u))
	}
	model := app.NewAppModel(acfg, opts...)
	defer model.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := poller.Start(gctx); err != nil {
			return err
		}
		<-gctx.Done()
		poller.Stop()
		return nil
	})
	g.Go(func() error {
		defer cancel()
		p := tea.NewProgram(model,
			tea.WithAltScreen(),
			tea.WithMouseCellMotion(),
			tea.WithContext(gctx),
		)
		_, err := p.Run()
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	})
	return g.Wait()
}
