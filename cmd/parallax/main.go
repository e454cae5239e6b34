package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/parallax/internal/adapter"
	"github.com/mmcdole/parallax/internal/catalog/commons"
	"github.com/mmcdole/parallax/internal/domain"
	"github.com/mmcdole/parallax/internal/gallery"
	"github.com/mmcdole/parallax/internal/service"
	"github.com/mmcdole/parallax/internal/store"
	"github.com/mmcdole/parallax/internal/tui"
	"github.com/mmcdole/parallax/internal/validator"
	"golang.org/x/term"
)

// Version is set at build time via -ldflags
var Version = "dev"

const validateTimeout = 15 * time.Second

func main() {
	var (
		showVersion bool
		configPath  string
		once        bool
		reset       bool
	)
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.StringVar(&configPath, "config", "", "config file (default ~/.config/parallax/config.yaml)")
	flag.BoolVar(&once, "once", false, "resolve today's artwork, print it and exit")
	flag.BoolVar(&reset, "reset", false, "wipe saved state before starting")
	flag.Parse()

	if showVersion {
		fmt.Printf("parallax %s\n", Version)
		return
	}

	if err := run(configPath, once, reset); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, once, reset bool) error {
	cfg, err := adapter.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
	}
	logger, session := adapter.WithSession(logger)
	slog.SetDefault(logger)

	logger.Info("starting parallax", "version", Version, "mode", cfg.Source.Mode, "session", session)

	storePath, err := adapter.ExpandHome(cfg.Store.Path)
	if err != nil {
		return err
	}
	st, err := store.NewStateStore(storePath)
	if err != nil {
		return fmt.Errorf("failed to open state store: %w", err)
	}
	defer st.Close()

	if reset {
		if err := st.Reset(); err != nil {
			return fmt.Errorf("failed to reset state: %w", err)
		}
		logger.Info("state reset")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	headless := once || !term.IsTerminal(int(os.Stdout.Fd()))
	if headless {
		return runOnce(ctx, cancel, cfg, st, logger)
	}
	return runTUI(ctx, cancel, cfg, st, logger)
}

// runOnce resolves a single artwork and prints it
func runOnce(ctx context.Context, cancel context.CancelFunc, cfg *adapter.Config, st *store.StateStore, logger *slog.Logger) error {
	renderer := tui.NewTextRenderer(os.Stdout)
	engine := buildEngine(cfg, st, renderer, logger)

	_, err := engine.Resolve(ctx)

	// Stop background refills; whatever they accepted is already persisted
	cancel()
	if w, ok := engine.(interface{ Shutdown() }); ok {
		w.Shutdown()
	}

	if errors.Is(err, domain.ErrNoArtwork) {
		return err
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("failed to resolve artwork: %w", err)
	}
	return nil
}

// runTUI runs the interactive new-tab view
func runTUI(ctx context.Context, cancel context.CancelFunc, cfg *adapter.Config, st *store.StateStore, logger *slog.Logger) error {
	renderer := tui.NewProgramRenderer()
	engine := buildEngine(cfg, st, renderer, logger)

	tracker := service.NewTimeTracker(st, logger)
	downloader := adapter.NewDownloader(cfg.Download.Dir, nil, cfg.Source.UserAgent, logger)
	opener := adapter.NewOpener(cfg.Opener.Command, cfg.Opener.Args, logger)

	model := tui.NewModel(ctx, engine, tracker, downloader, opener)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	renderer.Attach(p)

	logger.Info("starting TUI")

	_, err := p.Run()

	cancel()
	if w, ok := engine.(interface{ Shutdown() }); ok {
		w.Shutdown()
	}

	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// buildEngine wires the engine for the configured source
func buildEngine(cfg *adapter.Config, st domain.Store, renderer domain.Renderer, logger *slog.Logger) service.Engine {
	v := validator.New(&http.Client{Timeout: validateTimeout}, cfg.Source.UserAgent, logger)

	if !cfg.IsRemote() {
		return service.NewPoolEngine(gallery.Default(), st, v, renderer, logger)
	}

	client := commons.NewClient(commons.Config{
		Endpoint:   cfg.Source.Endpoint,
		Categories: cfg.Source.Categories,
		PageLimit:  cfg.Source.PageLimit,
		MaxOffset:  cfg.Source.MaxOffset,
		ThumbWidth: cfg.Source.ThumbWidth,
		UserAgent:  cfg.Source.UserAgent,
		RetryDelay: cfg.Source.RetryDelay,
	}, logger)

	return service.NewCatalogEngine(client, service.PrefetchConfig{
		Size:            cfg.Cache.Size,
		MaxFillAttempts: cfg.Cache.MaxFillAttempts,
		BaseBackoff:     cfg.Cache.BaseBackoff,
		MaxBackoff:      cfg.Cache.MaxBackoff,
	}, st, v, renderer, logger)
}
