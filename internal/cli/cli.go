package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/london-culture/internal/config"
	"github.com/pfrederiksen/london-culture/internal/event"
	"github.com/pfrederiksen/london-culture/internal/fetch"
	"github.com/pfrederiksen/london-culture/internal/logger"
	"github.com/pfrederiksen/london-culture/internal/notifier"
	"github.com/pfrederiksen/london-culture/internal/pipeline"
	"github.com/pfrederiksen/london-culture/internal/render"
	"github.com/pfrederiksen/london-culture/internal/source"
	"github.com/pfrederiksen/london-culture/internal/storage"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagConfig      string
	flagDataDir     string
	flagOutputDir   string
	flagEmail       bool
	flagAnnounce    bool
	flagDryRun      bool
	flagSkipBrowser bool
	flagFormat      string
	flagVerbose     bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "london-culture",
		Short: "Aggregate London talks, workshops, openings and socials",
		Long: `Fetches event listings from London venues and Eventbrite, filters out
music, cinema and kids programming, deduplicates cross-posted events and
writes a browsable page plus an optional weekly email digest.`,
		RunE: runAggregate,
	}

	// Define flags
	cmd.Flags().StringVar(&flagConfig, "config", "london-culture.yaml", "Path to the YAML config file")
	cmd.Flags().StringVar(&flagDataDir, "data-dir", "", "Data directory for events.json (overrides config)")
	cmd.Flags().StringVar(&flagOutputDir, "output-dir", "", "Directory for the rendered page (overrides config)")
	cmd.Flags().BoolVar(&flagEmail, "email", false, "Send the email digest")
	cmd.Flags().BoolVar(&flagAnnounce, "announce", false, "Post the digest announcement tweet")
	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Print what would be sent instead of sending")
	cmd.Flags().BoolVar(&flagSkipBrowser, "skip-browser", false, "Skip sources that need a headless browser")
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")

	return cmd
}

// runAggregate is the main command logic
func runAggregate(cmd *cobra.Command, args []string) error {
	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}

	level := logger.LevelInfo
	if flagVerbose {
		level = logger.LevelDebug
	}
	log := logger.New(level, os.Stderr)
	logger.SetDefault(log)

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagDataDir != "" {
		cfg.DataDir = flagDataDir
	}
	if flagOutputDir != "" {
		cfg.OutputDir = flagOutputDir
	}

	store, err := storage.New(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}

	ctx := context.Background()
	sources, cleanup := buildSources(ctx, cfg, log)
	defer cleanup()

	p := pipeline.New(sources, pipeline.DefaultRules(), log)
	events := p.Run(ctx)
	events = render.Prepare(events)

	if err := store.SaveEvents(events); err != nil {
		return err
	}

	renderer, err := render.New()
	if err != nil {
		return err
	}

	page, err := renderer.Page(events)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	pagePath := filepath.Join(cfg.OutputDir, "index.html")
	if err := os.WriteFile(pagePath, page, 0644); err != nil {
		return fmt.Errorf("writing page: %w", err)
	}
	log.Info("page written", logger.Fields{"path": pagePath, "events": len(events)})

	if err := sendDigest(renderer, events, cfg, log); err != nil {
		return err
	}

	counters, timings := logger.SnapshotMetrics()
	log.Debug("run metrics", logger.Fields{"counters": counters, "timings": fmt.Sprint(timings)})

	result := &OutputResult{
		CheckedAt:  time.Now().UTC(),
		Events:     events,
		EventCount: len(events),
		PagePath:   pagePath,
	}
	if err := WriteOutput(os.Stdout, result, format, flagVerbose); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// buildSources assembles the roster, honoring the disabled list and browser
// availability. The order is dedup priority: venues' own listings first, the
// Eventbrite aggregator last. The returned cleanup shuts the browser down.
func buildSources(ctx context.Context, cfg config.Config, log *logger.Logger) ([]source.Source, func()) {
	client := fetch.NewClient(cfg.UserAgent, cfg.RequestDelay())

	roster := []source.Source{
		source.NewRichMix(client),
		source.NewBarbican(client),
		source.NewDesignMuseum(client),
		source.NewWellcome(client),
		source.NewPhotographersGallery(client),
		source.NewSomersetHouse(client),
		source.NewLRBBookshop(client),
		source.NewVAM(client),
	}

	cleanup := func() {}
	if flagSkipBrowser || cfg.SourceDisabled("ICA") {
		log.Info("skipping browser-rendered sources", nil)
	} else if browser, err := fetch.NewBrowser(ctx); err != nil {
		log.Warn("browser unavailable, skipping ICA", logger.Fields{"reason": err.Error()})
	} else {
		roster = append(roster, source.NewICA(browser))
		cleanup = browser.Close
	}

	// The aggregator runs last so that every venue's own listing wins
	// dedup over its Eventbrite cross-post.
	roster = append(roster, source.NewEventbrite(client))

	enabled := make([]source.Source, 0, len(roster))
	for _, src := range roster {
		if cfg.SourceDisabled(src.Name()) {
			log.Info("source disabled", logger.Fields{"source": src.Name()})
			continue
		}
		enabled = append(enabled, src)
	}
	return enabled, cleanup
}

// sendDigest renders and dispatches the email and announcement channels as
// flags request. Missing credentials degrade to a warning; a failed send is
// an error.
func sendDigest(renderer *render.Renderer, events []event.Event, cfg config.Config, log *logger.Logger) error {
	if !flagEmail && !flagAnnounce && !flagDryRun {
		return nil
	}

	html, err := renderer.Email(events, time.Now(), cfg.PageURL, cfg.DigestCap)
	if err != nil {
		return err
	}
	digest := notifier.Digest{
		HTML:    string(html),
		Events:  events,
		WeekOf:  render.WeekOf(time.Now()),
		PageURL: cfg.PageURL,
	}

	if flagDryRun {
		return notifier.NewDryRunNotifier().Notify(digest)
	}

	if flagEmail {
		n, err := notifier.NewEmailNotifier()
		if err != nil {
			log.Warn("email not configured, skipping", logger.Fields{"reason": err.Error()})
		} else if err := n.Notify(digest); err != nil {
			return err
		} else {
			log.Info("digest emailed", logger.Fields{"events": len(digest.Events)})
		}
	}

	if flagAnnounce {
		n, err := notifier.NewTwitterNotifier()
		if err != nil {
			log.Warn("twitter not configured, skipping", logger.Fields{"reason": err.Error()})
		} else if err := n.Notify(digest); err != nil {
			return err
		} else {
			log.Info("digest announced", nil)
		}
	}
	return nil
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
