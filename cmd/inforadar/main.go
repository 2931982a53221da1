// Package main is the entry point for the Info Radar application.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/inforadar/inforadar/internal/config"
	"github.com/inforadar/inforadar/internal/radar"
	"github.com/inforadar/inforadar/internal/store"
	"github.com/inforadar/inforadar/internal/tui"
)

const version = "0.1.0"

const helpText = `inforadar - Terminal article radar for Habr with Vim keybindings

USAGE:
    inforadar [OPTIONS]

OPTIONS:
    -h, --help      Show this help message
    -v, --version   Show version information
    --init          Create a template config file
    --fetch         Fetch new articles and exit (no UI)
    --log-file      Override the configured log file path

CONFIGURATION:
    Config file: ~/.config/inforadar/config.yaml

    To get started:
    1. Run 'inforadar --init' to create a config template
    2. Edit the hub list and filters to taste
    3. Run 'inforadar' and press 'f' to fetch

KEYBINDINGS:
    Navigation:
        j/k         Move down/up
        gg/G        Go to top/bottom
        Ctrl+d/u    Half page down/up
        1-9         Jump to row on page
        Enter       Open article details
        Esc         Clear filter / back

    Articles:
        f           Fetch new articles
        m           Toggle read
        i           Toggle interesting
        y           Copy link
        d           Toggle detail columns
        r/v/c/b     Sort by rating/views/comments/bookmarks

    Command line:
        /           Filter by title (supports '*' wildcards)
        :           Command mode (:help, :noh, :q)
        ?           Show help
        q           Quit
`

const configTemplate = `# Info Radar Configuration
# Location: ~/.config/inforadar/config.yaml

habr:
  # Hub slugs to follow, e.g. go, rust, python, programming
  hubs:
    - go
  filters:
    # Skip articles whose title contains any of these words
    exclude_keywords: []
    # Drop articles rated below this value
    min_rating: 0

database:
  # SQLite file; defaults to ~/.config/inforadar/inforadar.db
  # path: ""

ui:
  # Show the rating/views/comments/bookmarks columns
  show_details: true
  # Initial table order: date, rating, views, comments or bookmarks
  default_sort: date
  # Desktop notification when a fetch finds new articles
  notify: true

log:
  # Log file; defaults to ~/.config/inforadar/inforadar.log
  # file: ""
`

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		showHelp    bool
		showVersion bool
		initConfig  bool
		fetchOnly   bool
		logFile     string
	)

	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version")
	flag.BoolVar(&showVersion, "v", false, "Show version (shorthand)")
	flag.BoolVar(&initConfig, "init", false, "Create template config file")
	flag.BoolVar(&fetchOnly, "fetch", false, "Fetch new articles and exit")
	flag.StringVar(&logFile, "log-file", "", "Write logs to this file instead of the configured one")

	flag.Usage = func() {
		fmt.Print(helpText)
	}

	flag.Parse()

	if showHelp {
		fmt.Print(helpText)
		return nil
	}

	if showVersion {
		fmt.Printf("inforadar version %s\n", version)
		return nil
	}

	if initConfig {
		return createConfigTemplate()
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if logFile != "" {
		cfg.Log.File = logFile
	}

	closeLog, err := setupLogging(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	dbPath, err := cfg.DatabasePath()
	if err != nil {
		return err
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer st.Close()

	engine := radar.NewEngine(cfg, st)

	if fetchOnly {
		return runFetch(engine)
	}
	return runApp(engine, cfg)
}

// setupLogging routes zerolog to the configured file. Stdout belongs to the
// TUI, so the log never goes there.
func setupLogging(cfg *config.Config) (func(), error) {
	path, err := cfg.LogFilePath()
	if err != nil {
		return nil, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	log.Logger = zerolog.New(f).With().Timestamp().Logger()
	return func() { f.Close() }, nil
}

// createConfigTemplate creates a template configuration file.
func createConfigTemplate() error {
	path, err := config.ConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	if _, err := os.Stat(path); err == nil {
		fmt.Printf("Config file already exists: %s\n", path)
		fmt.Print("Overwrite? [y/N]: ")

		var response string
		fmt.Scanln(&response)

		if response != "y" && response != "Y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := os.WriteFile(path, []byte(configTemplate), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("Config file created: %s\n\n", path)
	fmt.Println("Next steps:")
	fmt.Println("  1. Edit the hub list and filters")
	fmt.Println("  2. Run 'inforadar' and press 'f' to fetch articles")

	return nil
}

// runFetch performs a one-shot headless fetch, suitable for cron.
func runFetch(engine *radar.Engine) error {
	added, err := engine.Refresh(context.Background())
	if err != nil {
		return fmt.Errorf("fetch failed: %w", err)
	}
	fmt.Printf("%d new articles\n", added)
	return nil
}

// runApp starts the main TUI application.
func runApp(engine *radar.Engine, cfg *config.Config) error {
	app := tui.NewApp(engine, cfg)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	return nil
}
