package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/bandhan/bandhan/internal/config"
	"github.com/bandhan/bandhan/internal/logger"
	"github.com/bandhan/bandhan/internal/tui/theme"
	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

const (
	logoText1 = "█▀▄ ▄▀█ █▄ █ █▀▄ █ █ ▄▀█ █▄ █"
	logoText2 = "█▄█ █▀█ █ ▀█ █▄▀ █▀█ █▀█ █ ▀█"
)

// Version set via ldflags during build
var version = "dev"

func main() {
	defer func() { _ = logger.Close() }()

	if err := fang.Execute(context.Background(), rootCmd, fang.WithVersion(version)); err != nil {
		logger.Error("Command execution failed: %v", err)
		os.Exit(1)
	}
}

var rootFlags struct {
	dataDir  string
	storage  string
	logLevel string
	logFile  string
}

var rootCmd = &cobra.Command{
	Use:   "bandhan",
	Short: "Build a digital love-letter gift from your terminal",
}

func renderLogo() string {
	t := theme.Current()
	line1 := theme.ApplyGradient(logoText1, t.Primary, t.Accent)
	line2 := theme.ApplyGradient(logoText2, t.Primary, t.Accent)
	return strings.Join([]string{line1, line2}, "\n")
}

func init() {
	rootCmd.Long = renderLogo() + `

bandhan walks you through a short form (names, your story, reasons, photos
and a closing message), previews the finished gift page and places the
order. Some templates hide a secret letter behind a game of tic-tac-toe.

Drafts autosave as you type, to files or to an embedded NATS JetStream
key-value bucket. Configuration precedence:
  CLI flags > BANDHAN_* environment > ./bandhan.yml > ~/.config/bandhan/bandhan.yml > defaults`

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootFlags.dataDir, "data-dir", "", "Data directory for drafts and orders (default: .bandhan)")
	pf.StringVar(&rootFlags.storage, "storage", "", "Draft storage backend: file or nats")
	pf.StringVar(&rootFlags.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&rootFlags.logFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(draftCmd)
	rootCmd.AddCommand(letterCmd)
	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(templatesCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(setupCmd)
}

// loadConfig resolves the configuration and applies root flags on top.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("data-dir") {
		cfg.DataDir = rootFlags.dataDir
	}
	if flags.Changed("storage") {
		cfg.Storage = rootFlags.storage
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = rootFlags.logLevel
	}
	if flags.Changed("log-file") {
		cfg.LogFile = rootFlags.logFile
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := logger.Configure(cfg.LogLevel, cfg.LogFile); err != nil {
		return nil, fmt.Errorf("failed to configure logging: %w", err)
	}
	return cfg, nil
}
