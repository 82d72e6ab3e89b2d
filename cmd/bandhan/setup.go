package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/bandhan/bandhan/internal/config"
	"github.com/bandhan/bandhan/internal/tui/theme"
	"github.com/spf13/cobra"
)

var setupFlags struct {
	project  bool
	force    bool
	storage  string
	template string
	shareURL string
}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Write a bandhan config file",
	Long: `Write a bandhan config file from the defaults plus any flags given.

The file goes to ~/.config/bandhan/bandhan.yml unless --project is set, in
which case bandhan.yml is written to the current directory. The root flags
--data-dir, --log-level and --log-file are recorded too when passed.`,
	Example: `  bandhan setup --project --template love-timeline
  bandhan setup --with-storage nats --share-url https://gifts.example/g`,
	RunE: runSetup,
}

func init() {
	f := setupCmd.Flags()
	f.BoolVarP(&setupFlags.project, "project", "p", false, "Write bandhan.yml in the current directory")
	f.BoolVarP(&setupFlags.force, "force", "f", false, "Replace an existing file")
	f.StringVar(&setupFlags.storage, "with-storage", config.StorageFile, "Draft storage backend: file or nats")
	f.StringVarP(&setupFlags.template, "template", "t", "", "Template preselected by 'bandhan create'")
	f.StringVar(&setupFlags.shareURL, "share-url", "", "Base URL for share links")
}

func runSetup(cmd *cobra.Command, args []string) error {
	path, write := config.GlobalPath(), config.WriteGlobal
	if setupFlags.project {
		path, write = config.ProjectPath(), config.WriteProject
	}

	if _, err := os.Stat(path); err == nil && !setupFlags.force {
		return fmt.Errorf("%s already exists (use --force to replace it)", path)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", path, err)
	}

	cfg := setupConfig(cmd)
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := write(cfg); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	s := theme.Current().S()
	fmt.Println(s.Title.Render("Config written to " + path))
	for _, kv := range [][2]string{
		{"storage", cfg.Storage},
		{"data_dir", cfg.DataDir},
		{"template", orNone(cfg.Template)},
		{"share_base_url", cfg.ShareBaseURL},
	} {
		fmt.Printf("  %s %s\n", s.Muted.Render(fmt.Sprintf("%-15s", kv[0])), kv[1])
	}
	fmt.Println()
	fmt.Println("Run 'bandhan create' to start a gift.")
	return nil
}

// setupConfig layers the flags of this invocation over the defaults.
func setupConfig(cmd *cobra.Command) *config.Config {
	cfg := config.Defaults()
	cfg.Storage = setupFlags.storage
	cfg.Template = setupFlags.template
	if setupFlags.shareURL != "" {
		cfg.ShareBaseURL = setupFlags.shareURL
	}

	flags := cmd.Flags()
	if flags.Changed("data-dir") {
		cfg.DataDir = rootFlags.dataDir
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = rootFlags.logLevel
	}
	if flags.Changed("log-file") {
		cfg.LogFile = rootFlags.logFile
	}
	return cfg
}

func orNone(v string) string {
	if v == "" {
		return "(none)"
	}
	return v
}
