package main

import (
	"fmt"
	"os"

	"github.com/bandhan/bandhan/internal/template"
	"github.com/bandhan/bandhan/internal/tui"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"
)

var viewFlags struct {
	layout string
}

var viewCmd = &cobra.Command{
	Use:   "view <slug>",
	Short: "Show a placed gift the way its recipient sees it",
	Args:  cobra.ExactArgs(1),
	RunE:  runView,
}

func init() {
	viewCmd.Flags().StringVar(&viewFlags.layout, "layout", "", "Render with a custom layout file")
}

func runView(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	b, err := openBackend(ctx, cfg)
	if err != nil {
		return err
	}
	defer b.Close()

	orders, err := b.Orders(ctx)
	if err != nil {
		return err
	}
	o, err := orders.Lookup(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to find gift %q: %w", args[0], err)
	}

	// The letter stays behind the game, see 'bandhan letter --slug'.
	page, err := template.BuildPage(o.Gift, template.PageConfig{LayoutPath: viewFlags.layout})
	if err != nil {
		return fmt.Errorf("failed to render gift: %w", err)
	}

	fmt.Println(tui.RenderMarkdown(page, terminalWidth()))
	fmt.Println(o.Link)
	return nil
}

func terminalWidth() int {
	fd := os.Stdout.Fd()
	if !term.IsTerminal(fd) {
		return tui.MaxMarkdownWidth
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return tui.MaxMarkdownWidth
	}
	return w
}
