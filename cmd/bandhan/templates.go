package main

import (
	"fmt"

	"charm.land/lipgloss/v2"
	"github.com/bandhan/bandhan/internal/form"
	"github.com/bandhan/bandhan/internal/gift"
	"github.com/bandhan/bandhan/internal/tui/theme"
	"github.com/spf13/cobra"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the gift templates",
	RunE: func(cmd *cobra.Command, args []string) error {
		s := theme.Current().S()
		for _, t := range gift.Templates() {
			steps := form.StepsFor(t.ID)
			header := lipgloss.JoinHorizontal(lipgloss.Top,
				s.Title.Render(t.Name),
				"  ",
				s.Muted.Render(fmt.Sprintf("%s  ₹%.0f  %d steps", t.ID, t.Price, len(steps))),
			)
			fmt.Println(header)
			fmt.Println("  " + s.Description.Render(t.Description))
			fmt.Println()
		}
		return nil
	},
}
