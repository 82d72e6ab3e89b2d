package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bandhan/bandhan/internal/form"
	"github.com/bandhan/bandhan/internal/gift"
	"github.com/bandhan/bandhan/internal/hooks"
	"github.com/bandhan/bandhan/internal/tui"
	"github.com/bandhan/bandhan/internal/tui/theme"
	"github.com/spf13/cobra"
)

var errIncompleteDraft = errors.New("draft is incomplete")

var draftCmd = &cobra.Command{
	Use:   "draft",
	Short: "Inspect or discard the saved draft",
}

func init() {
	draftCmd.AddCommand(draftShowCmd)
	draftCmd.AddCommand(draftStatusCmd)
	draftCmd.AddCommand(draftValidateCmd)
	draftCmd.AddCommand(draftClearCmd)
}

var draftShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the stored draft as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		b, err := openBackend(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer b.Close()

		snap := b.Drafts().Load(cmd.Context())
		if len(snap) == 0 {
			fmt.Println("No draft saved.")
			return nil
		}
		data, err := json.MarshalIndent(snap, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode draft: %w", err)
		}
		fmt.Println(tui.Highlight(string(data), "json"))
		return nil
	},
}

var draftStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the draft's template, progress and last save",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		b, err := openBackend(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer b.Close()

		drafts := b.Drafts()
		st := gift.New("")
		if !drafts.Hydrate(cmd.Context(), st) {
			fmt.Println("No draft saved.")
			return nil
		}

		s := theme.Current().S()
		name := "none"
		if t, ok := gift.Lookup(st.SelectedTemplate); ok {
			name = t.Name
		}
		w := form.New(st)
		done, total := w.Progress()

		fmt.Printf("%s %s\n", s.Muted.Render("Template:"), name)
		fmt.Printf("%s %d of %d steps done, on %q\n", s.Muted.Render("Progress:"), done, total, w.Current().Title)
		fmt.Printf("%s %s\n", s.Muted.Render("Autosave:"), drafts.Status(cmd.Context(), time.Now()))
		return nil
	},
}

var draftValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check every step of the draft",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		b, err := openBackend(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer b.Close()

		st := gift.New("")
		b.Drafts().Hydrate(cmd.Context(), st)

		s := theme.Current().S()
		steps := form.StepsFor(st.SelectedTemplate)
		failing := form.ValidateAll(steps, st)
		for _, step := range steps {
			errs, bad := failing[step.ID]
			if !bad {
				fmt.Println(s.Success.Render("✓ ") + step.Title)
				continue
			}
			fmt.Println(s.Error.Render("✗ ") + step.Title)
			for _, field := range errs.Fields() {
				fmt.Println("    " + s.Muted.Render(errs[field]))
			}
		}
		if len(failing) > 0 {
			return fmt.Errorf("%w: %d of %d steps need attention", errIncompleteDraft, len(failing), len(steps))
		}
		return nil
	},
}

var draftClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Discard the saved draft",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		b, err := openBackend(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer b.Close()

		drafts := b.Drafts()
		st := gift.New("")
		drafts.Hydrate(cmd.Context(), st)
		drafts.Clear(cmd.Context())
		fmt.Println("Draft cleared.")

		return runHooks(cmd.Context(), func(h *hooks.HooksConfig) hooks.HookList { return h.DraftCleared }, hooks.Variables{
			Template: string(st.SelectedTemplate),
			To:       st.BasicInfo.ToName,
		})
	},
}
