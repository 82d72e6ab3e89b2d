package main

import (
	"fmt"

	"github.com/bandhan/bandhan/internal/gift"
	"github.com/bandhan/bandhan/internal/letter"
	"github.com/bandhan/bandhan/internal/order"
	"github.com/bandhan/bandhan/internal/tui/game"
	"github.com/spf13/cobra"
)

var letterFlags struct {
	slug  string
	reset bool
}

var letterCmd = &cobra.Command{
	Use:   "letter",
	Short: "Win three rounds of tic-tac-toe to open the secret letter",
	Long: `Play for the secret letter.

Without --slug the letter comes from the local draft. With --slug it comes
from a placed order, and progress is kept separately for that gift.`,
	RunE: runLetter,
}

func init() {
	letterCmd.Flags().StringVar(&letterFlags.slug, "slug", "", "Play for the letter of a placed gift")
	letterCmd.Flags().BoolVar(&letterFlags.reset, "reset", false, "Forget wins and lock the letter again")
}

func runLetter(cmd *cobra.Command, args []string) error {
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

	if letterFlags.slug != "" && !order.ValidSlug(letterFlags.slug) {
		return fmt.Errorf("invalid gift slug %q", letterFlags.slug)
	}
	key := letter.KeyFor(letterFlags.slug)
	if letterFlags.reset {
		if err := letter.ResetProgress(ctx, b.store, key); err != nil {
			return fmt.Errorf("failed to reset progress: %w", err)
		}
		fmt.Println("Progress reset. The letter is locked again.")
		return nil
	}

	var st *gift.FormState
	if letterFlags.slug != "" {
		orders, err := b.Orders(ctx)
		if err != nil {
			return err
		}
		o, err := orders.Lookup(ctx, letterFlags.slug)
		if err != nil {
			return fmt.Errorf("failed to find gift %q: %w", letterFlags.slug, err)
		}
		st = o.Gift
	} else {
		st = gift.New("")
		b.Drafts().Hydrate(ctx, st)
	}

	p, err := game.Run(ctx, game.Options{
		Store:         b.store,
		Key:           key,
		Letter:        st.SecretLetter,
		To:            st.BasicInfo.ToName,
		OpponentDelay: cfg.OpponentDelay,
		ResetDelay:    cfg.ResetDelay,
	})
	if err != nil {
		return err
	}

	if !p.Unlocked {
		fmt.Printf("%d of %d wins. Come back to keep playing.\n", p.Wins, letter.WinsToUnlock)
	}
	return nil
}
