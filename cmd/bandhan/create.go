package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bandhan/bandhan/internal/form"
	"github.com/bandhan/bandhan/internal/gift"
	"github.com/bandhan/bandhan/internal/hooks"
	"github.com/bandhan/bandhan/internal/order"
	"github.com/bandhan/bandhan/internal/tui/wizard"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var createFlags struct {
	template   string
	fresh      bool
	paymentRef string
	method     string
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Fill in a gift and place the order",
	Long: `Open the gift wizard.

The wizard resumes the saved draft unless --fresh is given. The last step
previews the finished page and places the order; the share link is printed
when you leave the wizard. Hooks under order_complete in .bandhan.hooks.yml
run after the order is placed.`,
	RunE: runCreate,
}

func init() {
	createCmd.Flags().StringVarP(&createFlags.template, "template", "t", "", "Template id (see 'bandhan templates')")
	createCmd.Flags().BoolVar(&createFlags.fresh, "fresh", false, "Discard the saved draft and start over")
	createCmd.Flags().StringVar(&createFlags.paymentRef, "payment-ref", "", "Payment provider transaction id (default: generated local reference)")
	createCmd.Flags().StringVar(&createFlags.method, "payment-method", "upi", "Payment method recorded with the order")
}

func runCreate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	b, err := openBackend(ctx, cfg)
	if err != nil {
		return err
	}
	defer b.Close()

	drafts := b.Drafts()
	if createFlags.fresh {
		drafts.Clear(ctx)
	}

	st := gift.New("")
	drafts.Hydrate(ctx, st)

	tmpl := createFlags.template
	if tmpl == "" && st.SelectedTemplate == "" {
		tmpl = cfg.Template
	}
	if tmpl != "" {
		id, err := gift.ParseTemplate(tmpl)
		if err != nil {
			return err
		}
		if id != st.SelectedTemplate {
			form.New(st).SetTemplate(id)
			drafts.SaveSelectedTemplate(ctx, id, st.TemplatePrice)
		}
	}

	orders, err := b.Orders(ctx)
	if err != nil {
		return err
	}

	ref := createFlags.paymentRef
	if ref == "" {
		ref = "local-" + uuid.NewString()[:8]
	}

	res, err := wizard.Run(ctx, st, wizard.Options{
		Drafts:        drafts,
		Orders:        orders,
		Payment:       order.Payment{Method: createFlags.method, Reference: ref},
		AutosaveDelay: cfg.AutosaveDelay,
	})
	if err != nil {
		return err
	}

	if res.Receipt == nil {
		fmt.Println("Draft saved. Run 'bandhan create' to pick up where you left off.")
		return nil
	}

	r := res.Receipt
	fmt.Printf("Order %s placed.\n\nShare this link with %s:\n  %s\n", r.OrderID, st.BasicInfo.ToName, r.Link)

	return runHooks(ctx, func(h *hooks.HooksConfig) hooks.HookList { return h.OrderComplete }, hooks.Variables{
		Slug:     r.Slug,
		Link:     r.Link,
		Template: string(st.SelectedTemplate),
		OrderID:  r.OrderID,
		To:       st.BasicInfo.ToName,
	})
}
