// Package order turns a finished draft into a placed gift order with a
// shareable link.
package order

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/bandhan/bandhan/internal/form"
	"github.com/bandhan/bandhan/internal/gift"
	"github.com/gosimple/slug"
)

// Currency is the currency every template is priced in.
const Currency = "INR"

var (
	// ErrNotFound is returned by Lookup for an unknown slug.
	ErrNotFound = errors.New("order not found")
	// ErrIncomplete is returned by Checkout when a required step fails
	// validation.
	ErrIncomplete = errors.New("gift is incomplete")
)

// Payment describes how the order was paid. Reference is the payment
// provider's transaction id.
type Payment struct {
	Method    string  `json:"method"`
	Reference string  `json:"reference"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
}

type Request struct {
	Gift    *gift.FormState
	Payment Payment
}

// Receipt is returned for a placed order.
type Receipt struct {
	OrderID  string    `json:"orderId"`
	Slug     string    `json:"slug"`
	Link     string    `json:"link"`
	PlacedAt time.Time `json:"placedAt"`
}

// Order is the stored record of a placed gift.
type Order struct {
	ID       string          `json:"id"`
	Slug     string          `json:"slug"`
	Link     string          `json:"link"`
	Template gift.TemplateID `json:"template"`
	PlacedAt time.Time       `json:"placedAt"`
	Payment  Payment         `json:"payment"`
	Gift     *gift.FormState `json:"gift"`
}

// Service places orders.
type Service interface {
	Submit(ctx context.Context, req Request) (Receipt, error)
}

// Finder resolves placed orders by slug.
type Finder interface {
	Lookup(ctx context.Context, slug string) (*Order, error)
}

// DraftClearer is the part of the draft storage Checkout needs.
type DraftClearer interface {
	Clear(ctx context.Context)
}

// IncompleteError lists the steps that failed validation.
type IncompleteError struct {
	Steps map[string]form.Errors
}

func (e *IncompleteError) Error() string {
	ids := make([]string, 0, len(e.Steps))
	for _, s := range form.Registry() {
		if _, ok := e.Steps[s.ID]; ok {
			ids = append(ids, s.ID)
		}
	}
	return fmt.Sprintf("%s: %s", ErrIncomplete, strings.Join(ids, ", "))
}

func (e *IncompleteError) Unwrap() error { return ErrIncomplete }

// Checkout validates the gift, submits it and clears the draft only when the
// order was placed.
func Checkout(ctx context.Context, svc Service, drafts DraftClearer, req Request) (Receipt, error) {
	if req.Gift == nil {
		return Receipt{}, fmt.Errorf("%w: no gift", ErrIncomplete)
	}
	if failing := form.ValidateAll(form.StepsFor(req.Gift.SelectedTemplate), req.Gift); len(failing) > 0 {
		return Receipt{}, &IncompleteError{Steps: failing}
	}
	if req.Payment.Amount == 0 {
		req.Payment.Amount = req.Gift.TemplatePrice
	}
	if req.Payment.Currency == "" {
		req.Payment.Currency = Currency
	}

	receipt, err := svc.Submit(ctx, req)
	if err != nil {
		return Receipt{}, fmt.Errorf("submitting order: %w", err)
	}
	drafts.Clear(ctx)
	return receipt, nil
}

// Slug builds the public identifier for a gift from the names and the order
// id.
func Slug(info gift.BasicInfo, orderID string) string {
	suffix := strings.ReplaceAll(orderID, "-", "")
	if len(suffix) > 8 {
		suffix = suffix[:8]
	}
	base := slug.Make(strings.TrimSpace(info.FromName + " " + info.ToName))
	if base == "" {
		base = "gift"
	}
	if suffix == "" {
		return base
	}
	return base + "-" + strings.ToLower(suffix)
}

// ValidSlug reports whether s could have been produced by Slug. Anything else
// is rejected before it reaches a subject filter or storage key.
func ValidSlug(s string) bool {
	return slug.IsSlug(s)
}

// ShareLink joins base and slug.
func ShareLink(base, slug string) string {
	return strings.TrimRight(base, "/") + "/" + url.PathEscape(slug)
}
