package order

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/bandhan/bandhan/internal/gift"
	bnats "github.com/bandhan/bandhan/internal/nats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *JetStreamService {
	t.Helper()
	ctx := context.Background()

	c, err := bnats.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	stream, err := bnats.SetupOrderStream(ctx, c.JS)
	require.NoError(t, err)

	svc := NewJetStreamService(c.JS, stream, "https://bandhan.gift/g")
	svc.now = func() time.Time { return time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC) }
	return svc
}

func TestJetStreamService_SubmitAndLookup(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	st := completeGift(gift.TemplateStarryNight)
	st.SetSecretLetter(gift.SecretLetter{Title: "Open me", Body: "You win"})

	receipt, err := svc.Submit(ctx, Request{Gift: st, Payment: Payment{Method: "card", Reference: "pay_9"}})
	require.NoError(t, err)

	assert.NotEmpty(t, receipt.OrderID)
	assert.True(t, strings.HasPrefix(receipt.Slug, "asha-ravi-"), receipt.Slug)
	assert.Equal(t, "https://bandhan.gift/g/"+receipt.Slug, receipt.Link)

	o, err := svc.Lookup(ctx, receipt.Slug)
	require.NoError(t, err)
	assert.Equal(t, receipt.OrderID, o.ID)
	assert.Equal(t, gift.TemplateStarryNight, o.Template)
	assert.Equal(t, "pay_9", o.Payment.Reference)
	assert.Equal(t, st.Story, o.Gift.Story)
	require.NotNil(t, o.Gift.SecretLetter)
	assert.Equal(t, "Open me", o.Gift.SecretLetter.Title)
}

func TestJetStreamService_LookupUnknown(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.Lookup(ctx, "nobody-here-0000")
	require.ErrorIs(t, err, ErrNotFound)
	_, err = svc.Lookup(ctx, "")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestJetStreamService_LookupRejectsWildcards(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	receipt, err := svc.Submit(ctx, Request{Gift: completeGift(gift.TemplateLoveTimeline), Payment: Payment{Reference: "pay_1"}})
	require.NoError(t, err)
	require.True(t, ValidSlug(receipt.Slug), receipt.Slug)

	for _, s := range []string{">", "*", "asha.*", "a.b", "Asha-Ravi", " "} {
		_, err := svc.Lookup(ctx, s)
		assert.ErrorIs(t, err, ErrNotFound, "slug %q", s)
	}
}

func TestJetStreamService_SeparatesOrders(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	first, err := svc.Submit(ctx, Request{Gift: completeGift(gift.TemplateClassicLetter)})
	require.NoError(t, err)
	other := completeGift(gift.TemplatePolaroidMemories)
	other.BasicInfo.FromName = "Meera"
	second, err := svc.Submit(ctx, Request{Gift: other})
	require.NoError(t, err)
	require.NotEqual(t, first.Slug, second.Slug)

	o, err := svc.Lookup(ctx, second.Slug)
	require.NoError(t, err)
	assert.Equal(t, "Meera", o.Gift.BasicInfo.FromName)
	assert.Equal(t, gift.TemplatePolaroidMemories, o.Template)
}
