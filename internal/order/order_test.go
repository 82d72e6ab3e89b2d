package order

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bandhan/bandhan/internal/form"
	"github.com/bandhan/bandhan/internal/gift"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	err  error
	reqs []Request
}

func (f *fakeService) Submit(_ context.Context, req Request) (Receipt, error) {
	f.reqs = append(f.reqs, req)
	if f.err != nil {
		return Receipt{}, f.err
	}
	return Receipt{OrderID: "ord-1", Slug: "a-b-ord1", Link: "https://bandhan.gift/g/a-b-ord1"}, nil
}

type fakeDrafts struct{ cleared int }

func (f *fakeDrafts) Clear(context.Context) { f.cleared++ }

func completeGift(template gift.TemplateID) *gift.FormState {
	st := gift.New(template)
	st.SetBasicInfo(gift.BasicInfo{FromName: "Asha", ToName: "Ravi", Greeting: "Hi"})
	st.SetStory(strings.Repeat("we met on a train ", 4))
	st.SetReason(0, "x")
	st.SetReason(1, "y")
	st.SetReason(2, "z")
	st.AddPhoto("https://img/1.jpg", "")
	st.AddPhoto("https://img/2.jpg", "")
	st.SetFinalMessage("Bye")
	return st
}

func TestCheckout_ClearsDraftOnSuccess(t *testing.T) {
	svc := &fakeService{}
	drafts := &fakeDrafts{}

	receipt, err := Checkout(context.Background(), svc, drafts, Request{
		Gift:    completeGift(gift.TemplateLoveTimeline),
		Payment: Payment{Method: "upi", Reference: "pay_123"},
	})

	require.NoError(t, err)
	assert.Equal(t, "a-b-ord1", receipt.Slug)
	assert.Equal(t, 1, drafts.cleared)
	require.Len(t, svc.reqs, 1)
	assert.Equal(t, 299.0, svc.reqs[0].Payment.Amount)
	assert.Equal(t, Currency, svc.reqs[0].Payment.Currency)
}

func TestCheckout_KeepsDraftOnFailure(t *testing.T) {
	svc := &fakeService{err: errors.New("payment declined")}
	drafts := &fakeDrafts{}

	_, err := Checkout(context.Background(), svc, drafts, Request{Gift: completeGift(gift.TemplateClassicLetter)})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "payment declined")
	assert.Zero(t, drafts.cleared)
}

func TestCheckout_RejectsIncompleteGift(t *testing.T) {
	svc := &fakeService{}
	drafts := &fakeDrafts{}
	st := completeGift(gift.TemplateLoveTimeline)
	st.SetFinalMessage("")
	st.SecretLetter = &gift.SecretLetter{Body: "no title"}

	_, err := Checkout(context.Background(), svc, drafts, Request{Gift: st})

	require.ErrorIs(t, err, ErrIncomplete)
	var incomplete *IncompleteError
	require.ErrorAs(t, err, &incomplete)
	assert.Contains(t, incomplete.Steps, form.StepFinalMessage)
	assert.Contains(t, incomplete.Steps, form.StepSecretLetter)
	assert.Equal(t, "gift is incomplete: final-message, secret-letter", err.Error())
	assert.Empty(t, svc.reqs)
	assert.Zero(t, drafts.cleared)

	_, err = Checkout(context.Background(), svc, drafts, Request{})
	require.ErrorIs(t, err, ErrIncomplete)
}

func TestSlug(t *testing.T) {
	tests := []struct {
		name string
		info gift.BasicInfo
		id   string
		want string
	}{
		{name: "names", info: gift.BasicInfo{FromName: "Asha", ToName: "Ravi"}, id: "1A2B3C4D-0000-0000-0000-000000000000", want: "asha-ravi-1a2b3c4d"},
		{name: "punctuation", info: gift.BasicInfo{FromName: "Mr. & Mrs", ToName: "Neil!"}, id: "abc", want: "mr-and-mrs-neil-abc"},
		{name: "blank names", info: gift.BasicInfo{}, id: "deadbeefcafe", want: "gift-deadbeef"},
		{name: "no id", info: gift.BasicInfo{FromName: "A", ToName: "B"}, id: "", want: "a-b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Slug(tt.info, tt.id)
			assert.Equal(t, tt.want, got)
			assert.True(t, ValidSlug(got))
		})
	}
}

func TestValidSlug(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"asha-ravi-1a2b3c4d", true},
		{"gift", true},
		{"", false},
		{">", false},
		{"*", false},
		{"a.b", false},
		{"Asha-Ravi", false},
		{"-leading", false},
		{"a b", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidSlug(tt.in), "slug %q", tt.in)
	}
}

func TestShareLink(t *testing.T) {
	assert.Equal(t, "https://bandhan.gift/g/a-b-1", ShareLink("https://bandhan.gift/g/", "a-b-1"))
	assert.Equal(t, "https://bandhan.gift/g/a-b-1", ShareLink("https://bandhan.gift/g", "a-b-1"))
}
