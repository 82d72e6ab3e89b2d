package testfixtures

import (
	"strings"
	"time"

	"github.com/bandhan/bandhan/internal/gift"
)

// Fixed test values for consistent output
var FixedTime = time.Date(2026, 2, 14, 10, 30, 0, 0, time.UTC)

const (
	FixedFrom = "Asha"
	FixedTo   = "Ravi"
)

// EmptyState returns a fresh draft for template.
func EmptyState(template gift.TemplateID) *gift.FormState {
	return gift.New(template)
}

// CompleteState returns a draft with every field valid. The secret letter is
// filled for templates that have the step.
func CompleteState(template gift.TemplateID) *gift.FormState {
	st := gift.New(template)
	st.SetBasicInfo(gift.BasicInfo{FromName: FixedFrom, ToName: FixedTo, Greeting: "Happy anniversary"})
	st.SetStory(strings.Repeat("We met at a bookshop in Pune and never left. ", 2))
	st.SetReason(0, "Your laugh")
	st.SetReason(1, "Sunday chai")
	st.SetReason(2, "You hold my hand in traffic")
	st.AddPhoto("https://img.bandhan.test/1.jpg", "Goa, 2023")
	st.AddPhoto("https://img.bandhan.test/2.jpg", "")
	st.SetFinalMessage("Here's to many more years.")
	if template == gift.TemplateLoveTimeline || template == gift.TemplateStarryNight {
		st.SetSecretLetter(gift.SecretLetter{Title: "Open me", Body: "Every day with you", Signature: FixedFrom})
	}
	return st
}
