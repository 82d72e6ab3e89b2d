package form

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/bandhan/bandhan/internal/gift"
)

// Field names used as keys in Errors.
const (
	FieldFromName     = "fromName"
	FieldToName       = "toName"
	FieldGreeting     = "greeting"
	FieldStory        = "story"
	FieldReasons      = "reasons"
	FieldPhotos       = "photos"
	FieldFinalMessage = "finalMessage"
	FieldLetterTitle  = "title"
	FieldLetterBody   = "body"
)

// Errors maps a field name to a human readable message. Empty means valid.
type Errors map[string]string

func (e Errors) Valid() bool {
	return len(e) == 0
}

// Fields returns the failing field names, sorted.
func (e Errors) Fields() []string {
	out := make([]string, 0, len(e))
	for f := range e {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Validate checks the fields owned by step stepID. It has no side effects.
func Validate(stepID string, st *gift.FormState) Errors {
	errs := Errors{}

	switch stepID {
	case StepBasicInfo:
		if blank(st.BasicInfo.FromName) {
			errs[FieldFromName] = "Please enter your name"
		}
		if blank(st.BasicInfo.ToName) {
			errs[FieldToName] = "Please enter their name"
		}
		if blank(st.BasicInfo.Greeting) {
			errs[FieldGreeting] = "Please enter a greeting"
		}

	case StepStory:
		story := strings.TrimSpace(st.Story)
		switch {
		case story == "":
			errs[FieldStory] = "Please write your story"
		case utf8.RuneCountInString(story) < gift.MinStoryLength:
			errs[FieldStory] = fmt.Sprintf("Your story should be at least %d characters (currently %d)",
				gift.MinStoryLength, utf8.RuneCountInString(story))
		}

	case StepReasons:
		switch {
		case len(st.FilledReasons()) < gift.MinReasons:
			errs[FieldReasons] = fmt.Sprintf("Please add at least %d reasons", gift.MinReasons)
		case len(st.Reasons) > gift.MaxReasons:
			errs[FieldReasons] = fmt.Sprintf("You can add up to %d reasons", gift.MaxReasons)
		}

	case StepPhotos:
		if len(st.Photos) < gift.MinPhotos {
			errs[FieldPhotos] = fmt.Sprintf("Please add at least %d photos", gift.MinPhotos)
		}

	case StepFinalMessage:
		if blank(st.FinalMessage) {
			errs[FieldFinalMessage] = "Please write a final message"
		}

	case StepSecretLetter:
		// Not started: nothing to check.
		if !st.SecretLetter.Started() {
			break
		}
		if blank(st.SecretLetter.Title) {
			errs[FieldLetterTitle] = "Please give your secret letter a title"
		}
		if blank(st.SecretLetter.Body) {
			errs[FieldLetterBody] = "Please write your secret letter"
		}
	}

	return errs
}

// ValidateAll validates every step and returns only the failing ones, keyed by step id.
func ValidateAll(steps []Step, st *gift.FormState) map[string]Errors {
	out := map[string]Errors{}
	for _, s := range steps {
		if errs := Validate(s.ID, st); !errs.Valid() {
			out[s.ID] = errs
		}
	}
	return out
}
