package wizard

import (
	"fmt"

	"github.com/bandhan/bandhan/internal/form"
	"github.com/bandhan/bandhan/internal/gift"
)

// Input limits.
const (
	maxNameLength     = 60
	maxGreetingLength = 120
	maxStoryLength    = 5000
	maxReasonLength   = 200
	maxURLLength      = 500
	maxCaptionLength  = 120
	maxMessageLength  = 1000
	maxLetterLength   = 5000
)

// buildFields returns the inputs for stepID, filled from st.
func buildFields(stepID string, st *gift.FormState) []*field {
	switch stepID {
	case form.StepBasicInfo:
		return []*field{
			newLineField(form.FieldFromName, "From", "Your name", st.BasicInfo.FromName, maxNameLength),
			newLineField(form.FieldToName, "To", "Their name", st.BasicInfo.ToName, maxNameLength),
			newLineField(form.FieldGreeting, "Greeting", "Happy anniversary, my love", st.BasicInfo.Greeting, maxGreetingLength),
		}

	case form.StepStory:
		return []*field{
			newAreaField(form.FieldStory, "Your story", "How you met, what changed, what stayed...", st.Story, 8, maxStoryLength),
		}

	case form.StepReasons:
		fields := make([]*field, len(st.Reasons))
		for i, r := range st.Reasons {
			fields[i] = newLineField("", fmt.Sprintf("Reason %2d", i+1), "Because...", r, maxReasonLength)
			fields[i].compact = true
		}
		return fields

	case form.StepPhotos:
		return []*field{
			newLineField("", "Photo URL", "https://...", "", maxURLLength),
			newLineField("", "Caption", "Optional", "", maxCaptionLength),
		}

	case form.StepFinalMessage:
		return []*field{
			newAreaField(form.FieldFinalMessage, "Final message", "The last thing they read", st.FinalMessage, 4, maxMessageLength),
		}

	case form.StepSecretLetter:
		var l gift.SecretLetter
		if st.SecretLetter != nil {
			l = *st.SecretLetter
		}
		return []*field{
			newLineField(form.FieldLetterTitle, "Title", "For your eyes only", l.Title, maxGreetingLength),
			newAreaField(form.FieldLetterBody, "Letter", "Write what you never said out loud", l.Body, 6, maxLetterLength),
			newLineField("", "Signature", "Optional", l.Signature, maxNameLength),
		}
	}
	return nil
}

// apply writes the field values of stepID back into st. Photos are added
// explicitly and are not synced here.
func apply(stepID string, fields []*field, st *gift.FormState) {
	switch stepID {
	case form.StepBasicInfo:
		st.SetBasicInfo(gift.BasicInfo{
			FromName: fields[0].Value(),
			ToName:   fields[1].Value(),
			Greeting: fields[2].Value(),
		})
	case form.StepStory:
		st.SetStory(fields[0].Value())
	case form.StepReasons:
		for i, f := range fields {
			st.SetReason(i, f.Value())
		}
	case form.StepFinalMessage:
		st.SetFinalMessage(fields[0].Value())
	case form.StepSecretLetter:
		st.SetSecretLetter(gift.SecretLetter{
			Title:     fields[0].Value(),
			Body:      fields[1].Value(),
			Signature: fields[2].Value(),
		})
	}
}
