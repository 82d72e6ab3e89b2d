package form

import (
	"testing"

	"github.com/bandhan/bandhan/internal/gift"
	"github.com/stretchr/testify/require"
)

func stepIDs(steps []Step) []string {
	ids := make([]string, len(steps))
	for i, s := range steps {
		ids[i] = s.ID
	}
	return ids
}

func TestStepsFor(t *testing.T) {
	tests := []struct {
		template gift.TemplateID
		want     []string
	}{
		{
			template: gift.TemplateLoveTimeline,
			want:     []string{StepBasicInfo, StepStory, StepReasons, StepPhotos, StepFinalMessage, StepSecretLetter, StepPreview},
		},
		{
			template: gift.TemplateStarryNight,
			want:     []string{StepBasicInfo, StepStory, StepReasons, StepPhotos, StepFinalMessage, StepSecretLetter, StepPreview},
		},
		{
			template: gift.TemplateClassicLetter,
			want:     []string{StepBasicInfo, StepStory, StepReasons, StepPhotos, StepFinalMessage, StepPreview},
		},
		{
			template: "unknown",
			want:     []string{StepBasicInfo, StepStory, StepReasons, StepPhotos, StepFinalMessage, StepPreview},
		},
		{
			template: "",
			want:     []string{StepBasicInfo, StepStory, StepReasons, StepPhotos, StepFinalMessage, StepPreview},
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.template), func(t *testing.T) {
			require.Equal(t, tt.want, stepIDs(StepsFor(tt.template)))
		})
	}
}

func TestStepsFor_IsOrderedSubsequence(t *testing.T) {
	full := Registry()
	for _, tmpl := range append(gift.Templates(), gift.Template{ID: "nope"}) {
		filtered := StepsFor(tmpl.ID)
		pos := 0
		for _, s := range filtered {
			for pos < len(full) && full[pos].ID != s.ID {
				pos++
			}
			require.Less(t, pos, len(full), "step %s out of order for %s", s.ID, tmpl.ID)
			pos++
		}
	}
}

func TestRegistry_IDsUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, s := range Registry() {
		require.False(t, seen[s.ID], "duplicate step id %s", s.ID)
		seen[s.ID] = true
	}
}

func TestRegistry_ReturnsCopy(t *testing.T) {
	r := Registry()
	r[0].ID = "mutated"
	require.Equal(t, StepBasicInfo, Registry()[0].ID)
}

func TestIndexOf(t *testing.T) {
	steps := StepsFor(gift.TemplateClassicLetter)
	require.Equal(t, 5, IndexOf(steps, StepPreview))
	require.Equal(t, -1, IndexOf(steps, StepSecretLetter))
}
