// Package form implements the gift wizard: the step registry, the per-step
// validator and the navigation state machine over a gift.FormState.
package form

import (
	"slices"

	"github.com/bandhan/bandhan/internal/gift"
)

// Step identifiers. Drafts store step indices; tools address steps by id.
const (
	StepBasicInfo    = "basic-info"
	StepStory        = "story"
	StepReasons      = "reasons"
	StepPhotos       = "photos"
	StepFinalMessage = "final-message"
	StepSecretLetter = "secret-letter"
	StepPreview      = "preview"
)

// Step describes one screen of the wizard.
type Step struct {
	ID           string
	Title        string
	Description  string
	Optional     bool
	ForTemplates []gift.TemplateID // nil applies to every template
}

// AppliesTo reports whether the step is part of the flow for template id.
func (s Step) AppliesTo(id gift.TemplateID) bool {
	return s.ForTemplates == nil || slices.Contains(s.ForTemplates, id)
}

var registry = []Step{
	{
		ID:          StepBasicInfo,
		Title:       "Basic Info",
		Description: "Who is this gift from, who is it for, and how do you greet them?",
	},
	{
		ID:          StepStory,
		Title:       "Your Story",
		Description: "Tell the story of you two. A few honest lines are enough.",
	},
	{
		ID:          StepReasons,
		Title:       "Reasons",
		Description: "The reasons you love them. At least three, up to ten.",
	},
	{
		ID:          StepPhotos,
		Title:       "Photos",
		Description: "Add at least two photos with optional captions.",
	},
	{
		ID:          StepFinalMessage,
		Title:       "Final Message",
		Description: "The last thing they read.",
	},
	{
		ID:           StepSecretLetter,
		Title:        "Secret Letter",
		Description:  "A hidden letter unlocked by winning a little game. Optional.",
		Optional:     true,
		ForTemplates: []gift.TemplateID{gift.TemplateLoveTimeline, gift.TemplateStarryNight},
	},
	{
		ID:          StepPreview,
		Title:       "Preview",
		Description: "Review everything before checkout.",
	},
}

// Registry returns every declared step in declaration order.
func Registry() []Step {
	return slices.Clone(registry)
}

// StepsFor returns the ordered subsequence of steps that apply to template id.
// Unknown ids get the template-agnostic steps only.
func StepsFor(id gift.TemplateID) []Step {
	steps := make([]Step, 0, len(registry))
	for _, s := range registry {
		if s.AppliesTo(id) {
			steps = append(steps, s)
		}
	}
	return steps
}

// IndexOf returns the index of the step with the given id, or -1.
func IndexOf(steps []Step, id string) int {
	return slices.IndexFunc(steps, func(s Step) bool { return s.ID == id })
}
