package form

import (
	"github.com/bandhan/bandhan/internal/gift"
)

// Outcome is the result of Next.
type Outcome int

const (
	// Invalid means the current step failed validation; see Errors.
	Invalid Outcome = iota
	// Advanced means the wizard moved to the following step.
	Advanced
	// Completed means Next was called on the last step and it was valid.
	Completed
)

func (o Outcome) String() string {
	switch o {
	case Invalid:
		return "invalid"
	case Advanced:
		return "advanced"
	case Completed:
		return "completed"
	default:
		return "unknown"
	}
}

// Wizard is the navigation state machine. It owns the FormState it was
// created with; callers mutate fields through Update.
type Wizard struct {
	state  *gift.FormState
	steps  []Step
	errors Errors
}

// New builds a wizard over st, filtering steps by st.SelectedTemplate.
func New(st *gift.FormState) *Wizard {
	st.Normalize()
	w := &Wizard{state: st, errors: Errors{}}
	w.steps = StepsFor(st.SelectedTemplate)
	w.clamp()
	return w
}

// clamp keeps CurrentStep and CompletedSteps inside the step list.
func (w *Wizard) clamp() {
	last := len(w.steps) - 1
	if w.state.CurrentStep > last {
		w.state.CurrentStep = last
	}
	if w.state.CurrentStep < 0 {
		w.state.CurrentStep = 0
	}
	for i := range w.state.CompletedSteps {
		if i < 0 || i > last {
			delete(w.state.CompletedSteps, i)
		}
	}
}

func (w *Wizard) State() *gift.FormState { return w.state }

func (w *Wizard) Steps() []Step { return w.steps }

func (w *Wizard) Index() int { return w.state.CurrentStep }

func (w *Wizard) Current() Step { return w.steps[w.state.CurrentStep] }

func (w *Wizard) IsLastStep() bool { return w.state.CurrentStep == len(w.steps)-1 }

// Errors returns the validation errors from the last failed Next.
func (w *Wizard) Errors() Errors { return w.errors }

// Progress returns how many steps are completed out of the total.
func (w *Wizard) Progress() (completed, total int) {
	return len(w.state.CompletedSteps), len(w.steps)
}

// Reachable reports whether GoTo(i) would be allowed.
func (w *Wizard) Reachable(i int) bool {
	if i < 0 || i >= len(w.steps) {
		return false
	}
	return i <= w.state.CurrentStep || w.state.IsCompleted(i)
}

// Update applies a field mutation and clears the displayed errors.
func (w *Wizard) Update(fn func(st *gift.FormState)) {
	fn(w.state)
	if len(w.errors) > 0 {
		w.errors = Errors{}
	}
}

// Next validates the current step and advances on success.
func (w *Wizard) Next() Outcome {
	errs := Validate(w.Current().ID, w.state)
	if !errs.Valid() {
		w.errors = errs
		return Invalid
	}

	w.errors = Errors{}
	w.state.MarkCompleted(w.state.CurrentStep)
	if w.IsLastStep() {
		return Completed
	}
	w.state.CurrentStep++
	return Advanced
}

// Prev moves back one step without validating.
func (w *Wizard) Prev() bool {
	if w.state.CurrentStep == 0 {
		return false
	}
	w.state.CurrentStep--
	w.errors = Errors{}
	return true
}

// GoTo jumps to step i when it has been reached or completed. Anything else
// is ignored.
func (w *Wizard) GoTo(i int) bool {
	if !w.Reachable(i) {
		return false
	}
	w.state.CurrentStep = i
	w.errors = Errors{}
	return true
}

// Skip marks an optional, non-final step completed without validation and
// advances.
func (w *Wizard) Skip() bool {
	if !w.Current().Optional || w.IsLastStep() {
		return false
	}
	w.state.MarkCompleted(w.state.CurrentStep)
	w.state.CurrentStep++
	w.errors = Errors{}
	return true
}

// SetTemplate switches the template, rebuilding the step list. The current
// step is kept by id when it still applies.
func (w *Wizard) SetTemplate(id gift.TemplateID) {
	currentID := w.Current().ID
	completedIDs := make([]string, 0, len(w.state.CompletedSteps))
	for i := range w.state.CompletedSteps {
		if i >= 0 && i < len(w.steps) {
			completedIDs = append(completedIDs, w.steps[i].ID)
		}
	}

	w.state.SelectedTemplate = id
	w.state.TemplatePrice = 0
	if t, ok := gift.Lookup(id); ok {
		w.state.TemplatePrice = t.Price
	}
	w.steps = StepsFor(id)

	w.state.CompletedSteps = gift.StepSet{}
	for _, sid := range completedIDs {
		if i := IndexOf(w.steps, sid); i >= 0 {
			w.state.MarkCompleted(i)
		}
	}
	if i := IndexOf(w.steps, currentID); i >= 0 {
		w.state.CurrentStep = i
	} else {
		// Fall back to the closest applicable step before the dropped one.
		before := 0
		for _, s := range registry[:max(IndexOf(registry, currentID), 0)] {
			if s.AppliesTo(id) {
				before++
			}
		}
		w.state.CurrentStep = max(before-1, 0)
	}
	w.clamp()
	w.errors = Errors{}
}
