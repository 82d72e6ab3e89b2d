// Package gift defines the form state a user assembles in the wizard and the
// catalog of templates it can be rendered with.
package gift

import (
	"encoding/json"
	"slices"
	"sort"
	"strings"
	"time"
)

const (
	// MinReasons is the number of reason slots a draft always carries.
	MinReasons = 3
	// MaxReasons caps the reasons list.
	MaxReasons = 10
	// MinPhotos is the number of photos a gift needs.
	MinPhotos = 2
	// MinStoryLength is the minimum story length in characters.
	MinStoryLength = 50
)

// BasicInfo holds the names and greeting shown at the top of the gift.
type BasicInfo struct {
	FromName string `json:"fromName"`
	ToName   string `json:"toName"`
	Greeting string `json:"greeting"`
}

// Photo is an uploaded image; only the URL returned by the upload service is kept.
type Photo struct {
	URL     string `json:"url"`
	Caption string `json:"caption,omitempty"`
}

// SecretLetter is the optional letter revealed after the mini-game.
type SecretLetter struct {
	Title     string `json:"title"`
	Body      string `json:"body"`
	Signature string `json:"signature,omitempty"`
}

// Started reports whether the user has begun writing the letter.
func (l *SecretLetter) Started() bool {
	if l == nil {
		return false
	}
	return strings.TrimSpace(l.Title) != "" || strings.TrimSpace(l.Body) != ""
}

// StepSet is a set of step indices. It encodes as a sorted JSON array.
type StepSet map[int]struct{}

func (s StepSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

func (s *StepSet) UnmarshalJSON(data []byte) error {
	var indices []int
	if err := json.Unmarshal(data, &indices); err != nil {
		return err
	}
	set := make(StepSet, len(indices))
	for _, i := range indices {
		set[i] = struct{}{}
	}
	*s = set
	return nil
}

// Sorted returns the indices in ascending order.
func (s StepSet) Sorted() []int {
	out := make([]int, 0, len(s))
	for i := range s {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// FormState is the aggregate mutated throughout the wizard lifecycle.
type FormState struct {
	BasicInfo        BasicInfo     `json:"basicInfo"`
	Story            string        `json:"story"`
	Reasons          []string      `json:"reasons"`
	Photos           []Photo       `json:"photos"`
	FinalMessage     string        `json:"finalMessage"`
	SecretLetter     *SecretLetter `json:"secretLetter,omitempty"`
	CurrentStep      int           `json:"currentStep"`
	CompletedSteps   StepSet       `json:"completedSteps"`
	SelectedTemplate TemplateID    `json:"selectedTemplate,omitempty"`
	TemplatePrice    float64       `json:"templatePrice,omitempty"`
	LastSaved        *time.Time    `json:"lastSaved,omitempty"`
}

// New returns an empty draft for the given template.
func New(template TemplateID) *FormState {
	st := &FormState{
		Reasons:          make([]string, MinReasons),
		Photos:           []Photo{},
		CompletedSteps:   StepSet{},
		SelectedTemplate: template,
	}
	if t, ok := Lookup(template); ok {
		st.TemplatePrice = t.Price
	}
	return st
}

// Normalize restores structural invariants after decoding a stored draft.
func (s *FormState) Normalize() {
	if s.CompletedSteps == nil {
		s.CompletedSteps = StepSet{}
	}
	for len(s.Reasons) < MinReasons {
		s.Reasons = append(s.Reasons, "")
	}
	if s.Photos == nil {
		s.Photos = []Photo{}
	}
}

// Clone returns a deep copy.
func (s *FormState) Clone() *FormState {
	c := *s
	c.Reasons = slices.Clone(s.Reasons)
	c.Photos = slices.Clone(s.Photos)
	c.CompletedSteps = make(StepSet, len(s.CompletedSteps))
	for i := range s.CompletedSteps {
		c.CompletedSteps[i] = struct{}{}
	}
	if s.SecretLetter != nil {
		l := *s.SecretLetter
		c.SecretLetter = &l
	}
	if s.LastSaved != nil {
		t := *s.LastSaved
		c.LastSaved = &t
	}
	return &c
}

func (s *FormState) SetBasicInfo(info BasicInfo) {
	s.BasicInfo = info
}

func (s *FormState) SetStory(story string) {
	s.Story = story
}

func (s *FormState) SetFinalMessage(msg string) {
	s.FinalMessage = msg
}

// SetSecretLetter stores the letter; an entirely blank letter is dropped.
func (s *FormState) SetSecretLetter(l SecretLetter) {
	if l.Title == "" && l.Body == "" && l.Signature == "" {
		s.SecretLetter = nil
		return
	}
	s.SecretLetter = &l
}

// SetReason sets the reason at index i, ignoring out-of-range indices.
func (s *FormState) SetReason(i int, reason string) {
	if i < 0 || i >= len(s.Reasons) {
		return
	}
	s.Reasons[i] = reason
}

// AddReason appends an empty reason slot. It returns false at MaxReasons.
func (s *FormState) AddReason() bool {
	if len(s.Reasons) >= MaxReasons {
		return false
	}
	s.Reasons = append(s.Reasons, "")
	return true
}

// RemoveReason removes the reason at i. When only MinReasons slots remain
// the slot is blanked instead so the list keeps its minimum shape.
func (s *FormState) RemoveReason(i int) {
	if i < 0 || i >= len(s.Reasons) {
		return
	}
	if len(s.Reasons) <= MinReasons {
		s.Reasons[i] = ""
		return
	}
	s.Reasons = slices.Delete(s.Reasons, i, i+1)
}

// FilledReasons returns the non-blank reasons, trimmed.
func (s *FormState) FilledReasons() []string {
	out := make([]string, 0, len(s.Reasons))
	for _, r := range s.Reasons {
		if r = strings.TrimSpace(r); r != "" {
			out = append(out, r)
		}
	}
	return out
}

// AddPhoto appends a photo by URL. Blank URLs are rejected.
func (s *FormState) AddPhoto(url, caption string) bool {
	url = strings.TrimSpace(url)
	if url == "" {
		return false
	}
	s.Photos = append(s.Photos, Photo{URL: url, Caption: strings.TrimSpace(caption)})
	return true
}

func (s *FormState) RemovePhoto(i int) {
	if i < 0 || i >= len(s.Photos) {
		return
	}
	s.Photos = slices.Delete(s.Photos, i, i+1)
}

func (s *FormState) SetPhotoCaption(i int, caption string) {
	if i < 0 || i >= len(s.Photos) {
		return
	}
	s.Photos[i].Caption = caption
}

// MarkCompleted adds i to the completed set. Idempotent.
func (s *FormState) MarkCompleted(i int) {
	if s.CompletedSteps == nil {
		s.CompletedSteps = StepSet{}
	}
	s.CompletedSteps[i] = struct{}{}
}

func (s *FormState) IsCompleted(i int) bool {
	_, ok := s.CompletedSteps[i]
	return ok
}
