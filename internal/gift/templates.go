package gift

import (
	"errors"
	"fmt"
)

// TemplateID identifies one of the visual presentations of a finished gift.
type TemplateID string

const (
	TemplateLoveTimeline     TemplateID = "love-timeline"
	TemplatePolaroidMemories TemplateID = "polaroid-memories"
	TemplateStarryNight      TemplateID = "starry-night"
	TemplateClassicLetter    TemplateID = "classic-letter"
)

// ErrUnknownTemplate is returned when a template identifier is not in the catalog.
var ErrUnknownTemplate = errors.New("unknown template")

// Template describes a catalog entry.
type Template struct {
	ID          TemplateID
	Name        string
	Description string
	Price       float64 // INR
}

var catalog = []Template{
	{
		ID:          TemplateLoveTimeline,
		Name:        "Love Timeline",
		Description: "Your story laid out as a scrolling timeline, ending in a secret letter.",
		Price:       299,
	},
	{
		ID:          TemplatePolaroidMemories,
		Name:        "Polaroid Memories",
		Description: "A wall of captioned polaroids with your reasons pinned between them.",
		Price:       249,
	},
	{
		ID:          TemplateStarryNight,
		Name:        "Starry Night",
		Description: "Reasons appear as stars; the secret letter waits behind the moon.",
		Price:       349,
	},
	{
		ID:          TemplateClassicLetter,
		Name:        "Classic Letter",
		Description: "A single handwritten-style letter page.",
		Price:       199,
	},
}

// Templates returns the catalog in display order.
func Templates() []Template {
	out := make([]Template, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup returns the catalog entry for id.
func Lookup(id TemplateID) (Template, bool) {
	for _, t := range catalog {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}

// ParseTemplate converts a user supplied string to a TemplateID.
func ParseTemplate(s string) (TemplateID, error) {
	id := TemplateID(s)
	if !id.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownTemplate, s)
	}
	return id, nil
}

// Valid reports whether id is in the catalog.
func (id TemplateID) Valid() bool {
	_, ok := Lookup(id)
	return ok
}

func (id TemplateID) String() string {
	return string(id)
}
