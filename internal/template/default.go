package template

import "github.com/bandhan/bandhan/internal/gift"

// LoveTimelineLayout tells the story first, then walks through the reasons.
const LoveTimelineLayout = `# {{greeting}}, {{to}}

*A {{template}} from {{from}}*

## How it started
{{story}}

## Why you
{{reasons}}

## Moments
{{photos}}

{{letter}}

---

{{final_message}}

*With love, {{from}}*
`

// PolaroidLayout leads with the photos.
const PolaroidLayout = `# {{to}}, these are ours

{{photos}}

## {{greeting}}
{{story}}

## Things I love about you
{{reasons}}

---

{{final_message}}

*{{from}}*
`

// StarryNightLayout reads like a night sky of reasons.
const StarryNightLayout = `# ✦ {{greeting}} ✦

*For {{to}}, under the same stars. From {{from}}.*

{{story}}

## Every star a reason
{{reasons}}

## Constellations
{{photos}}

{{letter}}

---

{{final_message}}
`

// ClassicLayout is a plain letter. It is also used for unknown templates.
const ClassicLayout = `# Dear {{to}},

{{greeting}}

{{story}}

{{reasons}}

{{photos}}

{{final_message}}

Yours,
{{from}}
`

var layouts = map[gift.TemplateID]string{
	gift.TemplateLoveTimeline:     LoveTimelineLayout,
	gift.TemplatePolaroidMemories: PolaroidLayout,
	gift.TemplateStarryNight:      StarryNightLayout,
	gift.TemplateClassicLetter:    ClassicLayout,
}
