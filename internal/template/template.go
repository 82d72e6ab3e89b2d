// Package template renders a gift into the markdown page the recipient sees.
// Each gift template has a layout with {{placeholder}} slots.
package template

import (
	"fmt"
	"os"
	"strings"

	"github.com/bandhan/bandhan/internal/gift"
	"github.com/bandhan/bandhan/internal/logger"
)

// Variables holds the data injected into layout placeholders.
type Variables struct {
	Template     string // Template display name
	From         string // Sender name
	To           string // Recipient name
	Greeting     string // Opening line
	Story        string // Story paragraphs
	Reasons      string // Formatted reasons list
	Photos       string // Formatted photo gallery
	FinalMessage string // Closing message
	Letter       string // Secret letter block, revealed or teased
	Price        string // Formatted template price
}

// Render replaces {{variable}} placeholders in layout with actual values.
// Supports the following variables:
// - {{template}} - Template display name
// - {{from}} / {{to}} - Names
// - {{greeting}} - Opening line
// - {{story}} - Story text
// - {{reasons}} - Reasons list (empty if none)
// - {{photos}} - Photo gallery (empty if none)
// - {{final_message}} - Closing message
// - {{letter}} - Secret letter block (empty if the gift has none)
// - {{price}} - Template price
func Render(layout string, vars Variables) string {
	result := layout

	replacements := map[string]string{
		"{{template}}":      vars.Template,
		"{{from}}":          vars.From,
		"{{to}}":            vars.To,
		"{{greeting}}":      vars.Greeting,
		"{{story}}":         vars.Story,
		"{{reasons}}":       vars.Reasons,
		"{{photos}}":        vars.Photos,
		"{{final_message}}": vars.FinalMessage,
		"{{letter}}":        vars.Letter,
		"{{price}}":         vars.Price,
	}

	for placeholder, value := range replacements {
		result = strings.ReplaceAll(result, placeholder, value)
	}

	return result
}

// LoadFromFile loads a layout from a file.
func LoadFromFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read layout file %s: %w", path, err)
	}
	return string(data), nil
}

// GetLayout returns the layout for template id. A non-empty customPath takes
// precedence over the built-in layouts.
func GetLayout(id gift.TemplateID, customPath string) (string, error) {
	if customPath != "" {
		return LoadFromFile(customPath)
	}
	if layout, ok := layouts[id]; ok {
		return layout, nil
	}
	return ClassicLayout, nil
}

// PageConfig controls how a gift page is built.
type PageConfig struct {
	LayoutPath   string // Custom layout file (optional)
	RevealLetter bool   // Show the secret letter instead of the teaser
}

// BuildPage renders st with its template's layout.
func BuildPage(st *gift.FormState, cfg PageConfig) (string, error) {
	layout, err := GetLayout(st.SelectedTemplate, cfg.LayoutPath)
	if err != nil {
		logger.Error("Failed to get layout: %v", err)
		return "", err
	}

	name := "Bandhan"
	price := ""
	if t, ok := gift.Lookup(st.SelectedTemplate); ok {
		name = t.Name
	}
	if st.TemplatePrice > 0 {
		price = formatPrice(st.TemplatePrice)
	}

	vars := Variables{
		Template:     name,
		From:         strings.TrimSpace(st.BasicInfo.FromName),
		To:           strings.TrimSpace(st.BasicInfo.ToName),
		Greeting:     strings.TrimSpace(st.BasicInfo.Greeting),
		Story:        strings.TrimSpace(st.Story),
		Reasons:      formatReasons(st.FilledReasons()),
		Photos:       formatPhotos(st.Photos),
		FinalMessage: strings.TrimSpace(st.FinalMessage),
		Letter:       formatLetter(st.SecretLetter, cfg.RevealLetter),
		Price:        price,
	}

	page := collapseBlankLines(Render(layout, vars))
	logger.Debug("Gift page rendered: %d characters", len(page))
	return page, nil
}

func formatReasons(reasons []string) string {
	if len(reasons) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, r := range reasons {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, r))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func formatPhotos(photos []gift.Photo) string {
	if len(photos) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, p := range photos {
		alt := p.Caption
		if alt == "" {
			alt = fmt.Sprintf("Photo %d", i+1)
		}
		sb.WriteString(fmt.Sprintf("![%s](%s)\n", alt, p.URL))
		if p.Caption != "" {
			sb.WriteString(fmt.Sprintf("*%s*\n", p.Caption))
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// formatLetter returns the letter section. Without reveal only a teaser is
// shown, since the recipient has to win the game first.
func formatLetter(l *gift.SecretLetter, reveal bool) string {
	if !l.Started() {
		return ""
	}
	if !reveal {
		return "## A secret letter\n\n> Win three rounds of tic-tac-toe to open it."
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## %s\n\n", strings.TrimSpace(l.Title)))
	for _, line := range strings.Split(strings.TrimSpace(l.Body), "\n") {
		sb.WriteString("> " + line + "\n")
	}
	if sig := strings.TrimSpace(l.Signature); sig != "" {
		sb.WriteString(fmt.Sprintf(">\n> %s\n", sig))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func formatPrice(p float64) string {
	if p == float64(int64(p)) {
		return fmt.Sprintf("₹%d", int64(p))
	}
	return fmt.Sprintf("₹%.2f", p)
}

// collapseBlankLines squeezes runs of blank lines left by empty sections.
func collapseBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	blank := 0
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			blank++
			if blank > 1 {
				continue
			}
		} else {
			blank = 0
		}
		out = append(out, strings.TrimRight(line, " "))
	}
	return strings.TrimSpace(strings.Join(out, "\n")) + "\n"
}
