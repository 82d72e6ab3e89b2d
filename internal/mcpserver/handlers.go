package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/aymanbagabas/go-udiff"
	"github.com/bandhan/bandhan/internal/form"
	"github.com/bandhan/bandhan/internal/gift"
	"github.com/mark3labs/mcp-go/mcp"
)

// updatableFields are the draft keys draft-update accepts.
var updatableFields = []string{
	"basicInfo", "story", "reasons", "photos", "finalMessage", "secretLetter", "selectedTemplate",
}

// loadDraft hydrates a fresh state from storage.
func (s *Server) loadDraft(ctx context.Context) *gift.FormState {
	st := gift.New("")
	s.drafts.Hydrate(ctx, st)
	return st
}

func (s *Server) handleDraftGet(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(s.loadDraft(ctx), "", "  ")
	if err != nil {
		return mcp.NewToolResultText(fmt.Sprintf("error: failed to encode draft: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) handleDraftUpdate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	if args == nil {
		return mcp.NewToolResultText("error: no arguments provided"), nil
	}
	fields, ok := args["fields"].(map[string]any)
	if !ok {
		return mcp.NewToolResultText("error: 'fields' must be an object"), nil
	}
	if len(fields) == 0 {
		return mcp.NewToolResultText("error: at least one field is required"), nil
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		if !slices.Contains(updatableFields, k) {
			return mcp.NewToolResultText(fmt.Sprintf("error: unknown field %q (allowed: %s)", k, strings.Join(updatableFields, ", "))), nil
		}
		keys = append(keys, k)
	}
	slices.Sort(keys)

	st := s.loadDraft(ctx)
	previous := st.SelectedTemplate
	before := draftJSON(st)

	data, err := json.Marshal(fields)
	if err != nil {
		return mcp.NewToolResultText(fmt.Sprintf("error: failed to encode fields: %v", err)), nil
	}
	if err := json.Unmarshal(data, st); err != nil {
		return mcp.NewToolResultText(fmt.Sprintf("error: invalid field value: %v", err)), nil
	}
	if len(st.Reasons) > gift.MaxReasons {
		return mcp.NewToolResultText(fmt.Sprintf("error: at most %d reasons are allowed", gift.MaxReasons)), nil
	}

	next := st.SelectedTemplate
	if next != previous {
		if _, err := gift.ParseTemplate(string(next)); err != nil {
			return mcp.NewToolResultText(fmt.Sprintf("error: %v", err)), nil
		}
		st.SelectedTemplate = previous
		form.New(st).SetTemplate(next)
	} else {
		form.New(st)
	}

	// A photo without a URL is not a photo.
	st.Photos = slices.DeleteFunc(st.Photos, func(p gift.Photo) bool { return strings.TrimSpace(p.URL) == "" })
	if st.SecretLetter != nil {
		st.SetSecretLetter(*st.SecretLetter)
	}

	s.drafts.SaveState(ctx, st)
	log.Info("draft-update: %s", strings.Join(keys, ", "))

	out := fmt.Sprintf("Updated %s", strings.Join(keys, ", "))
	if diff := udiff.Unified("before", "after", before, draftJSON(st)); diff != "" {
		out += "\n\n" + diff
	}
	return mcp.NewToolResultText(out), nil
}

// draftJSON is the indented draft without its save stamp, for diffing.
func draftJSON(st *gift.FormState) string {
	c := st.Clone()
	c.LastSaved = nil
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return ""
	}
	return string(data) + "\n"
}

func (s *Server) handleDraftValidate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st := s.loadDraft(ctx)
	steps := form.StepsFor(st.SelectedTemplate)

	stepID := ""
	if args := request.GetArguments(); args != nil {
		stepID, _ = args["step"].(string)
	}

	if stepID != "" {
		if form.IndexOf(steps, stepID) < 0 {
			return mcp.NewToolResultText(fmt.Sprintf("error: step %q is not part of the %s flow", stepID, templateLabel(st.SelectedTemplate))), nil
		}
		errs := form.Validate(stepID, st)
		if errs.Valid() {
			return mcp.NewToolResultText(fmt.Sprintf("%s: ok", stepID)), nil
		}
		return mcp.NewToolResultText(formatErrors(stepID, errs)), nil
	}

	failing := form.ValidateAll(steps, st)
	if len(failing) == 0 {
		return mcp.NewToolResultText("All steps are valid"), nil
	}
	var sb strings.Builder
	for _, step := range steps {
		if errs, ok := failing[step.ID]; ok {
			sb.WriteString(formatErrors(step.ID, errs))
		}
	}
	return mcp.NewToolResultText(strings.TrimRight(sb.String(), "\n")), nil
}

func (s *Server) handleDraftStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st := s.loadDraft(ctx)
	w := form.New(st)
	done, total := w.Progress()

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Template: %s\n", templateLabel(st.SelectedTemplate)))
	sb.WriteString(fmt.Sprintf("Step: %d/%d %s\n", w.Index()+1, total, w.Current().ID))
	sb.WriteString(fmt.Sprintf("Completed: %d/%d\n", done, total))
	sb.WriteString(s.drafts.Status(ctx, s.now()))
	return mcp.NewToolResultText(sb.String()), nil
}

func (s *Server) handleStepsList(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st := s.loadDraft(ctx)

	id := st.SelectedTemplate
	if args := request.GetArguments(); args != nil {
		if v, ok := args["template"].(string); ok && v != "" {
			parsed, err := gift.ParseTemplate(v)
			if err != nil {
				return mcp.NewToolResultText(fmt.Sprintf("error: %v", err)), nil
			}
			id = parsed
		}
	}

	// Progress marks only make sense for the draft's own flow.
	own := id == st.SelectedTemplate
	var sb strings.Builder
	for i, step := range form.StepsFor(id) {
		mark := "[ ]"
		if own && st.IsCompleted(i) {
			mark = "[x]"
		}
		cursor := " "
		if own && i == st.CurrentStep {
			cursor = ">"
		}
		opt := ""
		if step.Optional {
			opt = " (optional)"
		}
		sb.WriteString(fmt.Sprintf("%s %s %d. %s - %s%s\n", cursor, mark, i+1, step.ID, step.Title, opt))
	}
	return mcp.NewToolResultText(strings.TrimRight(sb.String(), "\n")), nil
}

func formatErrors(stepID string, errs form.Errors) string {
	var sb strings.Builder
	for _, field := range errs.Fields() {
		sb.WriteString(fmt.Sprintf("%s.%s: %s\n", stepID, field, errs[field]))
	}
	return sb.String()
}

func templateLabel(id gift.TemplateID) string {
	if t, ok := gift.Lookup(id); ok {
		return fmt.Sprintf("%s (%s, ₹%.0f)", t.Name, t.ID, t.Price)
	}
	if id == "" {
		return "none selected"
	}
	return string(id)
}
