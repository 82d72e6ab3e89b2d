// Package wizard is the terminal form a user fills in to build a gift: one
// screen per step, autosaved as they type, ending in a preview and checkout.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"github.com/bandhan/bandhan/internal/draft"
	"github.com/bandhan/bandhan/internal/form"
	"github.com/bandhan/bandhan/internal/gift"
	"github.com/bandhan/bandhan/internal/logger"
	"github.com/bandhan/bandhan/internal/order"
	"github.com/bandhan/bandhan/internal/template"
	"github.com/bandhan/bandhan/internal/tui"
)

var log = logger.With("wizard")

// statusRefresh is how often the autosave line is re-read.
const statusRefresh = 30 * time.Second

type phase int

const (
	phaseEdit phase = iota
	phasePickTemplate
	phaseCheckout
	phaseDone
)

// Options configures the wizard.
type Options struct {
	Drafts *draft.Storage
	// Orders places the order from the preview step. When nil the wizard
	// ends with Result.Completed and leaves checkout to the caller.
	Orders        order.Service
	Payment       order.Payment
	AutosaveDelay time.Duration
	Now           func() time.Time
}

// Result is what the wizard leaves behind.
type Result struct {
	State     *gift.FormState
	Completed bool           // the last step was confirmed
	Receipt   *order.Receipt // set when the order was placed in the wizard
	Cancelled bool
}

type savedMsg struct{}

type statusTickMsg struct{}

type checkoutDoneMsg struct {
	receipt order.Receipt
	err     error
}

type editorFinishedMsg struct {
	content string
}

// Model is the BubbleTea model for the gift wizard.
type Model struct {
	wiz    *form.Wizard
	opts   Options
	saver  *draft.Debouncer
	saved  chan struct{}
	status string

	phase      phase
	fields     []*field
	focus      int // len(fields) means the button bar
	button     int
	pickCursor int
	preview    viewport.Model
	notice     string

	result Result
	width  int
	height int
}

// New builds the wizard over st, which it owns from now on.
func New(st *gift.FormState, opts Options) *Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}

	m := &Model{
		wiz:    form.New(st),
		opts:   opts,
		saver:  draft.NewDebouncer(opts.AutosaveDelay),
		saved:  make(chan struct{}, 1),
		width:  tui.MinModalWidth + 20,
		height: 40,
	}
	m.preview = viewport.New(viewport.WithWidth(tui.ModalWidth(m.width)-6), viewport.WithHeight(16))
	m.preview.MouseWheelEnabled = true
	m.result.State = st
	m.refreshStatus()

	if st.SelectedTemplate == "" {
		m.openPicker()
	}
	m.loadStep()
	return m
}

// Run shows the wizard in its own program.
func Run(ctx context.Context, st *gift.FormState, opts Options) (*Result, error) {
	m := New(st, opts)
	final, err := tea.NewProgram(m, tea.WithContext(ctx)).Run()
	m.saver.Flush()
	if err != nil {
		return nil, fmt.Errorf("wizard failed: %w", err)
	}
	if fm, ok := final.(*Model); ok {
		return &fm.result, nil
	}
	return &m.result, nil
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.focusCmd(), waitForSave(m.saved), statusTick())
}

// Wizard exposes the navigation state.
func (m *Model) Wizard() *form.Wizard { return m.wiz }

// Result returns the outcome so far.
func (m *Model) Result() Result { return m.result }

// Status returns the autosave line.
func (m *Model) Status() string { return m.status }

// Notice returns the transient message shown above the buttons.
func (m *Model) Notice() string { return m.notice }

// FlushSave writes any pending autosave now.
func (m *Model) FlushSave() {
	m.saver.Flush()
	m.refreshStatus()
}

func waitForSave(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-ch
		return savedMsg{}
	}
}

func statusTick() tea.Cmd {
	return tea.Tick(statusRefresh, func(time.Time) tea.Msg { return statusTickMsg{} })
}

func (m *Model) refreshStatus() {
	if m.opts.Drafts == nil {
		return
	}
	m.status = m.opts.Drafts.Status(context.Background(), m.opts.Now())
}

// scheduleSave debounces a write of the current state.
func (m *Model) scheduleSave() {
	if m.opts.Drafts == nil {
		return
	}
	snap := m.wiz.State().Clone()
	drafts, saved := m.opts.Drafts, m.saved
	m.saver.Schedule(func() {
		drafts.SaveState(context.Background(), snap)
		select {
		case saved <- struct{}{}:
		default:
		}
	})
}

// loadStep rebuilds the inputs for the current step.
func (m *Model) loadStep() tea.Cmd {
	for _, f := range m.fields {
		f.Blur()
	}
	step := m.wiz.Current()
	m.fields = buildFields(step.ID, m.wiz.State())
	for _, f := range m.fields {
		f.SetWidth(m.inputWidth())
	}
	m.focus = 0
	m.button = len(m.buttons()) - 1
	if step.ID == form.StepPreview {
		m.refreshPreview()
	}
	return m.focusCmd()
}

func (m *Model) inputWidth() int {
	return tui.ModalWidth(m.width) - 12
}

func (m *Model) refreshPreview() {
	page, err := template.BuildPage(m.wiz.State(), template.PageConfig{RevealLetter: true})
	if err != nil {
		m.preview.SetContent(fmt.Sprintf("Preview unavailable: %v", err))
		return
	}
	m.preview.SetContent(tui.RenderMarkdown(page, m.preview.Width()))
	m.preview.GotoTop()
}

func (m *Model) focusCmd() tea.Cmd {
	for i, f := range m.fields {
		if i != m.focus {
			f.Blur()
		}
	}
	if m.focus < len(m.fields) {
		return m.fields[m.focus].Focus()
	}
	return nil
}

func (m *Model) onButtons() bool {
	return m.focus >= len(m.fields)
}

// sync copies the inputs into the state and schedules a save.
func (m *Model) sync() {
	id := m.wiz.Current().ID
	fields := m.fields
	m.wiz.Update(func(st *gift.FormState) { apply(id, fields, st) })
	m.scheduleSave()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		for _, f := range m.fields {
			f.SetWidth(m.inputWidth())
		}
		m.preview.SetWidth(tui.ModalWidth(m.width) - 6)
		m.preview.SetHeight(max(m.height-20, 6))
		if m.wiz.Current().ID == form.StepPreview {
			m.refreshPreview()
		}
		return m, nil

	case savedMsg:
		m.refreshStatus()
		return m, waitForSave(m.saved)

	case statusTickMsg:
		m.refreshStatus()
		return m, statusTick()

	case checkoutDoneMsg:
		return m, m.finishCheckout(msg)

	case editorFinishedMsg:
		if m.wiz.Current().ID == form.StepStory && len(m.fields) > 0 {
			m.fields[0].SetValue(msg.content)
			m.sync()
		}
		return m, nil

	case tea.PasteMsg:
		if m.phase == phaseEdit && !m.onButtons() {
			cmd := m.fields[m.focus].Update(msg)
			m.sync()
			return m, cmd
		}
		return m, nil

	case tea.KeyPressMsg:
		return m, m.handleKey(msg)
	}

	if m.phase == phaseEdit && !m.onButtons() {
		return m, m.fields[m.focus].Update(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	key := msg.String()
	if key == "ctrl+c" {
		return m.quit(true)
	}

	switch m.phase {
	case phasePickTemplate:
		return m.handlePickerKey(key)
	case phaseCheckout:
		return nil
	case phaseDone:
		if key == "enter" || key == "esc" || key == "q" {
			return tea.Quit
		}
		return nil
	}

	m.notice = ""
	switch key {
	case "ctrl+d":
		return m.next()
	case "ctrl+k":
		return m.skip()
	case "ctrl+t":
		m.openPicker()
		return nil
	case "esc":
		return m.back()
	case "tab":
		return m.cycleFocus(1)
	case "shift+tab":
		return m.cycleFocus(-1)
	case "ctrl+a":
		return m.addEntry()
	case "ctrl+x":
		return m.removeEntry()
	case "ctrl+e":
		if m.wiz.Current().ID == form.StepStory {
			return m.openEditor()
		}
		return nil
	}

	if n, ok := jumpTarget(key); ok {
		if !m.wiz.GoTo(n) {
			m.notice = "Finish the earlier steps first."
			return nil
		}
		m.scheduleSave()
		return m.loadStep()
	}

	if m.onButtons() {
		switch key {
		case "left":
			m.button = max(m.button-1, 0)
		case "right":
			m.button = min(m.button+1, len(m.buttons())-1)
		case "enter":
			return m.pressButton()
		default:
			if m.wiz.Current().ID == form.StepPreview {
				var cmd tea.Cmd
				m.preview, cmd = m.preview.Update(msg)
				return cmd
			}
		}
		return nil
	}

	f := m.fields[m.focus]
	if key == "enter" && !f.multiline {
		return m.next()
	}

	before := f.Value()
	cmd := f.Update(msg)
	if f.Value() != before {
		m.sync()
	}
	return cmd
}

// jumpTarget maps alt+1..alt+9 to a step index.
func jumpTarget(key string) (int, bool) {
	rest, ok := strings.CutPrefix(key, "alt+")
	if !ok || len(rest) != 1 || rest[0] < '1' || rest[0] > '9' {
		return 0, false
	}
	return int(rest[0] - '1'), true
}

func (m *Model) cycleFocus(delta int) tea.Cmd {
	n := len(m.fields) + 1
	m.focus = ((m.focus+delta)%n + n) % n
	if m.onButtons() {
		m.button = len(m.buttons()) - 1
	}
	return m.focusCmd()
}

func (m *Model) next() tea.Cmd {
	if !m.onButtons() {
		m.sync()
	}

	switch m.wiz.Next() {
	case form.Invalid:
		errs := m.wiz.Errors()
		for i, f := range m.fields {
			if _, bad := errs[f.key]; bad && f.key != "" {
				m.focus = i
				return m.focusCmd()
			}
		}
		return nil
	case form.Advanced:
		m.scheduleSave()
		return m.loadStep()
	default:
		m.scheduleSave()
		m.saver.Flush()
		m.result.Completed = true
		if m.opts.Orders == nil {
			return tea.Quit
		}
		return m.checkout()
	}
}

func (m *Model) back() tea.Cmd {
	if m.wiz.Prev() {
		m.scheduleSave()
		return m.loadStep()
	}
	return m.quit(true)
}

func (m *Model) skip() tea.Cmd {
	if !m.wiz.Skip() {
		m.notice = "This step can't be skipped."
		return nil
	}
	m.scheduleSave()
	return m.loadStep()
}

func (m *Model) quit(cancelled bool) tea.Cmd {
	m.saver.Flush()
	m.result.Cancelled = cancelled
	return tea.Quit
}

func (m *Model) addEntry() tea.Cmd {
	switch m.wiz.Current().ID {
	case form.StepReasons:
		added := false
		m.wiz.Update(func(st *gift.FormState) { added = st.AddReason() })
		if !added {
			m.notice = fmt.Sprintf("You can add up to %d reasons.", gift.MaxReasons)
			return nil
		}
		m.scheduleSave()
		m.loadStep()
		m.focus = len(m.fields) - 1
		return m.focusCmd()

	case form.StepPhotos:
		url, caption := m.fields[0].Value(), m.fields[1].Value()
		added := false
		m.wiz.Update(func(st *gift.FormState) { added = st.AddPhoto(url, caption) })
		if !added {
			m.notice = "Paste the photo's URL first."
			return nil
		}
		m.scheduleSave()
		return m.loadStep()
	}
	return nil
}

func (m *Model) removeEntry() tea.Cmd {
	switch m.wiz.Current().ID {
	case form.StepReasons:
		if m.onButtons() {
			return nil
		}
		i := m.focus
		m.wiz.Update(func(st *gift.FormState) { st.RemoveReason(i) })
		m.scheduleSave()
		m.loadStep()
		m.focus = min(i, len(m.fields)-1)
		return m.focusCmd()

	case form.StepPhotos:
		n := len(m.wiz.State().Photos)
		if n == 0 {
			return nil
		}
		m.wiz.Update(func(st *gift.FormState) { st.RemovePhoto(n - 1) })
		m.scheduleSave()
	}
	return nil
}

// buttons returns the bar for the current step. Callers rely on the order:
// back first, next last.
func (m *Model) buttons() []tui.Button {
	step := m.wiz.Current()
	back := tui.Button{Label: "← Back"}
	if m.wiz.Index() == 0 {
		back.Label = "Cancel"
	}
	buttons := []tui.Button{back}
	if step.Optional && !m.wiz.IsLastStep() {
		buttons = append(buttons, tui.Button{Label: "Skip"})
	}

	next := tui.Button{Label: "Next →"}
	if m.wiz.IsLastStep() {
		next.Label = "Finish"
		if m.opts.Orders != nil {
			next.Label = fmt.Sprintf("Checkout %s", priceLabel(m.wiz.State().TemplatePrice))
		}
	}
	buttons = append(buttons, next)

	if m.onButtons() && m.button >= 0 && m.button < len(buttons) {
		buttons[m.button].State = tui.ButtonFocused
	}
	return buttons
}

func (m *Model) pressButton() tea.Cmd {
	buttons := m.buttons()
	m.button = min(m.button, len(buttons)-1)
	switch {
	case m.button == 0:
		return m.back()
	case m.button == len(buttons)-1:
		return m.next()
	default:
		return m.skip()
	}
}

func (m *Model) openPicker() {
	m.phase = phasePickTemplate
	m.pickCursor = 0
	for i, t := range gift.Templates() {
		if t.ID == m.wiz.State().SelectedTemplate {
			m.pickCursor = i
		}
	}
}

func (m *Model) handlePickerKey(key string) tea.Cmd {
	templates := gift.Templates()
	switch key {
	case "up":
		m.pickCursor = max(m.pickCursor-1, 0)
	case "down":
		m.pickCursor = min(m.pickCursor+1, len(templates)-1)
	case "enter":
		m.pickTemplate(templates[m.pickCursor])
		return m.loadStep()
	case "esc":
		if m.wiz.State().SelectedTemplate == "" {
			return m.quit(true)
		}
		m.phase = phaseEdit
	}
	return nil
}

func (m *Model) pickTemplate(t gift.Template) {
	m.phase = phaseEdit
	if m.wiz.State().SelectedTemplate == t.ID {
		return
	}
	m.wiz.SetTemplate(t.ID)
	if m.opts.Drafts != nil {
		m.opts.Drafts.SaveSelectedTemplate(context.Background(), t.ID, t.Price)
	}
	m.scheduleSave()
	log.Info("template selected: %s", t.ID)
}

func (m *Model) checkout() tea.Cmd {
	m.phase = phaseCheckout
	req := order.Request{Gift: m.wiz.State().Clone(), Payment: m.opts.Payment}
	svc := m.opts.Orders
	var drafts order.DraftClearer = noopClearer{}
	if m.opts.Drafts != nil {
		drafts = m.opts.Drafts
	}
	return func() tea.Msg {
		receipt, err := order.Checkout(context.Background(), svc, drafts, req)
		return checkoutDoneMsg{receipt: receipt, err: err}
	}
}

func (m *Model) finishCheckout(msg checkoutDoneMsg) tea.Cmd {
	if msg.err != nil {
		log.Error("checkout failed: %v", msg.err)
		m.phase = phaseEdit
		m.result.Completed = false

		var incomplete *order.IncompleteError
		if errors.As(msg.err, &incomplete) {
			m.notice = fmt.Sprintf("Some steps still need attention: %s", strings.TrimPrefix(incomplete.Error(), order.ErrIncomplete.Error()+": "))
		} else {
			m.notice = fmt.Sprintf("Checkout failed: %v", msg.err)
		}
		return nil
	}

	m.saver.Stop()
	m.phase = phaseDone
	receipt := msg.receipt
	m.result.Receipt = &receipt
	m.refreshStatus()
	log.Info("order placed: %s", receipt.Slug)
	return nil
}

type noopClearer struct{}

func (noopClearer) Clear(context.Context) {}

func priceLabel(p float64) string {
	if p == float64(int64(p)) {
		return fmt.Sprintf("₹%d", int64(p))
	}
	return fmt.Sprintf("₹%.2f", p)
}
