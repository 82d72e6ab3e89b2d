// Package game is the terminal screen for the secret-letter tic-tac-toe.
package game

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/bandhan/bandhan/internal/gift"
	"github.com/bandhan/bandhan/internal/letter"
	"github.com/bandhan/bandhan/internal/logger"
	"github.com/bandhan/bandhan/internal/state"
	"github.com/bandhan/bandhan/internal/tui"
	"github.com/bandhan/bandhan/internal/tui/theme"
)

var log = logger.With("game")

// Default delays between a move and the reply.
const (
	DefaultOpponentDelay = 600 * time.Millisecond
	DefaultResetDelay    = 1500 * time.Millisecond
)

// Options configures the game screen.
type Options struct {
	Store         state.Store
	Key           string // progress key, see letter.KeyFor
	Letter        *gift.SecretLetter
	To            string
	Chooser       letter.Chooser
	OpponentDelay time.Duration
	ResetDelay    time.Duration
}

type opponentMoveMsg struct{ round int }

type resetRoundMsg struct{ round int }

// Model is the BubbleTea model for the mini-game.
type Model struct {
	game       *letter.Game
	opts       Options
	cursor     int
	round      int // guards delayed messages from a previous round
	message    string
	showLetter bool
	width      int
	height     int
}

// New resumes the game from the progress stored under opts.Key.
func New(ctx context.Context, opts Options) *Model {
	if opts.Key == "" {
		opts.Key = letter.ProgressKey
	}
	if opts.OpponentDelay <= 0 {
		opts.OpponentDelay = DefaultOpponentDelay
	}
	if opts.ResetDelay <= 0 {
		opts.ResetDelay = DefaultResetDelay
	}

	m := &Model{
		game:   letter.New(letter.LoadProgress(ctx, opts.Store, opts.Key), opts.Chooser),
		opts:   opts,
		cursor: 4,
		width:  tui.MinModalWidth + 10,
		height: 30,
	}
	if m.game.Phase() == letter.Unlocked {
		m.message = "The letter is unlocked."
	}
	return m
}

// Run plays the game in its own program and returns the final progress.
func Run(ctx context.Context, opts Options) (letter.Progress, error) {
	m := New(ctx, opts)
	final, err := tea.NewProgram(m, tea.WithContext(ctx)).Run()
	if err != nil {
		return m.game.Progress(), fmt.Errorf("game failed: %w", err)
	}
	if fm, ok := final.(*Model); ok {
		return fm.game.Progress(), nil
	}
	return m.game.Progress(), nil
}

func (m *Model) Init() tea.Cmd {
	return nil
}

// Game exposes the underlying game state.
func (m *Model) Game() *letter.Game { return m.game }

func (m *Model) Cursor() int { return m.cursor }

func (m *Model) Message() string { return m.message }

func (m *Model) LetterVisible() bool { return m.showLetter }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case opponentMoveMsg:
		if msg.round != m.round {
			return m, nil
		}
		outcome, ok := m.game.OpponentMove()
		if !ok {
			return m, nil
		}
		return m, m.after(outcome)

	case resetRoundMsg:
		if msg.round != m.round {
			return m, nil
		}
		if m.game.ResetRound() {
			m.round++
			m.message = ""
		}
		return m, nil

	case tea.KeyPressMsg:
		return m, m.handleKey(msg.String())
	}
	return m, nil
}

func (m *Model) handleKey(key string) tea.Cmd {
	if m.showLetter {
		switch key {
		case "esc", "enter", "l":
			m.showLetter = false
			return nil
		case "ctrl+c", "q":
			return tea.Quit
		}
		return nil
	}

	switch key {
	case "ctrl+c", "q", "esc":
		return tea.Quit
	}

	if m.game.Phase() == letter.Unlocked {
		if key == "enter" || key == "l" {
			m.showLetter = true
		}
		return nil
	}

	switch key {
	case "up":
		if m.cursor >= 3 {
			m.cursor -= 3
		}
	case "down":
		if m.cursor < 6 {
			m.cursor += 3
		}
	case "left":
		if m.cursor%3 > 0 {
			m.cursor--
		}
	case "right":
		if m.cursor%3 < 2 {
			m.cursor++
		}
	case "enter", "space":
		return m.play(m.cursor)
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			cell := int(key[0] - '1')
			m.cursor = cell
			return m.play(cell)
		}
	}
	return nil
}

func (m *Model) play(cell int) tea.Cmd {
	outcome, ok := m.game.Play(cell)
	if !ok {
		if m.game.Phase() == letter.Playing && m.game.Board()[cell] != letter.Empty {
			m.message = "That square is taken."
		}
		return nil
	}
	m.message = ""
	return m.after(outcome)
}

// after reacts to a move: schedules the reply or the next round and saves
// progress on a player win.
func (m *Model) after(outcome letter.Outcome) tea.Cmd {
	round := m.round
	reset := tea.Tick(m.opts.ResetDelay, func(time.Time) tea.Msg { return resetRoundMsg{round: round} })

	switch outcome {
	case letter.Continue:
		if m.game.OpponentDue() {
			return tea.Tick(m.opts.OpponentDelay, func(time.Time) tea.Msg { return opponentMoveMsg{round: round} })
		}
		return nil
	case letter.PlayerWon:
		m.save()
		m.message = fmt.Sprintf("You won this round! %d of %d.", m.game.Wins(), letter.WinsToUnlock)
		return reset
	case letter.LetterUnlocked:
		m.save()
		m.message = "You did it. The letter is yours."
		m.showLetter = true
		return nil
	case letter.OpponentWon:
		m.message = "They got this one. Try again."
		return reset
	case letter.Tie:
		m.message = "A tie. Nobody scores."
		return reset
	}
	return nil
}

func (m *Model) save() {
	if err := letter.SaveProgress(context.Background(), m.opts.Store, m.opts.Key, m.game.Progress()); err != nil {
		log.Warn("saving progress: %v", err)
	}
}

func (m *Model) View() tea.View {
	return tui.Frame(m.render(), m.width, m.height)
}

func (m *Model) render() string {
	s := theme.Current().S()
	th := theme.Current()

	if m.showLetter {
		body := tui.RenderMarkdown(letterMarkdown(m.opts.Letter), tui.ModalWidth(m.width)-6)
		return tui.RenderModal(theme.ApplyGradient("A Secret Letter", th.Primary, th.Accent), m.width, m.height,
			body, "", tui.RenderHintBar(tui.KeyEsc, "back to the board", "q", "quit"))
	}

	title := "Win three rounds to open the letter"
	if m.opts.To != "" {
		title = fmt.Sprintf("Win three rounds to open the letter for %s", m.opts.To)
	}

	sections := []string{
		s.Description.Render(title),
		"",
		m.renderHearts(),
		"",
		lipgloss.PlaceHorizontal(tui.ModalWidth(m.width)-6, lipgloss.Center, m.renderBoard()),
		"",
		s.Highlight.Render(m.message),
		"",
	}
	if m.game.Phase() == letter.Unlocked {
		sections = append(sections, tui.RenderHintBar(tui.KeyEnter, "read the letter", "q", "quit"))
	} else {
		sections = append(sections, tui.RenderHintBar(tui.KeyArrows, "move", tui.KeyEnter, "play", "1-9", "square", "q", "quit"))
	}

	return tui.RenderModal(theme.ApplyGradient("Secret Letter", th.Primary, th.Accent), m.width, m.height, sections...)
}

func (m *Model) renderHearts() string {
	s := theme.Current().S()
	hearts := make([]string, letter.WinsToUnlock)
	for i := range hearts {
		if i < m.game.Wins() {
			hearts[i] = s.Heart.Render("♥")
		} else {
			hearts[i] = s.Muted.Render("♡")
		}
	}
	return strings.Join(hearts, " ") + s.Muted.Render(fmt.Sprintf("  %d/%d wins", min(m.game.Wins(), letter.WinsToUnlock), letter.WinsToUnlock))
}

func (m *Model) renderBoard() string {
	s := theme.Current().S()
	board := m.game.Board()
	interactive := m.game.Phase() == letter.Playing

	rows := make([]string, 3)
	for r := range 3 {
		cells := make([]string, 3)
		for c := range 3 {
			i := r*3 + c
			var label string
			switch board[i] {
			case letter.Player:
				label = s.MarkPlayer.Render("X")
			case letter.Opponent:
				label = s.MarkOpponent.Render("O")
			default:
				label = s.Muted.Render(fmt.Sprintf("%d", i+1))
			}
			style := s.Cell
			if interactive && i == m.cursor {
				style = s.CellCursor
			}
			cells[c] = style.Render(label)
		}
		rows[r] = lipgloss.JoinHorizontal(lipgloss.Top, cells...)
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// letterMarkdown formats the secret letter for display.
func letterMarkdown(l *gift.SecretLetter) string {
	if !l.Started() {
		return "*No letter was written for this gift.*"
	}
	var b strings.Builder
	if l.Title != "" {
		b.WriteString("## " + l.Title + "\n\n")
	}
	b.WriteString(l.Body)
	if l.Signature != "" {
		b.WriteString("\n\n*" + l.Signature + "*")
	}
	return b.String()
}
