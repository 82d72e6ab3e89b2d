package game

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/bandhan/bandhan/internal/gift"
	"github.com/bandhan/bandhan/internal/letter"
	"github.com/bandhan/bandhan/internal/state"
	"github.com/bandhan/bandhan/internal/tui/testfixtures"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func firstEmpty(int) int { return 0 }

func newTestModel(t *testing.T, store state.Store) *Model {
	t.Helper()
	m := New(context.Background(), Options{
		Store:   store,
		Key:     letter.KeyFor("asha-ravi"),
		Letter:  &gift.SecretLetter{Title: "Open me", Body: "Every day with you", Signature: "Asha"},
		To:      "Ravi",
		Chooser: firstEmpty,
	})
	m.Update(tea.WindowSizeMsg{Width: testfixtures.TestTermWidth, Height: testfixtures.TestTermHeight})
	return m
}

func press(m *Model, key string) tea.Cmd {
	_, cmd := m.Update(testfixtures.Key(key))
	return cmd
}

// winRound plays 1, 4, 7 while the opponent takes the first empty squares,
// which wins the left column.
func winRound(t *testing.T, m *Model) {
	t.Helper()
	for _, key := range []string{"1", "4"} {
		require.NotNil(t, press(m, key))
		require.True(t, m.Game().OpponentDue())
		m.Update(opponentMoveMsg{round: m.round})
	}
	press(m, "7")
}

func TestGame_WinRoundSchedulesReset(t *testing.T) {
	store := state.NewMemoryStore()
	m := newTestModel(t, store)

	winRound(t, m)
	require.Equal(t, letter.RoundResolved, m.Game().Phase())
	assert.Equal(t, 1, m.Game().Wins())
	assert.Contains(t, ansi.Strip(m.render()), "1/3 wins")
	assert.Contains(t, m.Message(), "1 of 3")

	saved := letter.LoadProgress(context.Background(), store, letter.KeyFor("asha-ravi"))
	assert.Equal(t, letter.Progress{Wins: 1}, saved)

	m.Update(resetRoundMsg{round: m.round})
	assert.Equal(t, letter.Playing, m.Game().Phase())
	assert.Equal(t, letter.Board{}, m.Game().Board())
	assert.Empty(t, m.Message())
}

func TestGame_ThreeWinsUnlockAndShowLetter(t *testing.T) {
	store := state.NewMemoryStore()
	m := newTestModel(t, store)

	for round := 0; round < 3; round++ {
		winRound(t, m)
		if round < 2 {
			m.Update(resetRoundMsg{round: m.round})
		}
	}

	require.Equal(t, letter.Unlocked, m.Game().Phase())
	require.True(t, m.LetterVisible())
	assert.Contains(t, ansi.Strip(m.render()), "Open me")

	press(m, "esc")
	assert.False(t, m.LetterVisible())
	press(m, "enter")
	assert.True(t, m.LetterVisible(), "letter reopens any time")

	reloaded := newTestModel(t, store)
	assert.Equal(t, letter.Unlocked, reloaded.Game().Phase())
	assert.Nil(t, press(reloaded, "5"), "unlocked board ignores moves")
}

func TestGame_StaleMessagesIgnored(t *testing.T) {
	m := newTestModel(t, state.NewMemoryStore())
	winRound(t, m)
	m.Update(resetRoundMsg{round: m.round})

	// A reply scheduled in the previous round must not move now.
	m.Update(opponentMoveMsg{round: m.round - 1})
	assert.Equal(t, letter.Board{}, m.Game().Board())
}

func TestGame_TakenSquare(t *testing.T) {
	m := newTestModel(t, state.NewMemoryStore())
	press(m, "5")
	m.Update(opponentMoveMsg{round: m.round})

	assert.Nil(t, press(m, "5"))
	assert.Equal(t, "That square is taken.", m.Message())
}

func TestGame_CursorMovement(t *testing.T) {
	m := newTestModel(t, state.NewMemoryStore())
	require.Equal(t, 4, m.Cursor())

	tests := []struct {
		key  string
		want int
	}{
		{"up", 1},
		{"up", 1},
		{"left", 0},
		{"left", 0},
		{"down", 3},
		{"down", 6},
		{"down", 6},
		{"right", 7},
		{"right", 8},
		{"right", 8},
	}
	for _, tt := range tests {
		press(m, tt.key)
		assert.Equal(t, tt.want, m.Cursor(), "after %s", tt.key)
	}

	require.NotNil(t, press(m, "enter"))
	assert.Equal(t, letter.Player, m.Game().Board()[8])
}

func TestGame_QuitKeys(t *testing.T) {
	for _, key := range []string{"q", "esc", "ctrl+c"} {
		m := newTestModel(t, state.NewMemoryStore())
		cmd := press(m, key)
		require.NotNil(t, cmd, key)
		_, ok := cmd().(tea.QuitMsg)
		assert.True(t, ok, key)
	}
}

func TestLetterMarkdown(t *testing.T) {
	assert.Equal(t, "*No letter was written for this gift.*", letterMarkdown(nil))
	assert.Equal(t, "## Hi\n\nbody\n\n*me*", letterMarkdown(&gift.SecretLetter{Title: "Hi", Body: "body", Signature: "me"}))
}
