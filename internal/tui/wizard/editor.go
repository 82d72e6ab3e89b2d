package wizard

import (
	"os"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/editor"
)

// openEditor hands the story to $EDITOR and reads it back when the editor
// exits. Nothing happens when no editor can be started.
func (m *Model) openEditor() tea.Cmd {
	tmpfile, err := os.CreateTemp("", "bandhan_story_*.md")
	if err != nil {
		log.Warn("creating story file: %v", err)
		return nil
	}
	path := tmpfile.Name()

	if _, err := tmpfile.WriteString(m.fields[0].Value()); err != nil {
		_ = tmpfile.Close()
		_ = os.Remove(path)
		return nil
	}
	_ = tmpfile.Close()

	cmd, err := editor.Command("bandhan", path)
	if err != nil {
		log.Warn("no editor available: %v", err)
		_ = os.Remove(path)
		m.notice = "Set $EDITOR to write your story in an editor."
		return nil
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		defer func() { _ = os.Remove(path) }()
		if err != nil {
			log.Warn("editor exited: %v", err)
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		return editorFinishedMsg{content: strings.TrimRight(string(content), "\n")}
	})
}
