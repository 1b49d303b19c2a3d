package builder_tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yfkiwi/voicefirst/pkg/assistant"
	"github.com/yfkiwi/voicefirst/pkg/audio"
	"github.com/yfkiwi/voicefirst/pkg/proposal"
	"github.com/yfkiwi/voicefirst/pkg/sections"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	paneStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.AdaptiveColor{Light: "245", Dark: "240"}).
			Padding(0, 1)
	focusedPaneStyle = paneStyle.
				BorderForeground(lipgloss.AdaptiveColor{Light: "27", Dark: "63"})

	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "248"})
	cursorStyle   = lipgloss.NewStyle().Bold(true)
	emptyStyle    = lipgloss.NewStyle().Faint(true).Italic(true)
	noteStyle     = lipgloss.NewStyle().Faint(true)
	userStyle     = lipgloss.NewStyle().Bold(true)
	aiStyle       = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "27", Dark: "63"})
	systemStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "130", Dark: "179"})
	statusStyle   = lipgloss.NewStyle().Faint(true)
	recordStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	progressStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "27", Dark: "63"})
)

// resize recomputes the pane dimensions after a window size change.
func (m *Model) resize() {
	chatWidth := m.Width/2 - 4
	if chatWidth < 20 {
		chatWidth = 20
	}
	chatHeight := m.Height - 9
	if chatHeight < 5 {
		chatHeight = 5
	}
	m.ChatView.Width = chatWidth
	m.ChatView.Height = chatHeight
	m.ChatInput.Width = chatWidth - 2
	m.EditInput.Width = chatWidth - 2
	m.DocInput.Width = chatWidth - 2
	m.Help.Width = m.Width
}

// refreshChat re-renders the timeline into the chat viewport and keeps
// it scrolled to the newest entry.
func (m *Model) refreshChat() {
	m.ChatView.SetContent(m.renderTimeline())
	m.ChatView.GotoBottom()
}

func (m *Model) renderTimeline() string {
	width := m.ChatView.Width
	if width <= 0 {
		width = 60
	}
	wrap := lipgloss.NewStyle().Width(width)

	var b strings.Builder
	for _, msg := range m.Orch.Timeline() {
		switch msg.Role {
		case assistant.RoleUser:
			b.WriteString(wrap.Render(userStyle.Render("You: ") + msg.Content))
		case assistant.RoleAssistant:
			text := msg.Content
			if len(msg.Audio) > 0 {
				text += " 🔊"
			}
			b.WriteString(wrap.Render(aiStyle.Render("Assistant: ") + text))
		case assistant.RoleSystem:
			b.WriteString(wrap.Render(systemStyle.Render(msg.Content)))
		}
		b.WriteString("\n\n")
	}
	return b.String()
}

func (m Model) View() string {
	if m.Width == 0 {
		return "Loading..."
	}

	header := titleStyle.Foreground(m.accent).Render(fmt.Sprintf("Grant Proposal Builder | Section %d of %d: %s",
		m.Section+1, sections.Count, sections.Name(m.Section)))

	form := m.renderForm()
	chat := m.renderChat()

	formPane := paneStyle
	chatPane := paneStyle
	if m.Focus == FormPane {
		formPane = focusedPaneStyle
	} else {
		chatPane = focusedPaneStyle
	}

	paneHeight := m.Height - 5
	paneWidth := m.Width/2 - 2
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		formPane.Width(paneWidth).Height(paneHeight).Render(form),
		chatPane.Width(paneWidth).Height(paneHeight).Render(chat),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		body,
		m.renderStatusLine(),
		m.Help.View(m.KeyMap),
	)
}

func (m Model) renderForm() string {
	var b strings.Builder

	if len(m.Rows) == 0 {
		b.WriteString(emptyStyle.Render("This section has no form fields. Use the chat to work on it."))
		b.WriteString("\n")
	}

	for i, row := range m.Rows {
		prefix := "  "
		if i == m.Cursor && m.Focus == FormPane {
			prefix = cursorStyle.Render("> ")
		}

		switch row.Kind {
		case rowNote:
			b.WriteString(prefix + noteStyle.Render(row.Label) + "\n")
		case rowDocument:
			b.WriteString(prefix + labelStyle.Render(row.Label+": ") + row.Value + "\n")
		default:
			value := row.Value
			if i == m.Cursor && m.Editing {
				b.WriteString(prefix + labelStyle.Render(row.Label) + "\n")
				b.WriteString("    " + m.EditInput.View() + "\n")
				continue
			}
			if value == "" {
				value = emptyStyle.Render("(empty)")
			} else {
				value = truncate(value, 60)
			}
			b.WriteString(prefix + labelStyle.Render(row.Label+": ") + value + "\n")
		}
	}

	if m.AddingDoc {
		label := "Community document path"
		if m.AddDocKind != proposal.CommunityDocuments {
			label = "Funding document path"
		}
		b.WriteString("\n" + labelStyle.Render(label) + "\n")
		b.WriteString("  " + m.DocInput.View() + "\n")
	}

	return b.String()
}

func (m Model) renderChat() string {
	var b strings.Builder
	b.WriteString(m.ChatView.View())
	b.WriteString("\n")
	b.WriteString(m.ChatInput.View())
	return b.String()
}

func (m Model) renderStatusLine() string {
	switch {
	case m.Recorder.State() == audio.StateRecording:
		return recordStyle.Render(" ● REC ") + statusStyle.Render(m.Status)
	case m.Transcribing:
		return progressStyle.Render(" "+m.Spinner.View()) + statusStyle.Render(" Transcribing...")
	case m.Orch.Awaiting():
		return progressStyle.Render(" "+m.Spinner.View()) + statusStyle.Render(" Assistant is thinking...")
	case m.Status != "":
		return statusStyle.Render(" " + m.Status)
	}
	return " "
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
