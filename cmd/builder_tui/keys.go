package builder_tui

import (
	"github.com/charmbracelet/bubbles/key"
)

type KeyMap struct {
	Up          key.Binding
	Down        key.Binding
	PrevSection key.Binding
	NextSection key.Binding
	Edit        key.Binding
	Cancel      key.Binding
	SwitchFocus key.Binding
	Record      key.Binding
	Replay      key.Binding
	AddDoc        key.Binding
	AddFundingDoc key.Binding
	RemoveDoc     key.Binding
	Save        key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func NewKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "previous field"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next field"),
		),
		PrevSection: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "previous section"),
		),
		NextSection: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next section"),
		),
		Edit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "edit field"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel edit"),
		),
		SwitchFocus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch pane"),
		),
		Record: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "start/stop recording"),
		),
		Replay: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("ctrl+p", "replay last reply"),
		),
		AddDoc: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add community document"),
		),
		AddFundingDoc: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "add funding document"),
		),
		RemoveDoc: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "remove document"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save draft"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "save and quit"),
		),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.SwitchFocus, k.PrevSection, k.NextSection, k.Record, k.Save, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PrevSection, k.NextSection},
		{k.Edit, k.Cancel, k.AddDoc, k.AddFundingDoc, k.RemoveDoc},
		{k.SwitchFocus, k.Record, k.Replay, k.Save, k.Quit},
	}
}
