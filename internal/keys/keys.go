// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// HomeKeyMap defines the keybindings of the home screen.
type HomeKeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Enter key.Binding
	Help  key.Binding
	Quit  key.Binding
}

// RecognitionKeyMap defines the keybindings of the recognition screen.
type RecognitionKeyMap struct {
	AddPhoto key.Binding
	Submit   key.Binding
	Back     key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// ChooserKeyMap defines the keybindings of the photo source chooser.
type ChooserKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Camera key.Binding
	Lib    key.Binding
	Abort  key.Binding
}

// NoticeKeyMap defines the keybindings of a blocking notice.
type NoticeKeyMap struct {
	Acknowledge key.Binding
}

// Home holds the home screen bindings.
var Home = HomeKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "move up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "move down"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "toggle help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// Recognition holds the recognition screen bindings.
var Recognition = RecognitionKeyMap{
	AddPhoto: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "add photo"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter", "s"),
		key.WithHelp("enter", "show result"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc", "backspace"),
		key.WithHelp("esc", "back"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "toggle help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
}

// Chooser holds the source chooser bindings.
var Chooser = ChooserKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "move up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "move down"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Camera: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "camera"),
	),
	Lib: key.NewBinding(
		key.WithKeys("l"),
		key.WithHelp("l", "library"),
	),
	Abort: key.NewBinding(
		key.WithKeys("esc", "x"),
		key.WithHelp("esc", "cancel"),
	),
}

// Notice holds the blocking notice bindings.
var Notice = NoticeKeyMap{
	Acknowledge: key.NewBinding(
		key.WithKeys("enter", "esc", " "),
		key.WithHelp("enter", "ok"),
	),
}

// ShortHelp returns keybindings for the short help view.
func (k HomeKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Enter, k.Help, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k HomeKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Enter},
		{k.Help, k.Quit},
	}
}

// ShortHelp returns keybindings for the short help view.
func (k RecognitionKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.AddPhoto, k.Submit, k.Back, k.Help}
}

// FullHelp returns keybindings for the full help view.
func (k RecognitionKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.AddPhoto, k.Submit},
		{k.Back, k.Help, k.Quit},
	}
}

// ShortHelp returns keybindings for the short help view.
func (k ChooserKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Camera, k.Lib, k.Abort}
}

// FullHelp returns keybindings for the full help view.
func (k ChooserKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.Camera, k.Lib, k.Abort},
	}
}
