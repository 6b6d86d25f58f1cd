package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds every binding the TUI responds to. Views pick the subset
// that applies to them for the help line.
type KeyMap struct {
	NextTab  key.Binding
	Quit     key.Binding
	Help     key.Binding
	Left     key.Binding
	Right    key.Binding
	Up       key.Binding
	Down     key.Binding
	Select   key.Binding
	PickOne  key.Binding
	PickTwo  key.Binding
	Add      key.Binding
	Edit     key.Binding
	Delete   key.Binding
	Done     key.Binding
	Pause    key.Binding
	Complete key.Binding
	Skip     key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		NextTab:  key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "switch view")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Select:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "focus")),
		PickOne:  key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "focus first")),
		PickTwo:  key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "focus second")),
		Add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Done:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "mark done")),
		Pause:    key.NewBinding(key.WithKeys(" ", "p"), key.WithHelp("space", "pause/resume")),
		Complete: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "complete")),
		Skip:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "skip")),
	}
}

// helpKeys adapts a binding subset to help.KeyMap.
type helpKeys struct {
	short []key.Binding
	full  [][]key.Binding
}

func (h helpKeys) ShortHelp() []key.Binding  { return h.short }
func (h helpKeys) FullHelp() [][]key.Binding { return h.full }

func (k KeyMap) choiceHelp() helpKeys {
	short := []key.Binding{k.Left, k.Right, k.Select, k.Add, k.NextTab, k.Quit, k.Help}
	return helpKeys{
		short: short,
		full: [][]key.Binding{
			{k.Left, k.Right, k.Select, k.PickOne, k.PickTwo},
			{k.Add, k.NextTab, k.Quit, k.Help},
		},
	}
}

func (k KeyMap) focusHelp() helpKeys {
	short := []key.Binding{k.Pause, k.Complete, k.Skip, k.NextTab, k.Quit, k.Help}
	return helpKeys{
		short: short,
		full:  [][]key.Binding{{k.Pause, k.Complete, k.Skip}, {k.NextTab, k.Quit, k.Help}},
	}
}

func (k KeyMap) listHelp() helpKeys {
	short := []key.Binding{k.Up, k.Down, k.Select, k.Add, k.Edit, k.Delete, k.NextTab, k.Help}
	return helpKeys{
		short: short,
		full: [][]key.Binding{
			{k.Up, k.Down, k.Select},
			{k.Add, k.Edit, k.Delete, k.Done},
			{k.NextTab, k.Quit, k.Help},
		},
	}
}
