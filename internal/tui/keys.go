package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit         key.Binding
	Help         key.Binding
	FilterAll    key.Binding
	FilterOpen   key.Binding
	FilterDone   key.Binding
	ToggleView   key.Binding
	ListView     key.Binding
	CalendarView key.Binding
	PrevMonth    key.Binding
	NextMonth    key.Binding
	ThisMonth    key.Binding
	Up           key.Binding
	Down         key.Binding
	Left         key.Binding
	Right        key.Binding
	NextEntry    key.Binding
	Open         key.Binding
	Add          key.Binding
	Edit         key.Binding
	Complete     key.Binding
	Delete       key.Binding
	Category     key.Binding
	Reload       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:         key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Help:         key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		FilterAll:    key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "all")),
		FilterOpen:   key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "incomplete")),
		FilterDone:   key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "completed")),
		ToggleView:   key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "list/calendar")),
		ListView:     key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "list")),
		CalendarView: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "calendar")),
		PrevMonth:    key.NewBinding(key.WithKeys("[", "pgup"), key.WithHelp("[", "prev month")),
		NextMonth:    key.NewBinding(key.WithKeys("]", "pgdown"), key.WithHelp("]", "next month")),
		ThisMonth:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "this month")),
		Up:           key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:         key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:         key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev day")),
		Right:        key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next day")),
		NextEntry:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next entry")),
		Open:         key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Add:          key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Edit:         key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Complete:     key.NewBinding(key.WithKeys("x", " "), key.WithHelp("x", "complete")),
		Delete:       key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Category:     key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "next category")),
		Reload:       key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Edit, k.Complete, k.Delete, k.ToggleView, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.FilterAll, k.FilterOpen, k.FilterDone, k.Category},
		{k.ToggleView, k.ListView, k.CalendarView, k.Reload},
		{k.PrevMonth, k.NextMonth, k.ThisMonth, k.NextEntry},
		{k.Up, k.Down, k.Left, k.Right, k.Open},
		{k.Add, k.Edit, k.Complete, k.Delete},
		{k.Help, k.Quit},
	}
}

// formKeyMap holds the bindings active while a form has focus
type formKeyMap struct {
	Submit key.Binding
	Cancel key.Binding
	Next   key.Binding
	Prev   key.Binding
	Toggle key.Binding
}

func defaultFormKeyMap() formKeyMap {
	return formKeyMap{
		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Next:   key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev field")),
		Toggle: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle completed")),
	}
}

// ShortHelp implements help.KeyMap
func (k formKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Cancel, k.Next, k.Prev, k.Toggle}
}

// FullHelp implements help.KeyMap
func (k formKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
