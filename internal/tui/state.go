package tui

import (
	"time"

	"todocal/backend"
)

// ViewMode selects the main panel
type ViewMode int

const (
	ViewList ViewMode = iota
	ViewCalendar
)

func (v ViewMode) String() string {
	if v == ViewCalendar {
		return "calendar"
	}
	return "list"
}

// ParseViewMode maps a config value to a ViewMode, defaulting to the list
func ParseViewMode(name string) ViewMode {
	if name == "calendar" {
		return ViewCalendar
	}
	return ViewList
}

// Mode is the interaction state layered over the main panel
type Mode int

const (
	ModeNormal Mode = iota
	ModeAdd
	ModeEdit
	ModeAlert
	ModeConfirmDelete
)

func (m Mode) String() string {
	switch m {
	case ModeAdd:
		return "add"
	case ModeEdit:
		return "edit"
	case ModeAlert:
		return "alert"
	case ModeConfirmDelete:
		return "confirm-delete"
	default:
		return "normal"
	}
}

// State is the user-visible selection the renderers work from
type State struct {
	Filter   backend.Filter
	View     ViewMode
	Date     time.Time // anchors the displayed month
	Category string    // when set, the list shows this category instead of Filter
}

// filterIndex returns the tab position of the active filter, or -1 while a
// category is browsed
func (s State) filterIndex() int {
	if s.Category != "" {
		return -1
	}
	for i, f := range backend.Filters {
		if f == s.Filter {
			return i
		}
	}
	return 0
}
