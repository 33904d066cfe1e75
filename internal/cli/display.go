package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"todocal/backend"
	"todocal/internal/calendar"
	"todocal/internal/views"
)

// GetTerminalWidth returns the current terminal width, defaulting to 80 if unable to detect
func GetTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		// Default to 80 if we can't detect terminal size
		return 80
	}
	return width
}

// IsTerminal reports whether w is an interactive terminal
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// boxWidth clamps the terminal width to a readable frame
func boxWidth(termWidth int) int {
	width := termWidth - 2
	if width < 40 {
		width = 40 // Minimum width
	}
	if width > 100 {
		width = 100 // Maximum width for readability
	}
	return width
}

// ShowCategories prints every category with the number of todos it holds,
// framed the same way at any width. Escape codes are only written when
// color is set.
func ShowCategories(w io.Writer, categories []string, todos []backend.Todo, width int, color bool) {
	borderWidth := boxWidth(width)

	counts := make(map[string]int)
	for _, t := range todos {
		counts[t.CategoryOrDefault()]++
	}

	frame, num, name, gray, reset := "", "", "", "", ""
	if color {
		frame = "\033[1;36m"
		num = "\033[36m"    // Cyan
		name = "\033[1;37m" // Bold white
		gray = "\033[90m"   // Gray
		reset = "\033[0m"
	}

	// Header - fixed to match footer width
	headerText := "─ Categories "
	headerPadding := borderWidth - len([]rune(headerText))
	if headerPadding < 0 {
		headerPadding = 0
	}
	fmt.Fprintf(w, "%s┌%s%s┐%s\n", frame, headerText, strings.Repeat("─", headerPadding), reset)

	if len(categories) == 0 {
		fmt.Fprintf(w, "  %s%s%s\n", gray, views.EmptyMessage, reset)
	}

	for i, c := range categories {
		fmt.Fprintf(w, "  %s%2d.%s %s%s%s", num, i+1, reset, name, c, reset)
		if n := counts[c]; n > 0 {
			fmt.Fprintf(w, " %s(%d)%s", gray, n, reset)
		}
		fmt.Fprintln(w)
	}

	// Footer
	fmt.Fprintf(w, "%s└%s┘%s\n", frame, strings.Repeat("─", borderWidth), reset)
}

// ShowList prints todos as the list view renders them
func ShowList(w io.Writer, r *views.Renderer, b *views.TreeBuilder, todos []backend.Todo, width int) {
	fmt.Fprintln(w, r.RenderList(b.BuildList(todos), -1, width))
}

// ShowCalendar prints the month grid with up to perCell todos per day
func ShowCalendar(w io.Writer, r *views.Renderer, b *views.TreeBuilder, grid calendar.Grid, todos []backend.Todo, width, perCell int) {
	tree := b.BuildCalendar(grid, calendar.GroupByDueDate(todos), perCell)
	fmt.Fprintln(w, r.RenderCalendar(tree, views.CalendarSelection{Entry: -1}, width, perCell))
}
