package views

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"todocal/internal/views/formatters"
)

// Theme names accepted by NewRenderer
const (
	ThemeClassic = "classic"
	ThemeMono    = "mono"
)

// Themes lists every known theme name
var Themes = []string{ThemeClassic, ThemeMono}

type styles struct {
	header     lipgloss.Style
	activeTab  lipgloss.Style
	tab        lipgloss.Style
	category   lipgloss.Style
	title      lipgloss.Style
	completed  lipgloss.Style
	muted      lipgloss.Style
	overdue    lipgloss.Style
	dueToday   lipgloss.Style
	selected   lipgloss.Style
	message    lipgloss.Style
	weekday    lipgloss.Style
	day        lipgloss.Style
	today      lipgloss.Style
	otherMonth lipgloss.Style
	more       lipgloss.Style
	cell       lipgloss.Style
}

func classicStyles() styles {
	return styles{
		header:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		activeTab:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("12")).Padding(0, 1),
		tab:        lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Padding(0, 1),
		category:   lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		title:      lipgloss.NewStyle().Bold(true),
		completed:  lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("8")),
		muted:      lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		overdue:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		dueToday:   lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		selected:   lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true),
		message:    lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("8")),
		weekday:    lipgloss.NewStyle().Bold(true).Align(lipgloss.Center),
		day:        lipgloss.NewStyle(),
		today:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("10")),
		otherMonth: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		more:       lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true),
		cell:       lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")),
	}
}

func monoStyles() styles {
	plain := lipgloss.NewStyle()
	return styles{
		header:     plain.Bold(true),
		activeTab:  plain.Reverse(true).Padding(0, 1),
		tab:        plain.Padding(0, 1),
		category:   plain,
		title:      plain.Bold(true),
		completed:  plain.Strikethrough(true).Faint(true),
		muted:      plain.Faint(true),
		overdue:    plain.Bold(true).Underline(true),
		dueToday:   plain.Underline(true),
		selected:   plain.Reverse(true),
		message:    plain.Italic(true),
		weekday:    plain.Bold(true).Align(lipgloss.Center),
		day:        plain,
		today:      plain.Reverse(true),
		otherMonth: plain.Faint(true),
		more:       plain.Faint(true),
		cell:       plain.Border(lipgloss.NormalBorder()),
	}
}

// Renderer turns list and calendar trees into terminal text
type Renderer struct {
	theme string
	st    styles
}

// NewRenderer creates a renderer for a theme; unknown names fall back to classic
func NewRenderer(theme string) *Renderer {
	r := &Renderer{theme: ThemeClassic, st: classicStyles()}
	if theme == ThemeMono {
		r.theme = ThemeMono
		r.st = monoStyles()
	}
	return r
}

// Theme returns the active theme name
func (r *Renderer) Theme() string {
	return r.theme
}

// RenderTabs renders a tab bar with the active entry highlighted
func (r *Renderer) RenderTabs(labels []string, active int) string {
	parts := make([]string, 0, len(labels))
	for i, label := range labels {
		if i == active {
			parts = append(parts, r.st.activeTab.Render(label))
		} else {
			parts = append(parts, r.st.tab.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// RenderHeader renders a bold section title
func (r *Renderer) RenderHeader(title string) string {
	return r.st.header.Render(title)
}

// RenderMessage renders a standalone notice such as the empty or loading text
func (r *Renderer) RenderMessage(msg string) string {
	return r.st.message.Render(msg)
}

// RenderMuted renders secondary text like help lines
func (r *Renderer) RenderMuted(s string) string {
	return r.st.muted.Render(s)
}

// RenderList renders every row of the list tree. selected is the highlighted
// row index (-1 for none).
func (r *Renderer) RenderList(tree ListTree, selected int, width int) string {
	if len(tree.Rows) == 0 {
		return r.RenderMessage(tree.Message)
	}

	var b strings.Builder
	for i, row := range tree.Rows {
		b.WriteString(r.RenderRow(row, i == selected, width))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderRow renders one todo row: a main line, an optional description line
// and a metadata line with the timestamps and available actions
func (r *Renderer) RenderRow(row Row, selected bool, width int) string {
	cursor := "  "
	if selected {
		cursor = r.st.selected.Render("> ")
	}

	titleStyle := r.st.title
	if row.Completed {
		titleStyle = r.st.completed
	}

	main := []string{
		row.Status,
		r.st.category.Render("[" + row.Category + "]"),
		titleStyle.Render(row.Title),
	}
	if row.DueDate != "" {
		main = append(main, r.dueStyle(row.DueTag).Render("마감일: "+row.DueDate))
	}

	var b strings.Builder
	b.WriteString(cursor)
	b.WriteString(strings.Join(main, " "))
	b.WriteString("\n")

	if row.Description != "" {
		desc := row.Description
		if width > 6 {
			desc = formatters.Truncate(desc, width-6)
		}
		b.WriteString("     ")
		b.WriteString(r.st.muted.Render(desc))
		b.WriteString("\n")
	}

	meta := []string{"생성: " + row.Created, "수정: " + row.Updated}
	if row.Age != "" {
		meta = append(meta, row.Age)
	}
	actions := make([]string, 0, len(row.Actions))
	for _, a := range row.Actions {
		actions = append(actions, string(a))
	}
	meta = append(meta, "["+strings.Join(actions, " ")+"]")

	b.WriteString("     ")
	b.WriteString(r.st.muted.Render(strings.Join(meta, " | ")))

	return b.String()
}

func (r *Renderer) dueStyle(tag Tag) lipgloss.Style {
	switch tag {
	case TagOverdue:
		return r.st.overdue
	case TagDueToday:
		return r.st.dueToday
	default:
		return r.st.muted
	}
}

// CalendarSelection marks the focused cell and entry in the month grid
type CalendarSelection struct {
	Date  string // focused cell, empty for none
	Entry int    // focused entry inside the cell, -1 for none
}

// RenderCalendar renders the weekday header and six weeks of day cells.
// Cells share the available width evenly.
func (r *Renderer) RenderCalendar(tree CalendarTree, sel CalendarSelection, width int, itemsPerCell int) string {
	cellWidth := width/7 - 2
	if cellWidth < 8 {
		cellWidth = 8
	}
	if itemsPerCell < 1 {
		itemsPerCell = 1
	}
	// day line + entries + overflow line
	cellHeight := itemsPerCell + 2

	header := make([]string, 0, len(tree.Weekdays))
	for _, wd := range tree.Weekdays {
		header = append(header, r.st.weekday.Width(cellWidth+2).Render(wd))
	}

	lines := []string{
		r.RenderHeader(tree.Title),
		lipgloss.JoinHorizontal(lipgloss.Top, header...),
	}

	for _, week := range tree.Weeks() {
		cells := make([]string, 0, len(week))
		for _, cell := range week {
			cells = append(cells, r.renderCell(cell, sel, cellWidth, cellHeight))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (r *Renderer) renderCell(cell CalendarCell, sel CalendarSelection, width, height int) string {
	dayStyle := r.st.day
	switch {
	case cell.Has(TagToday):
		dayStyle = r.st.today
	case cell.Has(TagOtherMonth):
		dayStyle = r.st.otherMonth
	}

	focused := sel.Date != "" && sel.Date == cell.Date
	day := dayStyle.Render(strconv.Itoa(cell.Day))
	if focused {
		day = r.st.selected.Render("▸") + day
	}

	lines := []string{day}
	for i, e := range cell.Entries {
		text := formatters.Truncate(e.Title, width)
		style := r.entryStyle(e)
		if focused && i == sel.Entry {
			style = style.Inherit(r.st.selected).Reverse(true)
		}
		lines = append(lines, style.Render(text))
	}
	if label := cell.MoreLabel(); label != "" {
		lines = append(lines, r.st.more.Render(label))
	}

	cellStyle := r.st.cell.Width(width).Height(height)
	if focused {
		cellStyle = cellStyle.BorderForeground(lipgloss.Color("13"))
	}
	return cellStyle.Render(strings.Join(lines, "\n"))
}

// entryStyle gives completed precedence over the due tags
func (r *Renderer) entryStyle(e CalendarEntry) lipgloss.Style {
	switch {
	case e.Has(TagCompleted):
		return r.st.completed
	case e.Has(TagOverdue):
		return r.st.overdue
	case e.Has(TagDueToday):
		return r.st.dueToday
	default:
		return r.st.day
	}
}
