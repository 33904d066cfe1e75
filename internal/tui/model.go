// Package tui is the interactive todo client: a bubbletea model that owns the
// filter, view and month state and turns key presses into backend calls.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"todocal/backend"
	"todocal/internal/calendar"
	"todocal/internal/utils"
	"todocal/internal/views"
	"todocal/internal/views/formatters"
)

const (
	// DeleteConfirmMessage asks before a todo is deleted
	DeleteConfirmMessage = "정말로 이 할 일을 삭제하시겠습니까?"

	calendarLoadingMessage = "달력 로딩 중..."
)

var (
	filterLabels = []string{"전체", "미완료", "완료"}
	viewLabels   = []string{"목록", "달력"}
)

// Options configures a Model
type Options struct {
	Context         context.Context
	Manager         backend.TodoManager
	Theme           string
	StartView       string
	StartFilter     string
	ItemsPerCell    int
	DefaultCategory string
	DateFormat      string
	FieldFormats    map[string]string
	Now             func() time.Time
}

// Model is the bubbletea model of the todo client
type Model struct {
	ctx      context.Context
	manager  backend.TodoManager
	renderer *views.Renderer
	formats  views.FieldFormats
	dateFmt  string
	now      func() time.Time
	perCell  int

	state State
	mode  Mode

	// generations of the latest issued fetch per view; older responses are dropped
	listGen     int
	calGen      int
	listLoading bool
	calLoading  bool

	list     []backend.Todo
	calTodos []backend.Todo

	cursor    int    // selected list row
	calCursor string // focused calendar date
	calEntry  int    // focused entry inside the focused cell, -1 for none

	categories  []string
	categoryIdx int

	form          todoForm
	alert         string
	alertReturn   Mode
	pendingDelete string

	keys     keyMap
	formKeys formKeyMap
	help     help.Model
	spinner  spinner.Model
	width    int
	height   int
	quitting bool
}

// New creates a model. Nothing is fetched until Init runs.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	filter, err := backend.ParseFilter(opts.StartFilter)
	if err != nil {
		utils.Warnf("ignoring start filter: %v", err)
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		ctx:         ctx,
		manager:     opts.Manager,
		renderer:    views.NewRenderer(opts.Theme),
		formats:     views.FieldFormats(opts.FieldFormats),
		dateFmt:     opts.DateFormat,
		now:         now,
		perCell:     opts.ItemsPerCell,
		categoryIdx: -1,
		calEntry:    -1,
		state: State{
			Filter: filter,
			View:   ParseViewMode(opts.StartView),
			Date:   calendar.FirstOfMonth(now()),
		},
		form:     newTodoForm(),
		keys:     defaultKeyMap(),
		formKeys: defaultFormKeyMap(),
		help:     help.New(),
		spinner:  sp,
		width:    100,
		height:   30,
	}
	if m.perCell <= 0 {
		m.perCell = calendar.DefaultItemsPerCell
	}
	m.form.resetForAdd(m.today())
	if opts.DefaultCategory != "" {
		m.form.inputs[fieldCategory].Placeholder = opts.DefaultCategory
	}
	m.calCursor = m.defaultCalendarCursor()

	// Generation 1 of each fetch is issued by Init
	m.listGen, m.listLoading = 1, true
	if m.state.View == ViewCalendar {
		m.calGen, m.calLoading = 1, true
	}
	return m
}

// State returns the current filter, view and month
func (m Model) State() State {
	return m.state
}

// Mode returns the current interaction mode
func (m Model) Mode() Mode {
	return m.mode
}

// Alert returns the message of the open alert, if any
func (m Model) Alert() string {
	return m.alert
}

// Todos returns the todos of the list view as last loaded
func (m Model) Todos() []backend.Todo {
	return m.list
}

// Init starts the spinner and loads the start view
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.spinner.Tick,
		fetchListCmd(m.ctx, m.manager, m.listGen, m.state.Filter, m.state.Category),
	}
	if m.calLoading {
		cmds = append(cmds, fetchCalendarCmd(m.ctx, m.manager, m.calGen))
	}
	return tea.Batch(cmds...)
}

func (m Model) today() string {
	return calendar.Today(m.now())
}

func (m Model) builder() *views.TreeBuilder {
	return views.NewTreeBuilder(formatters.NewFormatContext(m.dateFmt, m.now()), m.formats)
}

// reloadList issues a new list fetch generation
func (m *Model) reloadList() tea.Cmd {
	m.listGen++
	m.listLoading = true
	return fetchListCmd(m.ctx, m.manager, m.listGen, m.state.Filter, m.state.Category)
}

// reloadCalendar issues a new calendar fetch generation
func (m *Model) reloadCalendar() tea.Cmd {
	m.calGen++
	m.calLoading = true
	return fetchCalendarCmd(m.ctx, m.manager, m.calGen)
}

// reload refreshes the list and, when it is showing, the calendar
func (m *Model) reload() tea.Cmd {
	cmds := []tea.Cmd{m.reloadList()}
	if m.state.View == ViewCalendar {
		cmds = append(cmds, m.reloadCalendar())
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case listLoadedMsg:
		if msg.gen != m.listGen {
			utils.Debugf("dropping stale list response (generation %d, latest %d)", msg.gen, m.listGen)
			return m, nil
		}
		m.listLoading = false
		m.list = msg.todos
		m.clampCursor()
		return m, nil

	case calendarLoadedMsg:
		if msg.gen != m.calGen {
			utils.Debugf("dropping stale calendar response (generation %d, latest %d)", msg.gen, m.calGen)
			return m, nil
		}
		m.calLoading = false
		m.calTodos = msg.todos
		m.calEntry = -1
		return m, nil

	case categoriesLoadedMsg:
		m.categories = msg.categories
		m.categoryIdx = -1
		return m.nextCategory()

	case mutationMsg:
		return m.handleMutation(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleMutation(msg mutationMsg) (tea.Model, tea.Cmd) {
	if !msg.ok {
		// The service already logged the failure; the screen stays as it was
		return m, nil
	}

	switch msg.op {
	case mutationAdd:
		m.form.resetForAdd(m.today())
		m.mode = ModeNormal
	case mutationUpdate:
		m.mode = ModeNormal
	}
	cmd := m.reload()
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.mode {
	case ModeAlert:
		m.mode = m.alertReturn
		m.alert = ""
		return m, nil
	case ModeConfirmDelete:
		return m.handleConfirm(msg)
	case ModeAdd, ModeEdit:
		return m.handleFormKey(msg)
	}

	return m.handleNormalKey(msg)
}

func (m Model) handleConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	id := m.pendingDelete
	m.pendingDelete = ""
	m.mode = ModeNormal

	if msg.String() == "y" || msg.String() == "Y" {
		return m, deleteTodoCmd(m.ctx, m.manager, id)
	}
	return m, nil
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.formKeys.Cancel):
		if m.mode == ModeAdd {
			m.form.resetForAdd(m.today())
		}
		m.mode = ModeNormal
		return m, nil

	case key.Matches(msg, m.formKeys.Submit):
		return m.submitForm()

	case key.Matches(msg, m.formKeys.Next):
		m.form.next()
		return m, nil

	case key.Matches(msg, m.formKeys.Prev):
		m.form.prev()
		return m, nil

	case m.form.onCheckbox() && key.Matches(msg, m.formKeys.Toggle):
		m.form.toggleCompleted()
		return m, nil
	}

	cmd := m.form.update(msg)
	return m, cmd
}

// submitForm validates locally and only then issues the create or update
func (m Model) submitForm() (tea.Model, tea.Cmd) {
	in, err := m.form.input()
	if err != nil {
		m.openAlert(alertText(err))
		return m, nil
	}

	if m.mode == ModeEdit {
		return m, updateTodoCmd(m.ctx, m.manager, m.form.id, in.Title, in.Description, m.form.completed, in.DueDate, in.Category)
	}
	return m, addTodoCmd(m.ctx, m.manager, in.Title, in.Description, in.DueDate, in.Category)
}

// alertText shows only the user-facing part of an ErrorWithSuggestion
func alertText(err error) string {
	var sugg *utils.ErrorWithSuggestion
	if errors.As(err, &sugg) {
		return sugg.Err.Error()
	}
	return err.Error()
}

func (m *Model) openAlert(text string) {
	m.alertReturn = m.mode
	m.alert = text
	m.mode = ModeAlert
}

func (m Model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.FilterAll):
		return m.setFilter(backend.FilterAll)
	case key.Matches(msg, m.keys.FilterOpen):
		return m.setFilter(backend.FilterIncomplete)
	case key.Matches(msg, m.keys.FilterDone):
		return m.setFilter(backend.FilterCompleted)

	case key.Matches(msg, m.keys.ToggleView):
		if m.state.View == ViewList {
			return m.setView(ViewCalendar)
		}
		return m.setView(ViewList)
	case key.Matches(msg, m.keys.ListView):
		return m.setView(ViewList)
	case key.Matches(msg, m.keys.CalendarView):
		return m.setView(ViewCalendar)

	case key.Matches(msg, m.keys.Category):
		// each browse cycle starts from a fresh category list
		if m.categoryIdx == -1 {
			return m, fetchCategoriesCmd(m.ctx, m.manager)
		}
		return m.nextCategory()

	case key.Matches(msg, m.keys.Reload):
		cmd := m.reload()
		return m, cmd

	case key.Matches(msg, m.keys.Add):
		m.form.resetForAdd(m.today())
		m.mode = ModeAdd
		return m, nil

	case key.Matches(msg, m.keys.Edit):
		return m.openEdit()

	case key.Matches(msg, m.keys.Complete):
		todo := m.selectedTodo()
		if todo == nil || todo.Completed {
			return m, nil
		}
		return m, completeTodoCmd(m.ctx, m.manager, todo.ID)

	case key.Matches(msg, m.keys.Delete):
		todo := m.selectedTodo()
		if todo == nil {
			return m, nil
		}
		m.pendingDelete = todo.ID
		m.mode = ModeConfirmDelete
		return m, nil
	}

	if m.state.View == ViewCalendar {
		return m.handleCalendarKey(msg)
	}
	return m.handleListKey(msg)
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.list)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Open):
		return m.openEdit()
	}
	return m, nil
}

func (m Model) handleCalendarKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.PrevMonth):
		return m.navigateMonth(-1)
	case key.Matches(msg, m.keys.NextMonth):
		return m.navigateMonth(1)
	case key.Matches(msg, m.keys.ThisMonth):
		m.state.Date = calendar.FirstOfMonth(m.now())
		m.calCursor = m.defaultCalendarCursor()
		m.calEntry = -1
		cmd := m.reloadCalendar()
		return m, cmd
	case key.Matches(msg, m.keys.Left):
		m.moveCalendarCursor(-1)
	case key.Matches(msg, m.keys.Right):
		m.moveCalendarCursor(1)
	case key.Matches(msg, m.keys.Up):
		m.moveCalendarCursor(-7)
	case key.Matches(msg, m.keys.Down):
		m.moveCalendarCursor(7)
	case key.Matches(msg, m.keys.NextEntry):
		m.cycleEntry()
	case key.Matches(msg, m.keys.Open):
		return m.openEdit()
	}
	return m, nil
}

// setFilter switches the list filter and refetches exactly one endpoint for
// the list, plus the calendar when it is showing
func (m Model) setFilter(filter backend.Filter) (tea.Model, tea.Cmd) {
	m.state.Filter = filter
	m.state.Category = ""
	m.categoryIdx = -1
	m.cursor = 0
	cmd := m.reload()
	return m, cmd
}

func (m Model) setView(view ViewMode) (tea.Model, tea.Cmd) {
	m.state.View = view
	if view == ViewCalendar {
		m.calEntry = -1
		cmd := m.reloadCalendar()
		return m, cmd
	}
	return m, nil
}

// navigateMonth moves the displayed month. The anchor is normalized to the
// first so that stepping from the 31st never skips a month.
func (m Model) navigateMonth(delta int) (tea.Model, tea.Cmd) {
	m.state.Date = calendar.ShiftMonth(m.state.Date, delta)
	m.calCursor = m.defaultCalendarCursor()
	m.calEntry = -1
	cmd := m.reloadCalendar()
	return m, cmd
}

// nextCategory advances the category browse; past the last one it returns
// to the plain filter
func (m Model) nextCategory() (tea.Model, tea.Cmd) {
	m.categoryIdx++
	if m.categoryIdx >= len(m.categories) {
		m.categoryIdx = -1
		m.state.Category = ""
	} else {
		m.state.Category = m.categories[m.categoryIdx]
	}
	m.cursor = 0
	cmd := m.reloadList()
	return m, cmd
}

func (m Model) grid() calendar.Grid {
	return calendar.BuildMonth(m.state.Date, m.today())
}

// defaultCalendarCursor focuses today when it is in the displayed month,
// otherwise the first of the month
func (m Model) defaultCalendarCursor() string {
	today := m.today()
	first := calendar.FirstOfMonth(m.state.Date)
	if strings.HasPrefix(today, first.Format("2006-01")) {
		return today
	}
	return first.Format(backend.DateLayout)
}

func (m *Model) moveCalendarCursor(delta int) {
	cells := m.grid().Cells
	idx := -1
	for i, c := range cells {
		if c.Date == m.calCursor {
			idx = i
			break
		}
	}
	if idx < 0 {
		m.calCursor = m.defaultCalendarCursor()
		return
	}
	idx += delta
	if idx < 0 || idx >= len(cells) {
		return
	}
	m.calCursor = cells[idx].Date
	m.calEntry = -1
}

// focusedEntries returns the visible entries of the focused cell
func (m Model) focusedEntries() []calendar.Entry {
	bins := calendar.GroupByDueDate(m.calTodos)
	entries, _ := calendar.DayEntries(bins[m.calCursor], m.today(), m.perCell)
	return entries
}

func (m *Model) cycleEntry() {
	n := len(m.focusedEntries())
	if n == 0 {
		m.calEntry = -1
		return
	}
	m.calEntry++
	if m.calEntry >= n {
		m.calEntry = -1
	}
}

// selectedTodo is the row under the list cursor, or the focused calendar
// entry taken from the already fetched collection
func (m Model) selectedTodo() *backend.Todo {
	if m.state.View == ViewCalendar {
		entries := m.focusedEntries()
		if m.calEntry < 0 || m.calEntry >= len(entries) {
			return nil
		}
		todo := entries[m.calEntry].Todo
		return &todo
	}

	if m.cursor < 0 || m.cursor >= len(m.list) {
		return nil
	}
	todo := m.list[m.cursor]
	return &todo
}

func (m Model) openEdit() (tea.Model, tea.Cmd) {
	todo := m.selectedTodo()
	if todo == nil {
		return m, nil
	}
	m.form.loadForEdit(*todo, m.today())
	m.mode = ModeEdit
	return m, nil
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.list) {
		m.cursor = len(m.list) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// View renders the UI
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var s strings.Builder

	s.WriteString(m.renderHeader())
	s.WriteString("\n\n")

	switch m.mode {
	case ModeAdd:
		s.WriteString(m.renderBox(m.form.view("새 할 일")))
		s.WriteString("\n\n")
	case ModeEdit:
		s.WriteString(m.renderBox(m.form.view("할 일 수정")))
		s.WriteString("\n\n")
	case ModeAlert:
		s.WriteString(m.renderBox(m.alert + "\n\n" + m.renderer.RenderMuted("아무 키나 누르세요")))
		s.WriteString("\n\n")
	case ModeConfirmDelete:
		s.WriteString(m.renderBox(DeleteConfirmMessage + "\n\n" + m.renderer.RenderMuted("y: 삭제 • 다른 키: 취소")))
		s.WriteString("\n\n")
	}

	if m.state.View == ViewCalendar {
		s.WriteString(m.renderCalendar())
	} else {
		s.WriteString(m.renderList())
	}

	s.WriteString("\n\n")
	s.WriteString(m.renderHelp())

	return s.String()
}

func (m Model) renderHeader() string {
	parts := []string{
		m.renderer.RenderHeader("todocal"),
		m.renderer.RenderTabs(filterLabels, m.state.filterIndex()),
		m.renderer.RenderTabs(viewLabels, int(m.state.View)),
	}
	if m.state.Category != "" {
		parts = append(parts, m.renderer.RenderMuted("카테고리: "+m.state.Category))
	}
	return strings.Join(parts, "  ")
}

func (m Model) renderList() string {
	if m.listLoading {
		return m.spinner.View() + " " + m.renderer.RenderMessage(views.LoadingMessage)
	}
	tree := m.builder().BuildList(m.list)
	return m.renderer.RenderList(tree, m.cursor, m.width)
}

func (m Model) renderCalendar() string {
	if m.calLoading {
		return m.renderer.RenderHeader(calendar.MonthLabel(m.state.Date)) + "\n" +
			m.spinner.View() + " " + m.renderer.RenderMessage(calendarLoadingMessage)
	}
	b := m.builder()
	tree := b.BuildCalendar(m.grid(), calendar.GroupByDueDate(m.calTodos), m.perCell)
	sel := views.CalendarSelection{Date: m.calCursor, Entry: m.calEntry}
	return m.renderer.RenderCalendar(tree, sel, m.width, m.perCell)
}

func (m Model) renderBox(content string) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1).
		Render(content)
}

func (m Model) renderHelp() string {
	if m.mode == ModeAdd || m.mode == ModeEdit {
		return m.help.View(m.formKeys)
	}
	status := fmt.Sprintf("%d todos", len(m.list))
	return m.help.View(m.keys) + "\n" + m.renderer.RenderMuted(status)
}
