package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"todocal/backend"
	"todocal/internal/utils"
)

const (
	fieldTitle = iota
	fieldDescription
	fieldDueDate
	fieldCategory
	fieldCount
)

var fieldLabels = [fieldCount]string{"제목", "설명", "마감일", "카테고리"}

// todoForm backs both the add form and the edit modal. The edit modal also
// carries the completed checkbox, which takes the focus slot after the inputs.
type todoForm struct {
	inputs    [fieldCount]textinput.Model
	completed bool
	withCheck bool
	focus     int
	id        string
}

func newTodoForm() todoForm {
	var f todoForm
	placeholders := [fieldCount]string{"할 일 제목", "설명 (선택)", "YYYY-MM-DD", backend.DefaultCategory}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.Prompt = ""
		ti.Width = 40
		ti.Cursor.SetMode(cursor.CursorStatic)
		f.inputs[i] = ti
	}
	f.inputs[fieldDueDate].CharLimit = len(backend.DateLayout)
	return f
}

// resetForAdd clears the form and pre-fills the due date with today
func (f *todoForm) resetForAdd(today string) {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
	}
	f.inputs[fieldDueDate].SetValue(today)
	f.completed = false
	f.withCheck = false
	f.id = ""
	f.setFocus(fieldTitle)
}

// loadForEdit pre-fills the form from todo. A missing due date shows today
// in the input only; the todo itself is not touched.
func (f *todoForm) loadForEdit(todo backend.Todo, today string) {
	f.inputs[fieldTitle].SetValue(todo.Title)
	f.inputs[fieldDescription].SetValue(todo.Description)
	due := todo.DueDate
	if due == "" {
		due = today
	}
	f.inputs[fieldDueDate].SetValue(due)
	f.inputs[fieldCategory].SetValue(todo.CategoryOrDefault())
	f.completed = todo.Completed
	f.withCheck = true
	f.id = todo.ID
	f.setFocus(fieldTitle)
}

func (f *todoForm) slots() int {
	if f.withCheck {
		return fieldCount + 1
	}
	return fieldCount
}

func (f *todoForm) onCheckbox() bool {
	return f.withCheck && f.focus == fieldCount
}

func (f *todoForm) setFocus(i int) {
	f.focus = i
	for j := range f.inputs {
		if j == i {
			f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
}

func (f *todoForm) next() {
	f.setFocus((f.focus + 1) % f.slots())
}

func (f *todoForm) prev() {
	f.setFocus((f.focus - 1 + f.slots()) % f.slots())
}

func (f *todoForm) toggleCompleted() {
	f.completed = !f.completed
}

// update forwards a message to the focused input
func (f *todoForm) update(msg tea.Msg) tea.Cmd {
	if f.focus >= fieldCount {
		return nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

// input returns the trimmed and validated form values
func (f *todoForm) input() (utils.TodoInput, error) {
	return utils.ValidateTodoInput(utils.TodoInput{
		Title:       f.inputs[fieldTitle].Value(),
		Description: f.inputs[fieldDescription].Value(),
		DueDate:     f.inputs[fieldDueDate].Value(),
		Category:    f.inputs[fieldCategory].Value(),
	})
}

func (f *todoForm) view(heading string) string {
	var b strings.Builder
	b.WriteString(heading)
	b.WriteString("\n")
	for i := range f.inputs {
		marker := "  "
		if f.focus == i {
			marker = "> "
		}
		b.WriteString(marker)
		b.WriteString(fieldLabels[i])
		b.WriteString(": ")
		b.WriteString(f.inputs[i].View())
		b.WriteString("\n")
	}
	if f.withCheck {
		marker := "  "
		if f.onCheckbox() {
			marker = "> "
		}
		box := "[ ]"
		if f.completed {
			box = "[x]"
		}
		b.WriteString(marker + box + " 완료\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
