package utils

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// TodoInput holds the raw form or flag values for creating or editing a todo
type TodoInput struct {
	Title       string `validate:"required"`
	Description string
	DueDate     string `validate:"omitempty,datetime=2006-01-02"`
	Category    string
}

// ValidateTodoInput trims the input and checks it before any network call.
// A blank title yields ErrEmptyTitle, a malformed due date ErrInvalidDate.
func ValidateTodoInput(in TodoInput) (TodoInput, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.DueDate = strings.TrimSpace(in.DueDate)
	in.Category = strings.TrimSpace(in.Category)

	if err := validate.Struct(in); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				switch fe.Field() {
				case "Title":
					return in, ErrEmptyTitle()
				case "DueDate":
					return in, ErrInvalidDate(in.DueDate)
				}
			}
		}
		return in, err
	}

	return in, nil
}

// ParseMonth parses a YYYY-MM string into the first day of that month in local time.
// An empty string yields the current month.
func ParseMonth(monthStr string, now time.Time) (time.Time, error) {
	if strings.TrimSpace(monthStr) == "" {
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), nil
	}

	parsed, err := time.ParseInLocation("2006-01", strings.TrimSpace(monthStr), now.Location())
	if err != nil {
		return time.Time{}, ErrInvalidMonth(monthStr)
	}

	return parsed, nil
}
