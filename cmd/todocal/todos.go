package main

import (
	"errors"
	"fmt"
	"io"
	"net/url"

	"github.com/spf13/cobra"

	"todocal/backend"
	"todocal/internal/app"
	"todocal/internal/calendar"
	"todocal/internal/cli"
	"todocal/internal/tui"
	"todocal/internal/utils"
)

// nonTerminalWidth is used when output is piped
const nonTerminalWidth = 100

func outputWidth(w io.Writer) int {
	if cli.IsTerminal(w) {
		return cli.GetTerminalWidth()
	}
	return nonTerminalWidth
}

// writeTodos prints todos as list rows, JSON or YAML
func writeTodos(w io.Writer, a *app.App, todos []backend.Todo, format string) error {
	switch format {
	case utils.FormatJSON:
		return utils.WriteJSON(w, todos)
	case utils.FormatYAML:
		return utils.WriteYAML(w, todos)
	default:
		cli.ShowList(w, a.Renderer(), a.TreeBuilder(), todos, outputWidth(w))
		return nil
	}
}

func newListCmd(r *rootOptions) *cobra.Command {
	var filterName, category, format string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print todos",
		Long: `Print todos from the backend in the order it returns them.

Examples:
  todocal list                        # All todos
  todocal list --filter incomplete    # Open todos only
  todocal list --category 업무        # One category
  todocal list --format json          # Machine readable`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := utils.ValidateFormat(format); err != nil {
				return err
			}
			filter, err := backend.ParseFilter(filterName)
			if err != nil {
				return utils.WrapWithSuggestion(err, "Use --filter all, incomplete or completed")
			}

			a, err := r.loadApp()
			if err != nil {
				return err
			}

			operation, endpoint := "list", filter.Endpoint()
			if category != "" {
				operation, endpoint = "list by category", backend.CategoryPath(category)
			}
			todos, err := a.API().ListTodos(cmd.Context(), operation, endpoint)
			if err != nil {
				return explainError(err, a, "")
			}
			return writeTodos(cmd.OutOrStdout(), a, todos, format)
		},
	}

	cmd.Flags().StringVarP(&filterName, "filter", "f", string(backend.FilterAll), "all, incomplete or completed")
	cmd.Flags().StringVarP(&category, "category", "c", "", "only todos of this category")
	cmd.Flags().StringVarP(&format, "format", "o", utils.FormatText, "output format: text, json, yaml")
	_ = cmd.RegisterFlagCompletionFunc("category", func(c *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return r.completionCategories()(c, nil, toComplete)
	})

	return cmd
}

func newShowCmd(r *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:               "show <id>",
		Short:             "Print a single todo",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: r.completionTodos(false),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := utils.ValidateFormat(format); err != nil {
				return err
			}
			a, err := r.loadApp()
			if err != nil {
				return err
			}

			todo, err := a.API().GetTodo(cmd.Context(), args[0])
			if err != nil {
				return explainError(err, a, args[0])
			}
			if format == utils.FormatText {
				return writeTodos(cmd.OutOrStdout(), a, []backend.Todo{*todo}, format)
			}
			if format == utils.FormatJSON {
				return utils.WriteJSON(cmd.OutOrStdout(), todo)
			}
			return utils.WriteYAML(cmd.OutOrStdout(), todo)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "o", utils.FormatText, "output format: text, json, yaml")
	return cmd
}

func newCategoriesCmd(r *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Print the categories in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := utils.ValidateFormat(format); err != nil {
				return err
			}
			a, err := r.loadApp()
			if err != nil {
				return err
			}

			categories, err := a.API().GetCategories(cmd.Context())
			if err != nil {
				return explainError(err, a, "")
			}

			out := cmd.OutOrStdout()
			switch format {
			case utils.FormatJSON:
				return utils.WriteJSON(out, categories)
			case utils.FormatYAML:
				return utils.WriteYAML(out, categories)
			}

			// Counts are a convenience; a failed fetch just hides them
			todos := a.Service().GetAllTodos(cmd.Context())
			cli.ShowCategories(out, categories, todos, outputWidth(out), cli.IsTerminal(out))
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "o", utils.FormatText, "output format: text, json, yaml")
	return cmd
}

func newCalendarCmd(r *rootOptions) *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Print a month calendar of due todos",
		Long: `Print six weeks around a month with the todos due on each day.

Each day shows at most ui.max_calendar_items todos, incomplete first,
followed by "+N개 더" when more are due.

Examples:
  todocal calendar                 # This month
  todocal calendar --month 2024-03`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := r.loadApp()
			if err != nil {
				return err
			}

			anchor, err := utils.ParseMonth(month, a.Now())
			if err != nil {
				return err
			}

			todos, err := a.API().ListTodos(cmd.Context(), "calendar", backend.FilterAll.Endpoint())
			if err != nil {
				return explainError(err, a, "")
			}

			out := cmd.OutOrStdout()
			grid := calendar.BuildMonth(anchor, a.Today())
			cli.ShowCalendar(out, a.Renderer(), a.TreeBuilder(), grid, todos, outputWidth(out), a.Config().ItemsPerCell())
			return nil
		},
	}

	cmd.Flags().StringVarP(&month, "month", "m", "", "month to show as YYYY-MM (default: this month)")
	return cmd
}

func newAddCmd(r *rootOptions) *cobra.Command {
	var description, due, category string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a todo",
		Long: `Create a todo. The category defaults to the configured default category.

Examples:
  todocal add "Buy milk"
  todocal add "Write report" -d "Q3 numbers" --due 2024-03-20 --category 업무`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := utils.ValidateTodoInput(utils.TodoInput{
				Title:       args[0],
				Description: description,
				DueDate:     due,
				Category:    category,
			})
			if err != nil {
				return err
			}

			a, err := r.loadApp()
			if err != nil {
				return err
			}
			if in.Category == "" {
				in.Category = a.DefaultCategory()
			}

			todo, err := a.API().CreateTodo(cmd.Context(), backend.CreateTodoRequest{
				Title:       in.Title,
				Description: in.Description,
				DueDate:     backend.DueDatePtr(in.DueDate),
				Category:    in.Category,
			})
			if err != nil {
				return explainError(err, a, "")
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created todo %s\n", todo.ID)
			return writeTodos(cmd.OutOrStdout(), a, []backend.Todo{*todo}, utils.FormatText)
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "todo description")
	cmd.Flags().StringVar(&due, "due", "", "due date as YYYY-MM-DD")
	cmd.Flags().StringVarP(&category, "category", "c", "", "category (default: config default_category)")
	return cmd
}

func newEditCmd(r *rootOptions) *cobra.Command {
	var title, description, due, category string
	var completed bool

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a todo",
		Long: `Change the fields given as flags and keep the others.

Examples:
  todocal edit <id> --title "Buy oat milk"
  todocal edit <id> --due ""          # Remove the due date
  todocal edit <id> --completed=false # Reopen`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: r.completionTodos(false),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := r.loadApp()
			if err != nil {
				return err
			}

			id := args[0]
			current, err := a.API().GetTodo(cmd.Context(), id)
			if err != nil {
				return explainError(err, a, id)
			}

			in := utils.TodoInput{
				Title:       current.Title,
				Description: current.Description,
				DueDate:     current.DueDate,
				Category:    current.CategoryOrDefault(),
			}
			flags := cmd.Flags()
			if flags.Changed("title") {
				in.Title = title
			}
			if flags.Changed("description") {
				in.Description = description
			}
			if flags.Changed("due") {
				in.DueDate = due
			}
			if flags.Changed("category") {
				in.Category = category
			}
			isCompleted := current.Completed
			if flags.Changed("completed") {
				isCompleted = completed
			}

			in, err = utils.ValidateTodoInput(in)
			if err != nil {
				return err
			}
			if in.Category == "" {
				in.Category = a.DefaultCategory()
			}

			todo, err := a.API().UpdateTodo(cmd.Context(), id, backend.UpdateTodoRequest{
				Title:       in.Title,
				Description: in.Description,
				Completed:   isCompleted,
				DueDate:     backend.DueDatePtr(in.DueDate),
				Category:    in.Category,
			})
			if err != nil {
				return explainError(err, a, id)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Updated todo %s\n", todo.ID)
			return writeTodos(cmd.OutOrStdout(), a, []backend.Todo{*todo}, utils.FormatText)
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "new title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "new description")
	cmd.Flags().StringVar(&due, "due", "", "new due date as YYYY-MM-DD, empty to remove")
	cmd.Flags().StringVarP(&category, "category", "c", "", "new category")
	cmd.Flags().BoolVar(&completed, "completed", false, "set the completed state")
	return cmd
}

func newCompleteCmd(r *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:               "complete <id>",
		Short:             "Mark a todo completed",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: r.completionTodos(true),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := r.loadApp()
			if err != nil {
				return err
			}

			todo, err := a.API().CompleteTodo(cmd.Context(), args[0])
			if err != nil {
				return explainError(err, a, args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Completed todo %s: %s\n", todo.ID, todo.Title)
			return nil
		},
	}
}

func newDeleteCmd(r *rootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:               "delete <id>",
		Short:             "Delete a todo",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: r.completionTodos(false),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := r.loadApp()
			if err != nil {
				return err
			}

			id := args[0]
			out := cmd.OutOrStdout()
			if !force && !utils.PromptYesNoFrom(r.in, out, tui.DeleteConfirmMessage) {
				fmt.Fprintln(out, "Cancelled")
				return nil
			}

			if err := a.API().DeleteTodo(cmd.Context(), id); err != nil {
				return explainError(err, a, id)
			}
			fmt.Fprintf(out, "Deleted todo %s\n", id)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip the confirmation")
	return cmd
}

// explainError adds a hint to backend failures the user can act on: an
// unknown id, a backend that cannot be reached or a failing server
func explainError(err error, a *app.App, id string) error {
	var be *backend.BackendError
	if !errors.As(err, &be) {
		return err
	}

	var urlErr *url.Error
	switch {
	case be.IsNotFound() && id != "":
		return utils.ErrTodoNotFound(id)
	case be.IsUnreachable() && errors.As(err, &urlErr):
		return utils.ErrBackendOffline(a.Config().BaseURL, urlErr.Err.Error())
	case be.IsServerError():
		return utils.ErrServerFailure(a.Config().BaseURL, err)
	}
	return err
}
