package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"todocal/backend"
)

// CategoryCompletion completes the first argument with known category names
func CategoryCompletion(categories func() []string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}

		var completions []string
		for _, c := range categories() {
			if strings.HasPrefix(strings.ToLower(c), strings.ToLower(toComplete)) {
				completions = append(completions, c)
			}
		}
		return completions, cobra.ShellCompDirectiveNoFileComp
	}
}

// TodoIDCompletion completes a todo id, showing the title as the description.
// onlyOpen limits the candidates to incomplete todos.
func TodoIDCompletion(todos func() []backend.Todo, onlyOpen bool) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		// Only the id is completed; later arguments are free text
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}

		var completions []string
		for _, t := range todos() {
			if onlyOpen && t.Completed {
				continue
			}
			if strings.HasPrefix(t.ID, toComplete) {
				completions = append(completions, t.ID+"\t"+t.Title)
			}
		}
		return completions, cobra.ShellCompDirectiveNoFileComp
	}
}
