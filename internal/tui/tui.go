package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive client and blocks until the user quits
func Run(opts Options) error {
	programOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Context != nil {
		programOpts = append(programOpts, tea.WithContext(opts.Context))
	}

	p := tea.NewProgram(New(opts), programOpts...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run todo client: %w", err)
	}
	return nil
}
