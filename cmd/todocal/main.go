package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"todocal/backend"
	"todocal/internal/app"
	"todocal/internal/cli"
	"todocal/internal/config"
	"todocal/internal/tui"
	"todocal/internal/utils"
)

// rootOptions carries the persistent flags and the lazily built app
type rootOptions struct {
	configPath string
	baseURL    string
	envFile    string
	verbose    bool

	in  io.Reader
	app *app.App
}

// loadApp reads the configuration and builds the app once per invocation
func (r *rootOptions) loadApp() (*app.App, error) {
	if r.app != nil {
		return r.app, nil
	}

	config.SetCustomConfigPath(r.configPath)
	path, err := config.GetConfigPath()
	if err != nil {
		return nil, err
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, err
	}

	a, err := app.NewApp(cfg, r.baseURL)
	if err != nil {
		return nil, err
	}
	r.app = a
	return a, nil
}

// completionTodos feeds id completion; a broken config or backend just yields nothing
func (r *rootOptions) completionTodos(onlyOpen bool) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return cli.TodoIDCompletion(func() []backend.Todo {
		a, err := r.loadApp()
		if err != nil {
			return nil
		}
		return a.AllTodos()
	}, onlyOpen)
}

func (r *rootOptions) completionCategories() func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return cli.CategoryCompletion(func() []string {
		a, err := r.loadApp()
		if err != nil {
			return nil
		}
		return a.CategoryNames()
	})
}

func newRootCmd(in io.Reader) *cobra.Command {
	r := &rootOptions{in: in}

	rootCmd := &cobra.Command{
		Use:   "todocal",
		Short: "Todo list and calendar client",
		Long: `todocal talks to a todo REST backend and shows your todos as a
filterable list or as a month calendar.

Run without a subcommand to start the interactive client.

Examples:
  todocal                                  # Interactive list and calendar
  todocal list --filter incomplete         # Print open todos
  todocal calendar --month 2024-03         # Print a month
  todocal add "Buy milk" --due 2024-03-20  # Create a todo
  todocal complete <id>                    # Mark a todo completed`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			utils.SetVerboseMode(r.verbose)
			return config.LoadDotEnv(r.envFile)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, r)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&r.configPath, "config", "", "config file or directory (default: user config dir)")
	flags.StringVar(&r.baseURL, "base-url", "", "backend base URL, overrides the config")
	flags.StringVar(&r.envFile, "env-file", ".env", "dotenv file loaded before the config")
	flags.BoolVarP(&r.verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(
		newTUICmd(r),
		newListCmd(r),
		newShowCmd(r),
		newCategoriesCmd(r),
		newCalendarCmd(r),
		newAddCmd(r),
		newEditCmd(r),
		newCompleteCmd(r),
		newDeleteCmd(r),
		newConfigCmd(r),
	)

	return rootCmd
}

func newTUICmd(r *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Start the interactive client",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, r)
		},
	}
}

// runTUI moves logging to a file so it does not draw over the screen
func runTUI(cmd *cobra.Command, r *rootOptions) error {
	a, err := r.loadApp()
	if err != nil {
		return err
	}

	logPath := a.Config().GetLogFile()
	if err := utils.EnsureParentDir(logPath, config.CONFIG_DIR_PERM); err != nil {
		return fmt.Errorf("failed to create log dir: %w", err)
	}
	logFile, err := utils.LogToFile(logPath)
	if err != nil {
		return err
	}
	defer func() {
		utils.GetLogger().SetOutput(os.Stderr)
		_ = logFile.Close()
	}()

	return utils.LogOperationf("interactive session against %s", func() error {
		return tui.Run(a.TUIOptions(cmd.Context()))
	}, a.API().BaseURL())
}

func main() {
	if err := newRootCmd(os.Stdin).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
