package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"todocal/backend"
	"todocal/internal/calendar"
	"todocal/internal/config"
	"todocal/internal/tui"
	"todocal/internal/utils"
	"todocal/internal/views"
	"todocal/internal/views/formatters"
)

// App holds the application state shared by every command
type App struct {
	config   *config.Config
	api      *backend.APIClient
	service  *backend.TodoService
	renderer *views.Renderer
	now      func() time.Time
}

// NewApp creates the backend client for cfg. A non-empty baseURL replaces the
// configured one and the result is validated again.
func NewApp(cfg *config.Config, baseURL string) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("no configuration loaded")
	}

	if baseURL = strings.TrimSpace(baseURL); baseURL != "" {
		override := *cfg
		override.BaseURL = baseURL
		if err := override.Validate(); err != nil {
			return nil, err
		}
		cfg = &override
	}

	utils.Debugf("using backend %s (timeout %s)", cfg.BaseURL, cfg.RequestTimeout)

	api := backend.NewAPIClient(cfg.BaseURL, cfg.RequestTimeout)
	return &App{
		config:   cfg,
		api:      api,
		service:  backend.NewTodoService(api, cfg.DefaultCategory),
		renderer: views.NewRenderer(cfg.UI.Theme),
		now:      time.Now,
	}, nil
}

// Config returns the effective configuration
func (a *App) Config() *config.Config {
	return a.config
}

// API returns the error-reporting client used by one-shot commands
func (a *App) API() *backend.APIClient {
	return a.api
}

// Service returns the degrading todo manager the interactive client works against
func (a *App) Service() *backend.TodoService {
	return a.service
}

// Renderer returns the renderer for the configured theme
func (a *App) Renderer() *views.Renderer {
	return a.renderer
}

// SetClock replaces the time source, for tests
func (a *App) SetClock(now func() time.Time) {
	a.now = now
}

// Now returns the current time from the app clock
func (a *App) Now() time.Time {
	return a.now()
}

// Today returns the local calendar date
func (a *App) Today() string {
	return calendar.Today(a.now())
}

// TreeBuilder returns a builder using the configured date format and field formats
func (a *App) TreeBuilder() *views.TreeBuilder {
	ctx := formatters.NewFormatContext(a.config.GetDateFormat(), a.now())
	return views.NewTreeBuilder(ctx, views.FieldFormats(a.config.UI.Fields))
}

// DefaultCategory returns the category used when none is given
func (a *App) DefaultCategory() string {
	return a.service.DefaultCategory()
}

// TUIOptions builds the interactive client options from the configuration
func (a *App) TUIOptions(ctx context.Context) tui.Options {
	return tui.Options{
		Context:         ctx,
		Manager:         a.service,
		Theme:           a.config.UI.Theme,
		StartView:       a.config.UI.StartView,
		StartFilter:     a.config.UI.StartFilter,
		ItemsPerCell:    a.config.ItemsPerCell(),
		DefaultCategory: a.service.DefaultCategory(),
		DateFormat:      a.config.GetDateFormat(),
		FieldFormats:    a.config.UI.Fields,
		Now:             a.now,
	}
}

// CategoryNames lists categories for shell completion. Errors yield no candidates.
func (a *App) CategoryNames() []string {
	return a.service.GetAllCategories(context.Background())
}

// AllTodos lists todos for shell completion. Errors yield no candidates.
func (a *App) AllTodos() []backend.Todo {
	return a.service.GetAllTodos(context.Background())
}
