package app

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"todocal/backend"
	"todocal/backend/fake"
	"todocal/internal/config"
	"todocal/internal/utils"
)

func TestMain(m *testing.M) {
	utils.GetLogger().SetOutput(io.Discard)
	os.Exit(m.Run())
}

func loadTestConfig(t *testing.T) *config.Config {
	t.Helper()
	t.Setenv(config.ENV_BASE_URL, "")
	cfg, err := config.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	return cfg
}

func TestNewAppNilConfig(t *testing.T) {
	if _, err := NewApp(nil, ""); err == nil {
		t.Error("NewApp(nil) returned no error")
	}
}

func TestNewAppUsesConfig(t *testing.T) {
	cfg := loadTestConfig(t)

	a, err := NewApp(cfg, "")
	if err != nil {
		t.Fatalf("NewApp() error = %v", err)
	}

	if got, want := a.API().BaseURL(), "http://localhost:8080"+backend.TodosPath; got != want {
		t.Errorf("BaseURL() = %q, want %q", got, want)
	}
	if a.DefaultCategory() != backend.DefaultCategory {
		t.Errorf("DefaultCategory() = %q", a.DefaultCategory())
	}
	if a.Config() != cfg {
		t.Error("Config() is not the loaded config")
	}
}

func TestNewAppBaseURLOverride(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		want    string
		wantErr bool
	}{
		{"override", "http://todo.example:9000/", "http://todo.example:9000" + backend.TodosPath, false},
		{"blank keeps config", "   ", "http://localhost:8080" + backend.TodosPath, false},
		{"invalid", "not a url", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := loadTestConfig(t)

			a, err := NewApp(cfg, tt.baseURL)
			if tt.wantErr {
				var sugg *utils.ErrorWithSuggestion
				if !errors.As(err, &sugg) {
					t.Fatalf("NewApp() error = %v, want *ErrorWithSuggestion", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewApp() error = %v", err)
			}
			if got := a.API().BaseURL(); got != tt.want {
				t.Errorf("BaseURL() = %q, want %q", got, tt.want)
			}
			if cfg.BaseURL != "http://localhost:8080" {
				t.Errorf("override leaked into the loaded config: %q", cfg.BaseURL)
			}
		})
	}
}

func TestTUIOptions(t *testing.T) {
	cfg := loadTestConfig(t)
	cfg.UI.StartView = "calendar"
	cfg.UI.MaxCalendarItems = 5

	a, err := NewApp(cfg, "")
	if err != nil {
		t.Fatalf("NewApp() error = %v", err)
	}
	now := time.Date(2024, 3, 15, 9, 0, 0, 0, time.Local)
	a.SetClock(func() time.Time { return now })

	opts := a.TUIOptions(context.Background())

	if opts.Manager == nil || opts.Context == nil {
		t.Fatal("TUIOptions() left manager or context unset")
	}
	if opts.StartView != "calendar" || opts.ItemsPerCell != 5 {
		t.Errorf("StartView = %q ItemsPerCell = %d", opts.StartView, opts.ItemsPerCell)
	}
	if opts.DefaultCategory != backend.DefaultCategory {
		t.Errorf("DefaultCategory = %q", opts.DefaultCategory)
	}
	if !opts.Now().Equal(now) {
		t.Error("TUIOptions() does not carry the app clock")
	}
	if a.Today() != "2024-03-15" {
		t.Errorf("Today() = %q", a.Today())
	}
}

func TestCompletionSources(t *testing.T) {
	srv := fake.NewServer()
	defer srv.Close()
	srv.Seed(
		backend.Todo{Title: "Write report", Category: "업무"},
		backend.Todo{Title: "Buy bread"},
	)

	a, err := NewApp(loadTestConfig(t), srv.URL())
	if err != nil {
		t.Fatalf("NewApp() error = %v", err)
	}

	if got := a.AllTodos(); len(got) != 2 {
		t.Errorf("AllTodos() len = %d, want 2", len(got))
	}
	if got := a.CategoryNames(); len(got) != 2 {
		t.Errorf("CategoryNames() = %v, want two categories", got)
	}

	srv.Close()
	if got := a.AllTodos(); len(got) != 0 {
		t.Errorf("AllTodos() on a closed server = %v, want empty", got)
	}
}

func TestTreeBuilderUsesFieldFormats(t *testing.T) {
	cfg := loadTestConfig(t)
	cfg.UI.Fields = map[string]string{"description": "first_line"}

	a, err := NewApp(cfg, "")
	if err != nil {
		t.Fatalf("NewApp() error = %v", err)
	}

	row := a.TreeBuilder().BuildRow(backend.Todo{ID: "1", Title: "t", Description: "line one\nline two"})
	if row.Description != "line one" {
		t.Errorf("Description = %q, want the first line", row.Description)
	}
}
