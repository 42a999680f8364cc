// ABOUTME: Tests for config loading, merging, and resolution into runtime options
// ABOUTME: Uses temp directories for isolated file-based tests

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mauromedda/tchart/internal/chart"
	"github.com/mauromedda/tchart/internal/log"
	"github.com/mauromedda/tchart/pkg/tui/key"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func boolPtr(b bool) *bool { return &b }

func TestMerge(t *testing.T) {
	t.Parallel()

	global := &Settings{QuitKey: "esc", FrameInterval: Duration(time.Second), Mouse: boolPtr(true)}
	project := &Settings{QuitKey: "x", Mouse: boolPtr(false)}

	result := merge(global, project)

	if result.QuitKey != "x" {
		t.Errorf("QuitKey = %q, want %q", result.QuitKey, "x")
	}
	if result.FrameInterval != Duration(time.Second) {
		t.Errorf("FrameInterval = %v, want 1s from global", time.Duration(result.FrameInterval))
	}
	if result.Mouse == nil || *result.Mouse {
		t.Error("project mouse: false should override global true")
	}
}

func TestMerge_Nil(t *testing.T) {
	t.Parallel()

	if merge(nil, nil) == nil {
		t.Fatal("merge(nil, nil) should return non-nil")
	}
}

func TestMerge_Charts(t *testing.T) {
	t.Parallel()

	global := &Settings{Charts: map[string]chart.Spec{
		"cpu": {Title: "global cpu"},
		"mem": {Title: "global mem"},
	}}
	project := &Settings{Charts: map[string]chart.Spec{
		"cpu": {Title: "project cpu"},
	}}

	result := merge(global, project)

	if result.Charts["cpu"].Title != "project cpu" || result.Charts["mem"].Title != "global mem" {
		t.Errorf("charts = %+v", result.Charts)
	}
	if global.Charts["cpu"].Title != "global cpu" {
		t.Error("merge mutated the global chart map")
	}
}

func TestLoadFile_NotExist(t *testing.T) {
	t.Parallel()

	s, err := loadFile("/nonexistent/path/config.yaml")
	if !os.IsNotExist(err) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
	if s == nil {
		t.Fatal("expected zero Settings for missing file")
	}
}

func TestLoadFiles(t *testing.T) {
	t.Setenv("TCHART_TEST_TITLE", "Requests")
	dir := t.TempDir()

	global := writeFile(t, dir, "global.yaml", `
quit_key: esc
frame_interval: 33ms
log_level: debug
charts:
  reqs:
    title: "${TCHART_TEST_TITLE} per second"
    x: {title: t, bounds: [0, 10]}
    y: {title: n, labels: ["0", "100"], bounds: [0, 100]}
    datasets:
      - name: api
        marker: "*"
        points: [[1, 20], [2, 40]]
`)
	project := writeFile(t, dir, "project.yaml", `
chart: reqs
poll_interval: 5ms
mouse: false
`)

	s, err := LoadFiles(global, project)
	if err != nil {
		t.Fatalf("LoadFiles() error: %v", err)
	}

	if s.QuitKey != "esc" || s.Chart != "reqs" || s.LogLevel != "debug" {
		t.Errorf("settings = %+v", s)
	}
	if time.Duration(s.FrameInterval) != 33*time.Millisecond || time.Duration(s.PollInterval) != 5*time.Millisecond {
		t.Errorf("intervals = %v / %v", time.Duration(s.FrameInterval), time.Duration(s.PollInterval))
	}
	spec := s.Charts["reqs"]
	if spec.Title != "Requests per second" {
		t.Errorf("Title = %q, want env expanded", spec.Title)
	}
	if len(spec.Datasets) != 1 || spec.Datasets[0].Points[1] != [2]float64{2, 40} {
		t.Errorf("datasets = %+v", spec.Datasets)
	}
}

func TestLoadFiles_Errors(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "bad yaml", body: "quit_key: [", want: "parsing"},
		{name: "bad duration", body: "frame_interval: soon", want: "invalid duration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			path := writeFile(t, dir, strings.ReplaceAll(tt.name, " ", "_")+".yaml", tt.body)
			_, err := LoadFiles(filepath.Join(dir, "missing.yaml"), path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("LoadFiles() error = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestResolve_Defaults(t *testing.T) {
	t.Parallel()

	opts, err := (&Settings{}).Resolve()
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}

	if !opts.Quit.Matches(key.Key{Type: key.KeyRune, Rune: 'q'}) {
		t.Errorf("default quit = %s, want q", opts.Quit)
	}
	if opts.FrameInterval != DefaultFrameInterval || opts.PollInterval != DefaultPollInterval {
		t.Errorf("intervals = %v / %v", opts.FrameInterval, opts.PollInterval)
	}
	if !opts.Mouse || opts.LogLevel != log.LevelInfo {
		t.Errorf("mouse=%v level=%v", opts.Mouse, opts.LogLevel)
	}
	if opts.ChartName != DefaultChartName || opts.Chart.Title != "Chart 1" {
		t.Errorf("chart = %q / %q", opts.ChartName, opts.Chart.Title)
	}
}

func TestResolve_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		s    Settings
		want string
	}{
		{name: "quit key", s: Settings{QuitKey: "hyper+x"}, want: "quit_key"},
		{name: "negative interval", s: Settings{FrameInterval: Duration(-time.Second)}, want: "negative"},
		{name: "log level", s: Settings{LogLevel: "chatty"}, want: "log_level"},
		{name: "chart", s: Settings{Chart: "nope"}, want: "unknown chart"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := tt.s.Resolve()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Resolve() error = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestPaths(t *testing.T) {
	t.Parallel()

	if got := ProjectConfigFile("/work"); got != filepath.Join("/work", ".tchart", "config.yaml") {
		t.Errorf("ProjectConfigFile = %q", got)
	}
	if !strings.HasSuffix(GlobalConfigFile(), filepath.Join(".tchart", "config.yaml")) {
		t.Errorf("GlobalConfigFile = %q", GlobalConfigFile())
	}
}
