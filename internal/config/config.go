// ABOUTME: Settings loading with global + project YAML config merge
// ABOUTME: Resolve turns merged settings into validated runtime options

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mauromedda/tchart/internal/chart"
	"github.com/mauromedda/tchart/internal/log"
	"github.com/mauromedda/tchart/pkg/tui/key"
)

// Defaults applied by Resolve to unset fields.
const (
	DefaultQuitKey       = "q"
	DefaultFrameInterval = 16 * time.Millisecond
	DefaultPollInterval  = 10 * time.Millisecond
	DefaultChartName     = "default"
)

// Duration is a time.Duration written as "16ms" or "1s" in YAML.
type Duration time.Duration

// UnmarshalYAML parses a Go duration string.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*d = Duration(v)
	return nil
}

// Settings holds the merged configuration.
type Settings struct {
	QuitKey       string                `yaml:"quit_key,omitempty"`
	FrameInterval Duration              `yaml:"frame_interval,omitempty"`
	PollInterval  Duration              `yaml:"poll_interval,omitempty"`
	Mouse         *bool                 `yaml:"mouse,omitempty"`
	LogLevel      string                `yaml:"log_level,omitempty"`
	Chart         string                `yaml:"chart,omitempty"`
	Charts        map[string]chart.Spec `yaml:"charts,omitempty"`
}

// Options are the validated values the session runs with.
type Options struct {
	Quit          key.Binding
	FrameInterval time.Duration
	PollInterval  time.Duration
	Mouse         bool
	LogLevel      slog.Level
	ChartName     string
	Chart         chart.Spec
}

// Load reads and merges global and project-local settings.
// Project settings override global settings.
func Load(projectRoot string) (*Settings, error) {
	return LoadFiles(GlobalConfigFile(), ProjectConfigFile(projectRoot))
}

// LoadFiles merges the settings at projectPath over those at globalPath.
// Missing files are skipped.
func LoadFiles(globalPath, projectPath string) (*Settings, error) {
	global, err := loadFile(globalPath)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading global config: %w", err)
	}

	project, err := loadFile(projectPath)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	merged := merge(global, project)
	ResolveEnvVars(merged)
	log.Debug("config: loaded %s and %s", globalPath, projectPath)
	return merged, nil
}

// loadFile reads Settings from a YAML file. Returns zero Settings if the
// file does not exist.
func loadFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return &Settings{}, err
	}
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &s, nil
}

// merge overlays project settings onto global settings.
// Non-zero project values override global values.
func merge(global, project *Settings) *Settings {
	if global == nil {
		global = &Settings{}
	}
	if project == nil {
		return global
	}

	result := *global

	if project.QuitKey != "" {
		result.QuitKey = project.QuitKey
	}
	if project.FrameInterval != 0 {
		result.FrameInterval = project.FrameInterval
	}
	if project.PollInterval != 0 {
		result.PollInterval = project.PollInterval
	}
	if project.Mouse != nil {
		result.Mouse = project.Mouse
	}
	if project.LogLevel != "" {
		result.LogLevel = project.LogLevel
	}
	if project.Chart != "" {
		result.Chart = project.Chart
	}

	// Merge chart maps; a project chart replaces a global one of the same name.
	if len(project.Charts) > 0 {
		charts := make(map[string]chart.Spec, len(global.Charts)+len(project.Charts))
		for k, v := range global.Charts {
			charts[k] = v
		}
		for k, v := range project.Charts {
			charts[k] = v
		}
		result.Charts = charts
	}

	return &result
}

// Resolve applies defaults and validates s.
func (s *Settings) Resolve() (*Options, error) {
	opts := &Options{
		FrameInterval: DefaultFrameInterval,
		PollInterval:  DefaultPollInterval,
		Mouse:         true,
	}

	quit := s.QuitKey
	if quit == "" {
		quit = DefaultQuitKey
	}
	b, err := key.ParseBinding(quit)
	if err != nil {
		return nil, fmt.Errorf("quit_key: %w", err)
	}
	opts.Quit = b

	if s.FrameInterval < 0 || s.PollInterval < 0 {
		return nil, errors.New("frame_interval and poll_interval must not be negative")
	}
	if s.FrameInterval > 0 {
		opts.FrameInterval = time.Duration(s.FrameInterval)
	}
	if s.PollInterval > 0 {
		opts.PollInterval = time.Duration(s.PollInterval)
	}
	if s.Mouse != nil {
		opts.Mouse = *s.Mouse
	}

	if opts.LogLevel, err = log.ParseLevel(s.LogLevel); err != nil {
		return nil, fmt.Errorf("log_level: %w", err)
	}

	opts.ChartName, opts.Chart, err = SelectChart(s.Charts, s.Chart)
	if err != nil {
		return nil, err
	}
	return opts, nil
}
