// ABOUTME: Environment variable expansion in config string fields
// ABOUTME: Replaces ${VAR} patterns with os.Getenv values; unset vars become empty

package config

import (
	"os"
	"regexp"
)

var envVarPattern = regexp.MustCompile(`\$\{(\w+)\}`)

// ResolveEnvVars expands ${VAR} patterns in the string fields of Settings,
// including chart titles and labels.
func ResolveEnvVars(s *Settings) {
	s.QuitKey = expandEnv(s.QuitKey)
	s.LogLevel = expandEnv(s.LogLevel)
	s.Chart = expandEnv(s.Chart)

	for name, spec := range s.Charts {
		spec.Title = expandEnv(spec.Title)
		spec.X.Title = expandEnv(spec.X.Title)
		spec.Y.Title = expandEnv(spec.Y.Title)
		spec.X.Labels = expandAll(spec.X.Labels)
		spec.Y.Labels = expandAll(spec.Y.Labels)
		for i := range spec.Datasets {
			spec.Datasets[i].Name = expandEnv(spec.Datasets[i].Name)
		}
		s.Charts[name] = spec
	}
}

func expandAll(ss []string) []string {
	for i, v := range ss {
		ss[i] = expandEnv(v)
	}
	return ss
}

// expandEnv replaces ${VAR} with os.Getenv(VAR). Unset vars become "".
func expandEnv(s string) string {
	if s == "" {
		return s
	}
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}
