// ABOUTME: Chart selection by name with Unicode normalization and "did you mean" suggestions
// ABOUTME: The built-in chart is available as "default" unless a config file replaces it

package config

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/mauromedda/tchart/internal/chart"
	"github.com/mauromedda/tchart/pkg/tui/fuzzy"
)

// ErrUnknownChart is returned when the selected chart is not configured.
var ErrUnknownChart = errors.New("unknown chart")

const maxSuggestions = 3

// SelectChart returns the chart called name from charts, falling back to
// the built-in chart. Names are compared after NFC normalization. The
// returned spec has its text NFC-normalized, inverted bounds swapped, and
// has been validated.
func SelectChart(charts map[string]chart.Spec, name string) (string, chart.Spec, error) {
	all := map[string]chart.Spec{DefaultChartName: chart.DefaultSpec()}
	for k, v := range charts {
		all[norm.NFC.String(k)] = v
	}

	if name == "" {
		name = DefaultChartName
	}
	name = norm.NFC.String(name)

	spec, ok := all[name]
	if !ok {
		names := slices.Sorted(maps.Keys(all))
		err := fmt.Errorf("%w %q", ErrUnknownChart, name)
		if s := fuzzy.Suggest(name, names, maxSuggestions); len(s) > 0 {
			err = fmt.Errorf("%w (did you mean %s?)", err, quoteAll(s))
		}
		return "", chart.Spec{}, err
	}

	spec = normalizeText(spec).Normalize()
	if err := spec.Validate(); err != nil {
		return "", chart.Spec{}, fmt.Errorf("chart %q: %w", name, err)
	}
	return name, spec, nil
}

func quoteAll(ss []string) string {
	q := make([]string, len(ss))
	for i, s := range ss {
		q[i] = fmt.Sprintf("%q", s)
	}
	return strings.Join(q, " or ")
}

// normalizeText returns a copy of s with every label in NFC form.
func normalizeText(s chart.Spec) chart.Spec {
	s.Title = norm.NFC.String(s.Title)
	s.X = normalizeAxis(s.X)
	s.Y = normalizeAxis(s.Y)

	sets := make([]chart.Dataset, len(s.Datasets))
	for i, ds := range s.Datasets {
		ds.Name = norm.NFC.String(ds.Name)
		ds.Marker = norm.NFC.String(ds.Marker)
		sets[i] = ds
	}
	s.Datasets = sets
	return s
}

func normalizeAxis(a chart.Axis) chart.Axis {
	a.Title = norm.NFC.String(a.Title)
	labels := make([]string, len(a.Labels))
	for i, l := range a.Labels {
		labels[i] = norm.NFC.String(l)
	}
	a.Labels = labels
	return a
}
