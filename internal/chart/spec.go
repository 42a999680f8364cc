// ABOUTME: Chart description handed to the render callback: title, two axes, and point datasets
// ABOUTME: DefaultSpec reproduces the stock "Chart 1" line chart

package chart

import (
	"errors"
	"fmt"
	"math"
)

// DefaultMarker is drawn for points of a dataset without a marker.
const DefaultMarker = "•"

// ErrEmptyRange is returned for an axis whose bounds are equal.
var ErrEmptyRange = errors.New("axis bounds span an empty range")

// Axis describes one chart axis. Bounds are [min, max] in data units.
type Axis struct {
	Title  string     `yaml:"title"`
	Labels []string   `yaml:"labels"`
	Bounds [2]float64 `yaml:"bounds"`
}

// Dataset is one series of (x, y) points.
type Dataset struct {
	Name   string       `yaml:"name"`
	Marker string       `yaml:"marker"`
	Color  string       `yaml:"color"`
	Points [][2]float64 `yaml:"points"`
}

// Spec is everything the chart renderer draws.
type Spec struct {
	Title    string    `yaml:"title"`
	X        Axis      `yaml:"x"`
	Y        Axis      `yaml:"y"`
	Datasets []Dataset `yaml:"datasets"`
}

// DefaultSpec returns the built-in chart.
func DefaultSpec() Spec {
	return Spec{
		Title: "Chart 1",
		X: Axis{
			Title:  "X Axis",
			Labels: []string{"foo", "bar", "baz"},
			Bounds: [2]float64{0, 2},
		},
		Y: Axis{
			Title:  "Y Axis",
			Labels: []string{"-20", "0", "20"},
			Bounds: [2]float64{-20, 20},
		},
		Datasets: []Dataset{{
			Points: [][2]float64{{0, 5}, {1, 6}, {1.5, 6.434}},
		}},
	}
}

// Normalize returns a copy of s with inverted axis bounds swapped.
func (s Spec) Normalize() Spec {
	s.X.Bounds = ordered(s.X.Bounds)
	s.Y.Bounds = ordered(s.Y.Bounds)
	return s
}

func ordered(b [2]float64) [2]float64 {
	if b[0] > b[1] {
		return [2]float64{b[1], b[0]}
	}
	return b
}

// Validate reports axes that cannot be drawn.
func (s Spec) Validate() error {
	for _, a := range []struct {
		name string
		axis Axis
	}{{"x", s.X}, {"y", s.Y}} {
		lo, hi := a.axis.Bounds[0], a.axis.Bounds[1]
		if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
			return fmt.Errorf("%s axis: bounds must be finite", a.name)
		}
		if lo == hi {
			return fmt.Errorf("%s axis: %w", a.name, ErrEmptyRange)
		}
	}
	return nil
}
