package config

import (
	"sort"

	"github.com/agnivade/levenshtein"
)

var Presets = map[string]*Config{
	"earth": DefaultConfig(),
	"earth-untilted": func() *Config {
		c := DefaultConfig()
		c.TiltDeg = 0
		return c
	}(),
	"earth-wide": func() *Config {
		c := DefaultConfig()
		c.XMax, c.YMax = 100, 100
		c.NX, c.NY = 128, 128
		c.Render.Output = "earths_magnetic_field_wide.png"
		return c
	}(),
	"earth-hires": func() *Config {
		c := DefaultConfig()
		c.NX, c.NY = 256, 256
		c.Render.Density = 3
		c.Render.Output = "earths_magnetic_field_hires.png"
		return c
	}(),
	"earth-draft": func() *Config {
		c := DefaultConfig()
		c.NX, c.NY = 32, 32
		c.Render.Density = 1
		c.Render.DPI = 72
		c.Render.Output = "earths_magnetic_field_draft.png"
		return c
	}(),
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

// ListPresets returns the preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SuggestPreset returns the preset name closest to name, or "" when nothing
// is within a third of its length in edits.
func SuggestPreset(name string) string {
	best, bestDist := "", len(name)/3+1
	for _, p := range ListPresets() {
		if d := levenshtein.ComputeDistance(name, p); d < bestDist {
			best, bestDist = p, d
		}
	}
	return best
}
