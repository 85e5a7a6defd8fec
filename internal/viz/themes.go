package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the colour scheme of the terminal preview.
type Theme struct {
	Name         string
	Streamline   lipgloss.Color
	Planet       lipgloss.Color
	RotationAxis lipgloss.Color
	MagneticAxis lipgloss.Color
	Muted        lipgloss.Color
	Border       lipgloss.Color
}

var (
	// ThemeFigure mirrors the colours of the rendered image.
	ThemeFigure = Theme{
		Name:         "figure",
		Streamline:   lipgloss.Color("#00ffff"), // aqua
		Planet:       lipgloss.Color("#a9a9a9"), // darkgray
		RotationAxis: lipgloss.Color("#ffc0cb"), // pink
		MagneticAxis: lipgloss.Color("#bfbf00"),
		Muted:        lipgloss.Color("#333333"),
		Border:       lipgloss.Color("#444466"),
	}

	ThemeRetroGreen = Theme{
		Name:         "retro",
		Streamline:   lipgloss.Color("#00cc00"),
		Planet:       lipgloss.Color("#88ff88"),
		RotationAxis: lipgloss.Color("#00ff00"),
		MagneticAxis: lipgloss.Color("#ffff00"),
		Muted:        lipgloss.Color("#005500"),
		Border:       lipgloss.Color("#00cc00"),
	}

	ThemeMinimal = Theme{
		Name:         "minimal",
		Streamline:   lipgloss.Color("#cccccc"),
		Planet:       lipgloss.Color("#ffffff"),
		RotationAxis: lipgloss.Color("#0088ff"),
		MagneticAxis: lipgloss.Color("#ffaa00"),
		Muted:        lipgloss.Color("#444444"),
		Border:       lipgloss.Color("#888888"),
	}

	Themes = []Theme{
		ThemeFigure,
		ThemeRetroGreen,
		ThemeMinimal,
	}
)

// GetTheme returns a theme by name, falling back to ThemeFigure.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeFigure
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
