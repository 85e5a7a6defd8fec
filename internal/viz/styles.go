package viz

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Stats renders name/value pairs as an aligned block, names sorted.
func Stats(values map[string]float64, t Theme) string {
	names := make([]string, 0, len(values))
	width := 0
	for name := range values {
		names = append(names, name)
		width = max(width, len(name))
	}
	sort.Strings(names)

	label := lipgloss.NewStyle().Foreground(t.Muted).Width(width + 2)
	value := lipgloss.NewStyle().Foreground(t.Streamline).Bold(true)

	var sb strings.Builder
	for i, name := range names {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(label.Render(name))
		sb.WriteString(value.Render(fmt.Sprintf("%.4g", values[name])))
	}
	return sb.String()
}
