package client

import "github.com/charmbracelet/lipgloss"

// Theme styles the text drawn over the field. Each level has its own
// accent.
type Theme struct {
	Accent lipgloss.Style // Level indicator and titles
	Text   lipgloss.Style
	Hint   lipgloss.Style
	Winner lipgloss.Style
	Action lipgloss.Style // Key prompts on overlays
}

var levelAccents = []lipgloss.Color{
	"#66BFFF", // Sky blue
	"#00E430", // Green
	"#FF00FF", // Magenta
}

// NewTheme builds the theme for level using r's color profile.
func NewTheme(r *lipgloss.Renderer, level int) Theme {
	accent := lipgloss.Color("#FFCB00") // Gold past the last themed level
	if level >= 1 && level <= len(levelAccents) {
		accent = levelAccents[level-1]
	}
	return Theme{
		Accent: r.NewStyle().Foreground(accent).Bold(true),
		Text:   r.NewStyle().Foreground(lipgloss.Color("#FFFFFF")),
		Hint:   r.NewStyle().Foreground(lipgloss.Color("#828282")),
		Winner: r.NewStyle().Foreground(lipgloss.Color("#FDF900")).Bold(true),
		Action: r.NewStyle().Foreground(lipgloss.Color("#00E430")),
	}
}
