package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#10B981") // Green
	Muted     = lipgloss.Color("#6B7280") // Gray
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Error     = lipgloss.Color("#EF4444") // Red
	White     = lipgloss.Color("#FFFFFF")

	// Progress bar gradient
	GradientStart = "#7C3AED"
	GradientEnd   = "#10B981"
)

// Theme groups the styles used to render a report. Styles are bound to a
// renderer so output degrades to plain text when the writer is not a terminal.
type Theme struct {
	Title      lipgloss.Style
	Subtitle   lipgloss.Style
	Success    lipgloss.Style
	ErrorMsg   lipgloss.Style
	WarningMsg lipgloss.Style
	MutedText  lipgloss.Style
	Bullet     lipgloss.Style
	Spinner    lipgloss.Style
	StatusBar  lipgloss.Style
	HelpKey    lipgloss.Style
	HelpDesc   lipgloss.Style
}

// NewTheme builds the theme for a renderer
func NewTheme(r *lipgloss.Renderer) Theme {
	return Theme{
		Title: r.NewStyle().
			Bold(true).
			Foreground(Primary),

		Subtitle: r.NewStyle().
			Foreground(Muted).
			Italic(true),

		Success: r.NewStyle().
			Foreground(Secondary).
			Bold(true),

		ErrorMsg: r.NewStyle().
			Foreground(Error).
			Bold(true),

		WarningMsg: r.NewStyle().
			Foreground(Warning).
			Bold(true),

		MutedText: r.NewStyle().
			Foreground(Muted),

		Bullet: r.NewStyle().
			Foreground(Muted),

		Spinner: r.NewStyle().
			Foreground(Primary),

		StatusBar: r.NewStyle().
			Background(lipgloss.Color("#1F2937")).
			Foreground(White).
			Padding(0, 1),

		HelpKey: r.NewStyle().
			Foreground(Primary).
			Bold(true),

		HelpDesc: r.NewStyle().
			Foreground(Muted),
	}
}
