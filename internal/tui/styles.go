package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mootlabs/moot/internal/stream"
)

// Palette holds the colors of one theme.
type Palette struct {
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Muted   lipgloss.Color
	Text    lipgloss.Color
	Surface lipgloss.Color
}

// PaletteFor returns the palette for a theme name. Unknown names fall
// back to the default palette.
func PaletteFor(theme string) Palette {
	switch theme {
	case "monokai":
		return Palette{
			Primary: lipgloss.Color("#AE81FF"),
			Accent:  lipgloss.Color("#A6E22E"),
			Warning: lipgloss.Color("#E6DB74"),
			Error:   lipgloss.Color("#F92672"),
			Muted:   lipgloss.Color("#75715E"),
			Text:    lipgloss.Color("#F8F8F2"),
			Surface: lipgloss.Color("#272822"),
		}
	case "dracula":
		return Palette{
			Primary: lipgloss.Color("#BD93F9"),
			Accent:  lipgloss.Color("#50FA7B"),
			Warning: lipgloss.Color("#F1FA8C"),
			Error:   lipgloss.Color("#FF5555"),
			Muted:   lipgloss.Color("#6272A4"),
			Text:    lipgloss.Color("#F8F8F2"),
			Surface: lipgloss.Color("#282A36"),
		}
	case "nord":
		return Palette{
			Primary: lipgloss.Color("#88C0D0"),
			Accent:  lipgloss.Color("#A3BE8C"),
			Warning: lipgloss.Color("#EBCB8B"),
			Error:   lipgloss.Color("#BF616A"),
			Muted:   lipgloss.Color("#4C566A"),
			Text:    lipgloss.Color("#ECEFF4"),
			Surface: lipgloss.Color("#2E3440"),
		}
	default:
		return Palette{
			Primary: lipgloss.Color("#A78BFA"),
			Accent:  lipgloss.Color("#10B981"),
			Warning: lipgloss.Color("#F59E0B"),
			Error:   lipgloss.Color("#F87171"),
			Muted:   lipgloss.Color("#9CA3AF"),
			Text:    lipgloss.Color("#F9FAFB"),
			Surface: lipgloss.Color("#1F2937"),
		}
	}
}

// styles bundles the lipgloss styles derived from a palette.
type styles struct {
	title    lipgloss.Style
	status   lipgloss.Style
	speaker  lipgloss.Style
	muted    lipgloss.Style
	errText  lipgloss.Style
	pauseBox lipgloss.Style
	helpBar  lipgloss.Style
	helpKey  lipgloss.Style
	spinner  lipgloss.Style

	stanceFor         lipgloss.Style
	stanceAgainst     lipgloss.Style
	stanceConditional lipgloss.Style
	stanceNeutral     lipgloss.Style
}

func newStyles(p Palette) styles {
	badge := lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(p.Text)
	return styles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(p.Primary),
		status:   lipgloss.NewStyle().Foreground(p.Accent),
		speaker:  lipgloss.NewStyle().Bold(true).Foreground(p.Primary),
		muted:    lipgloss.NewStyle().Foreground(p.Muted),
		errText:  lipgloss.NewStyle().Bold(true).Foreground(p.Error),
		pauseBox: lipgloss.NewStyle().Bold(true).Foreground(p.Text).Background(p.Warning).Padding(0, 2),
		helpBar:  lipgloss.NewStyle().Foreground(p.Muted),
		helpKey:  lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
		spinner:  lipgloss.NewStyle().Foreground(p.Primary),

		stanceFor:         badge.Background(p.Accent),
		stanceAgainst:     badge.Background(p.Error),
		stanceConditional: badge.Background(p.Warning),
		stanceNeutral:     badge.Background(p.Muted),
	}
}

// stanceBadge renders a colored badge for a stance value.
func (s styles) stanceBadge(stance stream.Stance) string {
	switch stance {
	case stream.StanceFor:
		return s.stanceFor.Render("FOR")
	case stream.StanceAgainst:
		return s.stanceAgainst.Render("AGAINST")
	case stream.StanceConditional:
		return s.stanceConditional.Render("COND")
	default:
		return s.stanceNeutral.Render("NEUTRAL")
	}
}

// confidenceBar renders a fixed-width bar for a confidence in [0, 1].
func confidenceBar(confidence float64) string {
	const width = 10
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}
	filled := int(confidence*width + 0.5)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
