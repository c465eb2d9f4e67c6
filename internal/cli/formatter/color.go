package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/eventboard/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// StatusStyle colors a task bar by its derived status.
func StatusStyle(s domain.TaskStatus) lipgloss.Style {
	switch s {
	case domain.TaskCompleted:
		return StyleGreen
	case domain.TaskDelayed:
		return StyleRed
	case domain.TaskInProcess:
		return StyleBlue
	default:
		return StyleYellow
	}
}

// StatusBadge returns a colored status label such as "● IN PROCESS".
func StatusBadge(s domain.TaskStatus) string {
	switch s {
	case domain.TaskCompleted:
		return StyleGreen.Render("✔ COMPLETED")
	case domain.TaskDelayed:
		return StyleRed.Render("▲ DELAYED")
	case domain.TaskInProcess:
		return StyleBlue.Render("● IN PROCESS")
	case domain.TaskPending:
		return StyleYellow.Render("○ PENDING")
	default:
		return StyleDim.Render(string(s))
	}
}

// InviteBadge summarizes the crew sync state of a task. It is empty when
// no crew is assigned.
func InviteBadge(t *domain.Task) string {
	if t.CrewMemberID == nil {
		return ""
	}
	switch t.InvitationStatus {
	case domain.InvitationAccepted:
		return StyleGreen.Render("✓ accepted")
	case domain.InvitationDeclined:
		return StyleRed.Render("✗ declined")
	}
	if t.SyncStatus == domain.SyncInvited {
		return StylePurple.Render("✉ invited")
	}
	return StyleDim.Render("… draft")
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
