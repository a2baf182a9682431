package output

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"taskboard/internal/domain"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("244"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	titleStyle   = lipgloss.NewStyle().Bold(true)
	overdueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	peopleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("110"))
	columnStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238")).Padding(0, 1)

	statusStyles = map[domain.Status]lipgloss.Style{
		domain.StatusNew:        lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		domain.StatusInProgress: lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		domain.StatusOnHold:     lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		domain.StatusTesting:    lipgloss.NewStyle().Foreground(lipgloss.Color("62")),
		domain.StatusDone:       lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	}
)

// DisableColor strips all styling.
func DisableColor() {
	headerStyle = lipgloss.NewStyle()
	dimStyle = lipgloss.NewStyle()
	titleStyle = lipgloss.NewStyle()
	overdueStyle = lipgloss.NewStyle()
	peopleStyle = lipgloss.NewStyle()
	columnStyle = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1)
	statusStyles = map[domain.Status]lipgloss.Style{}
}

func styledStatus(s domain.Status) string {
	if st, ok := statusStyles[s]; ok {
		return st.Render(string(s))
	}
	return string(s)
}

func padRight(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}

func stringOrDash(s string) string {
	if s == "" {
		return dimStyle.Render("--")
	}
	return s
}

func assigneeNames(t domain.Task) string {
	names := make([]string, 0, len(t.Assignees))
	for _, p := range t.Assignees {
		names = append(names, p.Name)
	}
	return strings.Join(names, ", ")
}

func dueDisplay(t domain.Task, overdue bool) string {
	if t.DueDate == nil {
		return dimStyle.Render("--")
	}
	if overdue {
		return overdueStyle.Render(t.DueDate.String() + " !")
	}
	return t.DueDate.String()
}
