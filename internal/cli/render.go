package cli

import (
	"fmt"
	"io"

	"github.com/bastiangx/codeserve/internal/utils"
	"github.com/bastiangx/codeserve/pkg/security"
	"github.com/bastiangx/codeserve/pkg/suggest"
	"github.com/charmbracelet/lipgloss"
)

var (
	textStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	dimStyle   = lipgloss.NewStyle().Faint(true)
	titleStyle = lipgloss.NewStyle().Bold(true)
	vulnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	safeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
)

// RenderSuggestions prints ranked candidates, one per line.
func RenderSuggestions(w io.Writer, candidates []suggest.Candidate, showScores bool) {
	for i, c := range candidates {
		text := textStyle.Render(fmt.Sprintf("%q", utils.FirstLine(c.Text)))
		if !showScores {
			fmt.Fprintf(w, "%2d. %s\n", i+1, text)
			continue
		}
		fmt.Fprintf(w, "%2d. %-40s %s\n", i+1, text, dimStyle.Render(fmt.Sprintf(
			"conf %3d%%  sec %3d%%  %s (%s)",
			utils.Percent(c.Confidence), utils.Percent(c.Security), c.Model, c.Model.Label())))
	}
}

func severityStyle(s security.Severity) lipgloss.Style {
	switch s {
	case security.SeverityVulnerability:
		return vulnStyle
	case security.SeverityWarning:
		return warnStyle
	default:
		return safeStyle
	}
}

// RenderReport prints a document's score followed by each issue.
func RenderReport(w io.Writer, name string, r *security.Report) {
	score := safeStyle
	if len(r.Issues) > 0 {
		score = vulnStyle
	}
	fmt.Fprintf(w, "%s  %s\n", titleStyle.Render(name), score.Render(fmt.Sprintf("score %d%%", r.Percent())))
	if len(r.Issues) == 0 {
		fmt.Fprintln(w, dimStyle.Render("  no issues found"))
		return
	}
	for _, is := range r.Issues {
		fmt.Fprintf(w, "  line %-5d %s %s\n", is.Line, severityStyle(is.Severity).Render(is.Severity.String()), is.Title)
		fmt.Fprintf(w, "             %s\n", dimStyle.Render(is.Description))
	}
}
