package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/cluso-graph-analyzer/pkg/analysis"
	"github.com/dd0wney/cluso-graph-analyzer/pkg/graph"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFD700"))

	resultBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#FFD700")).
			Padding(0, 1).
			MarginBottom(1)

	statusBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#FFEB99")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#00FF00"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500"))
)

const maxRankedRows = 5

func renderResult(res *analysis.Result) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Algorithm: %s", res.Algorithm)))
	b.WriteString(labelStyle.Render(fmt.Sprintf("  [%s]", res.Outcome)))
	b.WriteString("\n")

	if len(res.Ranking) > 0 {
		scores := res.Scores
		if res.Algorithm == analysis.HITS {
			scores = res.Authorities
		}
		for i, id := range res.Ranking {
			if i == maxRankedRows {
				b.WriteString(labelStyle.Render(fmt.Sprintf("  … %d more", len(res.Ranking)-i)))
				b.WriteString("\n")
				break
			}
			fmt.Fprintf(&b, "  %d. %s %s\n", i+1, id, labelStyle.Render(fmt.Sprintf("%.6f", scores.Get(id))))
		}
	}

	for _, c := range res.Conflicts {
		b.WriteString(warnStyle.Render(fmt.Sprintf("  conflict %s (%s-%s, %s)", c.EdgeID, c.Source, c.Target, c.Sign)))
		b.WriteString("\n")
	}

	if len(res.Signs) > 0 && len(res.FlippedEdges) > 0 {
		fmt.Fprintf(&b, "  %s %s\n", labelStyle.Render("signs:"), renderSigns(res.Signs))
	}

	for _, line := range res.Status {
		b.WriteString(styleStatus(line))
		b.WriteString("\n")
	}

	return resultBoxStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func renderGraphStatus(res *analysis.Result) string {
	lines := []string{titleStyle.Render("Graph Status:")}
	for _, line := range res.GraphStatus {
		lines = append(lines, styleStatus(line))
	}
	lines = append(lines, labelStyle.Render(fmt.Sprintf(
		"%d nodes, %d edges, density %.3f, average degree %.2f",
		res.NodeCount, res.EdgeCount, res.Density, res.AverageDegree,
	)))
	return statusBoxStyle.Render(strings.Join(lines, "\n"))
}

func renderSigns(signs map[string]graph.Sign) string {
	ids := make([]string, 0, len(signs))
	for id := range signs {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("%s=%s", id, signs[id])
	}
	return strings.Join(parts, " ")
}

func styleStatus(line string) string {
	switch {
	case strings.HasPrefix(line, "✓"):
		return okStyle.Render(line)
	case strings.HasPrefix(line, "⚠"):
		return warnStyle.Render(line)
	default:
		return line
	}
}
