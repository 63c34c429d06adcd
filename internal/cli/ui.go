package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/panelkit/panelkit/pkg/layout"
	"github.com/panelkit/panelkit/pkg/rule"
)

var (
	colorCyan  = lipgloss.Color("36")  // Teal - primary actions
	colorGreen = lipgloss.Color("35")  // Green - success
	colorRed   = lipgloss.Color("167") // Soft red - errors
	colorWhite = lipgloss.Color("255") // Bright white - values
	colorGray  = lipgloss.Color("245") // Gray - secondary text
	colorDim   = lipgloss.Color("240") // Dim gray - muted text
)

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
	styleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleError   = lipgloss.NewStyle().Foreground(colorRed)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "solved"
)

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	fmt.Println(styleSuccess.Render(iconSuccess) + " " + fmt.Sprintf(format, args...))
}

// printError prints an error message.
func printError(format string, args ...any) {
	fmt.Println(styleError.Render(iconError) + " " + fmt.Sprintf(format, args...))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	fmt.Println(styleDim.Render(iconInfo) + " " + fmt.Sprintf(format, args...))
}

// printDetail prints an indented detail line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + styleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + styleDim.Render(iconArrow) + " " + styleValue.Render(path))
}

// printStats prints solve statistics on a single line.
func printStats(panels int, cached bool) {
	status := iconFresh
	statusStyle := styleComputed
	if cached {
		status = iconCached
		statusStyle = styleCached
	}
	fmt.Println("  " + styleDim.Render(fmt.Sprintf("%d panels", panels)) +
		styleDim.Render(" · ") + statusStyle.Render(status))
}

// renderTree returns the panel hierarchy as an indented listing, one
// panel per line with its sizing rules.
func renderTree(l *layout.Layout) string {
	var b strings.Builder
	_ = l.Walk(func(p layout.Panel, depth int) error {
		indent := strings.Repeat("  ", depth)
		b.WriteString(indent + styleValue.Render(p.ID) + " " +
			styleDim.Render(fmt.Sprintf("[w %s, h %s, %s]",
				rule.String(p.Width), rule.String(p.Height), p.Direction)) + "\n")
		return nil
	})
	return b.String()
}

// renderGeometry returns the resolved geometry of every panel as a
// bordered table, with values formatted to the given precision.
func renderGeometry(l *layout.Layout, precision int) (string, error) {
	num := func(v float64) string {
		return fmt.Sprintf("%.*f", precision, v)
	}

	var rows [][]string
	for _, id := range l.IDs() {
		g, err := l.Geometry(id)
		if err != nil {
			return "", err
		}
		rows = append(rows, []string{
			id,
			num(g.Width), num(g.Height),
			num(g.Left), num(g.Right), num(g.Bottom), num(g.Top),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Panel", "Width", "Height", "Left", "Right", "Bottom", "Top").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return styleValue
			}
			return lipgloss.NewStyle().Foreground(colorGray).Align(lipgloss.Right)
		})
	return t.Render(), nil
}
