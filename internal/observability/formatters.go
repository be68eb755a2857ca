// Package observability renders toolkit state for the terminal.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jonathan/content-toolkit/internal/funnel"
	"github.com/jonathan/content-toolkit/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// barWidth is the width of the progress bar
	barWidth = 30
	// maxItemsToShow is the default number of items to display per stage card
	maxItemsToShow = 5
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cMuted   = lipgloss.Color("244") // gray
)

// Printer handles formatted output for the CLI
type Printer struct {
	out   io.Writer
	box   lipgloss.Style
	title lipgloss.Style
	good  lipgloss.Style
	warn  lipgloss.Style
	muted lipgloss.Style
}

// NewPrinter creates a new Printer that writes to the given writer. Colors are
// only emitted when out is a terminal.
func NewPrinter(out io.Writer) *Printer {
	r := lipgloss.NewRenderer(out)
	return &Printer{
		out: out,
		box: r.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(cMuted).
			Padding(0, 1).
			Width(boxWidth),
		title: r.NewStyle().Bold(true).Foreground(cPrimary),
		good:  r.NewStyle().Bold(true).Foreground(cGood),
		warn:  r.NewStyle().Bold(true).Foreground(cWarn),
		muted: r.NewStyle().Foreground(cMuted),
	}
}

// printBox prints a bordered box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	body := p.title.Render(title)
	if content != "" {
		body += "\n\n" + content
	}
	fmt.Fprintln(p.out, p.box.Render(body))
}

// PrintDashboard outputs the profile, progress bar and step checklist.
func (p *Printer) PrintDashboard(profile types.UserProfile, metrics types.Metrics, steps []types.StepStatus) {
	var sb strings.Builder

	if profile.Name != "" || profile.Company != "" {
		sb.WriteString(strings.TrimSpace(profile.Name + "  " + p.muted.Render(profile.Company)))
		sb.WriteString("\n\n")
	}

	filled := metrics.ProgressPercentage * barWidth / 100
	bar := p.good.Render(strings.Repeat("█", filled)) + p.muted.Render(strings.Repeat("░", barWidth-filled))
	sb.WriteString(fmt.Sprintf("%s %d%%\n", bar, metrics.ProgressPercentage))
	sb.WriteString(fmt.Sprintf("%d of %d steps complete, %d remaining\n\n",
		metrics.CompletedStepCount, metrics.TotalSteps, metrics.RemainingSteps))

	for _, s := range steps {
		mark := p.muted.Render("[ ]")
		if s.Completed {
			mark = p.good.Render("[x]")
		}
		sb.WriteString(fmt.Sprintf("%s %d. %s\n", mark, s.ID, s.Title))
	}

	p.printBox("TOOLKIT PROGRESS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintFunnel outputs one card per funnel stage.
func (p *Printer) PrintFunnel(views []funnel.StageView) {
	for _, v := range views {
		var sb strings.Builder
		sb.WriteString(p.muted.Render(v.Description))
		sb.WriteString("\n\n")

		if len(v.Items) == 0 {
			sb.WriteString(p.muted.Render("No content yet"))
			sb.WriteString("\n")
		}
		count := min(len(v.Items), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s (%s)\n", v.Items[i].Title, v.Items[i].Type))
		}
		if len(v.Items) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(v.Items)-maxItemsToShow))
		}

		sb.WriteString("\n")
		sb.WriteString(p.gapLine(v.Count, v.Gap))

		p.printBox(strings.ToUpper(v.Title), sb.String())
	}
}

// PrintGaps outputs the gap analysis as a table.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintGaps(report funnel.Report) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-12s %5s %5s\n", "STAGE", "COUNT", "GAP"))
	for _, key := range types.StageKeys() {
		g := report[key]
		gap := p.good.Render(fmt.Sprintf("%5d", g.Gap))
		if g.Gap > 0 {
			gap = p.warn.Render(fmt.Sprintf("%5d", g.Gap))
		}
		sb.WriteString(fmt.Sprintf("%-12s %5d %s\n", key, g.Count, gap))
	}
	sb.WriteString(fmt.Sprintf("\nTarget: %d pieces per stage. Total missing: %d", funnel.Quota, report.TotalGap()))

	p.printBox("CONTENT GAPS", sb.String())
}

// PrintLibrary outputs a list of content items.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintLibrary(heading string, items []types.ContentItem) {
	if len(items) == 0 {
		p.printBox(heading, p.muted.Render("No content items"))
		return
	}

	var sb strings.Builder
	for _, item := range items {
		sb.WriteString(fmt.Sprintf("%s  %s\n", p.muted.Render(string(item.ID)), item.Title))
		sb.WriteString(fmt.Sprintf("    %s · %s\n", item.Type, item.Stage))
	}
	p.printBox(heading, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintItem outputs a single content item on one line.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintItem(item types.ContentItem) {
	fmt.Fprintf(p.out, "%s %s (%s) → %s\n", p.muted.Render(string(item.ID)), item.Title, item.Type, item.Stage)
}

// PrintWarning outputs a non-blocking warning line.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintWarning(msg string) {
	fmt.Fprintln(p.out, p.warn.Render("warning: ")+msg)
}

func (p *Printer) gapLine(count, gap int) string {
	if gap == 0 {
		return p.good.Render(fmt.Sprintf("%d/%d pieces, covered", count, funnel.Quota))
	}
	return p.warn.Render(fmt.Sprintf("%d/%d pieces, %d missing", count, funnel.Quota, gap))
}
