// Package report accumulates run tallies and renders the user-facing
// summary output: the banner, result tables, and final counts.
package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	taglineStyle = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("11"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
	bannerBox    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("12")).
			Padding(1, 2)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	cellStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Padding(0, 1)
)

// Banner renders the startup banner.
func Banner(version string) string {
	body := titleStyle.Render("Wingman") + "\n" +
		dimStyle.Render("v"+version) + "\n" +
		taglineStyle.Render("Your wingman for Salesforce — automate the boring admin tasks")
	return bannerBox.Render(body) + "\n"
}

// Summary tallies the outcome of a replacement or pull run.
type Summary struct {
	DryRun        bool
	ReportsFound  int
	Identifiers   int
	SkippedNoName int
	Fallbacks     int
	Batches       int
	FailedBatches int
	FilesScanned  int
	FileErrors    int
	Updated       []string
	ManifestPath  string
}

// renderList draws a one-column table of report identifiers.
func renderList(header string, rows []string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(dimStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			return cellStyle
		}).
		Headers(header)
	for _, r := range rows {
		t.Row(r)
	}
	return t.Render()
}

// Render writes the final summary for a replacement run.
func (s *Summary) Render(w io.Writer) {
	if len(s.Updated) > 0 {
		fmt.Fprintln(w, renderList("Updated reports", s.Updated))
	}

	fmt.Fprintln(w, "Summary:")
	fmt.Fprintf(w, "  Reports found:     %d\n", s.ReportsFound)
	fmt.Fprintf(w, "  Reports processed: %d\n", s.Identifiers)
	if s.SkippedNoName > 0 {
		fmt.Fprintf(w, "  Skipped (no developer name): %d\n", s.SkippedNoName)
	}
	if s.Fallbacks > 0 {
		fmt.Fprintf(w, "  Fallback identifiers:        %d\n", s.Fallbacks)
	}
	if s.Batches > 0 {
		fmt.Fprintf(w, "  Batches:           %d (%d failed)\n", s.Batches, s.FailedBatches)
	}
	fmt.Fprintf(w, "  Files scanned:     %d\n", s.FilesScanned)
	fmt.Fprintf(w, "  Reports updated:   %d\n", len(s.Updated))
	if s.FileErrors > 0 {
		fmt.Fprintf(w, "  File errors:       %d\n", s.FileErrors)
	}
	if s.DryRun {
		fmt.Fprintln(w, "  Mode:              dry run (no changes written)")
	}
	if s.ManifestPath != "" {
		fmt.Fprintf(w, "  Deploy manifest:   %s\n", s.ManifestPath)
	}
}

// RenderPull writes the final summary for a pull-only run.
func (s *Summary) RenderPull(w io.Writer) {
	const maxListed = 50
	if n := len(s.Updated); n > 0 {
		rows := s.Updated
		if n > maxListed {
			rows = append(append([]string{}, rows[:maxListed]...),
				fmt.Sprintf("... and %d more", n-maxListed))
		}
		fmt.Fprintln(w, renderList("Retrieved reports", rows))
	}
	fmt.Fprintf(w, "Total retrieved: %d reports in %d batch(es), %d failed\n",
		len(s.Updated), s.Batches, s.FailedBatches)
}

// GeneratedFile describes one CSV produced by field extraction.
type GeneratedFile struct {
	Path string
	Size int64
}

// RenderFiles draws the generated-files table for field extraction.
func RenderFiles(w io.Writer, files []GeneratedFile) {
	if len(files) == 0 {
		fmt.Fprintln(w, "No CSV files were generated")
		return
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(dimStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			return cellStyle
		}).
		Headers("File", "Size")
	for _, f := range files {
		t.Row(f.Path, fmt.Sprintf("%d bytes", f.Size))
	}
	fmt.Fprintln(w, t.Render())
}
