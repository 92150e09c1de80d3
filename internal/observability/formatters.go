// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-editor/internal/types"
	"github.com/jonathan/resume-editor/internal/validation"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to at most max runes, marking the cut with an ellipsis.
// Cutting on runes rather than bytes keeps multi-byte text intact.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		line = truncate(line, boxWidth-4)
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintProjects outputs the project list with the active project marked.
func (p *Printer) PrintProjects(projects []types.Project, activeID string) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total projects: %d\n\n", len(projects)))

	for _, proj := range projects {
		marker := "  "
		if proj.ID == activeID {
			marker = "* "
		}
		sb.WriteString(fmt.Sprintf("%s%s\n", marker, proj.Name))
		sb.WriteString(fmt.Sprintf("    ID: %s\n", proj.ID))
		if proj.UpdatedAt != "" {
			sb.WriteString(fmt.Sprintf("    Updated: %s\n", proj.UpdatedAt))
		}
		if proj.LastChatMessage != "" {
			last := truncate(proj.LastChatMessage, 40)
			sb.WriteString(fmt.Sprintf("    Last: %s\n", last))
		}
	}

	p.printBox("PROJECTS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintHistory outputs history entries newest-first, marking the active one.
func (p *Printer) PrintHistory(entries []types.HistoryEntry) {
	if len(entries) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total versions: %d\n\n", len(entries)))

	shown := 0
	for i := len(entries) - 1; i >= 0 && shown < maxItemsToShow; i-- {
		entry := entries[i]
		marker := "  "
		if entry.IsLatest {
			marker = "* "
		}
		msg := truncate(entry.Message, 40)
		sb.WriteString(fmt.Sprintf("%s%s\n", marker, msg))
		sb.WriteString(fmt.Sprintf("    %s\n", entry.Timestamp))
		shown++
	}
	if len(entries) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d older versions", len(entries)-maxItemsToShow))
	}

	p.printBox("DOCUMENT HISTORY", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintValidationReport outputs the result of validating a document.
func (p *Printer) PrintValidationReport(result validation.Result) {
	var sb strings.Builder
	if result.IsValid {
		sb.WriteString("Document is valid")
	} else {
		sb.WriteString(fmt.Sprintf("%d problem(s) found:\n\n", len(result.Errors)))
		count := min(len(result.Errors), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", result.Errors[i]))
		}
		if len(result.Errors) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(result.Errors)-maxItemsToShow))
		}
	}

	p.printBox("VALIDATION REPORT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMatchResult outputs a job-match comparison.
func (p *Printer) PrintMatchResult(match types.MatchResult) {
	var sb strings.Builder

	if len(match.Matched) > 0 {
		sb.WriteString("Matched:\n")
		for _, item := range match.Matched {
			sb.WriteString(fmt.Sprintf("  ✓ %s\n", item))
		}
		sb.WriteString("\n")
	}
	if len(match.Missing) > 0 {
		sb.WriteString("Missing:\n")
		for _, item := range match.Missing {
			sb.WriteString(fmt.Sprintf("  ✗ %s\n", item))
		}
	}
	if len(match.Matched) == 0 && len(match.Missing) == 0 {
		sb.WriteString("No requirements identified")
	}

	p.printBox("JOB MATCH", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintPatchSummary outputs the operations applied by a chat turn.
func (p *Printer) PrintPatchSummary(patches []types.PatchOperation) {
	if len(patches) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Applied %d patch(es):\n\n", len(patches)))
	for _, op := range patches {
		sb.WriteString(fmt.Sprintf("  %s %s\n", op.Op, op.Path))
	}

	p.printBox("APPLIED PATCHES", strings.TrimSuffix(sb.String(), "\n"))
}
