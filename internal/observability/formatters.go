// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/hrkey/reference-validator/internal/types"
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
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintValidationOutput outputs a human-readable summary of a validation result.
func (p *Printer) PrintValidationOutput(out *types.StructuredValidationOutput) {
	if out == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Subject:     %s\n", out.SubjectID))
	sb.WriteString(fmt.Sprintf("Status:      %s\n", out.Status))
	sb.WriteString(fmt.Sprintf("Confidence:  %.2f\n", out.Confidence))
	sb.WriteString(fmt.Sprintf("Consistency: %.2f\n", out.ConsistencyScore))
	sb.WriteString(fmt.Sprintf("Risk:        %.0f/100\n", out.RiskScore))
	sb.WriteString("\n")

	if len(out.Dimensions) > 0 {
		sb.WriteString("Dimensions:\n")
		names := make([]string, 0, len(out.Dimensions))
		for name := range out.Dimensions {
			names = append(names, name)
		}
		sort.Strings(names)

		count := min(len(names), maxItemsToShow)
		for i := 0; i < count; i++ {
			dim := out.Dimensions[names[i]]
			sb.WriteString(fmt.Sprintf("  • %s: %.1f (confidence %.2f)\n", names[i], dim.Rating, dim.Confidence))
		}
		if len(names) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(names)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if len(out.Flags) > 0 {
		sb.WriteString("Flags:\n")
		count := min(len(out.Flags), maxItemsToShow)
		for i := 0; i < count; i++ {
			f := out.Flags[i]
			sb.WriteString(fmt.Sprintf("  • [%s] %s\n", f.Severity, f.Type))
		}
		if len(out.Flags) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(out.Flags)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("Processed in %dms, embedding: %v",
		out.Metadata.ProcessingTimeMs, out.Metadata.HasEmbedding))

	p.printBox("Validation Result", sb.String())
}

// PrintBatchSummary outputs a one-box summary of a batch run.
func (p *Printer) PrintBatchSummary(total, succeeded, failed int) {
	content := fmt.Sprintf("Items:     %d\nSucceeded: %d\nFailed:    %d", total, succeeded, failed)
	p.printBox("Batch Summary", content)
}
