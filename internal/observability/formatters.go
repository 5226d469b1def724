// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/Sof1ane/aipply/internal/importer"
	"github.com/Sof1ane/aipply/internal/profile"
	"github.com/Sof1ane/aipply/internal/store"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer.
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

// PrintProfile outputs a human-readable summary of an imported profile.
func (p *Printer) PrintProfile(prof *profile.Profile, source importer.Source) {
	if prof == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:    %s\n", prof.FullName))
	if prof.Title != "" {
		sb.WriteString(fmt.Sprintf("Title:   %s\n", prof.Title))
	}
	sb.WriteString(fmt.Sprintf("Email:   %s\n", prof.Email))
	if prof.PhotoURL != "" {
		sb.WriteString("Photo:   yes\n")
	}
	sb.WriteString("\n")

	if len(prof.Experience) > 0 {
		sb.WriteString("Experience:\n")
		count := min(len(prof.Experience), maxItemsToShow)
		for i := 0; i < count; i++ {
			exp := prof.Experience[i]
			sb.WriteString(fmt.Sprintf("  • %s, %s", exp.Title, exp.Company))
			if exp.StartDate != "" {
				end := exp.EndDate
				if end == "" {
					end = "present"
				}
				sb.WriteString(fmt.Sprintf(" (%s - %s)", exp.StartDate, end))
			}
			sb.WriteString("\n")
		}
		if len(prof.Experience) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(prof.Experience)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if len(prof.Education) > 0 {
		sb.WriteString("Education:\n")
		count := min(len(prof.Education), 3)
		for i := 0; i < count; i++ {
			edu := prof.Education[i]
			sb.WriteString(fmt.Sprintf("  • %s, %s\n", edu.Degree, edu.School))
		}
		if len(prof.Education) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(prof.Education)-3))
		}
		sb.WriteString("\n")
	}

	if len(prof.Skills) > 0 {
		skills := strings.Join(prof.Skills, ", ")
		if len(skills) > 45 {
			skills = skills[:42] + "..."
		}
		sb.WriteString(fmt.Sprintf("Skills:    %s\n", skills))
	}
	if len(prof.Languages) > 0 {
		languages := strings.Join(prof.Languages, ", ")
		if len(languages) > 45 {
			languages = languages[:42] + "..."
		}
		sb.WriteString(fmt.Sprintf("Languages: %s\n", languages))
	}

	title := "IMPORTED PROFILE"
	switch source {
	case importer.SourceAPI:
		title = "PROFILE (LinkedIn API import)"
	case importer.SourceManual:
		title = "PROFILE (manual import)"
	}
	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintImportFailure outputs the failure kind and stage so the user can
// decide whether to retry the same path or switch paths.
func (p *Printer) PrintImportFailure(err error) {
	if err == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Kind: %s\n", importer.Kind(err)))
	sb.WriteString(wrapText(err.Error(), boxWidth-4))

	p.printBox("IMPORT FAILED", sb.String())
}

// PrintSummary outputs the generated professional summary.
func (p *Printer) PrintSummary(summary string) {
	if strings.TrimSpace(summary) == "" {
		return
	}
	p.printBox("PROFESSIONAL SUMMARY", wrapText(summary, boxWidth-4))
}

// PrintSessions outputs recent import sessions.
func (p *Printer) PrintSessions(sessions []store.Session) {
	if len(sessions) == 0 {
		p.printBox("IMPORT HISTORY", "No import sessions recorded.")
		return
	}

	var sb strings.Builder
	for i, s := range sessions {
		sb.WriteString(fmt.Sprintf("%s  %-6s %s\n", s.ImportedAt.Format("2006-01-02 15:04"), s.Source, s.FullName))
		if i == len(sessions)-1 {
			break
		}
	}
	p.printBox("IMPORT HISTORY", strings.TrimSuffix(sb.String(), "\n"))
}

// wrapText wraps text at the given width on word boundaries.
func wrapText(text string, width int) string {
	words := strings.Fields(text)
	var sb strings.Builder
	lineLen := 0
	for _, word := range words {
		if lineLen > 0 && lineLen+len(word)+1 > width {
			sb.WriteString("\n")
			lineLen = 0
		} else if lineLen > 0 {
			sb.WriteString(" ")
			lineLen++
		}
		sb.WriteString(word)
		lineLen += len(word)
	}
	return sb.String()
}
