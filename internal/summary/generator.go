// Package summary produces a short professional summary for display after a
// completed import. The summary is presentation output only and is never
// stored on the profile record.
package summary

import (
	"context"
	"fmt"
	"strings"

	"github.com/Sof1ane/aipply/internal/llm"
	"github.com/Sof1ane/aipply/internal/profile"
)

const summaryPrompt = `Create a professional 3-4 line summary for this candidate:

Name: %s
Title: %s
Recent Experience:
%s
Key Skills: %s

Write a compelling professional summary that highlights their expertise and experience. Return ONLY the summary paragraph.`

// Generate writes a 3-4 line summary using the model when one is available.
// With a nil client, or on any model failure, it falls back to a
// deterministic template so the command never fails on this step.
func Generate(ctx context.Context, client llm.Client, prof *profile.Profile) string {
	if client == nil {
		return fallback(prof)
	}

	var experiences []string
	for i, exp := range prof.Experience {
		if i == 3 {
			break
		}
		experiences = append(experiences, fmt.Sprintf("- %s at %s (%s - %s)", exp.Title, exp.Company, exp.StartDate, exp.EndDate))
	}

	skills := prof.Skills
	if len(skills) > 5 {
		skills = skills[:5]
	}

	prompt := fmt.Sprintf(summaryPrompt, prof.FullName, prof.Title, strings.Join(experiences, "\n"), strings.Join(skills, ", "))
	text, err := client.GenerateText(ctx, prompt)
	if err != nil || strings.TrimSpace(text) == "" {
		return fallback(prof)
	}
	return strings.TrimSpace(text)
}

// fallback composes the template summary the original tool used when no
// model was reachable.
func fallback(prof *profile.Profile) string {
	title := prof.Title
	if title == "" {
		title = "professional"
	}
	skills := prof.Skills
	if len(skills) > 3 {
		skills = skills[:3]
	}
	if len(skills) == 0 {
		return fmt.Sprintf("Experienced %s with a diverse professional background.", title)
	}
	return fmt.Sprintf("Experienced %s with expertise in %s.", title, strings.Join(skills, ", "))
}
