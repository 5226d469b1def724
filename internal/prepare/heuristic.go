package prepare

import (
	"regexp"
	"strings"

	"github.com/Sof1ane/aipply/internal/profile"
)

var emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

// titleWords mark a line as a professional title rather than a name.
var titleWords = []string{
	"engineer", "developer", "manager", "analyst", "consultant", "specialist",
	"architect", "designer", "scientist",
}

// skillKeywords are scanned for case-insensitively in the whole document.
var skillKeywords = []string{
	"Python", "Go", "SQL", "Java", "JavaScript", "TypeScript", "React", "Node",
	"AWS", "Azure", "GCP", "Docker", "Kubernetes", "Git", "Linux", "Terraform",
}

// Heuristic builds a skeleton profile from plain resume text without any AI:
// email by pattern, name and title from the leading lines, skills by keyword
// scan. The result is meant to be reviewed and completed by the user.
func Heuristic(rawText string) *profile.Profile {
	prof := profile.New()
	lower := strings.ToLower(rawText)

	if match := emailPattern.FindString(rawText); match != "" {
		prof.Email = match
	}

	var lines []string
	for _, line := range strings.Split(rawText, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}

	head := lines
	if len(head) > 10 {
		head = head[:10]
	}
	for _, line := range head {
		if prof.FullName == "" && looksLikeName(line) {
			prof.FullName = line
			continue
		}
		if prof.Title == "" && containsAny(strings.ToLower(line), titleWords) && len(line) < 80 {
			prof.Title = line
		}
	}

	for _, keyword := range skillKeywords {
		if strings.Contains(lower, strings.ToLower(keyword)) {
			prof.AddSkills(keyword)
		}
	}

	return prof
}

func looksLikeName(line string) bool {
	if len(line) == 0 || len(line) >= 50 {
		return false
	}
	first := rune(line[0])
	if first < 'A' || first > 'Z' {
		return false
	}
	if strings.ContainsAny(line, "@•:()") {
		return false
	}
	return !containsAny(strings.ToLower(line), titleWords)
}

func containsAny(haystack string, words []string) bool {
	for _, w := range words {
		if strings.Contains(haystack, w) {
			return true
		}
	}
	return false
}
