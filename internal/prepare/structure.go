// Package prepare structures a profile from a raw resume document (text or
// PDF), using the LLM when available and a heuristic extractor otherwise.
package prepare

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Sof1ane/aipply/internal/llm"
	"github.com/Sof1ane/aipply/internal/profile"
)

// maxPromptChars truncates very long resumes to stay inside token limits.
const maxPromptChars = 8000

const structurePrompt = `You are an HR expert. Analyze this resume text and return ONLY valid JSON with exactly this schema:

{
  "full_name": "Full Name",
  "title": "Exact professional title",
  "email": "email@example.com",
  "experience": [
    {
      "title": "Exact job title",
      "company": "Exact company name",
      "start_date": "YYYY-MM",
      "end_date": "YYYY-MM",
      "description": "key responsibilities"
    }
  ],
  "education": [
    {
      "degree": "Degree",
      "field_of_study": "Field",
      "school": "School",
      "graduation_date": "YYYY"
    }
  ],
  "skills": ["skill1", "skill2"],
  "languages": ["Language (level)"],
  "certifications": [],
  "volunteer_experience": []
}

CRITICAL:
- Use REAL values from the resume (real company names, real dates)
- Omit end_date for current positions
- Return ONLY the JSON, with no extra text.

RESUME TEXT:
%s`

// StructureError reports a failure turning the document into a profile.
type StructureError struct {
	Message string
	Cause   error
}

func (e *StructureError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("prepare error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("prepare error: %s", e.Message)
}

func (e *StructureError) Unwrap() error {
	return e.Cause
}

// Structure builds a profile from raw resume text. With a nil client, or
// when the model output cannot be used, it falls back to the heuristic
// extractor so the command still produces a reviewable skeleton.
func Structure(ctx context.Context, client llm.Client, rawText string) (*profile.Profile, error) {
	rawText = strings.TrimSpace(rawText)
	if rawText == "" {
		return nil, &StructureError{Message: "resume text is empty"}
	}

	if client == nil {
		return Heuristic(rawText), nil
	}

	truncated := rawText
	if len(truncated) > maxPromptChars {
		truncated = truncated[:maxPromptChars]
	}

	response, err := client.GenerateJSON(ctx, fmt.Sprintf(structurePrompt, truncated))
	if err != nil {
		return Heuristic(rawText), nil
	}

	prof, err := parseModelJSON(response)
	if err != nil {
		return Heuristic(rawText), nil
	}
	return prof, nil
}

// parseModelJSON extracts the JSON object from the model output and decodes
// it into a profile.
func parseModelJSON(response string) (*profile.Profile, error) {
	response = llm.CleanJSONBlock(response)

	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start == -1 || end <= start {
		return nil, &StructureError{Message: "no JSON object in model output"}
	}

	var prof profile.Profile
	if err := json.Unmarshal([]byte(response[start:end+1]), &prof); err != nil {
		return nil, &StructureError{Message: "model output is not valid profile JSON", Cause: err}
	}
	if strings.TrimSpace(prof.FullName) == "" {
		return nil, &StructureError{Message: "model output is missing the candidate name"}
	}
	return &prof, nil
}
