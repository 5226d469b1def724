package prepare

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResume = `Jane Doe
Senior Software Engineer
jane.doe@example.com

EXPERIENCE
Backend Engineer, Acme (2020 - 2023)
Built the billing pipeline in Go with PostgreSQL.

SKILLS
Go, SQL, Docker, Kubernetes`

// fakeLLM returns a canned response or error for GenerateJSON.
type fakeLLM struct {
	response string
	err      error
}

func (f *fakeLLM) GenerateText(ctx context.Context, prompt string) (string, error) {
	return f.response, f.err
}

func (f *fakeLLM) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	return f.response, f.err
}

func (f *fakeLLM) Close() error { return nil }

func TestStructure_EmptyInput(t *testing.T) {
	_, err := Structure(context.Background(), nil, "   ")
	require.Error(t, err)

	var serr *StructureError
	assert.ErrorAs(t, err, &serr)
}

func TestStructure_NilClientUsesHeuristic(t *testing.T) {
	prof, err := Structure(context.Background(), nil, sampleResume)
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", prof.FullName)
	assert.Equal(t, "jane.doe@example.com", prof.Email)
}

func TestStructure_ModelResponse(t *testing.T) {
	client := &fakeLLM{response: "```json\n" + `{
		"full_name": "Jane Doe",
		"title": "Senior Software Engineer",
		"email": "jane.doe@example.com",
		"experience": [{"title": "Backend Engineer", "company": "Acme", "start_date": "2020", "end_date": "2023"}],
		"education": [],
		"skills": ["Go", "SQL"],
		"languages": []
	}` + "\n```"}

	prof, err := Structure(context.Background(), client, sampleResume)
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", prof.FullName)
	assert.Equal(t, "Senior Software Engineer", prof.Title)
	require.Len(t, prof.Experience, 1)
	assert.Equal(t, "Acme", prof.Experience[0].Company)
	assert.Equal(t, []string{"Go", "SQL"}, prof.Skills)
}

func TestStructure_ModelErrorFallsBack(t *testing.T) {
	client := &fakeLLM{err: errors.New("model unavailable")}

	prof, err := Structure(context.Background(), client, sampleResume)
	require.NoError(t, err)
	assert.Equal(t, "jane.doe@example.com", prof.Email, "heuristic result on model failure")
}

func TestStructure_GarbageModelOutputFallsBack(t *testing.T) {
	client := &fakeLLM{response: "I could not process this resume, sorry."}

	prof, err := Structure(context.Background(), client, sampleResume)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", prof.FullName)
}

func TestParseModelJSON_MissingName(t *testing.T) {
	_, err := parseModelJSON(`{"email": "jane@example.com"}`)
	require.Error(t, err)
}

func TestParseModelJSON_SurroundingText(t *testing.T) {
	prof, err := parseModelJSON(`Here is the result: {"full_name": "Jane Doe"} Hope it helps!`)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", prof.FullName)
}
