package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const legacyEnglish = `{
  "identity": {"name": "Jane Doe", "title": "Engineer", "email": "jane@example.com"},
  "experiences": [
    {"role": "Backend Engineer", "company": "Acme", "dates": "2020-01 - 2023-06",
     "missions": ["Built the billing pipeline", "Led migrations"]},
    {"role": "Engineer", "company": "Initech", "dates": "2018 - Present", "missions": []}
  ],
  "education": [{"degree": "BSc Computer Science", "school": "State University", "dates": "2014 - 2018"}],
  "skills": {"technical": ["Go", "SQL"], "soft": ["Communication"], "methodological": ["Scrum", "go"]},
  "languages": ["English (Native)"]
}`

const legacyFrench = `{
  "identite": {"nom": "Jeanne Dupont", "titre": "Ingenieure", "courriel": "jeanne@example.com"},
  "experiences": [
    {"poste": "Developpeuse", "entreprise": "Acme", "dates": "2020 - 2023", "missions": ["Mise en place du pipeline"]}
  ],
  "formation": [{"diplome": "Master Informatique", "ecole": "Universite de Lyon", "dates": "2018"}],
  "competences": {"techniques": ["Go"], "methodologiques": ["Scrum"]},
  "langues": ["Francais (Natif)"]
}`

const legacySpanish = `{
  "identidad": {"nombre": "Juana Perez", "titulo": "Ingeniera", "correo": "juana@example.com"},
  "experiences": [
    {"puesto": "Desarrolladora", "empresa": "Acme", "fechas": "2019 - 2022", "misiones": ["Plataforma de pagos"]}
  ],
  "formacion": [{"degree": "Grado en Informatica", "school": "Universidad de Madrid", "fechas": "2019"}],
  "competencias": {"tecnicas": ["Go", "SQL"]},
  "idiomas": ["Espanol (Nativo)"]
}`

func loadLegacy(t *testing.T, content string) (*FileStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return NewFileStore(path), path
}

func TestLoad_MigratesLegacyEnglish(t *testing.T) {
	fs, _ := loadLegacy(t, legacyEnglish)

	prof, err := fs.Load()
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", prof.FullName)
	assert.Equal(t, "Engineer", prof.Title)
	assert.Equal(t, "jane@example.com", prof.Email)

	require.Len(t, prof.Experience, 2)
	assert.Equal(t, "Backend Engineer", prof.Experience[0].Title)
	assert.Equal(t, "2020-01", prof.Experience[0].StartDate)
	assert.Equal(t, "2023-06", prof.Experience[0].EndDate)
	assert.Equal(t, "Built the billing pipeline; Led migrations", prof.Experience[0].Description)
	assert.Equal(t, "", prof.Experience[1].EndDate, "Present maps to an open-ended position")

	require.Len(t, prof.Education, 1)
	assert.Equal(t, "2018", prof.Education[0].GraduationDate)

	assert.Equal(t, []string{"Go", "SQL", "Communication", "Scrum"}, prof.Skills, "skill groups flatten with dedup")
	assert.Equal(t, []string{"English (Native)"}, prof.Languages)
}

func TestLoad_MigratesLegacyFrench(t *testing.T) {
	fs, _ := loadLegacy(t, legacyFrench)

	prof, err := fs.Load()
	require.NoError(t, err)

	assert.Equal(t, "Jeanne Dupont", prof.FullName)
	assert.Equal(t, "Ingenieure", prof.Title)
	assert.Equal(t, "jeanne@example.com", prof.Email)
	require.Len(t, prof.Experience, 1)
	assert.Equal(t, "Developpeuse", prof.Experience[0].Title)
	assert.Equal(t, "Acme", prof.Experience[0].Company)
	require.Len(t, prof.Education, 1)
	assert.Equal(t, "Master Informatique", prof.Education[0].Degree)
	assert.Equal(t, []string{"Go", "Scrum"}, prof.Skills)
	assert.Equal(t, []string{"Francais (Natif)"}, prof.Languages)
}

func TestLoad_MigratesLegacySpanish(t *testing.T) {
	fs, _ := loadLegacy(t, legacySpanish)

	prof, err := fs.Load()
	require.NoError(t, err)

	assert.Equal(t, "Juana Perez", prof.FullName)
	assert.Equal(t, "juana@example.com", prof.Email)
	require.Len(t, prof.Experience, 1)
	assert.Equal(t, "Desarrolladora", prof.Experience[0].Title)
	assert.Equal(t, "2019", prof.Experience[0].StartDate)
	assert.Equal(t, "2022", prof.Experience[0].EndDate)
	assert.Equal(t, []string{"Espanol (Nativo)"}, prof.Languages)
}

func TestLoad_RewritesMigratedFileInPlace(t *testing.T) {
	fs, path := loadLegacy(t, legacyEnglish)

	_, err := fs.Load()
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"full_name"`)
	assert.NotContains(t, string(content), `"identity"`)

	// A second load goes through the canonical path unchanged.
	prof, err := fs.Load()
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", prof.FullName)
}

func TestSplitDateRange(t *testing.T) {
	tests := []struct {
		input     string
		wantStart string
		wantEnd   string
	}{
		{"2020 - 2023", "2020", "2023"},
		{"2020-01 - 2023-06", "2020-01", "2023-06"},
		{"2018 - Present", "2018", ""},
		{"2018-2020", "2018", "2020"},
		{"2019", "2019", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			start, end := splitDateRange(tt.input)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}
