package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMerge_BlankScalarsKeepExisting(t *testing.T) {
	existing := &Profile{
		FullName: "Jane Doe",
		Title:    "Engineer",
		Email:    "jane@example.com",
		PhotoURL: "https://example.com/jane.jpg",
	}
	imported := &Profile{FullName: "Jane A. Doe"}

	merged := Merge(existing, imported)

	assert.Equal(t, "Jane A. Doe", merged.FullName)
	assert.Equal(t, "Engineer", merged.Title)
	assert.Equal(t, "jane@example.com", merged.Email)
	assert.Equal(t, "https://example.com/jane.jpg", merged.PhotoURL)
}

func TestMerge_EmptySectionsKeepExisting(t *testing.T) {
	existing := &Profile{
		Skills:     []string{"Go", "SQL"},
		Experience: []Experience{{Title: "Engineer", Company: "Acme"}},
	}
	imported := New()
	imported.FullName = "Jane Doe"
	imported.Email = "jane@example.com"

	merged := Merge(existing, imported)

	assert.Equal(t, []string{"Go", "SQL"}, merged.Skills)
	assert.Len(t, merged.Experience, 1)
}

func TestMerge_ImportedSectionsWin(t *testing.T) {
	existing := &Profile{Skills: []string{"Go"}}
	imported := &Profile{Skills: []string{"Python", "SQL"}}

	merged := Merge(existing, imported)

	assert.Equal(t, []string{"Python", "SQL"}, merged.Skills)
}

func TestMerge_NilSides(t *testing.T) {
	prof := &Profile{FullName: "Jane Doe"}

	assert.Equal(t, "Jane Doe", Merge(nil, prof).FullName)
	assert.Equal(t, "Jane Doe", Merge(prof, nil).FullName)
}

func TestMerge_DoesNotAliasInputs(t *testing.T) {
	existing := &Profile{Skills: []string{"Go"}}
	imported := &Profile{FullName: "Jane Doe"}

	merged := Merge(existing, imported)
	merged.Skills[0] = "Rust"
	merged.FullName = "Someone Else"

	assert.Equal(t, []string{"Go"}, existing.Skills)
	assert.Equal(t, "Jane Doe", imported.FullName)
}
