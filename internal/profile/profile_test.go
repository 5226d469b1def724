package profile

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_SerializesEmptyArrays(t *testing.T) {
	prof := New()

	data, err := json.Marshal(prof)
	require.NoError(t, err)

	assert.Contains(t, string(data), `"experience":[]`)
	assert.Contains(t, string(data), `"education":[]`)
	assert.Contains(t, string(data), `"skills":[]`)
	assert.Contains(t, string(data), `"languages":[]`)
}

func TestAddSkills_DeduplicatesCaseInsensitively(t *testing.T) {
	prof := New()
	prof.AddSkills("Go", "python", "go", "Python", "SQL")

	assert.Equal(t, []string{"Go", "python", "SQL"}, prof.Skills)
}

func TestAddSkills_KeepsFirstSeenOrder(t *testing.T) {
	prof := New()
	prof.AddSkills("Kubernetes")
	prof.AddSkills("Docker", "KUBERNETES", "Terraform")

	assert.Equal(t, []string{"Kubernetes", "Docker", "Terraform"}, prof.Skills)
}

func TestAddSkills_DropsBlanks(t *testing.T) {
	prof := New()
	prof.AddSkills("", "  ", "Go", " Go ")

	assert.Equal(t, []string{"Go"}, prof.Skills)
}

func TestUsable(t *testing.T) {
	tests := []struct {
		name     string
		fullName string
		email    string
		want     bool
	}{
		{"both set", "Jane Doe", "jane@example.com", true},
		{"missing name", "", "jane@example.com", false},
		{"missing email", "Jane Doe", "", false},
		{"whitespace only", "   ", "  ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prof := &Profile{FullName: tt.fullName, Email: tt.email}
			assert.Equal(t, tt.want, prof.Usable())
		})
	}
}

func TestClone_IsIndependent(t *testing.T) {
	prof := New()
	prof.FullName = "Jane Doe"
	prof.AddSkills("Go")
	prof.Experience = append(prof.Experience, Experience{Title: "Engineer", Company: "Acme"})

	clone := prof.Clone()
	clone.FullName = "Someone Else"
	clone.Skills[0] = "Rust"
	clone.Experience[0].Company = "Other"

	assert.Equal(t, "Jane Doe", prof.FullName)
	assert.Equal(t, []string{"Go"}, prof.Skills)
	assert.Equal(t, "Acme", prof.Experience[0].Company)
}

func TestClone_Nil(t *testing.T) {
	var prof *Profile
	assert.Nil(t, prof.Clone())
}
