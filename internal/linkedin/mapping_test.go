package linkedin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalizedField_Value(t *testing.T) {
	t.Run("preferred locale wins", func(t *testing.T) {
		f := localizedField{Localized: map[string]string{"en_US": "Jane", "fr_FR": "Jeanne"}}
		f.PreferredLocale.Language = "fr"
		f.PreferredLocale.Country = "FR"
		assert.Equal(t, "Jeanne", f.value())
	})

	t.Run("deterministic without preferred locale", func(t *testing.T) {
		f := localizedField{Localized: map[string]string{"fr_FR": "Jeanne", "en_US": "Jane"}}
		for i := 0; i < 20; i++ {
			assert.Equal(t, "Jane", f.value(), "first key in sorted order must always win")
		}
	})

	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, "", localizedField{}.value())
	})
}

func TestAPIDate_Format(t *testing.T) {
	tests := []struct {
		name string
		date *apiDate
		want string
	}{
		{"year and month", &apiDate{Year: 2020, Month: 3}, "2020-03"},
		{"year only", &apiDate{Year: 2020}, "2020"},
		{"nil", nil, ""},
		{"zero year", &apiDate{Month: 3}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.date.format())
		})
	}
}

func TestProfilePicture_BestURL(t *testing.T) {
	var pic profilePicture
	pic.DisplayImage.Elements = []struct {
		Identifiers []struct {
			Identifier string `json:"identifier"`
		} `json:"identifiers"`
	}{
		{Identifiers: []struct {
			Identifier string `json:"identifier"`
		}{{Identifier: "https://cdn.example.com/100x100"}}},
		{Identifiers: []struct {
			Identifier string `json:"identifier"`
		}{{Identifier: "https://cdn.example.com/800x800"}}},
	}

	assert.Equal(t, "https://cdn.example.com/800x800", pic.bestURL())
	assert.Equal(t, "", (*profilePicture)(nil).bestURL())
}

func TestMapProfile_MinimalResponse(t *testing.T) {
	me := &meResponse{
		LocalizedFirstName: "Jane",
		LocalizedLastName:  "Doe",
		LocalizedHeadline:  "Senior Gopher",
	}
	email := &emailResponse{}
	email.Elements = append(email.Elements, struct {
		Handle struct {
			EmailAddress string `json:"emailAddress"`
		} `json:"handle~"`
	}{})
	email.Elements[0].Handle.EmailAddress = "jane.doe@example.com"

	prof := mapProfile(me, email, nil, nil, nil)

	assert.Equal(t, "Jane Doe", prof.FullName)
	assert.Equal(t, "Senior Gopher", prof.Title)
	assert.Equal(t, "jane.doe@example.com", prof.Email)
	assert.Empty(t, prof.Experience)
	assert.Empty(t, prof.Education)
	assert.Empty(t, prof.Skills)
	assert.NotNil(t, prof.Experience, "unset sections must stay explicit empty arrays")
	assert.NotNil(t, prof.Education)
}

func TestMapProfile_LocalizedFallback(t *testing.T) {
	me := &meResponse{}
	me.FirstName.Localized = map[string]string{"en_US": "Jane"}
	me.LastName.Localized = map[string]string{"en_US": "Doe"}

	prof := mapProfile(me, nil, nil, nil, nil)
	assert.Equal(t, "Jane Doe", prof.FullName)
}

func TestMapProfile_PositionDefaults(t *testing.T) {
	positions := &positionsResponse{}
	positions.Elements = make([]struct {
		Title     string   `json:"title"`
		Summary   string   `json:"summary"`
		StartDate *apiDate `json:"startDate"`
		EndDate   *apiDate `json:"endDate"`
		Company   struct {
			Name string `json:"name"`
		} `json:"company"`
	}, 1)
	positions.Elements[0].StartDate = &apiDate{Year: 2021, Month: 5}

	prof := mapProfile(&meResponse{}, nil, positions, nil, nil)

	assert.Equal(t, "Unknown Title", prof.Experience[0].Title)
	assert.Equal(t, "Unknown Company", prof.Experience[0].Company)
	assert.Equal(t, "2021-05", prof.Experience[0].StartDate)
	assert.Equal(t, "", prof.Experience[0].EndDate)
}

func TestMapProfile_EducationDefaults(t *testing.T) {
	educations := &educationsResponse{}
	educations.Elements = make([]struct {
		SchoolName   string   `json:"schoolName"`
		DegreeName   string   `json:"degreeName"`
		FieldOfStudy string   `json:"fieldOfStudy"`
		StartDate    *apiDate `json:"startDate"`
		EndDate      *apiDate `json:"endDate"`
	}, 2)
	educations.Elements[0].DegreeName = "BSc"
	educations.Elements[0].FieldOfStudy = "CS"
	// Second element carries no school, degree, or field at all.

	prof := mapProfile(&meResponse{}, nil, nil, educations, nil)

	require.Len(t, prof.Education, 2)
	assert.Equal(t, "BSc", prof.Education[0].Degree)
	assert.Equal(t, "Unknown School", prof.Education[0].School)
	assert.Equal(t, "Unknown Degree", prof.Education[1].Degree)
	assert.Equal(t, "Unknown School", prof.Education[1].School)
}

func TestMapProfile_TitleFallsBackToFirstPosition(t *testing.T) {
	positions := &positionsResponse{}
	positions.Elements = make([]struct {
		Title     string   `json:"title"`
		Summary   string   `json:"summary"`
		StartDate *apiDate `json:"startDate"`
		EndDate   *apiDate `json:"endDate"`
		Company   struct {
			Name string `json:"name"`
		} `json:"company"`
	}, 1)
	positions.Elements[0].Title = "Platform Engineer"
	positions.Elements[0].Company.Name = "Acme"

	prof := mapProfile(&meResponse{}, nil, positions, nil, nil)
	assert.Equal(t, "Platform Engineer", prof.Title)
}

func TestMapProfile_SkillsDeduplicated(t *testing.T) {
	skills := &skillsResponse{}
	skills.Elements = make([]struct {
		Name string `json:"name"`
	}, 3)
	skills.Elements[0].Name = "Go"
	skills.Elements[1].Name = "go"
	skills.Elements[2].Name = "SQL"

	prof := mapProfile(&meResponse{}, nil, nil, nil, skills)
	assert.Equal(t, []string{"Go", "SQL"}, prof.Skills)
}
