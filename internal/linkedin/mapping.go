package linkedin

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Sof1ane/aipply/internal/profile"
)

// Response shapes for the subset of the LinkedIn v2 API we read. The provider
// returns much larger objects; only the fields mapped into the profile schema
// are unmarshalled.

type meResponse struct {
	ID                 string          `json:"id"`
	LocalizedFirstName string          `json:"localizedFirstName"`
	LocalizedLastName  string          `json:"localizedLastName"`
	LocalizedHeadline  string          `json:"localizedHeadline"`
	FirstName          localizedField  `json:"firstName"`
	LastName           localizedField  `json:"lastName"`
	Headline           localizedField  `json:"headline"`
	ProfilePicture     *profilePicture `json:"profilePicture"`
}

// localizedField is LinkedIn's locale-keyed string representation, e.g.
// {"localized": {"en_US": "Jane"}, "preferredLocale": {...}}.
type localizedField struct {
	Localized       map[string]string `json:"localized"`
	PreferredLocale struct {
		Country  string `json:"country"`
		Language string `json:"language"`
	} `json:"preferredLocale"`
}

// value picks the preferred locale when present, otherwise the first entry in
// sorted key order so the result is deterministic.
func (f localizedField) value() string {
	if len(f.Localized) == 0 {
		return ""
	}
	if f.PreferredLocale.Language != "" {
		key := f.PreferredLocale.Language + "_" + f.PreferredLocale.Country
		if v, ok := f.Localized[key]; ok {
			return v
		}
	}
	keys := make([]string, 0, len(f.Localized))
	for k := range f.Localized {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return f.Localized[keys[0]]
}

type profilePicture struct {
	DisplayImage struct {
		Elements []struct {
			Identifiers []struct {
				Identifier string `json:"identifier"`
			} `json:"identifiers"`
		} `json:"elements"`
	} `json:"displayImage~"`
}

// bestURL returns the last (highest resolution) rendition, if any.
func (p *profilePicture) bestURL() string {
	if p == nil {
		return ""
	}
	elements := p.DisplayImage.Elements
	for i := len(elements) - 1; i >= 0; i-- {
		if len(elements[i].Identifiers) > 0 {
			return elements[i].Identifiers[0].Identifier
		}
	}
	return ""
}

type emailResponse struct {
	Elements []struct {
		Handle struct {
			EmailAddress string `json:"emailAddress"`
		} `json:"handle~"`
	} `json:"elements"`
}

func (r *emailResponse) address() string {
	if r == nil || len(r.Elements) == 0 {
		return ""
	}
	return r.Elements[0].Handle.EmailAddress
}

// apiDate is LinkedIn's {month, year} date object.
type apiDate struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

// format renders the date as "YYYY-MM", or "YYYY" when the month is absent.
func (d *apiDate) format() string {
	if d == nil || d.Year == 0 {
		return ""
	}
	if d.Month == 0 {
		return fmt.Sprintf("%04d", d.Year)
	}
	return fmt.Sprintf("%04d-%02d", d.Year, d.Month)
}

type positionsResponse struct {
	Elements []struct {
		Title     string   `json:"title"`
		Summary   string   `json:"summary"`
		StartDate *apiDate `json:"startDate"`
		EndDate   *apiDate `json:"endDate"`
		Company   struct {
			Name string `json:"name"`
		} `json:"company"`
	} `json:"elements"`
}

type educationsResponse struct {
	Elements []struct {
		SchoolName   string   `json:"schoolName"`
		DegreeName   string   `json:"degreeName"`
		FieldOfStudy string   `json:"fieldOfStudy"`
		StartDate    *apiDate `json:"startDate"`
		EndDate      *apiDate `json:"endDate"`
	} `json:"elements"`
}

type skillsResponse struct {
	Elements []struct {
		Name string `json:"name"`
	} `json:"elements"`
}

// mapProfile assembles the canonical record from the provider responses.
// Optional responses may be nil; their fields are simply left unset.
func mapProfile(me *meResponse, email *emailResponse, positions *positionsResponse, educations *educationsResponse, skills *skillsResponse) *profile.Profile {
	prof := profile.New()

	if me != nil {
		first := me.LocalizedFirstName
		if first == "" {
			first = me.FirstName.value()
		}
		last := me.LocalizedLastName
		if last == "" {
			last = me.LastName.value()
		}
		prof.FullName = strings.TrimSpace(first + " " + last)

		prof.Title = me.LocalizedHeadline
		if prof.Title == "" {
			prof.Title = me.Headline.value()
		}
		prof.PhotoURL = me.ProfilePicture.bestURL()
	}

	prof.Email = email.address()

	if positions != nil {
		for _, pos := range positions.Elements {
			title := pos.Title
			if title == "" {
				title = "Unknown Title"
			}
			company := pos.Company.Name
			if company == "" {
				company = "Unknown Company"
			}
			prof.Experience = append(prof.Experience, profile.Experience{
				Title:       title,
				Company:     company,
				StartDate:   pos.StartDate.format(),
				EndDate:     pos.EndDate.format(),
				Description: pos.Summary,
			})
		}
	}

	if educations != nil {
		for _, edu := range educations.Elements {
			degree := edu.DegreeName
			if degree == "" {
				degree = edu.FieldOfStudy
			}
			if degree == "" {
				degree = "Unknown Degree"
			}
			school := edu.SchoolName
			if school == "" {
				school = "Unknown School"
			}
			prof.Education = append(prof.Education, profile.Education{
				Degree:         degree,
				FieldOfStudy:   edu.FieldOfStudy,
				School:         school,
				GraduationDate: edu.EndDate.format(),
			})
		}
	}

	if skills != nil {
		for _, s := range skills.Elements {
			prof.AddSkills(s.Name)
		}
	}

	// The headline convention in the original data: fall back to the most
	// recent role when the provider has no headline.
	if prof.Title == "" && len(prof.Experience) > 0 {
		prof.Title = prof.Experience[0].Title
	}

	return prof
}
