// Package profile defines the canonical profile record produced by either
// import path, together with its validation and merge rules.
package profile

import "strings"

// Profile is the canonical record of a person's resume-relevant data,
// regardless of import source. A Profile is built fresh per import session by
// exactly one importer and then handed to the resume builder.
type Profile struct {
	FullName            string       `json:"full_name" validate:"required,min=1"`
	Title               string       `json:"title,omitempty"`
	Email               string       `json:"email" validate:"required,email"`
	PhotoURL            string       `json:"photo_url,omitempty"`
	Experience          []Experience `json:"experience"`
	Education           []Education  `json:"education"`
	Skills              []string     `json:"skills"`
	Languages           []string     `json:"languages"`
	Certifications      []string     `json:"certifications,omitempty"`
	VolunteerExperience []string     `json:"volunteer_experience,omitempty"`
}

// Experience is a single position. StartDate and EndDate use "YYYY" or
// "YYYY-MM"; an empty EndDate means the position is current.
type Experience struct {
	Title       string `json:"title" validate:"required,min=1"`
	Company     string `json:"company" validate:"required,min=1"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	Description string `json:"description,omitempty"`
}

// Education is a single degree or qualification.
type Education struct {
	Degree         string `json:"degree" validate:"required,min=1"`
	FieldOfStudy   string `json:"field_of_study,omitempty"`
	School         string `json:"school" validate:"required,min=1"`
	GraduationDate string `json:"graduation_date,omitempty"`
}

// New returns an empty Profile with non-nil collection fields so that the
// serialized form always carries explicit empty arrays.
func New() *Profile {
	return &Profile{
		Experience: []Experience{},
		Education:  []Education{},
		Skills:     []string{},
		Languages:  []string{},
	}
}

// AddSkills appends skills, deduplicating case-insensitively while keeping
// first-seen order. Blank entries are dropped.
func (p *Profile) AddSkills(skills ...string) {
	seen := make(map[string]struct{}, len(p.Skills))
	for _, s := range p.Skills {
		seen[strings.ToLower(strings.TrimSpace(s))] = struct{}{}
	}
	for _, s := range skills {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		key := strings.ToLower(s)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		p.Skills = append(p.Skills, s)
	}
}

// Usable reports whether the profile meets the minimum contract for the
// resume builder: non-empty name and email.
func (p *Profile) Usable() bool {
	return strings.TrimSpace(p.FullName) != "" && strings.TrimSpace(p.Email) != ""
}

// Clone returns a deep copy of the profile.
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	out := *p
	out.Experience = append([]Experience(nil), p.Experience...)
	out.Education = append([]Education(nil), p.Education...)
	out.Skills = append([]string(nil), p.Skills...)
	out.Languages = append([]string(nil), p.Languages...)
	out.Certifications = append([]string(nil), p.Certifications...)
	out.VolunteerExperience = append([]string(nil), p.VolunteerExperience...)
	return &out
}
