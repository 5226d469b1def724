package profile

import "strings"

// Merge overlays an imported profile on top of an existing one when the user
// is re-importing. Blank scalar fields in the overlay keep the existing value,
// and empty repeatable sections keep the existing entries, so a re-import can
// never silently erase previously entered data.
func Merge(existing, imported *Profile) *Profile {
	if existing == nil {
		return imported.Clone()
	}
	if imported == nil {
		return existing.Clone()
	}

	out := imported.Clone()
	if strings.TrimSpace(out.FullName) == "" {
		out.FullName = existing.FullName
	}
	if strings.TrimSpace(out.Title) == "" {
		out.Title = existing.Title
	}
	if strings.TrimSpace(out.Email) == "" {
		out.Email = existing.Email
	}
	if strings.TrimSpace(out.PhotoURL) == "" {
		out.PhotoURL = existing.PhotoURL
	}
	if len(out.Experience) == 0 {
		out.Experience = append([]Experience(nil), existing.Experience...)
	}
	if len(out.Education) == 0 {
		out.Education = append([]Education(nil), existing.Education...)
	}
	if len(out.Skills) == 0 {
		out.Skills = append([]string(nil), existing.Skills...)
	}
	if len(out.Languages) == 0 {
		out.Languages = append([]string(nil), existing.Languages...)
	}
	if len(out.Certifications) == 0 {
		out.Certifications = append([]string(nil), existing.Certifications...)
	}
	if len(out.VolunteerExperience) == 0 {
		out.VolunteerExperience = append([]string(nil), existing.VolunteerExperience...)
	}
	return out
}
