package store

import (
	"encoding/json"
	"strings"

	"github.com/Sof1ane/aipply/internal/profile"
)

// Older releases stored the profile with a nested identity object, and the
// very first ones used French or Spanish key sets. All three shapes are
// migrated on load so existing users keep their data.

// legacyProfile is the nested-identity schema, with aliased fields covering
// the French and Spanish variants.
type legacyProfile struct {
	Identity struct {
		Name  string `json:"name"`
		Title string `json:"title"`
		Email string `json:"email"`
	} `json:"identity"`
	Experiences []legacyExperience `json:"experiences"`
	Education   []legacyEducation  `json:"education"`
	Skills      struct {
		Technical      []string `json:"technical"`
		Soft           []string `json:"soft"`
		Methodological []string `json:"methodological"`
	} `json:"skills"`
	Languages []string `json:"languages"`
}

type legacyExperience struct {
	Role     string   `json:"role"`
	Company  string   `json:"company"`
	Dates    string   `json:"dates"`
	Missions []string `json:"missions"`
}

type legacyEducation struct {
	Degree string `json:"degree"`
	School string `json:"school"`
	Dates  string `json:"dates"`
}

// frenchKeyMap and spanishKeyMap translate localized keys to the legacy
// English schema before conversion.
var frenchKeyMap = map[string]string{
	"identite": "identity", "nom": "name", "titre": "title", "courriel": "email",
	"entreprise": "company", "poste": "role", "missions": "missions",
	"competences": "skills", "techniques": "technical", "methodologiques": "methodological",
	"formation": "education", "diplome": "degree", "ecole": "school",
	"langues": "languages",
}

var spanishKeyMap = map[string]string{
	"identidad": "identity", "nombre": "name", "titulo": "title", "correo": "email",
	"empresa": "company", "puesto": "role", "misiones": "missions",
	"competencias": "skills", "tecnicas": "technical", "metodologicas": "methodological",
	"formacion": "education", "fechas": "dates",
	"idiomas": "languages",
}

// isLegacy detects any of the pre-canonical shapes by their signature keys.
func isLegacy(raw map[string]json.RawMessage) bool {
	for _, key := range []string{"identity", "identite", "identidad"} {
		if _, ok := raw[key]; ok {
			return true
		}
	}
	return false
}

// migrateLegacy converts a legacy profile document to the canonical schema.
func migrateLegacy(content []byte) (*profile.Profile, error) {
	normalized := content
	for _, keyMap := range []map[string]string{frenchKeyMap, spanishKeyMap} {
		normalized = translateKeys(normalized, keyMap)
	}

	var legacy legacyProfile
	if err := json.Unmarshal(normalized, &legacy); err != nil {
		return nil, err
	}

	prof := profile.New()
	prof.FullName = legacy.Identity.Name
	prof.Title = legacy.Identity.Title
	prof.Email = legacy.Identity.Email

	for _, exp := range legacy.Experiences {
		start, end := splitDateRange(exp.Dates)
		prof.Experience = append(prof.Experience, profile.Experience{
			Title:       exp.Role,
			Company:     exp.Company,
			StartDate:   start,
			EndDate:     end,
			Description: strings.Join(exp.Missions, "; "),
		})
	}
	for _, edu := range legacy.Education {
		_, end := splitDateRange(edu.Dates)
		if end == "" {
			end = strings.TrimSpace(edu.Dates)
		}
		prof.Education = append(prof.Education, profile.Education{
			Degree:         edu.Degree,
			School:         edu.School,
			GraduationDate: end,
		})
	}

	prof.AddSkills(legacy.Skills.Technical...)
	prof.AddSkills(legacy.Skills.Soft...)
	prof.AddSkills(legacy.Skills.Methodological...)
	prof.Languages = append(prof.Languages, legacy.Languages...)

	return prof, nil
}

// translateKeys rewrites JSON object keys through the map. It works on the
// decoded generic structure so values are never touched.
func translateKeys(content []byte, keyMap map[string]string) []byte {
	var doc any
	if err := json.Unmarshal(content, &doc); err != nil {
		return content
	}
	translated := translateValue(doc, keyMap)
	out, err := json.Marshal(translated)
	if err != nil {
		return content
	}
	return out
}

func translateValue(v any, keyMap map[string]string) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, inner := range val {
			if mapped, ok := keyMap[k]; ok {
				k = mapped
			}
			out[k] = translateValue(inner, keyMap)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, inner := range val {
			out[i] = translateValue(inner, keyMap)
		}
		return out
	default:
		return v
	}
}

// splitDateRange splits "2020 - 2023" style ranges. "Present" and similar
// open-ended markers yield an empty end date.
func splitDateRange(dates string) (start, end string) {
	parts := strings.SplitN(dates, " - ", 2)
	if len(parts) < 2 {
		parts = strings.SplitN(dates, "-", 2)
	}
	start = strings.TrimSpace(parts[0])
	if len(parts) == 2 {
		end = strings.TrimSpace(parts[1])
	}
	if strings.EqualFold(end, "present") {
		end = ""
	}
	return start, end
}
