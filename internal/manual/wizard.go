// Package manual implements the prompt-driven import path: a strictly
// ordered sequence of sections collecting the profile schema, with re-entry
// on invalid input. Given an identical input stream the output profile is
// identical — no external calls, no randomness.
package manual

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Sof1ane/aipply/internal/importer"
	"github.com/Sof1ane/aipply/internal/profile"
)

// Wizard collects a profile from an interactive input stream. Defaults from
// an existing profile are offered on scalar fields so a re-import never
// silently overwrites previous values with blanks.
type Wizard struct {
	in       *bufio.Scanner
	out      io.Writer
	defaults *profile.Profile
	validate *validator.Validate
}

// NewWizard builds a wizard reading answers from in and writing prompts to
// out. defaults may be nil for a first-time import.
func NewWizard(in io.Reader, out io.Writer, defaults *profile.Profile) *Wizard {
	return NewWizardFromScanner(bufio.NewScanner(in), out, defaults)
}

// NewWizardFromScanner reuses an existing scanner so callers that already
// prompt on the same stream do not lose buffered input.
func NewWizardFromScanner(in *bufio.Scanner, out io.Writer, defaults *profile.Profile) *Wizard {
	return &Wizard{
		in:       in,
		out:      out,
		defaults: defaults,
		validate: validator.New(),
	}
}

// inputClosed is returned when the input stream is exhausted mid-entry. It is
// the one manual-path failure that is not recovered by re-prompting.
func inputClosed() error {
	return &importer.ImportError{
		Kind:    importer.Aborted,
		Stage:   "manual entry",
		Message: "input stream closed before the profile was complete",
	}
}

// Run walks the sections in order: basic info, experience, education,
// skills, languages, then the optional extras. Partial data from an aborted
// run is discarded; re-running starts fresh.
func (w *Wizard) Run() (*profile.Profile, error) {
	prof := profile.New()

	fmt.Fprintln(w.out, "Let's build your profile step by step.")

	if err := w.basicInfo(prof); err != nil {
		return nil, err
	}
	if err := w.experienceSection(prof); err != nil {
		return nil, err
	}
	if err := w.educationSection(prof); err != nil {
		return nil, err
	}
	if err := w.skillsSection(prof); err != nil {
		return nil, err
	}
	if err := w.languagesSection(prof); err != nil {
		return nil, err
	}
	if err := w.extrasSection(prof); err != nil {
		return nil, err
	}

	if w.defaults != nil {
		prof = profile.Merge(w.defaults, prof)
	}
	if err := prof.Validate(); err != nil {
		// Required fields were enforced while prompting, so only date
		// ordering can still fail here; report it without tearing down.
		return nil, err
	}
	return prof, nil
}

func (w *Wizard) basicInfo(prof *profile.Profile) error {
	fmt.Fprintln(w.out, "\n-- Basic information --")

	var def profile.Profile
	if w.defaults != nil {
		def = *w.defaults
	}

	name, err := w.askRequired("Full name", def.FullName, "required,min=1")
	if err != nil {
		return err
	}
	prof.FullName = name

	title, err := w.ask("Professional title", def.Title)
	if err != nil {
		return err
	}
	prof.Title = title

	email, err := w.askRequired("Email", def.Email, "required,email")
	if err != nil {
		return err
	}
	prof.Email = email
	return nil
}

func (w *Wizard) experienceSection(prof *profile.Profile) error {
	fmt.Fprintln(w.out, "\n-- Work experience --")
	fmt.Fprintln(w.out, "Leave the job title empty to finish this section.")

	for {
		fmt.Fprintf(w.out, "\nExperience #%d:\n", len(prof.Experience)+1)
		title, err := w.ask("  Job title", "")
		if err != nil {
			return err
		}
		if title == "" {
			return nil
		}

		company, err := w.askRequired("  Company", "", "required,min=1")
		if err != nil {
			return err
		}
		start, err := w.askDate("  Start date (YYYY or YYYY-MM)")
		if err != nil {
			return err
		}
		end, err := w.askEndDate("  End date (YYYY or YYYY-MM, empty if current)", start)
		if err != nil {
			return err
		}
		description, err := w.ask("  Description", "")
		if err != nil {
			return err
		}

		prof.Experience = append(prof.Experience, profile.Experience{
			Title:       title,
			Company:     company,
			StartDate:   start,
			EndDate:     end,
			Description: description,
		})

		more, err := w.askYesNo("Add another experience?")
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
	}
}

func (w *Wizard) educationSection(prof *profile.Profile) error {
	fmt.Fprintln(w.out, "\n-- Education --")
	fmt.Fprintln(w.out, "Leave the degree empty to finish this section.")

	for {
		fmt.Fprintf(w.out, "\nEducation #%d:\n", len(prof.Education)+1)
		degree, err := w.ask("  Degree", "")
		if err != nil {
			return err
		}
		if degree == "" {
			return nil
		}

		school, err := w.askRequired("  School", "", "required,min=1")
		if err != nil {
			return err
		}
		field, err := w.ask("  Field of study", "")
		if err != nil {
			return err
		}
		graduation, err := w.askDate("  Graduation date (YYYY or YYYY-MM)")
		if err != nil {
			return err
		}

		prof.Education = append(prof.Education, profile.Education{
			Degree:         degree,
			FieldOfStudy:   field,
			School:         school,
			GraduationDate: graduation,
		})

		more, err := w.askYesNo("Add another education entry?")
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
	}
}

func (w *Wizard) skillsSection(prof *profile.Profile) error {
	fmt.Fprintln(w.out, "\n-- Skills --")
	raw, err := w.ask("Skills (comma-separated)", "")
	if err != nil {
		return err
	}
	prof.AddSkills(splitList(raw)...)
	return nil
}

func (w *Wizard) languagesSection(prof *profile.Profile) error {
	fmt.Fprintln(w.out, "\n-- Languages --")
	raw, err := w.ask("Languages, e.g. English (Native), French (Fluent)", "")
	if err != nil {
		return err
	}
	prof.Languages = append(prof.Languages, splitList(raw)...)
	return nil
}

func (w *Wizard) extrasSection(prof *profile.Profile) error {
	fmt.Fprintln(w.out, "\n-- Optional extras --")

	raw, err := w.ask("Certifications (comma-separated, empty to skip)", "")
	if err != nil {
		return err
	}
	prof.Certifications = append(prof.Certifications, splitList(raw)...)

	raw, err = w.ask("Volunteer experience (comma-separated, empty to skip)", "")
	if err != nil {
		return err
	}
	prof.VolunteerExperience = append(prof.VolunteerExperience, splitList(raw)...)
	return nil
}

// ask prompts once; an empty answer returns the default.
func (w *Wizard) ask(label, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(w.out, "%s [%s]: ", label, def)
	} else {
		fmt.Fprintf(w.out, "%s: ", label)
	}
	if !w.in.Scan() {
		return "", inputClosed()
	}
	answer := strings.TrimSpace(w.in.Text())
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

// askRequired re-prompts until the answer satisfies the validator rule.
func (w *Wizard) askRequired(label, def, rule string) (string, error) {
	for {
		answer, err := w.ask(label, def)
		if err != nil {
			return "", err
		}
		if w.validate.Var(answer, rule) == nil {
			return answer, nil
		}
		fmt.Fprintf(w.out, "  %s is required and must be valid, please try again.\n", strings.TrimSpace(label))
	}
}

// askDate re-prompts until the answer is empty or parses as a date.
func (w *Wizard) askDate(label string) (string, error) {
	for {
		answer, err := w.ask(label, "")
		if err != nil {
			return "", err
		}
		if answer == "" {
			return "", nil
		}
		if _, ok := profile.ParseDate(answer); ok {
			return answer, nil
		}
		fmt.Fprintln(w.out, "  Please use YYYY or YYYY-MM.")
	}
}

// askEndDate additionally re-prompts when the end date precedes the start.
func (w *Wizard) askEndDate(label, start string) (string, error) {
	startDate, haveStart := profile.ParseDate(start)
	for {
		answer, err := w.askDate(label)
		if err != nil {
			return "", err
		}
		if answer == "" || !haveStart {
			return answer, nil
		}
		endDate, ok := profile.ParseDate(answer)
		if !ok || !startDate.After(endDate) {
			return answer, nil
		}
		fmt.Fprintf(w.out, "  End date must not be before the start date (%s).\n", start)
	}
}

func (w *Wizard) askYesNo(label string) (bool, error) {
	for {
		answer, err := w.ask(label+" (y/n)", "")
		if err != nil {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "y", "yes":
			return true, nil
		case "n", "no", "":
			return false, nil
		}
		fmt.Fprintln(w.out, "  Please answer y or n.")
	}
}

// splitList splits a comma-separated answer, dropping blanks.
func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
