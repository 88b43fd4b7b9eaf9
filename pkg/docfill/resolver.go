package docfill

import (
	"fmt"
	"strconv"
	"strings"
)

// PlaceholderMap maps a normalized token name (case-insensitive, trimmed)
// to its replacement string. All accepted spellings of a field resolve
// through the same entry, so any two spellings of one field always yield
// the same value.
type PlaceholderMap map[string]string

// ConditionMap maps a condition name to its boolean value. Condition
// names with no matching marker pair in the template are no-ops.
type ConditionMap map[string]bool

// Collections maps a collection name to its ordered items, keyed by the
// normalized name used in {{#each name}} markers.
type Collections map[string]*LoopCollection

// LoopCollection is a named, ordered sequence of typed items backing a
// loop block.
type LoopCollection struct {
	Name  string
	Items []LoopItem
}

// LoopItem is one collection element as seen by the loop expander:
// scalar fields for item-level placeholders, and named sub-lists for
// nested per-line loops (e.g. description bullets).
type LoopItem struct {
	Fields   map[string]string
	SubLists map[string][]string
}

// normalizeToken canonicalizes a placeholder or marker name.
func normalizeToken(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Resolve derives the placeholder map, condition map, and loop
// collections from a profile. Absent fields resolve to the empty string;
// Resolve never fails.
func Resolve(profile *Profile, config *Config) (PlaceholderMap, ConditionMap, Collections) {
	if profile == nil {
		profile = &Profile{}
	}
	if config == nil {
		config = GetGlobalConfig()
	}

	placeholders := make(PlaceholderMap)
	conditions := make(ConditionMap)

	location := profile.Location
	if profile.HideLocation {
		location = ""
	}

	placeholders.set("firstName", profile.FirstName)
	placeholders.set("lastName", profile.LastName)
	placeholders.set("fullName", profile.FullName())
	placeholders.set("name", profile.FullName())
	placeholders.set("email", profile.Email)
	placeholders.set("phone", profile.Phone)
	placeholders.set("location", location)
	placeholders.set("linkedin", profile.LinkedIn)
	placeholders.set("website", profile.Website)
	placeholders.set("summary", normalizeFreeText(profile.Summary))

	conditions["hassummary"] = strings.TrimSpace(profile.Summary) != ""
	conditions["hasworkexperience"] = len(profile.WorkExperience) > 0
	conditions["hasskills"] = len(profile.SkillCategories) > 0
	conditions["haseducation"] = len(profile.Education) > 0
	conditions["hascertifications"] = len(profile.Certifications) > 0
	conditions["showlocation"] = !profile.HideLocation
	conditions["hidelocation"] = profile.HideLocation

	resolveWorkExperience(placeholders, profile, config.MaxWorkEntries)
	resolveSkills(placeholders, profile, config.MaxSkillCategories)
	resolveEducation(placeholders, profile, config.MaxEducationEntries)
	resolveCertifications(placeholders, profile, config.MaxCertifications)

	return placeholders, conditions, buildCollections(profile)
}

func (m PlaceholderMap) set(name, value string) {
	m[normalizeToken(name)] = value
}

// endDateOf renders an entry's end date, honoring the Current flag: a
// current entry is always "Present" irrespective of any supplied value.
func endDateOf(entry WorkExperience) string {
	if entry.Current {
		return "Present"
	}
	return normalizeYear(entry.EndDate)
}

func durationOf(entry WorkExperience) string {
	return normalizeYear(entry.StartDate) + "-" + endDateOf(entry)
}

// formatWorkEntry renders a pre-formatted block for one work entry, used
// by the indexed workExperienceN placeholders and the catenated block.
func formatWorkEntry(entry WorkExperience, location string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s at %s (%s)", entry.Position, entry.Company, durationOf(entry))
	if location != "" {
		b.WriteString("\n" + location)
	}
	for _, line := range splitLines(entry.Description) {
		b.WriteString("\n" + defaultBulletGlyph + " " + line)
	}
	return b.String()
}

func resolveWorkExperience(placeholders PlaceholderMap, profile *Profile, max int) {
	var all []string
	for i := 0; i < max; i++ {
		n := strconv.Itoa(i + 1)
		var entry WorkExperience
		if i < len(profile.WorkExperience) {
			entry = profile.WorkExperience[i]
		}

		location := entry.Location
		if profile.HideLocation {
			location = ""
		}

		placeholders.set("position"+n, entry.Position)
		placeholders.set("company"+n, entry.Company)
		placeholders.set("jobLocation"+n, location)
		placeholders.set("startDate"+n, normalizeYear(entry.StartDate))
		if i < len(profile.WorkExperience) {
			placeholders.set("endDate"+n, endDateOf(entry))
			placeholders.set("duration"+n, durationOf(entry))
			placeholders.set("workExperience"+n, formatWorkEntry(entry, location))
			all = append(all, formatWorkEntry(entry, location))
		} else {
			placeholders.set("endDate"+n, "")
			placeholders.set("duration"+n, "")
			placeholders.set("workExperience"+n, "")
		}
		placeholders.set("description"+n, normalizeFreeText(entry.Description))
	}
	placeholders.set("workExperienceAll", strings.Join(all, "\n\n"))
}

func resolveSkills(placeholders PlaceholderMap, profile *Profile, max int) {
	var all []string
	for i := 0; i < max; i++ {
		n := strconv.Itoa(i + 1)
		var category SkillCategory
		if i < len(profile.SkillCategories) {
			category = profile.SkillCategories[i]
		}
		joined := strings.Join(category.Skills, ", ")
		placeholders.set("skillCategory"+n, category.Name)
		placeholders.set("skills"+n, joined)
		if category.Name != "" {
			all = append(all, category.Name+": "+joined)
		}
	}
	placeholders.set("skillsAll", strings.Join(all, "\n"))
}

func formatEducation(entry Education) string {
	if entry.Degree == "" && entry.Institution == "" {
		return ""
	}
	degree := entry.Degree
	if entry.Field != "" {
		degree += " in " + entry.Field
	}
	parts := []string{}
	if degree != "" {
		parts = append(parts, degree)
	}
	if entry.Institution != "" {
		parts = append(parts, entry.Institution)
	}
	formatted := strings.Join(parts, ", ")
	if year := normalizeYear(entry.Year); year != "" {
		formatted += " (" + year + ")"
	}
	return formatted
}

func resolveEducation(placeholders PlaceholderMap, profile *Profile, max int) {
	var all []string
	for i := 0; i < max; i++ {
		n := strconv.Itoa(i + 1)
		var entry Education
		if i < len(profile.Education) {
			entry = profile.Education[i]
		}
		placeholders.set("degree"+n, entry.Degree)
		placeholders.set("field"+n, entry.Field)
		placeholders.set("institution"+n, entry.Institution)
		placeholders.set("educationYear"+n, normalizeYear(entry.Year))
		placeholders.set("education"+n, formatEducation(entry))
		if formatted := formatEducation(entry); formatted != "" {
			all = append(all, formatted)
		}
	}
	placeholders.set("educationAll", strings.Join(all, "\n"))
}

func formatCertification(entry Certification) string {
	if entry.Name == "" {
		return ""
	}
	formatted := entry.Name
	if entry.Issuer != "" {
		formatted += ", " + entry.Issuer
	}
	if year := normalizeYear(entry.Year); year != "" {
		formatted += " (" + year + ")"
	}
	return formatted
}

func resolveCertifications(placeholders PlaceholderMap, profile *Profile, max int) {
	var all []string
	for i := 0; i < max; i++ {
		n := strconv.Itoa(i + 1)
		var entry Certification
		if i < len(profile.Certifications) {
			entry = profile.Certifications[i]
		}
		placeholders.set("certification"+n, formatCertification(entry))
		if formatted := formatCertification(entry); formatted != "" {
			all = append(all, formatted)
		}
	}
	placeholders.set("certificationsAll", strings.Join(all, "\n"))
}

// buildCollections maps the profile's typed slices into the generic item
// shape the loop expander consumes.
func buildCollections(profile *Profile) Collections {
	collections := make(Collections)

	work := &LoopCollection{Name: "workExperience"}
	for _, entry := range profile.WorkExperience {
		location := entry.Location
		if profile.HideLocation {
			location = ""
		}
		work.Items = append(work.Items, LoopItem{
			Fields: map[string]string{
				"position":    entry.Position,
				"company":     entry.Company,
				"location":    location,
				"startdate":   normalizeYear(entry.StartDate),
				"enddate":     endDateOf(entry),
				"duration":    durationOf(entry),
				"description": normalizeFreeText(entry.Description),
			},
			SubLists: map[string][]string{
				"description": splitLines(entry.Description),
			},
		})
	}
	collections[normalizeToken(work.Name)] = work

	skills := &LoopCollection{Name: "skillCategories"}
	for _, category := range profile.SkillCategories {
		skills.Items = append(skills.Items, LoopItem{
			Fields: map[string]string{
				"category": category.Name,
				"name":     category.Name,
				"skills":   strings.Join(category.Skills, ", "),
			},
			SubLists: map[string][]string{
				"skills": category.Skills,
			},
		})
	}
	collections[normalizeToken(skills.Name)] = skills

	education := &LoopCollection{Name: "education"}
	for _, entry := range profile.Education {
		education.Items = append(education.Items, LoopItem{
			Fields: map[string]string{
				"degree":      entry.Degree,
				"field":       entry.Field,
				"institution": entry.Institution,
				"year":        normalizeYear(entry.Year),
			},
		})
	}
	collections[normalizeToken(education.Name)] = education

	certifications := &LoopCollection{Name: "certifications"}
	for _, entry := range profile.Certifications {
		certifications.Items = append(certifications.Items, LoopItem{
			Fields: map[string]string{
				"name":   entry.Name,
				"issuer": entry.Issuer,
				"year":   normalizeYear(entry.Year),
			},
		})
	}
	collections[normalizeToken(certifications.Name)] = certifications

	return collections
}
