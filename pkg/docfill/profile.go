package docfill

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Profile is the statically-typed data record a fill operates on. Profile
// stores deliver loosely-typed maps; DecodeProfile converts those into
// this shape once, at the resolver boundary, so the rest of the pipeline
// only ever sees strings and booleans.
type Profile struct {
	FirstName string `yaml:"firstName" mapstructure:"firstName"`
	LastName  string `yaml:"lastName" mapstructure:"lastName"`
	Email     string `yaml:"email" mapstructure:"email"`
	Phone     string `yaml:"phone" mapstructure:"phone"`
	Location  string `yaml:"location" mapstructure:"location"`
	LinkedIn  string `yaml:"linkedin" mapstructure:"linkedin"`
	Website   string `yaml:"website" mapstructure:"website"`
	Summary   string `yaml:"summary" mapstructure:"summary"`

	// HideLocation blanks the location group of placeholders and emits
	// the complementary showLocation/hideLocation condition flags.
	HideLocation bool `yaml:"hideLocation" mapstructure:"hideLocation"`

	WorkExperience  []WorkExperience `yaml:"workExperience" mapstructure:"workExperience"`
	SkillCategories []SkillCategory  `yaml:"skillCategories" mapstructure:"skillCategories"`
	Education       []Education      `yaml:"education" mapstructure:"education"`
	Certifications  []Certification  `yaml:"certifications" mapstructure:"certifications"`
}

// FullName returns "First Last" with either part optional.
func (p *Profile) FullName() string {
	if p.FirstName == "" {
		return p.LastName
	}
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

// WorkExperience is one employment entry. Description is free text; lines
// are trimmed and blank lines dropped before any bullet rendering.
type WorkExperience struct {
	Position    string `yaml:"position" mapstructure:"position"`
	Company     string `yaml:"company" mapstructure:"company"`
	Location    string `yaml:"location" mapstructure:"location"`
	StartDate   string `yaml:"startDate" mapstructure:"startDate"`
	EndDate     string `yaml:"endDate" mapstructure:"endDate"`
	Current     bool   `yaml:"current" mapstructure:"current"`
	Description string `yaml:"description" mapstructure:"description"`
}

// SkillCategory is a named group of skills.
type SkillCategory struct {
	Name   string   `yaml:"name" mapstructure:"name"`
	Skills []string `yaml:"skills" mapstructure:"skills"`
}

// Education is one education entry.
type Education struct {
	Degree      string `yaml:"degree" mapstructure:"degree"`
	Field       string `yaml:"field" mapstructure:"field"`
	Institution string `yaml:"institution" mapstructure:"institution"`
	Year        string `yaml:"year" mapstructure:"year"`
}

// Certification is one certification entry.
type Certification struct {
	Name   string `yaml:"name" mapstructure:"name"`
	Issuer string `yaml:"issuer" mapstructure:"issuer"`
	Year   string `yaml:"year" mapstructure:"year"`
}

// DecodeProfile converts a loosely-typed record (as delivered by the
// profile store) into a Profile. Unknown keys are ignored; scalar types
// are coerced weakly, so "true"/1 decode into booleans and numbers into
// strings.
func DecodeProfile(record map[string]interface{}) (*Profile, error) {
	var profile Profile
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &profile,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build profile decoder: %w", err)
	}
	if err := decoder.Decode(record); err != nil {
		return nil, fmt.Errorf("failed to decode profile record: %w", err)
	}
	return &profile, nil
}

// LoadProfile reads a YAML (or JSON, which YAML subsumes) profile file
// into a Profile via the same weak decoding path as DecodeProfile.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile file: %w", err)
	}

	var record map[string]interface{}
	if err := yaml.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to parse profile file %s: %w", path, err)
	}

	return DecodeProfile(record)
}
