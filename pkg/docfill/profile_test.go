package docfill

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFullName(t *testing.T) {
	tests := []struct {
		first, last, want string
	}{
		{"Ada", "Lovelace", "Ada Lovelace"},
		{"Ada", "", "Ada"},
		{"", "Lovelace", "Lovelace"},
		{"", "", ""},
	}
	for _, tt := range tests {
		p := &Profile{FirstName: tt.first, LastName: tt.last}
		assert.Equal(t, tt.want, p.FullName())
	}
}

func TestDecodeProfile(t *testing.T) {
	record := map[string]interface{}{
		"firstName": "Ada",
		"lastName":  "Lovelace",
		"email":     "ada@example.com",
		// Weak typing: numbers and strings coerce into the target types.
		"phone":        5550100,
		"hideLocation": "true",
		"workExperience": []interface{}{
			map[string]interface{}{
				"position":  "Engineer",
				"company":   "Acme",
				"current":   1,
				"startDate": "2020-01-01",
			},
		},
		"skillCategories": []interface{}{
			map[string]interface{}{
				"name":   "Languages",
				"skills": []interface{}{"Go", "Python"},
			},
		},
		"unknownKey": "ignored",
	}

	profile, err := DecodeProfile(record)
	require.NoError(t, err)

	assert.Equal(t, "Ada", profile.FirstName)
	assert.Equal(t, "5550100", profile.Phone)
	assert.True(t, profile.HideLocation)
	require.Len(t, profile.WorkExperience, 1)
	assert.Equal(t, "Engineer", profile.WorkExperience[0].Position)
	assert.True(t, profile.WorkExperience[0].Current)
	require.Len(t, profile.SkillCategories, 1)
	assert.Equal(t, []string{"Go", "Python"}, profile.SkillCategories[0].Skills)
}

func TestDecodeProfileEmptyRecord(t *testing.T) {
	profile, err := DecodeProfile(map[string]interface{}{})
	require.NoError(t, err)
	assert.Equal(t, &Profile{}, profile)
}

func TestLoadProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	content := `firstName: Ada
lastName: Lovelace
summary: |
  Analytical engine programmer.
workExperience:
  - position: Engineer
    company: Acme
    startDate: "2020-01-01"
    current: true
    description: |
      Built X
      Shipped Y
education:
  - degree: BSc
    field: Mathematics
    institution: University of London
    year: "1840"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	profile, err := LoadProfile(path)
	require.NoError(t, err)

	assert.Equal(t, "Ada Lovelace", profile.FullName())
	require.Len(t, profile.WorkExperience, 1)
	assert.Equal(t, "Acme", profile.WorkExperience[0].Company)
	assert.True(t, profile.WorkExperience[0].Current)
	assert.Contains(t, profile.WorkExperience[0].Description, "Built X")
	require.Len(t, profile.Education, 1)
	assert.Equal(t, "1840", profile.Education[0].Year)
}

func TestLoadProfileErrors(t *testing.T) {
	_, err := LoadProfile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("firstName: [unclosed"), 0o644))
	_, err = LoadProfile(bad)
	assert.Error(t, err)
}
