package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	site, err := Default()
	require.NoError(t, err)

	require.Len(t, site.Skills, 9)
	assert.Equal(t, Skill{Name: "React", Level: 85}, site.Skills[2])

	require.Len(t, site.Projects, 6)
	assert.Equal(t, "E-commerce Platform", site.Projects[0].Title)
	assert.Equal(t, []string{"Next.js", "Tailwind CSS", "Stripe"}, site.Projects[0].Tags)

	assert.Equal(t, "Jitendra Kumar", site.Profile.Name)
	assert.Contains(t, string(site.About), "<strong>frontend developer</strong>")
}

func TestParseRejectsOutOfRangeLevel(t *testing.T) {
	data := []byte(`
profile: {name: A, role: B}
skills:
  - name: Go
    level: 120
`)
	_, err := Parse(data, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "skills[0].level")
	assert.Contains(t, err.Error(), "lte")
}

func TestParseRejectsMissingProjectTitle(t *testing.T) {
	data := []byte(`
profile: {name: A, role: B}
projects:
  - description: no title
`)
	_, err := Parse(data, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "projects[0].title")
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte("profile: {name: A, role: B}\ntheme: dark\n"), nil)
	assert.Error(t, err)
}

func TestParseKeepsInsertionOrder(t *testing.T) {
	data := []byte(`
profile: {name: A, role: B}
skills:
  - {name: Zig, level: 10}
  - {name: Ada, level: 90}
  - {name: Go, level: 50}
`)
	site, err := Parse(data, []byte("hi"))
	require.NoError(t, err)
	names := []string{site.Skills[0].Name, site.Skills[1].Name, site.Skills[2].Name}
	assert.Equal(t, []string{"Zig", "Ada", "Go"}, names)
	assert.Equal(t, "<p>hi</p>\n", string(site.About))
}
