package roster

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_NamesInOrder(t *testing.T) {
	r := Default()
	assert.Equal(t, []string{
		"Rahul Sir", "Chhaya Mam", "Jay sir", "Suraj sir", "Vaishanavi mam", "Vikas sir", "Priyanka mam",
	}, r.Names())
	assert.Equal(t, "Rahul Sir", r.First())
}

func TestDefault_Identifiers(t *testing.T) {
	r := Default()
	cases := map[string]string{
		"Rahul Sir":      "rahul sir",
		"Chhaya Mam":     "chhaya mam",
		"Jay sir":        "jay",
		"Suraj sir":      "suraj",
		"Vaishanavi mam": "vaishanavi",
		"Vikas sir":      "vikas",
		"Priyanka mam":   "priyanka",
	}
	for name, want := range cases {
		assert.True(t, r.Contains(name))
		assert.Equal(t, want, r.Identifier(name), name)
	}
}

func TestIdentifier_UnknownNameFallsBackToName(t *testing.T) {
	r := Default()
	assert.False(t, r.Contains("Guest Lecturer"))
	assert.Equal(t, "Guest Lecturer", r.Identifier("Guest Lecturer"))
}

func TestTeachers_ReturnsCopy(t *testing.T) {
	r := Default()
	ts := r.Teachers()
	ts[0].File = "changed"
	assert.Equal(t, "rahul sir", r.Identifier("Rahul Sir"))
}

func TestLoad_EmptyPathIsDefault(t *testing.T) {
	r, err := Load("  ")
	require.NoError(t, err)
	assert.Equal(t, Default().Names(), r.Names())
}

func TestLoad_YAML(t *testing.T) {
	p := filepath.Join(t.TempDir(), "roster.yaml")
	require.NoError(t, os.WriteFile(p, []byte(`
title: Thank you
teachers:
  - name: Ms. Rao
    file: rao.jpg
  - name: Mr Khan
`), 0o644))

	r, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ms. Rao", "Mr Khan"}, r.Names())
	assert.Equal(t, "rao.jpg", r.Identifier("Ms. Rao"))
	assert.Equal(t, "Mr Khan", r.Identifier("Mr Khan"))
	assert.Equal(t, "Thank you", r.Title())
	assert.Equal(t, defaultSubtitle, r.Subtitle())
	assert.Equal(t, defaultGreeting, r.Greeting())
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]string{
		"empty":     "title: x\n",
		"no name":   "teachers:\n  - file: a\n",
		"duplicate": "teachers:\n  - name: A\n  - name: A\n",
		"bad yaml":  "teachers: [\n",
	}
	for label, body := range cases {
		p := filepath.Join(t.TempDir(), "roster.yaml")
		require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
		_, err := Load(p)
		assert.Error(t, err, label)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
