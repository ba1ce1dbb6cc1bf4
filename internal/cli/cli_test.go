package cli

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"teachersday/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	for _, k := range []string{config.EnvImagesDir, config.EnvRoster, config.EnvFormat, config.EnvLogLevel, config.EnvLogFormat} {
		t.Setenv(k, "")
	}
	var out, errOut bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func writePNG(t *testing.T, path string) {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 6, 4))))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func TestResolve_JSON(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "chhaya mam.jpg"))

	out, _, err := runCLI(t, "--images", dir, "--log-level", "error", "resolve", "Chhaya Mam")
	require.NoError(t, err)

	var env struct {
		Data struct {
			Teacher    string `json:"teacher"`
			Identifier string `json:"identifier"`
			Status     string `json:"status"`
			File       string `json:"file"`
			Tier       string `json:"tier"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &env), out)
	assert.Equal(t, "ok", env.Data.Status)
	assert.Equal(t, "chhaya mam.jpg", env.Data.File)
	assert.Equal(t, "chhaya mam", env.Data.Identifier)
	assert.Equal(t, "extension", env.Data.Tier)
}

func TestResolve_NotFoundExitsWithError(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "images")

	out, errOut, err := runCLI(t, "--images", dir, "--log-level", "error", "resolve", "Vikas sir")
	require.Error(t, err)
	assert.Contains(t, out, `"status":"not_found"`)
	assert.Contains(t, out, "currently empty")
	assert.Contains(t, errOut, "no photo shown for Vikas sir")
	assert.DirExists(t, dir)
}

func TestResolve_UnusableFolder(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "images")
	require.NoError(t, os.WriteFile(dir, []byte("x"), 0o644))

	out, errOut, err := runCLI(t, "--images", dir, "--log-level", "error", "resolve", "Vikas sir")
	require.Error(t, err)
	assert.Contains(t, out, `"status":"folder_error"`)
	assert.Contains(t, errOut, "folder_error")
}

func TestTeachers_EDN(t *testing.T) {
	out, _, err := runCLI(t, "--images", t.TempDir(), "--format", "edn", "teachers")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, `{:data [{:file "rahul sir" :name "Rahul Sir"}`), out)
	assert.Equal(t, 7, strings.Count(out, ":name"), out)
}

func TestTeachers_FromRosterFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "roster.yaml")
	require.NoError(t, os.WriteFile(p, []byte("teachers:\n  - name: Ms Rao\n    file: rao\n"), 0o644))

	out, _, err := runCLI(t, "--images", t.TempDir(), "--roster", p, "teachers")
	require.NoError(t, err)
	assert.Equal(t, `{"data":[{"name":"Ms Rao","file":"rao"}]}`, strings.TrimSpace(out))
}

func TestFiles_ListsFolder(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "b.png"))
	writePNG(t, filepath.Join(dir, "a.png"))

	out, _, err := runCLI(t, "--images", dir, "files")
	require.NoError(t, err)

	var env struct {
		Data struct {
			Files []string `json:"files"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &env))
	assert.Equal(t, []string{"a.png", "b.png"}, env.Data.Files)
}

func TestBadLogLevel(t *testing.T) {
	_, errOut, err := runCLI(t, "--images", t.TempDir(), "--log-level", "loud", "teachers")
	require.Error(t, err)
	assert.Contains(t, errOut, "logging:")
}

func TestAdd_CopiesPhotoUnderIdentifier(t *testing.T) {
	src := filepath.Join(t.TempDir(), "IMG_0042.png")
	writePNG(t, src)
	dir := t.TempDir()

	out, _, err := runCLI(t, "--images", dir, "--log-level", "error", "add", "Vikas sir", src)
	require.NoError(t, err)
	assert.Contains(t, out, `"file":"vikas.png"`)
	assert.Contains(t, out, `"status":"ok"`)
	assert.FileExists(t, filepath.Join(dir, "vikas.png"))

	_, _, err = runCLI(t, "--images", dir, "--log-level", "error", "add", "Vikas sir", src)
	assert.Error(t, err, "second add without --force")
}
