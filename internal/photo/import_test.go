package photo

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImport_KeepsProbedExtension(t *testing.T) {
	src := filepath.Join(t.TempDir(), "IMG_0042.PNG")
	writePNG(t, src, 2, 2)
	dir := filepath.Join(t.TempDir(), "images")

	m, err := Import(src, dir, "vikas", false)
	require.NoError(t, err)
	assert.Equal(t, "vikas.png", m.Name)

	got, err := Resolve("vikas", dir)
	require.NoError(t, err)
	assert.Equal(t, m.Path, got.Path)
}

func TestImport_DerivesExtensionFromFormat(t *testing.T) {
	src := filepath.Join(t.TempDir(), "scan.bin")
	writeJPEG(t, src, 2, 2)
	dir := t.TempDir()

	m, err := Import(src, dir, "chhaya mam.png", false)
	require.NoError(t, err)
	assert.Equal(t, "chhaya mam.jpg", m.Name)
}

func TestImport_RefusesOverwriteUnlessAsked(t *testing.T) {
	src := filepath.Join(t.TempDir(), "a.png")
	writePNG(t, src, 2, 2)
	dir := t.TempDir()

	_, err := Import(src, dir, "jay", false)
	require.NoError(t, err)
	_, err = Import(src, dir, "jay", false)
	assert.ErrorIs(t, err, ErrExists)
	_, err = Import(src, dir, "jay", true)
	assert.NoError(t, err)
}

func TestImport_RejectsBadInput(t *testing.T) {
	dir := t.TempDir()

	junk := filepath.Join(t.TempDir(), "junk.jpg")
	require.NoError(t, os.WriteFile(junk, []byte("nope"), 0o644))
	_, err := Import(junk, dir, "jay", false)
	var ue *UndecodableError
	assert.ErrorAs(t, err, &ue)

	var buf bytes.Buffer
	require.NoError(t, gif.Encode(&buf, image.NewPaletted(image.Rect(0, 0, 1, 1), color.Palette{color.Black, color.White}), nil))
	g := filepath.Join(t.TempDir(), "anim.gif")
	require.NoError(t, os.WriteFile(g, buf.Bytes(), 0o644))
	_, err = Import(g, dir, "jay", false)
	assert.ErrorContains(t, err, "gif images are not looked up")

	png := filepath.Join(t.TempDir(), "ok.png")
	writePNG(t, png, 1, 1)
	_, err = Import(png, dir, "../escape", false)
	assert.Error(t, err)

	files, err := ListFiles(dir)
	require.NoError(t, err)
	assert.Empty(t, files)
}
