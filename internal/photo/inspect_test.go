package photo

import (
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func writeJPEG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, jpeg.Encode(f, img, nil))
}

func TestInspect_PNG(t *testing.T) {
	p := filepath.Join(t.TempDir(), "chhaya mam.png")
	writePNG(t, p, 4, 3)

	img, err := Inspect(p)
	require.NoError(t, err)
	assert.Equal(t, Image{Name: "chhaya mam.png", Format: "png", Width: 4, Height: 3}, img)
}

func TestInspect_JPEGWithMisleadingExtension(t *testing.T) {
	p := filepath.Join(t.TempDir(), "rahul sir.png")
	writeJPEG(t, p, 8, 2)

	img, err := Inspect(p)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", img.Format)
	assert.Equal(t, 8, img.Width)
}

func TestInspect_NotAnImage(t *testing.T) {
	p := filepath.Join(t.TempDir(), "jay.jpg")
	require.NoError(t, os.WriteFile(p, []byte("definitely not a jpeg"), 0o644))

	_, err := Inspect(p)
	var ue *UndecodableError
	require.True(t, errors.As(err, &ue), "got %T: %v", err, err)
	assert.Equal(t, "jay.jpg", ue.Name)
	assert.ErrorIs(t, err, image.ErrFormat)
}

func TestInspect_EmptyFileIsUndecodable(t *testing.T) {
	p := filepath.Join(t.TempDir(), "empty.png")
	require.NoError(t, os.WriteFile(p, nil, 0o644))

	_, err := Inspect(p)
	var ue *UndecodableError
	assert.True(t, errors.As(err, &ue), "got %T: %v", err, err)
}

func TestInspect_TruncatedPNGIsDecodeError(t *testing.T) {
	dir := t.TempDir()
	full := filepath.Join(dir, "full.png")
	writePNG(t, full, 16, 16)
	b, err := os.ReadFile(full)
	require.NoError(t, err)

	p := filepath.Join(dir, "cut.png")
	require.NoError(t, os.WriteFile(p, b[:12], 0o644))

	_, err = Inspect(p)
	var de *DecodeError
	require.True(t, errors.As(err, &de), "got %T: %v", err, err)
	assert.Equal(t, "cut.png", de.Name)
}

func TestInspect_MissingFileIsDecodeError(t *testing.T) {
	_, err := Inspect(filepath.Join(t.TempDir(), "nope.jpg"))
	var de *DecodeError
	require.True(t, errors.As(err, &de))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
