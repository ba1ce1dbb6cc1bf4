package photo

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// Image describes a decoded image header.
type Image struct {
	Name   string `json:"name"`
	Format string `json:"format"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// UndecodableError means the file exists but is not in a format any
// registered decoder recognizes.
type UndecodableError struct {
	Name string
}

func (e *UndecodableError) Error() string {
	return fmt.Sprintf("photo: %s is not a recognized image", e.Name)
}

func (e *UndecodableError) Unwrap() error { return image.ErrFormat }

// DecodeError wraps any other failure while opening or decoding a file.
type DecodeError struct {
	Name string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("photo: decode %s: %v", e.Name, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Inspect decodes the header of the image at path.
func Inspect(path string) (Image, error) {
	name := filepath.Base(path)
	f, err := os.Open(path)
	if err != nil {
		return Image{}, &DecodeError{Name: name, Err: err}
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return Image{}, &UndecodableError{Name: name}
		}
		return Image{}, &DecodeError{Name: name, Err: err}
	}
	return Image{Name: name, Format: format, Width: cfg.Width, Height: cfg.Height}, nil
}
