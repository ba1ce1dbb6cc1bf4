package photo

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// ErrExists is returned by Import when the destination is taken and
// overwrite was not requested.
var ErrExists = errors.New("photo already exists")

var extByFormat = map[string]string{
	"jpeg": ".jpg",
	"png":  ".png",
	"webp": ".webp",
}

// Import copies the image at src into dir as identifier+ext, where ext is
// src's own extension when it is one Resolve probes, or else derived from
// the decoded format. The source must decode; formats Resolve would never
// probe (gif) are rejected.
func Import(src, dir, identifier string, overwrite bool) (Match, error) {
	identifier = strings.TrimSpace(Stem(identifier))
	if !plainName(identifier) {
		return Match{}, fmt.Errorf("photo: invalid identifier %q", identifier)
	}
	img, err := Inspect(src)
	if err != nil {
		return Match{}, err
	}
	ext := strings.ToLower(filepath.Ext(src))
	if !slices.Contains(Extensions, ext) {
		var ok bool
		ext, ok = extByFormat[img.Format]
		if !ok {
			return Match{}, fmt.Errorf("photo: %s images are not looked up; convert to jpg, png or webp", img.Format)
		}
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Match{}, fmt.Errorf("photo: ensure dir: %w", err)
	}
	name := identifier + ext
	dest := filepath.Join(dir, name)
	if !overwrite {
		if _, err := os.Stat(dest); err == nil {
			return Match{}, fmt.Errorf("%w: %s", ErrExists, name)
		}
	}
	if err := copyFile(src, dest); err != nil {
		return Match{}, fmt.Errorf("photo: copy: %w", err)
	}
	return Match{Path: dest, Name: name, Tier: TierExtension}, nil
}

func copyFile(src, dest string) error {
	in, err := os.Open(filepath.Clean(src))
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(filepath.Clean(dest), os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
