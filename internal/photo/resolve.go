// Package photo finds teacher photos in a local directory and checks that
// they decode as images.
package photo

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// ErrNotFound is returned by Resolve when no file matches an identifier.
var ErrNotFound = errors.New("photo not found")

// Extensions are probed in this order when the identifier has no exact match.
var Extensions = []string{".jpg", ".jpeg", ".png", ".webp"}

// Tier records which lookup strategy produced a match.
type Tier int

const (
	TierExact Tier = iota + 1
	TierExtension
	TierNormalized
)

func (t Tier) String() string {
	switch t {
	case TierExact:
		return "exact"
	case TierExtension:
		return "extension"
	case TierNormalized:
		return "normalized"
	default:
		return "unknown"
	}
}

// Match is a resolved photo file.
type Match struct {
	Path string
	Name string
	Tier Tier

	// Alternatives lists other files whose normalized stem equals the target.
	// Only set for TierNormalized; which file wins among them depends on
	// directory enumeration order.
	Alternatives []string
}

// Resolve looks up identifier in dir. Lookup order is fixed: the identifier
// as a literal file name, then stem+ext for each of Extensions, then the
// first regular file whose normalized stem equals the normalized stem of the
// identifier. dir is created if it does not exist.
//
// Every call reads the directory again; nothing is cached.
func Resolve(identifier, dir string) (Match, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Match{}, fmt.Errorf("photo: ensure dir: %w", err)
	}

	if plainName(identifier) && isRegularFile(filepath.Join(dir, identifier)) {
		return Match{Path: filepath.Join(dir, identifier), Name: identifier, Tier: TierExact}, nil
	}

	stem := Stem(identifier)
	if plainName(stem) {
		for _, ext := range Extensions {
			name := stem + ext
			p := filepath.Join(dir, name)
			if isRegularFile(p) {
				return Match{Path: p, Name: name, Tier: TierExtension}, nil
			}
		}
	}

	// An identifier with no letters or digits normalizes to "" and matches
	// files whose stems have none either ("--.png").
	target := Normalize(stem)
	names, err := readDirOrder(dir)
	if err != nil {
		return Match{}, fmt.Errorf("photo: read dir: %w", err)
	}
	var m *Match
	for _, name := range names {
		if Normalize(Stem(name)) != target {
			continue
		}
		p := filepath.Join(dir, name)
		if !isRegularFile(p) {
			continue
		}
		if m == nil {
			m = &Match{Path: p, Name: name, Tier: TierNormalized}
			continue
		}
		m.Alternatives = append(m.Alternatives, name)
	}
	if m != nil {
		return *m, nil
	}
	return Match{}, fmt.Errorf("%w: %q", ErrNotFound, identifier)
}

// Stem returns name without its extension. A leading dot (".jpg") or a
// trailing dot ("photo.") does not start an extension.
func Stem(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 || i == len(name)-1 {
		return name
	}
	if strings.ContainsAny(name[i:], `/\`) {
		return name
	}
	return name[:i]
}

// Normalize lowercases s and drops everything that is not a letter or digit,
// so "Jay Sir", "jay_sir" and "JAY-SIR" compare equal.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ListFiles returns the names of regular files directly in dir, for showing
// users what is there when a lookup fails. dir is created if missing.
func ListFiles(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("photo: ensure dir: %w", err)
	}
	ents, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(ents))
	for _, ent := range ents {
		if ent.IsDir() {
			continue
		}
		if isRegularFile(filepath.Join(dir, ent.Name())) {
			out = append(out, ent.Name())
		}
	}
	return out, nil
}

// readDirOrder lists dir in the order the filesystem returns entries.
func readDirOrder(dir string) ([]string, error) {
	f, err := os.Open(dir)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	names, err := f.Readdirnames(-1)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return names, nil
}

func plainName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`) && !strings.ContainsRune(name, 0)
}

func isRegularFile(p string) bool {
	st, err := os.Stat(p)
	return err == nil && st.Mode().IsRegular()
}
