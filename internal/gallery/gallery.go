// Package gallery ties the roster to the photo resolver: it turns a selected
// display name into either a photo to show or a message explaining why there
// is none. The web page, the TUI and the CLI all go through it.
package gallery

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"teachersday/internal/photo"
	"teachersday/internal/roster"

	"go.uber.org/zap"
)

type Status string

const (
	StatusOK          Status = "ok"
	StatusNotFound    Status = "not_found"
	StatusUndecodable Status = "undecodable"
	StatusDecodeError Status = "decode_error"
	StatusFolderError Status = "folder_error"
)

// Result is what a shell renders for one selection.
type Result struct {
	Teacher    string       `json:"teacher"`
	Identifier string       `json:"identifier"`
	Status     Status       `json:"status"`
	Tier       string       `json:"tier,omitempty"`
	File       string       `json:"file,omitempty"`
	Path       string       `json:"path,omitempty"`
	Image      *photo.Image `json:"image,omitempty"`
	Message    string       `json:"message,omitempty"`
	// Files is the directory listing shown when nothing matched.
	Files []string `json:"files,omitempty"`
	// Note accompanies Files ("currently empty" when there are none).
	Note string `json:"note,omitempty"`
	// Ambiguous lists other files that matched equally well.
	Ambiguous []string `json:"ambiguous,omitempty"`
}

func (r Result) OK() bool { return r.Status == StatusOK }

type Gallery struct {
	roster *roster.Roster
	dir    string
	log    *zap.Logger
}

func New(r *roster.Roster, dir string, log *zap.Logger) *Gallery {
	if log == nil {
		log = zap.NewNop()
	}
	return &Gallery{roster: r, dir: filepath.Clean(dir), log: log}
}

func (g *Gallery) Roster() *roster.Roster { return g.roster }
func (g *Gallery) Dir() string            { return g.dir }

// folderLabel is how the directory is named in user-facing messages.
func (g *Gallery) folderLabel() string {
	return filepath.Base(g.dir) + "/"
}

// Show resolves and decodes the photo for a display name.
func (g *Gallery) Show(name string) Result {
	id := g.roster.Identifier(name)
	res := Result{Teacher: name, Identifier: id}
	log := g.log.With(zap.String("teacher", name), zap.String("identifier", id))

	m, err := photo.Resolve(id, g.dir)
	if err != nil && !errors.Is(err, photo.ErrNotFound) {
		res.Status = StatusFolderError
		res.Message = fmt.Sprintf("Could not read the %s folder: %v", g.folderLabel(), err)
		log.Error("photo lookup failed", zap.String("dir", g.dir), zap.Error(err))
		return res
	}
	if err != nil {
		res.Status = StatusNotFound
		res.Message = fmt.Sprintf("Photo for %s not found. Please add a file matching '%s' (e.g. '%s.jpg' or '%s.png') into the %s folder.",
			name, id, id, id, g.folderLabel())
		log.Info("photo not found")
		g.attachListing(&res)
		return res
	}

	res.Tier = m.Tier.String()
	res.File = m.Name
	res.Path = m.Path
	if len(m.Alternatives) > 0 {
		res.Ambiguous = m.Alternatives
		log.Warn("several photos match; using the first one listed",
			zap.String("file", m.Name), zap.Strings("alternatives", m.Alternatives))
	}

	img, err := photo.Inspect(m.Path)
	var undecodable *photo.UndecodableError
	switch {
	case err == nil:
		res.Status = StatusOK
		res.Image = &img
		log.Info("photo resolved", zap.String("file", m.Name), zap.Stringer("tier", m.Tier),
			zap.String("format", img.Format))
	case errors.As(err, &undecodable):
		res.Status = StatusUndecodable
		res.Message = fmt.Sprintf("Found file '%s' but it couldn't be opened as an image. Try re-saving the image.", m.Name)
		log.Warn("photo not decodable", zap.String("file", m.Name))
	default:
		res.Status = StatusDecodeError
		res.Message = fmt.Sprintf("Error opening image: %v", unwrapDetail(err))
		log.Error("photo decode failed", zap.String("file", m.Name), zap.Error(err))
	}
	return res
}

// Photo returns the resolved path for a display name without decoding it.
func (g *Gallery) Photo(name string) (photo.Match, error) {
	return photo.Resolve(g.roster.Identifier(name), g.dir)
}

// Files lists the photo directory.
func (g *Gallery) Files() ([]string, error) {
	return photo.ListFiles(g.dir)
}

func (g *Gallery) attachListing(res *Result) {
	files, err := photo.ListFiles(g.dir)
	if err != nil {
		g.log.Warn("listing photo dir failed", zap.String("dir", g.dir), zap.Error(err))
		res.Note = fmt.Sprintf("Could not list the %s folder: %v", g.folderLabel(), err)
		return
	}
	if len(files) == 0 {
		res.Note = fmt.Sprintf("Your %s folder is currently empty. Add the teacher photos there.", g.folderLabel())
		return
	}
	res.Files = files
	res.Note = fmt.Sprintf("Current files in %s:", g.folderLabel())
}

func unwrapDetail(err error) string {
	var de *photo.DecodeError
	if errors.As(err, &de) && de.Err != nil {
		return strings.TrimSpace(de.Err.Error())
	}
	return err.Error()
}
