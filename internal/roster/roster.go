// Package roster holds the fixed list of teachers shown on the page and the
// photo file each one maps to.
package roster

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Teacher is one selectable entry.
type Teacher struct {
	Name string `yaml:"name" json:"name"`
	// File is the photo identifier handed to the resolver. It may omit the
	// extension. Empty means "use Name".
	File string `yaml:"file,omitempty" json:"file"`
}

// Roster is immutable once built; every accessor returns copies.
type Roster struct {
	title    string
	subtitle string
	greeting string
	footer   string
	teachers []Teacher
	byName   map[string]string
}

type fileDoc struct {
	Title    string    `yaml:"title"`
	Subtitle string    `yaml:"subtitle"`
	Greeting string    `yaml:"greeting"`
	Footer   string    `yaml:"footer"`
	Teachers []Teacher `yaml:"teachers"`
}

const (
	defaultTitle    = "🎓 Happy Teacher’s Day"
	defaultSubtitle = "A small tribute with love and gratitude"
	defaultFooter   = "Made with ❤️ for Teacher’s Day"
	defaultGreeting = `:cherry_blossom: **Thank You, Dear Teacher** :cherry_blossom:

**Thank you for everything you have done for me. Happy Teacher's Day!**
**Your patience, guidance, and lessons have made me what I am today.**
**I am grateful to have you in my life as my teacher.** :heart:`
)

var defaultTeachers = []Teacher{
	{Name: "Rahul Sir", File: "rahul sir"},
	{Name: "Chhaya Mam", File: "chhaya mam"},
	{Name: "Jay sir", File: "jay"},
	{Name: "Suraj sir", File: "suraj"},
	{Name: "Vaishanavi mam", File: "vaishanavi"},
	{Name: "Vikas sir", File: "vikas"},
	{Name: "Priyanka mam", File: "priyanka"},
}

// Default returns the built-in roster.
func Default() *Roster {
	r, err := build(fileDoc{Teachers: defaultTeachers})
	if err != nil {
		panic(err)
	}
	return r
}

// Load reads a roster YAML file. An empty path returns Default(). Page copy
// left out of the file keeps its default.
//
//	title: Happy Teacher's Day
//	greeting: |
//	  **Thank you!**
//	teachers:
//	  - name: Rahul Sir
//	    file: rahul sir
func Load(path string) (*Roster, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("roster: %w", err)
	}
	var doc fileDoc
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("roster: parse %s: %w", path, err)
	}
	return build(doc)
}

func build(doc fileDoc) (*Roster, error) {
	if len(doc.Teachers) == 0 {
		return nil, errors.New("roster: no teachers")
	}
	r := &Roster{
		title:    firstNonEmpty(doc.Title, defaultTitle),
		subtitle: firstNonEmpty(doc.Subtitle, defaultSubtitle),
		greeting: firstNonEmpty(doc.Greeting, defaultGreeting),
		footer:   firstNonEmpty(doc.Footer, defaultFooter),
		teachers: make([]Teacher, 0, len(doc.Teachers)),
		byName:   make(map[string]string, len(doc.Teachers)),
	}
	for i, t := range doc.Teachers {
		t.Name = strings.TrimSpace(t.Name)
		t.File = strings.TrimSpace(t.File)
		if t.Name == "" {
			return nil, fmt.Errorf("roster: teacher %d has no name", i+1)
		}
		if _, dup := r.byName[t.Name]; dup {
			return nil, fmt.Errorf("roster: duplicate teacher %q", t.Name)
		}
		if t.File == "" {
			t.File = t.Name
		}
		r.teachers = append(r.teachers, t)
		r.byName[t.Name] = t.File
	}
	return r, nil
}

func (r *Roster) Title() string    { return r.title }
func (r *Roster) Subtitle() string { return r.subtitle }
func (r *Roster) Greeting() string { return r.greeting }
func (r *Roster) Footer() string   { return r.footer }

// Teachers returns the entries in display order.
func (r *Roster) Teachers() []Teacher {
	return append([]Teacher(nil), r.teachers...)
}

// Names returns the selectable display names in order.
func (r *Roster) Names() []string {
	out := make([]string, len(r.teachers))
	for i, t := range r.teachers {
		out[i] = t.Name
	}
	return out
}

// First is the default selection.
func (r *Roster) First() string { return r.teachers[0].Name }

func (r *Roster) Contains(name string) bool {
	_, ok := r.byName[name]
	return ok
}

// Identifier maps a display name to its photo identifier. Names that are not
// in the roster map to themselves.
func (r *Roster) Identifier(name string) string {
	if id, ok := r.byName[name]; ok {
		return id
	}
	return name
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
