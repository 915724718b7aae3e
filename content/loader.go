// Package content loads the course catalog, the per-subject lesson tables and
// the module plans from YAML files.
//
// The layout of a content directory is
//
//	courses.yaml         the catalog, in seeding order
//	subjects/<name>.yaml one Table per subject
//	plans/<name>.yaml    one ModulePlan per file
package content

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data
var embedded embed.FS

const catalogFile = "courses.yaml"

// Library is everything the seeder reads: the catalog plus the tables and plans
// it references.
type Library struct {
	Catalog Catalog
	tables  map[string]*Table
	plans   map[string]*ModulePlan
}

// Table returns the content table of a subject. An unknown subject yields an
// empty table, whose lookups all answer with placeholders.
func (l *Library) Table(subject string) *Table {
	if t, ok := l.tables[subject]; ok {
		return t
	}
	return &Table{Subject: subject}
}

// Plan returns the module plan registered under name.
func (l *Library) Plan(name string) (*ModulePlan, bool) {
	if name == "" {
		return nil, false
	}
	p, ok := l.plans[name]
	return p, ok
}

// Subjects lists the subjects that have a table, sorted.
func (l *Library) Subjects() []string {
	out := make([]string, 0, len(l.tables))
	for s := range l.tables {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Default loads the content compiled into the binary.
func Default() (*Library, error) {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, err
	}
	return Load(sub)
}

// LoadDir loads content from a directory on disk.
func LoadDir(dir string) (*Library, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("content directory: %w", err)
	}
	return Load(os.DirFS(dir))
}

// Load reads and validates a content tree.
func Load(fsys fs.FS) (*Library, error) {
	v := newValidator()
	lib := &Library{
		tables: map[string]*Table{},
		plans:  map[string]*ModulePlan{},
	}

	if err := decodeFile(fsys, catalogFile, &lib.Catalog); err != nil {
		return nil, err
	}
	if err := validate(v, catalogFile, &lib.Catalog); err != nil {
		return nil, err
	}
	if err := checkSlugs(lib.Catalog); err != nil {
		return nil, err
	}

	if err := eachYAML(fsys, "subjects", func(name string) error {
		var t Table
		if err := decodeFile(fsys, name, &t); err != nil {
			return err
		}
		if err := validate(v, name, &t); err != nil {
			return err
		}
		if _, dup := lib.tables[t.Subject]; dup {
			return fmt.Errorf("%s: subject %q is defined twice", name, t.Subject)
		}
		lib.tables[t.Subject] = &t
		return nil
	}); err != nil {
		return nil, err
	}

	if err := eachYAML(fsys, "plans", func(name string) error {
		var p ModulePlan
		if err := decodeFile(fsys, name, &p); err != nil {
			return err
		}
		if err := validate(v, name, &p); err != nil {
			return err
		}
		lib.plans[p.Name] = &p
		return nil
	}); err != nil {
		return nil, err
	}

	return lib, nil
}

func decodeFile(fsys fs.FS, name string, out interface{}) error {
	f, err := fsys.Open(name)
	if err != nil {
		return fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

// eachYAML calls fn for every .yaml/.yml file directly under dir, in name
// order. A missing dir is not an error.
func eachYAML(fsys fs.FS, dir string, fn func(name string) error) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", dir, err)
	}
	for _, e := range entries {
		ext := path.Ext(e.Name())
		if e.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		if err := fn(path.Join(dir, e.Name())); err != nil {
			return err
		}
	}
	return nil
}

func checkSlugs(c Catalog) error {
	seen := map[string]string{}
	for _, course := range c.Courses {
		slug := strings.ToLower(course.Slug)
		if other, ok := seen[slug]; ok {
			return &ValidationError{
				Source: catalogFile,
				Fields: map[string]string{"slug": fmt.Sprintf("%q used by both %q and %q", course.Slug, other, course.Title)},
			}
		}
		seen[slug] = course.Title
	}
	return nil
}
