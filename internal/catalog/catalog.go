package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed curriculum.yaml
var defaultCurriculum []byte

// file is the on-disk shape of a curriculum document.
type file struct {
	Lessons []Lesson `yaml:"lessons" validate:"required,min=1,unique=ID,dive"`
}

// Catalog is the ordered, read-only list of lessons.
type Catalog struct {
	lessons []Lesson
	index   map[string]int
}

// Default returns the catalog bundled with the binary.
func Default() (*Catalog, error) {
	c, err := Parse(defaultCurriculum)
	if err != nil {
		return nil, fmt.Errorf("bundled curriculum: %w", err)
	}
	return c, nil
}

// Load reads a curriculum YAML file from disk.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read curriculum: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates a curriculum document.
func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse curriculum: %w", err)
	}
	if err := validateFile(&f); err != nil {
		return nil, err
	}
	return New(f.Lessons), nil
}

// New builds a catalog from lessons already in study order.
// It does not validate; use Parse for untrusted input.
func New(lessons []Lesson) *Catalog {
	c := &Catalog{
		lessons: make([]Lesson, len(lessons)),
		index:   make(map[string]int, len(lessons)),
	}
	copy(c.lessons, lessons)
	for i, l := range c.lessons {
		c.index[l.ID] = i
	}
	return c
}

// Lessons returns the lessons in study order. The slice must not be modified.
func (c *Catalog) Lessons() []Lesson {
	return c.lessons
}

// Len returns the number of lessons.
func (c *Catalog) Len() int {
	return len(c.lessons)
}

// At returns the lesson at position i.
func (c *Catalog) At(i int) Lesson {
	return c.lessons[i]
}

// Lookup returns the lesson with the given id and its position.
func (c *Catalog) Lookup(id string) (Lesson, int, bool) {
	i, ok := c.index[id]
	if !ok {
		return Lesson{}, -1, false
	}
	return c.lessons[i], i, true
}
