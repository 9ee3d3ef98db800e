// Package utils holds helpers shared by tests: YAML fixtures describing Helix
// responses and a fake Helix server that serves them.
package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Fixture describes the responses of a fake Helix API.
type Fixture struct {
	TopCategories []map[string]any  `yaml:"top_categories"`
	Search        map[string][]Item `yaml:"search"`
	Pages         []PageFixture     `yaml:"pages"`
}

// Item is one raw record as it appears in a data array.
type Item = map[string]any

// PageFixture is one page of the streams listing. Filler adds that many
// generated streams whose titles match nothing.
type PageFixture struct {
	Cursor  string `yaml:"cursor"`
	Filler  int    `yaml:"filler"`
	Streams []Item `yaml:"streams"`
}

// Records returns the page's explicit streams followed by the filler streams.
func (p PageFixture) Records(page int) []Item {
	records := make([]Item, 0, len(p.Streams)+p.Filler)
	records = append(records, p.Streams...)
	for i := 0; i < p.Filler; i++ {
		records = append(records, FillerStream(fmt.Sprintf("filler_%d_%d", page, i)))
	}
	return records
}

// Total returns the number of streams across all pages.
func (f *Fixture) Total() int {
	total := 0
	for _, p := range f.Pages {
		total += len(p.Streams) + p.Filler
	}
	return total
}

// FillerStream returns a well-formed stream record with a bland title.
func FillerStream(name string) Item {
	return Item{
		"id":           name + "_id",
		"user_name":    name,
		"game_id":      "0",
		"title":        "just chatting with chat",
		"viewer_count": 1,
		"started_at":   "2024-01-01T00:00:00Z",
		"language":     "en",
		"tags":         []any{},
	}
}

// LoadFixture reads a fixture from the repository's testdata directory.
func LoadFixture(name string) (*Fixture, error) {
	data, err := os.ReadFile(filepath.Join(Dir(), name))
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}

	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	return &f, nil
}

// Dir returns the absolute path of the testdata directory.
func Dir() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Dir(filepath.Dir(file))
}
