package store

import (
	_ "embed"
	"fmt"

	"github.com/gamma-omg/linguaflow/internal/model"
	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var seedYAML []byte

type seedData struct {
	Wordbook []model.Word `yaml:"wordbook"`
	Notes    []model.Note `yaml:"notes"`
}

// SeedDemoData loads the demo wordbook entries and notes into the given
// stores, keeping their authored ids, timestamps and review state.
func SeedDemoData(wb *MemoryWordbook, ns *MemoryNotes) error {
	var data seedData
	if err := yaml.Unmarshal(seedYAML, &data); err != nil {
		return fmt.Errorf("parse seed data: %w", err)
	}

	wb.mu.Lock()
	for _, w := range data.Wordbook {
		wb.entries = append(wb.entries, cloneWord(w))
	}
	wb.mu.Unlock()

	ns.mu.Lock()
	ns.notes = append(ns.notes, data.Notes...)
	ns.mu.Unlock()

	return nil
}
