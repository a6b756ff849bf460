// Package intents exposes a read-only listing of the loaded catalog for
// client-side discovery.
package intents

import "github.com/kailas-cloud/intentd/internal/domain"

// Entry is one listed intent: its tag and representative example pattern.
type Entry struct {
	Tag     string
	Example string
}

// Service lists the loaded catalog.
type Service struct {
	catalog domain.Catalog
}

// New creates an intents service.
func New(catalog domain.Catalog) *Service {
	return &Service{catalog: catalog}
}

// List returns every intent in catalog order. The catalog is immutable after
// load, so the listing never changes between calls.
func (s *Service) List() []Entry {
	entries := make([]Entry, len(s.catalog.Intents))
	for i, in := range s.catalog.Intents {
		entries[i] = Entry{Tag: in.Tag, Example: in.Example()}
	}
	return entries
}
