package extractor

import (
	"errors"
	"fmt"
	"sort"
)

var ErrUnknownExtractor = errors.New("unknown extractor")

// Registry holds the available extractors keyed by provider name.
type Registry struct {
	extractors map[string]Extractor
}

// NewRegistry registers the given extractors by name. A later extractor
// with the same name replaces an earlier one.
func NewRegistry(list ...Extractor) *Registry {
	m := make(map[string]Extractor, len(list))
	for _, e := range list {
		m[e.Name()] = e
	}
	return &Registry{extractors: m}
}

// Get returns the extractor for the provider name.
func (r *Registry) Get(name string) (Extractor, error) {
	e, ok := r.extractors[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownExtractor, name)
	}
	return e, nil
}

// Names returns the registered provider names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.extractors))
	for n := range r.extractors {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
