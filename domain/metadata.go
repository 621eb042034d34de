package domain

import (
	"fmt"
	"reflect"
	"regexp"
)

// MetadataEntry is a single metadata assertion from an analyser
type MetadataEntry struct {
	Value    any    `json:"value" yaml:"value"`
	Analyser string `json:"analyser" yaml:"analyser"`
	Path     string `json:"path,omitempty" yaml:"path,omitempty"`
	Seq      int    `json:"-" yaml:"-"`
	IsList   bool   `json:"is_list,omitempty" yaml:"is_list,omitempty"`
}

// Source returns the provenance string for the entry (analyser[:path])
func (e MetadataEntry) Source() string {
	if e.Path != "" {
		return e.Analyser + ":" + e.Path
	}
	return e.Analyser
}

// Metadata is a multi-valued, provenance-tracked attribute store shared by
// all analysers. Entries are appended in the order analysers run; the first
// entry for a key is the primary value for single-value consumers.
type Metadata struct {
	entries map[string][]MetadataEntry
	keys    []string
	seq     int
}

// NewMetadata creates an empty metadata store
func NewMetadata() *Metadata {
	return &Metadata{entries: make(map[string][]MetadataEntry)}
}

// nextSeq returns a fresh sequence id. Entries emitted by one analyser call
// share a sequence id, which marks the key as list-valued.
func (m *Metadata) nextSeq() int {
	m.seq++
	return m.seq
}

// add appends an entry, keeping key insertion order for deterministic output
func (m *Metadata) add(key string, entry MetadataEntry) {
	if _, ok := m.entries[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.entries[key] = append(m.entries[key], entry)
}

// Keys returns the metadata keys in insertion order
func (m *Metadata) Keys() []string {
	keys := make([]string, len(m.keys))
	copy(keys, m.keys)
	return keys
}

// Get returns all entries recorded for a key
func (m *Metadata) Get(key string) []MetadataEntry {
	return m.entries[key]
}

// IsList reports whether a key is list-valued: either an entry carries the
// explicit list flag, or two entries share a sequence id (one analyser call
// emitted multiple values at once). This is the single disambiguation
// heuristic applied throughout the store.
func (m *Metadata) IsList(key string) bool {
	entries := m.entries[key]
	for i, entry := range entries {
		if entry.IsList {
			return true
		}
		if i > 0 && entry.Seq == entries[i-1].Seq {
			return true
		}
	}
	return false
}

// PlainValue collapses a key to its representative value: all values for a
// list-valued key, the first entry's value otherwise.
func (m *Metadata) PlainValue(key string) any {
	entries := m.entries[key]
	if len(entries) == 0 {
		return nil
	}
	if m.IsList(key) {
		values := make([]any, 0, len(entries))
		for _, entry := range entries {
			values = append(values, entry.Value)
		}
		return values
	}
	return entries[0].Value
}

// MetadataConflict describes divergent scalar values recorded for one key
type MetadataConflict struct {
	Key     string
	Sources []string
	Paths   []string
}

// Conflicts detects keys where different analysers asserted divergent scalar
// values. List-valued keys are skipped; identical repeated values are not a
// conflict.
func (m *Metadata) Conflicts() []MetadataConflict {
	var conflicts []MetadataConflict

	for _, key := range m.keys {
		entries := m.entries[key]
		if len(entries) < 2 || m.IsList(key) {
			continue
		}

		sources := []string{entries[0].Source()}
		paths := []string{}
		if entries[0].Path != "" {
			paths = append(paths, entries[0].Path)
		}
		divergent := false

		for _, entry := range entries[1:] {
			if reflect.DeepEqual(entry.Value, entries[0].Value) {
				continue
			}
			divergent = true
			sources = append(sources, entry.Source())
			if entry.Path != "" {
				paths = append(paths, entry.Path)
			}
		}

		if divergent {
			conflicts = append(conflicts, MetadataConflict{Key: key, Sources: sources, Paths: paths})
		}
	}

	return conflicts
}

// Format validation rules for well-known keys
var (
	doiPattern = regexp.MustCompile(`^10\.\d{4,9}/[-._;()/:a-zA-Z0-9]+$`)
	urlPattern = regexp.MustCompile(`^https?://[^\s/$.?#].[^\s]*$`)
)

// validateValue checks known keys against their format rules. A nil return
// means the value is acceptable (or the key has no rule).
func validateValue(key string, value any) error {
	text, ok := value.(string)
	if !ok {
		return nil
	}

	switch key {
	case "doi":
		if !doiPattern.MatchString(text) {
			return fmt.Errorf("malformed DOI %q", text)
		}
	case "repository_code":
		if !urlPattern.MatchString(text) {
			return fmt.Errorf("malformed URL %q", text)
		}
	}
	return nil
}

// isEmptyValue reports whether a value should be silently dropped: nil, empty
// string, empty collection, or a collection whose members are all empty.
func isEmptyValue(value any) bool {
	if value == nil {
		return true
	}

	switch v := value.(type) {
	case string:
		return v == ""
	case []string:
		for _, item := range v {
			if item != "" {
				return false
			}
		}
		return true
	case []any:
		for _, item := range v {
			if !isEmptyValue(item) {
				return false
			}
		}
		return true
	case map[string]any:
		return len(v) == 0
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() == 0
	}
	return false
}
