package types

import "strings"

// TagEntry pairs the short and long forms of one schema tag node.
// LongFormattedTag caches the lowercased long form used for
// case-insensitive comparison during conversion. Immutable value type.
type TagEntry struct {
	ShortTag         string
	LongTag          string
	LongFormattedTag string
}

// NewTagEntry builds a TagEntry, deriving the formatted long form.
func NewTagEntry(shortTag string, longTag string) TagEntry {
	return TagEntry{
		ShortTag:         shortTag,
		LongTag:          longTag,
		LongFormattedTag: strings.ToLower(longTag),
	}
}

// MappingEntry holds every tag entry registered under one short-form
// lookup key. Most keys hold exactly one entry; a key claimed by two or
// more schema nodes holds all conflicting entries, and the owning
// mapping's HasNoDuplicates flag is cleared.
type MappingEntry struct {
	Entries []TagEntry
}

// Unique reports whether exactly one schema node claims this key.
func (e *MappingEntry) Unique() bool {
	return e != nil && len(e.Entries) == 1
}

// Single returns the sole entry for unambiguous keys.
func (e *MappingEntry) Single() (TagEntry, bool) {
	if !e.Unique() {
		return TagEntry{}, false
	}
	return e.Entries[0], true
}

// Mapping is the bidirectional short/long tag table derived from a
// schema tree. HasNoDuplicates is a single global flag: callers must
// check it before trusting any short-to-long resolution, since even one
// ambiguous short name makes short-form input unreliable.
type Mapping struct {
	Data            map[string]*MappingEntry
	HasNoDuplicates bool
}

// NewMapping returns an empty mapping with no duplicates recorded.
func NewMapping() *Mapping {
	return &Mapping{
		Data:            map[string]*MappingEntry{},
		HasNoDuplicates: true,
	}
}

// Insert registers a tag entry under a lowercased short-form key. The
// first insertion for a key stores a single entry; later insertions for
// the same key append and clear the global HasNoDuplicates flag.
func (m *Mapping) Insert(key string, entry TagEntry) {
	existing, ok := m.Data[key]
	if !ok {
		m.Data[key] = &MappingEntry{Entries: []TagEntry{entry}}
		return
	}
	existing.Entries = append(existing.Entries, entry)
	m.HasNoDuplicates = false
}

// Lookup returns the entry set registered for a lowercased short key.
func (m *Mapping) Lookup(key string) (*MappingEntry, bool) {
	if m == nil {
		return nil, false
	}
	entry, ok := m.Data[key]
	return entry, ok
}
