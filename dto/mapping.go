package dto

import "strings"

// MappingEntry is one PAN -> display name pair.
type MappingEntry struct {
	PAN         string `json:"pan"`
	DisplayName string `json:"display_name"`
}

// MappingTable is an ordered PAN -> display name lookup. PANs are stored
// upper-cased. A repeated PAN overwrites the earlier name but keeps its
// original position.
type MappingTable struct {
	entries []MappingEntry
	index   map[string]int
}

func NewMappingTable() *MappingTable {
	return &MappingTable{index: make(map[string]int)}
}

// Put inserts or overwrites the display name for pan.
func (m *MappingTable) Put(pan, displayName string) {
	key := strings.ToUpper(strings.TrimSpace(pan))
	if key == "" {
		return
	}
	if m.index == nil {
		m.index = make(map[string]int)
	}
	if i, ok := m.index[key]; ok {
		m.entries[i].DisplayName = displayName
		return
	}
	m.index[key] = len(m.entries)
	m.entries = append(m.entries, MappingEntry{PAN: key, DisplayName: displayName})
}

// Lookup is case-insensitive on pan.
func (m *MappingTable) Lookup(pan string) (string, bool) {
	if m == nil {
		return "", false
	}
	i, ok := m.index[strings.ToUpper(pan)]
	if !ok {
		return "", false
	}
	return m.entries[i].DisplayName, true
}

func (m *MappingTable) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

// Entries returns a copy of the entries in insertion order.
func (m *MappingTable) Entries() []MappingEntry {
	if m == nil {
		return nil
	}
	out := make([]MappingEntry, len(m.entries))
	copy(out, m.entries)
	return out
}

// LoadedMapping is a parsed mapping file together with what was detected in it.
type LoadedMapping struct {
	Table      *MappingTable
	Sheet      string
	Headers    []string
	PANColumn  string
	NameColumn string
	TotalRows  int
	TotalCols  int
}
