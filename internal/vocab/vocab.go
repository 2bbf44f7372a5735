// Package vocab holds the vocabulary dataset the quizzes and games draw from.
package vocab

import (
	"slices"
	"strings"
)

// Category names used by the bundled dataset.
const (
	CategoryCore     = "core"
	CategoryBase     = "base"
	CategoryFood     = "food"
	CategoryCommands = "commands"

	// CategoryAll selects every entry when filtering.
	CategoryAll = "all"
)

// Entry is one vocabulary item. Entries are immutable once loaded.
type Entry struct {
	ID       int    `json:"id"`
	Headword string `json:"headword"`
	Translit string `json:"translit,omitempty"`
	Gloss    string `json:"gloss"`
	Category string `json:"category"`
}

// Pool is a read-only, ordered set of entries.
type Pool struct {
	version string
	entries []Entry
	byID    map[int]int
}

// NewPool builds a pool from entries in the given order.
func NewPool(version string, entries []Entry) *Pool {
	p := &Pool{
		version: version,
		entries: slices.Clone(entries),
		byID:    make(map[int]int, len(entries)),
	}
	for i, e := range p.entries {
		p.byID[e.ID] = i
	}
	return p
}

// Version returns the dataset format version.
func (p *Pool) Version() string { return p.version }

// Len returns the number of entries.
func (p *Pool) Len() int { return len(p.entries) }

// All returns a copy of every entry in dataset order.
func (p *Pool) All() []Entry {
	return slices.Clone(p.entries)
}

// Get returns the entry with the given ID.
func (p *Pool) Get(id int) (Entry, bool) {
	i, ok := p.byID[id]
	if !ok {
		return Entry{}, false
	}
	return p.entries[i], true
}

// Categories returns the distinct categories, sorted.
func (p *Pool) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range p.entries {
		if !seen[e.Category] {
			seen[e.Category] = true
			out = append(out, e.Category)
		}
	}
	slices.Sort(out)
	return out
}

// ByCategory returns the entries in category c. CategoryAll or an empty
// string returns every entry.
func (p *Pool) ByCategory(c string) []Entry {
	if c == "" || c == CategoryAll {
		return p.All()
	}
	var out []Entry
	for _, e := range p.entries {
		if e.Category == c {
			out = append(out, e)
		}
	}
	return out
}

// Search filters entries by a case-insensitive substring match on the
// headword, transliteration, or gloss, restricted to category c.
func (p *Pool) Search(c, query string) []Entry {
	entries := p.ByCategory(c)
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return entries
	}
	out := entries[:0]
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Headword), q) ||
			strings.Contains(strings.ToLower(e.Translit), q) ||
			strings.Contains(strings.ToLower(e.Gloss), q) {
			out = append(out, e)
		}
	}
	return out
}
