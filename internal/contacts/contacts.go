// Package contacts loads the static name→phone book used by messaging
// automation. The book is read once at startup and never mutated.
package contacts

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

type Book struct {
	entries map[string]string
	// names ordered longest-first so "alex khan" wins over "alex".
	names []string
}

type fileFormat struct {
	Contacts map[string]string `yaml:"contacts"`
}

// Load reads a YAML contact book. A missing file yields an empty book so the
// assistant still runs, just without contact resolution.
func Load(path string) (*Book, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Book{entries: map[string]string{}}, nil
		}
		return nil, fmt.Errorf("read contacts: %w", err)
	}
	var ff fileFormat
	if err := yaml.Unmarshal(data, &ff); err != nil {
		return nil, fmt.Errorf("decode contacts: %w", err)
	}
	return NewBook(ff.Contacts), nil
}

func NewBook(entries map[string]string) *Book {
	lowered := make(map[string]string, len(entries))
	names := make([]string, 0, len(entries))
	for name, phone := range entries {
		n := strings.ToLower(name)
		lowered[n] = phone
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})
	return &Book{entries: lowered, names: names}
}

// Resolve scans the text for a known contact name and returns the name and
// phone number of the first match.
func (b *Book) Resolve(text string) (name, phone string, ok bool) {
	lower := strings.ToLower(text)
	for _, n := range b.names {
		if strings.Contains(lower, n) {
			return n, b.entries[n], true
		}
	}
	return "", "", false
}

// Phone returns the number for an exact contact name.
func (b *Book) Phone(name string) (string, bool) {
	p, ok := b.entries[strings.ToLower(name)]
	return p, ok
}

func (b *Book) Len() int { return len(b.entries) }
