// Package categorizer canonicalizes statement hashtag categories into a fixed taxonomy.
package categorizer

import (
	"fmt"
	"sort"
	"strings"

	"fjacquet/finflow/internal/logging"
	"fjacquet/finflow/internal/models"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// builtinMappings are the statement tags whose canonical name differs from
// the tag text, plus the identities that anchor the transfer taxonomy.
var builtinMappings = map[string]string{
	"Medical":        models.CategoryHealthcare,
	"Transfers":      models.CategoryMoneyTransfer,
	"Money Transfer": models.CategoryMoneyTransfer,
	"Money Received": models.CategoryMoneyReceived,
}

// TagSource supplies additional tag mappings, typically from a YAML file.
type TagSource interface {
	LoadTagMappings() (map[string]string, error)
}

// TagMap maps normalized tag text to a canonical category. It is immutable
// once built and safe for concurrent use.
type TagMap struct {
	mappings map[string]string
}

// DefaultTagMap returns the built-in mapping table.
func DefaultTagMap() TagMap {
	return NewTagMap(nil)
}

// NewTagMap builds a TagMap from the built-ins extended by extra. Keys and
// values of extra are normalized; extra entries override built-ins.
func NewTagMap(extra map[string]string) TagMap {
	mappings := make(map[string]string, len(builtinMappings)+len(extra))
	for k, v := range builtinMappings {
		mappings[k] = v
	}
	for k, v := range extra {
		key := NormalizeTag(k)
		value := NormalizeTag(v)
		if key == "" || value == "" {
			continue
		}
		mappings[key] = value
	}
	return TagMap{mappings: mappings}
}

// LoadTagMap builds a TagMap from the built-ins plus whatever src provides.
// A nil source yields the built-in table.
func LoadTagMap(src TagSource, logger logging.Logger) (TagMap, error) {
	if src == nil {
		return DefaultTagMap(), nil
	}
	extra, err := src.LoadTagMappings()
	if err != nil {
		return TagMap{}, fmt.Errorf("failed to load tag mappings: %w", err)
	}
	if logger != nil {
		logger.WithField(logging.FieldCount, len(extra)).Debug("Loaded category tag mappings")
	}
	return NewTagMap(extra), nil
}

// NormalizeTag collapses whitespace and title-cases each word:
// "bill   PAYMENTS" -> "Bill Payments".
func NormalizeTag(raw string) string {
	words := strings.Fields(raw)
	if len(words) == 0 {
		return ""
	}
	caser := cases.Title(language.Und)
	for i, w := range words {
		words[i] = caser.String(w)
	}
	return strings.Join(words, " ")
}

// Canonical normalizes raw and maps it through the table. Unmapped tags are
// returned normalized; blank tags become Miscellaneous.
func (m TagMap) Canonical(raw string) string {
	normalized := NormalizeTag(raw)
	if normalized == "" {
		return models.CategoryMiscellaneous
	}
	if mapped, ok := m.Lookup(normalized); ok {
		return mapped
	}
	return normalized
}

// Lookup returns the mapping for an already normalized tag.
func (m TagMap) Lookup(normalized string) (string, bool) {
	if m.mappings == nil {
		mapped, ok := builtinMappings[normalized]
		return mapped, ok
	}
	mapped, ok := m.mappings[normalized]
	return mapped, ok
}

// Len returns the number of explicit mappings.
func (m TagMap) Len() int {
	if m.mappings == nil {
		return len(builtinMappings)
	}
	return len(m.mappings)
}

// Tags returns the mapped tag names in sorted order.
func (m TagMap) Tags() []string {
	src := m.mappings
	if src == nil {
		src = builtinMappings
	}
	tags := make([]string, 0, len(src))
	for k := range src {
		tags = append(tags, k)
	}
	sort.Strings(tags)
	return tags
}
