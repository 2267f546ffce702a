package validation

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// ErrInvalidCatalog is returned when a message file cannot be used.
var ErrInvalidCatalog = errors.New("validation: invalid message catalog")

// Messages maps a rule key (e.g. "required", "string.min_length") to its
// template.
type Messages map[string]string

var defaultMessages = Messages{
	"type.array":   "The :attribute field has an invalid :type value",
	"type.boolean": "The :attribute field has an invalid :type value",
	"type.date":    "The :attribute field has an invalid :type value",
	"type.file":    "The :attribute field has an invalid :type",
	"type.number":  "The :attribute field has an invalid numerical value",
	"type.string":  "The :attribute field has an invalid :type value",

	"config.count": "The :attribute field or the comparison number or field is not valid.",
	"config.date":  "The :attribute field or the comparison date or field is not a valid date.",

	"required":      "The :attribute field is required",
	"required_some": "The :attribute field is required",
	"prohibited":    "The :attribute field is prohibited",
	"accepted":      "The :attribute field must be accepted",
	"declined":      "The :attribute field must be declined",
	"confirmed":     "The :attribute field must be confirmed",

	"array.gt":      "The :attribute field must be greater than :$1",
	"array.lt":      "The :attribute field must be less than :$1",
	"array.gte":     "The :attribute field must be greater than or equal :$1",
	"array.lte":     "The :attribute field must be less than or equal :$1",
	"array.equal":   "The :attribute field must be equal to :$1",
	"array.between": "The :attribute field must be between :$1 and :$2",

	"number.gt":      "The :attribute field must be greater than :$1",
	"number.lt":      "The :attribute field must be less than :$1",
	"number.gte":     "The :attribute field must be greater than or equal :$1",
	"number.lte":     "The :attribute field must be less than or equal :$1",
	"number.between": "The :attribute field must be between :$1 and :$2",

	"string.min_length":     "The :attribute field must be longer than :$1 characters",
	"string.max_length":     "The :attribute field must be shorter than :$1 characters",
	"string.length":         "The :attribute field must be equal to :$1 characters",
	"string.length_between": "The :attribute field must be between :$1 to :$2 characters",

	"date.equal":           "The :attribute field must be :$1",
	"date.after":           "The :attribute field must come after :$1",
	"date.after_or_equal":  "The :attribute field must come on or after :$1",
	"date.before":          "The :attribute field must come before :$1",
	"date.before_or_equal": "The :attribute field must come on or before :$1",
	"date.between":         "The :attribute field must come after :$1 but not later than :$2",

	"file.mime_types": "The :attribute field has an invalid file format",
	"file.extensions": "The :attribute field has an invalid file format",
	"file.image":      "The :attribute field has an invalid file format",

	"in":         "The :attribute field must be in :array",
	"not_in":     "The :attribute field must not be in :array",
	"format":     "The :attribute field has an invalid format",
	"email":      "The :attribute field has an invalid format",
	"username":   "The :attribute field has an invalid format",
	"alpha":      "The :attribute field must only contain alpha characters",
	"alpha_dash": "The :attribute field must only contain alpha-numeric characters, dashes or underscores",
	"alpha_num":  "The :attribute field must only contain alpha-numeric characters",
	"ascii":      "The :attribute field must only contain ASCII characters",
	"matches":    "The :attribute field must match with the :$1 field",
	"mismatches": "The :attribute field must not match with the :$1 field",
	"same":       "The :attribute field must be equal to :$1",
	"different":  "The :attribute field must be different from :$1",
}

// DefaultMessages returns a copy of the built-in English templates.
func DefaultMessages() Messages {
	return maps.Clone(defaultMessages)
}

// ── Catalog ──────────────────────────────────────────────────────────────────

// Catalog resolves templates per language. Lookups fall back from the
// requested language to the catalog's fallback language and finally to
// the built-in defaults. A nil *Catalog serves the defaults only.
type Catalog struct {
	mu       sync.RWMutex
	fallback language.Tag
	langs    map[language.Tag]Messages
	matcher  language.Matcher
	tags     []language.Tag
}

// NewCatalog creates a catalog whose fallback language is fallback.
func NewCatalog(fallback language.Tag) *Catalog {
	c := &Catalog{
		fallback: fallback,
		langs:    make(map[language.Tag]Messages),
	}
	c.rebuild()
	return c
}

// Add merges messages into the templates of lang.
func (c *Catalog) Add(lang language.Tag, messages Messages) {
	c.mu.Lock()
	defer c.mu.Unlock()

	existing, ok := c.langs[lang]
	if !ok {
		existing = make(Messages, len(messages))
		c.langs[lang] = existing
	}
	maps.Copy(existing, messages)
	c.rebuild()
}

// rebuild refreshes the matcher. The fallback comes first so it wins
// when nothing matches.
func (c *Catalog) rebuild() {
	tags := []language.Tag{c.fallback}
	for _, tag := range slices.SortedFunc(maps.Keys(c.langs), func(a, b language.Tag) int {
		return strings.Compare(a.String(), b.String())
	}) {
		if tag != c.fallback {
			tags = append(tags, tag)
		}
	}
	c.tags = tags
	c.matcher = language.NewMatcher(tags)
}

// Lookup returns the template for key in lang.
func (c *Catalog) Lookup(lang language.Tag, key string) string {
	if c != nil {
		c.mu.RLock()
		defer c.mu.RUnlock()

		if tmpl, ok := c.langs[lang][key]; ok {
			return tmpl
		}
		if tmpl, ok := c.langs[c.fallback][key]; ok {
			return tmpl
		}
	}
	return defaultMessages[key]
}

// Languages lists the languages with templates, fallback first.
func (c *Catalog) Languages() []language.Tag {
	if c == nil {
		return nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.tags)
}

// Match picks the best catalog language for an Accept-Language header.
func (c *Catalog) Match(acceptLanguage string) language.Tag {
	if c == nil {
		return language.Und
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	if acceptLanguage == "" {
		return c.fallback
	}
	desired, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(desired) == 0 {
		return c.fallback
	}
	_, index, _ := c.matcher.Match(desired...)
	return c.tags[index]
}

// LoadYAML reads a document whose top-level keys are language tags:
//
//	nl:
//	  required: "Het veld :attribute is verplicht"
//	  string.min_length: "Het veld :attribute moet langer zijn dan :$1 tekens"
func (c *Catalog) LoadYAML(data []byte) error {
	var doc map[string]Messages
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
	}
	if len(doc) == 0 {
		return fmt.Errorf("%w: no languages defined", ErrInvalidCatalog)
	}
	for name, messages := range doc {
		tag, err := language.Parse(name)
		if err != nil {
			return fmt.Errorf("%w: language %q: %w", ErrInvalidCatalog, name, err)
		}
		c.Add(tag, messages)
	}
	return nil
}

// LoadFile loads one YAML message file.
func (c *Catalog) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read messages %s: %w", path, err)
	}
	if err := c.LoadYAML(data); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// LoadDir loads every .yaml and .yml file in dir, in name order.
func (c *Catalog) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read messages dir %s: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".yaml", ".yml":
			if err := c.LoadFile(filepath.Join(dir, entry.Name())); err != nil {
				return err
			}
		}
	}
	return nil
}
