package validation

import (
	"sort"
	"strings"
)

// Placeholders maps message tokens such as ":attribute", ":$1", ":$2",
// ":array" and ":type" to the text substituted for them.
type Placeholders map[string]string

// With sets key and returns p, allocating the map when p is nil.
func (p Placeholders) With(key, value string) Placeholders {
	if p == nil {
		p = make(Placeholders, 1)
	}
	p[key] = value
	return p
}

// Format replaces every token of p found in template.
//
//	Format("The :attribute field must be in :array", Placeholders{
//	    ":attribute": "role",
//	    ":array":     "admin, editor",
//	}) // "The role field must be in admin, editor"
func Format(template string, p Placeholders) string {
	if len(p) == 0 || template == "" {
		return template
	}

	// Longest token first so ":$1" never eats the prefix of ":$10".
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	pairs := make([]string, 0, len(keys)*2)
	for _, k := range keys {
		pairs = append(pairs, k, p[k])
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
