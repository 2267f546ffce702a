package validation

import (
	"maps"
	"slices"
	"strings"
)

// Errors holds validation errors, much like Laravel's MessageBag.
// JSON output: {"errors": {"field": ["msg1", "msg2"]}}
//
// Messages keep the order they were added in per field and are never
// de-duplicated.
type Errors struct {
	Bag map[string][]string `json:"errors"`
}

// NewErrors returns an empty bag.
func NewErrors() *Errors {
	return &Errors{Bag: make(map[string][]string)}
}

// Add appends a message for field, creating the list when absent.
func (e *Errors) Add(field, msg string) {
	if e.Bag == nil {
		e.Bag = make(map[string][]string)
	}
	e.Bag[field] = append(e.Bag[field], msg)
}

// All returns a copy of every field's messages.
func (e *Errors) All() map[string][]string {
	out := make(map[string][]string, len(e.Bag))
	for field, msgs := range e.Bag {
		out[field] = slices.Clone(msgs)
	}
	return out
}

// Any returns true if there are any errors.
func (e *Errors) Any() bool { return len(e.Bag) > 0 }

// Has returns true if field has at least one message.
func (e *Errors) Has(field string) bool {
	_, ok := e.Bag[field]
	return ok
}

// First returns the first error for a field, or "" when there is none.
func (e *Errors) First(field string) string {
	if msgs, ok := e.Bag[field]; ok && len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// Get returns every message for field, or nil.
func (e *Errors) Get(field string) []string {
	msgs, ok := e.Bag[field]
	if !ok {
		return nil
	}
	return slices.Clone(msgs)
}

// Clear removes the messages of the given fields. With no arguments the
// whole bag is reset.
func (e *Errors) Clear(fields ...string) {
	if len(fields) == 0 {
		e.Bag = make(map[string][]string)
		return
	}
	for _, field := range fields {
		delete(e.Bag, field)
	}
}

// Fields returns the names of the fields with messages, sorted.
func (e *Errors) Fields() []string {
	return slices.Sorted(maps.Keys(e.Bag))
}

// Count returns the total number of messages across all fields.
func (e *Errors) Count() int {
	n := 0
	for _, msgs := range e.Bag {
		n += len(msgs)
	}
	return n
}

// Error renders the bag as "field: message; field: message" so a failed
// validation can travel through error-returning code paths.
func (e *Errors) Error() string {
	var b strings.Builder
	for _, field := range e.Fields() {
		for _, msg := range e.Bag[field] {
			if b.Len() > 0 {
				b.WriteString("; ")
			}
			b.WriteString(field)
			b.WriteString(": ")
			b.WriteString(msg)
		}
	}
	return b.String()
}
