package models

import (
	"fmt"
	"sort"
)

// Search pagination bounds.
const (
	DefaultPageSize = 10
	MaxPageSize     = 30
)

// sortableFields are the user fields a search may sort by.
var sortableFields = map[string]bool{
	"id":      true,
	"profile": true,
	"name":    true,
	"email":   true,
	"address": true,
	"phone":   true,
}

// SortableField reports whether name is a user field searches may sort by.
func SortableField(name string) bool {
	return sortableFields[name]
}

// UserFilter is an immutable, sanitized search specification. Values are
// only produced by FilterBuilder.Build, which resolves conflicting sort
// directives up front; there is nothing to lock afterwards.
type UserFilter struct {
	fields User
	page   int
	size   int
	asc    []string
	desc   []string
}

// Fields returns the example template. Non-empty fields narrow the match,
// empty fields are wildcards.
func (f *UserFilter) Fields() User { return f.fields }

// Page returns the zero-based page index.
func (f *UserFilter) Page() int { return f.page }

// Size returns the page length.
func (f *UserFilter) Size() int { return f.size }

// Asc returns the ascending sort fields. Never nil.
func (f *UserFilter) Asc() []string {
	out := make([]string, len(f.asc))
	copy(out, f.asc)
	return out
}

// Desc returns the descending sort fields. Never nil.
func (f *UserFilter) Desc() []string {
	out := make([]string, len(f.desc))
	copy(out, f.desc)
	return out
}

// FilterBuilder accumulates search criteria and produces a sanitized
// UserFilter.
type FilterBuilder struct {
	fields User
	page   int
	size   int
	asc    map[string]bool
	desc   map[string]bool
}

// NewFilterBuilder returns a builder with an empty template, page 0 and the
// default page size.
func NewFilterBuilder() *FilterBuilder {
	return &FilterBuilder{
		size: DefaultPageSize,
		asc:  make(map[string]bool),
		desc: make(map[string]bool),
	}
}

// Fields sets the example template.
func (b *FilterBuilder) Fields(fields User) *FilterBuilder {
	b.fields = fields
	return b
}

// Page sets the zero-based page index.
func (b *FilterBuilder) Page(page int) *FilterBuilder {
	b.page = page
	return b
}

// Size sets the page length.
func (b *FilterBuilder) Size(size int) *FilterBuilder {
	b.size = size
	return b
}

// Asc adds ascending sort fields.
func (b *FilterBuilder) Asc(fields ...string) *FilterBuilder {
	for _, f := range fields {
		b.asc[f] = true
	}
	return b
}

// Desc adds descending sort fields.
func (b *FilterBuilder) Desc(fields ...string) *FilterBuilder {
	for _, f := range fields {
		b.desc[f] = true
	}
	return b
}

// Build validates the criteria and returns the sanitized filter. A field
// requested in both sort directions is a conflict and is dropped from both
// sets; the remainders are disjoint.
func (b *FilterBuilder) Build() (*UserFilter, error) {
	if b.page < 0 {
		return nil, fmt.Errorf("page must not be negative, got %d", b.page)
	}
	if b.size < 1 || b.size > MaxPageSize {
		return nil, fmt.Errorf("size must be between 1 and %d, got %d", MaxPageSize, b.size)
	}
	for f := range b.asc {
		if !SortableField(f) {
			return nil, fmt.Errorf("unknown sort field %q", f)
		}
	}
	for f := range b.desc {
		if !SortableField(f) {
			return nil, fmt.Errorf("unknown sort field %q", f)
		}
	}

	asc := make([]string, 0, len(b.asc))
	for f := range b.asc {
		if !b.desc[f] {
			asc = append(asc, f)
		}
	}
	desc := make([]string, 0, len(b.desc))
	for f := range b.desc {
		if !b.asc[f] {
			desc = append(desc, f)
		}
	}
	sort.Strings(asc)
	sort.Strings(desc)

	return &UserFilter{
		fields: b.fields,
		page:   b.page,
		size:   b.size,
		asc:    asc,
		desc:   desc,
	}, nil
}
