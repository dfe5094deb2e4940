// Package types implements the type registry (component C4): the set of
// type descriptors (name, revision, supported family, element dimension)
// that a command can be resolved against, and the name-to-descriptor cache
// tracking every set currently known to the session.
package types

import (
	"errors"
	"sort"

	"github.com/cbdog94/dset/pkg/dset/data"
)

// Family mirrors the kernel's protocol-family values a type can declare
// support for. FamilyUnspec means family-neutral; FamilyBoth is the
// userspace-only convenience value meaning "supports both IPv4 and IPv6".
type Family uint8

const (
	FamilyUnspec Family = 0
	FamilyIPv4   Family = 2
	FamilyIPv6   Family = 10
	FamilyBoth   Family = 255
)

// Dimension is how many elements make up one entry of a set type (1-3).
type Dimension uint8

// ElemPart describes how to parse and print one dimension of an element.
type ElemPart struct {
	Opt data.Opt
}

// Descriptor is one registered set type at one revision.
type Descriptor struct {
	Name       string
	Aliases    []string
	Revision   uint8
	Family     Family
	Dimension  Dimension
	Elem       [3]ElemPart
	Usage       string
	Description string // short revision description

	// CreateMenu is this revision's CREATE argument table; ADTMenu covers
	// ADD/DEL/TEST, which share one menu since all three take the same
	// element-plus-CADT-options shape (spec.md §4.5).
	CreateMenu *Menu
	ADTMenu    *Menu
}

// MatchesName reports whether str names this descriptor, either by its
// canonical name or by one of its aliases.
func (d *Descriptor) MatchesName(str string) bool {
	if d.Name == str {
		return true
	}
	for _, a := range d.Aliases {
		if a == str {
			return true
		}
	}
	return false
}

var (
	// ErrUnknownType is returned when no descriptor matches the requested name.
	ErrUnknownType = errors.New("types: unknown set type")
	// ErrFamilyMismatch is returned when a descriptor exists but none of its
	// revisions supports the requested family.
	ErrFamilyMismatch = errors.New("types: type does not support this family")
)

// Registry holds every known type name, each with its revisions ordered
// from highest to lowest so resolution can always offer the newest
// revision first and fall back to older ones a given kernel understands.
type Registry struct {
	byName map[string][]*Descriptor // sorted descending by Revision
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string][]*Descriptor)}
}

// Add registers a type revision. Revisions of the same name are kept
// sorted so Highest and ForFamily always see the highest revision first.
func (r *Registry) Add(d *Descriptor) {
	list := r.byName[d.Name]
	list = append(list, d)
	sort.Slice(list, func(i, j int) bool { return list[i].Revision > list[j].Revision })
	r.byName[d.Name] = list
}

// ResolveName returns the canonical registered name for str, following
// aliases, or "" if nothing matches.
func (r *Registry) ResolveName(str string) string {
	if _, ok := r.byName[str]; ok {
		return str
	}
	for name, list := range r.byName {
		for _, d := range list {
			if d.MatchesName(str) {
				return name
			}
		}
	}
	return ""
}

// Highest returns the highest-revision descriptor registered under name,
// regardless of family.
func (r *Registry) Highest(name string) (*Descriptor, bool) {
	list := r.byName[name]
	if len(list) == 0 {
		return nil, false
	}
	return list[0], true
}

// ForFamily returns the highest-revision descriptor under name that
// supports family (FamilyBoth and FamilyUnspec descriptors match every
// family).
func (r *Registry) ForFamily(name string, family Family) (*Descriptor, error) {
	list := r.byName[name]
	if len(list) == 0 {
		return nil, ErrUnknownType
	}
	for _, d := range list {
		if d.Family == FamilyUnspec || d.Family == FamilyBoth || d.Family == family {
			return d, nil
		}
	}
	return nil, ErrFamilyMismatch
}

// HigherRevision returns the registered descriptor with the same name as
// d and the next revision up, or nil if d is already the newest or is not
// registered.
func (r *Registry) HigherRevision(d *Descriptor) *Descriptor {
	list := r.byName[d.Name]
	for i, cur := range list {
		if cur == d && i > 0 {
			return list[i-1]
		}
	}
	return nil
}

// CheckReceived reports whether a descriptor with the same name, family
// and dimension as received is present in the registry — used to
// validate a type summary reported back by the kernel against what this
// process itself knows how to handle.
func (r *Registry) CheckReceived(name string, family Family, dim Dimension) bool {
	for _, d := range r.byName[name] {
		if d.Family == family && d.Dimension == dim {
			return true
		}
	}
	return false
}

// All returns every registered descriptor across every name, highest
// revision first within each name, for listing ("dset help" output).
func (r *Registry) All() []*Descriptor {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]*Descriptor, 0, len(names))
	for _, name := range names {
		out = append(out, r.byName[name]...)
	}
	return out
}
