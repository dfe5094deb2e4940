package types

import "errors"

// NameCache is the session's view of which sets currently exist and what
// type each one is, kept in sync with the kernel's replies to CREATE,
// DESTROY, RENAME and SWAP rather than queried fresh each time. It is a
// small linear list, not a map: real set counts are in the tens to low
// hundreds, and RENAME/SWAP need order-independent pairwise lookups that
// a slice makes easy to reason about.
type NameCache struct {
	entries []cacheEntry
}

type cacheEntry struct {
	name     string
	typeName string
}

var (
	// ErrNameExists is returned by Add when name is already cached.
	ErrNameExists = errors.New("types: set name already in use")
	// ErrNameNotFound is returned by Del/Rename/Swap for an unknown name.
	ErrNameNotFound = errors.New("types: unknown set name")
)

// NewNameCache returns an empty cache.
func NewNameCache() *NameCache { return &NameCache{} }

func (c *NameCache) index(name string) int {
	for i, e := range c.entries {
		if e.name == name {
			return i
		}
	}
	return -1
}

// Add records a newly created set. Returns ErrNameExists if name is
// already tracked.
func (c *NameCache) Add(name, typeName string) error {
	if c.index(name) >= 0 {
		return ErrNameExists
	}
	c.entries = append(c.entries, cacheEntry{name: name, typeName: typeName})
	return nil
}

// Del drops name from the cache, as a successful DESTROY does.
func (c *NameCache) Del(name string) error {
	i := c.index(name)
	if i < 0 {
		return ErrNameNotFound
	}
	c.entries = append(c.entries[:i], c.entries[i+1:]...)
	return nil
}

// Rename renames from to to in place, as a successful RENAME does.
func (c *NameCache) Rename(from, to string) error {
	i := c.index(from)
	if i < 0 {
		return ErrNameNotFound
	}
	if c.index(to) >= 0 {
		return ErrNameExists
	}
	c.entries[i].name = to
	return nil
}

// Swap exchanges the names of two existing sets, as a successful SWAP
// does; the underlying type of each set travels with its old name.
func (c *NameCache) Swap(a, b string) error {
	ia, ib := c.index(a), c.index(b)
	if ia < 0 || ib < 0 {
		return ErrNameNotFound
	}
	c.entries[ia].name, c.entries[ib].name = c.entries[ib].name, c.entries[ia].name
	return nil
}

// TypeOf returns the type name recorded for a cached set.
func (c *NameCache) TypeOf(name string) (string, bool) {
	i := c.index(name)
	if i < 0 {
		return "", false
	}
	return c.entries[i].typeName, true
}

// Exists reports whether name is currently tracked.
func (c *NameCache) Exists(name string) bool {
	return c.index(name) >= 0
}

// Names returns every cached set name, in cache (insertion) order.
func (c *NameCache) Names() []string {
	out := make([]string, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.name
	}
	return out
}
