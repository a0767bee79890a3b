// Package scope implements Scope, the ordered set of variable identifiers
// shared by boxes, DAG functions and contractors, plus a process-wide
// ScopeBank that de-duplicates repeated Scope values the way the source
// shares a single representation across many owners.
package scope

import "sort"

// Scope is an immutable, copy-on-write-free value type: a sorted set of
// variable identifiers with an O(log n) Index lookup (binary search over
// the sorted ids; there is no constant-time index). Two Scopes built from
// the same set of ids always compare Equal, regardless of insertion
// order.
type Scope struct {
	ids []int // sorted, unique
}

// Empty returns the empty scope.
func Empty() Scope { return Scope{} }

// New builds a Scope from an arbitrary set of ids, sorting and
// de-duplicating them.
func New(ids ...int) Scope {
	if len(ids) == 0 {
		return Scope{}
	}
	cp := append([]int(nil), ids...)
	sort.Ints(cp)
	out := cp[:1]
	for _, v := range cp[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return Scope{ids: out}
}

// Size returns the number of variables in the scope.
func (s Scope) Size() int { return len(s.ids) }

// IDs returns the sorted variable identifiers; callers must not mutate
// the returned slice.
func (s Scope) IDs() []int { return s.ids }

// Contains reports whether id is in s.
func (s Scope) Contains(id int) bool {
	_, ok := s.Index(id)
	return ok
}

// Index returns the 0..n-1 contiguous position of id within s, in
// identifier order.
func (s Scope) Index(id int) (int, bool) {
	i := sort.SearchInts(s.ids, id)
	if i < len(s.ids) && s.ids[i] == id {
		return i, true
	}
	return -1, false
}

// Union returns the set union of s and t.
func (s Scope) Union(t Scope) Scope {
	return New(append(append([]int(nil), s.ids...), t.ids...)...)
}

// Inter returns the set intersection of s and t.
func (s Scope) Inter(t Scope) Scope {
	var out []int
	for _, id := range s.ids {
		if t.Contains(id) {
			out = append(out, id)
		}
	}
	return New(out...)
}

// Disjoint reports whether s and t share no variable.
func (s Scope) Disjoint(t Scope) bool { return s.Inter(t).Size() == 0 }

// SubsetOf reports whether every id of s is in t.
func (s Scope) SubsetOf(t Scope) bool {
	for _, id := range s.ids {
		if !t.Contains(id) {
			return false
		}
	}
	return true
}

// Equal reports whether s and t contain exactly the same ids.
func (s Scope) Equal(t Scope) bool {
	if len(s.ids) != len(t.ids) {
		return false
	}
	for i := range s.ids {
		if s.ids[i] != t.ids[i] {
			return false
		}
	}
	return true
}

// Each calls f for every id in ascending order.
func (s Scope) Each(f func(id int)) {
	for _, id := range s.ids {
		f(id)
	}
}

// key renders the id list as a canonical map key for the bank below.
func key(ids []int) string {
	b := make([]byte, 0, len(ids)*4)
	for _, id := range ids {
		b = appendInt(b, id)
		b = append(b, ',')
	}
	return string(b)
}

func appendInt(b []byte, v int) []byte {
	if v < 0 {
		b = append(b, '-')
		v = -v
	}
	start := len(b)
	if v == 0 {
		return append(b, '0')
	}
	for v > 0 {
		b = append(b, byte('0'+v%10))
		v /= 10
	}
	// reverse digits
	for i, j := start, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return b
}

// Bank is a process-wide cache mapping canonical Scope values to a single
// shared representation, so that repeatedly-constructed scopes over the
// same variable set do not proliferate distinct backing arrays. Callers
// obtain a cheap handle via Intern; the handle is a plain Scope value
// (Scope already has value semantics), but routing construction through a
// shared Bank means the same int slice backs every interned Scope with
// a given id set.
type Bank struct {
	table map[string]Scope
}

// NewBank creates an empty scope bank.
func NewBank() *Bank { return &Bank{table: make(map[string]Scope)} }

// Intern returns the canonical Scope for the given ids, sharing the
// backing slice with any previously-interned Scope over the same set.
func (b *Bank) Intern(ids ...int) Scope {
	s := New(ids...)
	k := key(s.ids)
	if cached, ok := b.table[k]; ok {
		return cached
	}
	b.table[k] = s
	return s
}

// Len reports how many distinct scopes the bank currently holds.
func (b *Bank) Len() int { return len(b.table) }
