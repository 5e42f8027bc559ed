package edits

import "sort"

// Set is a set of words. Membership is exact string equality.
type Set map[string]struct{}

func NewSet(words ...string) Set {
	s := make(Set, len(words))
	for _, w := range words {
		s.Add(w)
	}
	return s
}

func (s Set) Add(w string) { s[w] = struct{}{} }

func (s Set) Has(w string) bool {
	_, ok := s[w]
	return ok
}

func (s Set) Len() int { return len(s) }

// Union adds every member of o to s.
func (s Set) Union(o Set) {
	for w := range o {
		s.Add(w)
	}
}

// Sorted returns the members in ascending byte order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for w := range s {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}
