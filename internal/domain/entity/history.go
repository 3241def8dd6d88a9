package entity

// HistorySet is the set of report filenames already processed by earlier
// runs. Membership is by base filename, extension included.
type HistorySet map[string]struct{}

// NewHistorySet creates a set from the given filenames.
func NewHistorySet(names ...string) HistorySet {
	s := make(HistorySet, len(names))
	for _, n := range names {
		s.Add(n)
	}
	return s
}

// Add inserts a filename into the set.
func (s HistorySet) Add(name string) {
	s[name] = struct{}{}
}

// Contains reports whether the filename was already processed.
func (s HistorySet) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

// Len returns the number of known filenames.
func (s HistorySet) Len() int {
	return len(s)
}
