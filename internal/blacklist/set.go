package blacklist

import "strings"

// MapSet implements Set using a map for O(1) lookups.
type MapSet struct {
	keys map[string]struct{}
}

// NewSet creates an empty map-based set.
func NewSet(capacity int) *MapSet {
	return &MapSet{
		keys: make(map[string]struct{}, capacity),
	}
}

// Contains checks if a key exists in the set.
func (s *MapSet) Contains(key string) bool {
	_, exists := s.keys[normalize(key)]
	return exists
}

// Size returns the number of keys in the set.
func (s *MapSet) Size() int {
	return len(s.keys)
}

// Add adds a key to the set. Blank keys are ignored.
func (s *MapSet) Add(key string) {
	if key = normalize(key); key != "" {
		s.keys[key] = struct{}{}
	}
}

// merge adds every key of other to s.
func (s *MapSet) merge(other *MapSet) {
	for key := range other.keys {
		s.keys[key] = struct{}{}
	}
}

func normalize(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
