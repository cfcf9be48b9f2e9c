package enlistment

import "strings"

// Key identifies one section offering a student is considering. It is a
// structured pair so a code containing the display separator can never be
// confused with another offering.
type Key struct {
	Code    string `json:"code"`
	Section string `json:"section"`
}

// NewKey trims both parts and upper-cases them, so "cs101"/"1a" and
// "CS101"/"1A" name the same offering.
func NewKey(code, section string) Key {
	return Key{
		Code:    strings.ToUpper(strings.TrimSpace(code)),
		Section: strings.ToUpper(strings.TrimSpace(section)),
	}
}

// IsZero reports whether either half of the key is missing.
func (k Key) IsZero() bool {
	return k.Code == "" || k.Section == ""
}

// String renders the key for display only; it is never parsed back.
func (k Key) String() string {
	return k.Code + "-" + k.Section
}

// keySet keeps insertion order so conflict tie-breaks stay deterministic.
type keySet struct {
	order []Key
	index map[Key]struct{}
}

func newKeySet(keys ...Key) keySet {
	set := keySet{index: make(map[Key]struct{}, len(keys))}
	for _, key := range keys {
		set.add(key)
	}
	return set
}

func (s *keySet) has(key Key) bool {
	_, ok := s.index[key]
	return ok
}

func (s *keySet) add(key Key) bool {
	if s.index == nil {
		s.index = make(map[Key]struct{})
	}
	if s.has(key) {
		return false
	}
	s.index[key] = struct{}{}
	s.order = append(s.order, key)
	return true
}

func (s *keySet) remove(key Key) bool {
	if !s.has(key) {
		return false
	}
	delete(s.index, key)
	for i, existing := range s.order {
		if existing == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

func (s *keySet) findCode(code string) (Key, bool) {
	for _, key := range s.order {
		if key.Code == code {
			return key, true
		}
	}
	return Key{}, false
}

func (s *keySet) keys() []Key {
	out := make([]Key, len(s.order))
	copy(out, s.order)
	return out
}

func (s *keySet) len() int {
	return len(s.order)
}
