// internal/excitation/table.go
package excitation

import "fmt"

// Invalid is the code returned for labels that are not in the table.
const Invalid = -1

// Entry is one (label, code) row of the excitation table.
type Entry struct {
	Label string
	Code  int
}

// entries mirror the controller's enumerated excitation states.
// Order and codes are protocol-locked and MUST NOT be changed.
var entries = []Entry{
	{"Off", 0},
	{"30 nA", 1},
	{"100 nA", 2},
	{"300 nA", 3},
	{"1 uA", 4},
	{"3 uA", 5},
	{"10 uA", 6},
	{"30 uA", 7},
	{"100 uA", 8},
	{"300 uA", 9},
	{"1 mA", 10},
	{"10 mV", 11},
	{"1 mV", 12},
}

var byLabel = mustIndex(entries)

// Count is the number of excitation states. Valid codes are [0, Count).
var Count = len(entries)

// Entries returns a copy of the table in code order.
func Entries() []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

// Lookup returns the code for an exact, case-sensitive label match.
func Lookup(label string) (int, bool) {
	code, ok := byLabel[label]
	return code, ok
}

// Code returns the code for label, or Invalid.
func Code(label string) int {
	if code, ok := byLabel[label]; ok {
		return code
	}
	return Invalid
}

// Label returns the label for code, or "" when code is out of range.
func Label(code int) string {
	if !InRange(code) {
		return ""
	}
	return entries[code].Label
}

// InRange reports whether code is a valid excitation code.
func InRange(code int) bool {
	return code >= 0 && code < len(entries)
}

// mustIndex builds the label index.
// A table with duplicate labels or non-dense codes is a build defect.
func mustIndex(es []Entry) map[string]int {
	idx, err := index(es)
	if err != nil {
		panic(err)
	}
	return idx
}

func index(es []Entry) (map[string]int, error) {
	idx := make(map[string]int, len(es))
	for i, e := range es {
		if e.Code != i {
			return nil, fmt.Errorf("excitation table: entry %q has code %d, want %d", e.Label, e.Code, i)
		}
		if e.Label == "" {
			return nil, fmt.Errorf("excitation table: empty label at code %d", i)
		}
		if _, dup := idx[e.Label]; dup {
			return nil, fmt.Errorf("excitation table: duplicate label %q", e.Label)
		}
		idx[e.Label] = e.Code
	}
	return idx, nil
}
