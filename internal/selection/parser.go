// Package selection parses operator selection commands.
//
// A command is a whitespace-separated list of tokens. Each token names a
// 1-based index or an inclusive range of indices into the current working
// set; a leading "p" sends it to the preserve set instead of the exclude set:
//
//	16       exclude 16
//	22-26    exclude 22..26 (26-22 means the same)
//	200-     exclude 200..length
//	-111     exclude 1..111
//	p20-30   preserve 20..30
//
// Malformed tokens and out-of-range single indices contribute nothing.
package selection

import (
	"sort"
	"strconv"
	"strings"
)

// Set is a set of 1-based indices.
type Set map[int]struct{}

// Has reports whether i is in the set.
func (s Set) Has(i int) bool {
	_, ok := s[i]
	return ok
}

// Sorted returns the indices in ascending order.
func (s Set) Sorted() []int {
	out := make([]int, 0, len(s))
	for i := range s {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

func (s Set) addRange(start, end int) {
	for i := start; i <= end; i++ {
		s[i] = struct{}{}
	}
}

// Selection is the parsed form of one command.
type Selection struct {
	Exclude  Set
	Preserve Set
}

// Empty reports whether the command selected nothing.
func (s Selection) Empty() bool {
	return len(s.Exclude) == 0 && len(s.Preserve) == 0
}

// Parse parses command against a working set of the given length.
func Parse(command string, length int) Selection {
	sel := Selection{Exclude: Set{}, Preserve: Set{}}

	for _, tok := range strings.Fields(command) {
		target := sel.Exclude
		if rest, ok := strings.CutPrefix(tok, "p"); ok {
			if rest == "" {
				continue
			}
			tok = rest
			target = sel.Preserve
		}

		lo, hi, isRange := strings.Cut(tok, "-")
		if !isRange {
			if n, ok := parseIndex(tok); ok && n >= 1 && n <= length {
				target[n] = struct{}{}
			}
			continue
		}

		if lo == "" && hi == "" {
			continue
		}

		start, end := 1, length
		if lo != "" {
			n, ok := parseIndex(lo)
			if !ok {
				continue
			}
			start = n
		}
		if hi != "" {
			n, ok := parseIndex(hi)
			if !ok {
				continue
			}
			end = n
		}
		if lo != "" && hi != "" && start > end {
			start, end = end, start
		}
		start = max(start, 1)
		end = min(end, length)
		if start > end {
			continue
		}
		target.addRange(start, end)
	}

	return sel
}

// parseIndex accepts unsigned decimal digits only.
func parseIndex(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
