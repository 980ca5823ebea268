package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func span(start, end int) []int {
	out := make([]int, 0, end-start+1)
	for i := start; i <= end; i++ {
		out = append(out, i)
	}
	return out
}

func TestParse(t *testing.T) {
	tests := []struct {
		command  string
		length   int
		exclude  []int
		preserve []int
	}{
		{"16", 300, []int{16}, nil},
		{"1 30", 300, []int{1, 30}, nil},
		{"20 22-26", 300, []int{20, 22, 23, 24, 25, 26}, nil},
		{"200-", 300, span(200, 300), nil},
		{"-111", 300, span(1, 111), nil},
		{"p20", 300, nil, []int{20}},
		{"p20-30", 300, nil, span(20, 30)},
		{"p20 10-13", 300, []int{10, 11, 12, 13}, []int{20}},
		{"p3 p33-", 300, nil, append([]int{3}, span(33, 300)...)},
		{"26-22", 300, span(22, 26), nil},
		{"p-3", 10, nil, []int{1, 2, 3}},
		{"5 p5", 10, []int{5}, []int{5}},
		{"8-20", 10, span(8, 10), nil},
		{"0-2", 10, []int{1, 2}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			sel := Parse(tt.command, tt.length)
			if tt.exclude == nil {
				tt.exclude = []int{}
			}
			if tt.preserve == nil {
				tt.preserve = []int{}
			}
			assert.Equal(t, tt.exclude, sel.Exclude.Sorted())
			assert.Equal(t, tt.preserve, sel.Preserve.Sorted())
		})
	}
}

func TestParse_IgnoredTokens(t *testing.T) {
	for _, command := range []string{
		"",
		"   ",
		"0",
		"301",
		"p",
		"-",
		"p-",
		"abc",
		"p0",
		"1.5",
		"+3",
		"1-2-3",
		"x-4",
		"400-",
		"400-500",
		"P3",
	} {
		t.Run(command, func(t *testing.T) {
			sel := Parse(command, 300)
			assert.True(t, sel.Empty(), "expected %q to select nothing, got %v / %v",
				command, sel.Exclude.Sorted(), sel.Preserve.Sorted())
		})
	}
}

func TestParse_MixedValidAndInvalid(t *testing.T) {
	sel := Parse("abc 4 p 999 p7", 10)
	assert.Equal(t, []int{4}, sel.Exclude.Sorted())
	assert.Equal(t, []int{7}, sel.Preserve.Sorted())
}

func TestParse_EmptyWorkingSet(t *testing.T) {
	sel := Parse("1 1- -1 p1", 0)
	assert.True(t, sel.Empty())
}

func TestSet_Has(t *testing.T) {
	s := Set{}
	s.addRange(2, 4)
	assert.True(t, s.Has(3))
	assert.False(t, s.Has(5))
}
