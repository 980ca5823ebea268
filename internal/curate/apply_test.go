package curate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply_ExcludeSingle(t *testing.T) {
	run := NewRun()
	ws := links(5)

	out := run.Apply("2", ws)

	require.Len(t, out, 4)
	assert.Equal(t, ws[0], out[0])
	assert.Equal(t, ws[2], out[1])
	assert.Len(t, ws, 5, "input must not be modified")
}

func TestApply_PreserveRegistersAndRemoves(t *testing.T) {
	run := NewRun()
	ws := links(5)

	out := run.Apply("p3", ws)

	assert.Len(t, out, 4)
	assert.Equal(t, 1, run.PreservedCount())
	assert.True(t, run.IsPreserved(ws[2].URL))
	for _, l := range out {
		assert.NotEqual(t, ws[2].URL, l.URL)
	}
}

func TestApply_ExcludedAndPreservedIndex(t *testing.T) {
	run := NewRun()
	ws := links(5)

	out := run.Apply("4 p4", ws)

	assert.Len(t, out, 4)
	assert.True(t, run.IsPreserved(ws[3].URL))
}

func TestApply_RegistryKeyedByURL(t *testing.T) {
	run := NewRun()
	level1 := links(5)
	level2 := links(10)[5:]

	run.Apply("p1", level1)
	run.Apply("p1", level2)

	assert.Equal(t, 2, run.PreservedCount(), "same index at different levels names different links")

	run.Apply("p1", level1)
	assert.Equal(t, 2, run.PreservedCount(), "re-preserving a link is a no-op")
}

func TestApply_NothingSelected(t *testing.T) {
	run := NewRun()
	ws := links(3)

	assert.Equal(t, ws, run.Apply("abc 99", ws))
	assert.Equal(t, 0, run.PreservedCount())
}

func TestApply_ShrinkScenario(t *testing.T) {
	run := NewRun()
	ws := links(1000)

	commands := []string{
		"1",
		"2-10",
		"-5",
		"100-",
		"3 7 9",
		"1-1",
		"50-60",
		"10 20 30 40",
		"70-",
		"2 4 6 8",
	}
	for _, cmd := range commands {
		before := len(ws)
		ws = run.Apply(cmd, ws)
		assert.Less(t, len(ws), before, "command %q should shrink the working set", cmd)
	}

	before, registry := len(ws), run.PreservedCount()
	ws = run.Apply("p1-5", ws)
	assert.Less(t, len(ws), before)
	assert.Greater(t, run.PreservedCount(), registry)

	before = len(ws)
	ws = run.Apply("1-", ws)
	assert.Less(t, len(ws), before)
	assert.Empty(t, ws)
}

func TestRun_PreservedLinksInOrder(t *testing.T) {
	run := NewRun()
	ws := links(6)

	run.Apply("p5 p2", ws)

	got := run.PreservedLinks()
	require.Len(t, got, 2)
	assert.Equal(t, ws[1], got[0])
	assert.Equal(t, ws[4], got[1])
}
