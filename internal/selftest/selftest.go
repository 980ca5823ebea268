// Package selftest holds the built-in checks run by "curate check": the
// selection grammar, the shrink and preserve guarantees of the selection
// engine, one-shot apply, and ordered fetching, all against in-memory fakes.
package selftest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/law-makers/curate/internal/cache"
	"github.com/law-makers/curate/internal/curate"
	"github.com/law-makers/curate/internal/engine/batch"
	"github.com/law-makers/curate/internal/selection"
	"github.com/law-makers/curate/pkg/models"
)

// Check is a named property of the curation engine.
type Check struct {
	Name string
	Run  func(ctx context.Context) error
}

// Result is the outcome of one check; Err is nil on success.
type Result struct {
	Name string
	Err  error
}

// RunAll runs every check in order.
func RunAll(ctx context.Context) []Result {
	checks := Checks()
	results := make([]Result, 0, len(checks))
	for _, c := range checks {
		results = append(results, Result{Name: c.Name, Err: c.Run(ctx)})
	}
	return results
}

// Checks returns the built-in checks.
func Checks() []Check {
	checks := []Check{}
	for _, pc := range parseCases {
		checks = append(checks, Check{
			Name: fmt.Sprintf("parse %q", pc.command),
			Run:  func(context.Context) error { return pc.verify() },
		})
	}
	return append(checks,
		Check{Name: "selection shrinks the working set", Run: checkMonotonicShrink},
		Check{Name: "preserve grows the registry and shrinks the working set", Run: checkPreserve},
		Check{Name: "apply is accepted once per run", Run: checkApplyOnce},
		Check{Name: "fetchAll keeps input order around failures", Run: checkFetchOrder},
		Check{Name: "1000-link curation scenario", Run: checkScenario},
	)
}

type parseCase struct {
	command  string
	exclude  []int
	preserve []int
}

func span(start, end int) []int {
	out := make([]int, 0, end-start+1)
	for i := start; i <= end; i++ {
		out = append(out, i)
	}
	return out
}

var parseCases = []parseCase{
	{"16", []int{16}, nil},
	{"1 30", []int{1, 30}, nil},
	{"20 22-26", []int{20, 22, 23, 24, 25, 26}, nil},
	{"200-", span(200, 300), nil},
	{"-111", span(1, 111), nil},
	{"p20", nil, []int{20}},
	{"p20-30", nil, span(20, 30)},
	{"p20 10-13", []int{10, 11, 12, 13}, []int{20}},
	{"p3 p33-", nil, append([]int{3}, span(33, 300)...)},
}

func (pc parseCase) verify() error {
	sel := selection.Parse(pc.command, 300)
	if got := sel.Exclude.Sorted(); !slices.Equal(got, orEmpty(pc.exclude)) {
		return fmt.Errorf("exclude = %v, want %v", got, pc.exclude)
	}
	if got := sel.Preserve.Sorted(); !slices.Equal(got, orEmpty(pc.preserve)) {
		return fmt.Errorf("preserve = %v, want %v", got, pc.preserve)
	}
	return nil
}

func orEmpty(s []int) []int {
	if s == nil {
		return []int{}
	}
	return s
}

func workingSet(n int) []models.Link {
	out := make([]models.Link, n)
	for i := range out {
		out[i] = models.Link{URL: fmt.Sprintf("https://check.invalid/%04d", i+1), Text: fmt.Sprintf("Link %d", i+1)}
	}
	return out
}

func checkMonotonicShrink(context.Context) error {
	for _, cmd := range []string{"1", "5-9", "-3", "250-", "p7", "2 p2", "300"} {
		run := curate.NewRun()
		ws := workingSet(300)
		if out := run.Apply(cmd, ws); len(out) >= len(ws) {
			return fmt.Errorf("%q: %d links before, %d after", cmd, len(ws), len(out))
		}
	}
	return nil
}

func checkPreserve(context.Context) error {
	run := curate.NewRun()
	ws := workingSet(10)
	out := run.Apply("p4", ws)
	if run.PreservedCount() != 1 {
		return fmt.Errorf("registry size = %d, want 1", run.PreservedCount())
	}
	for _, l := range out {
		if l.URL == ws[3].URL {
			return errors.New("preserved link still in the working set")
		}
	}
	return nil
}

func checkScenario(context.Context) error {
	run := curate.NewRun()
	ws := workingSet(1000)

	for _, cmd := range []string{"1", "2-10", "-5", "100-", "3 7 9", "1-1", "50-60", "10 20 30 40", "70-", "2 4 6 8"} {
		before := len(ws)
		ws = run.Apply(cmd, ws)
		if len(ws) >= before {
			return fmt.Errorf("%q did not shrink the working set (%d -> %d)", cmd, before, len(ws))
		}
	}

	before, registry := len(ws), run.PreservedCount()
	ws = run.Apply("p1-5", ws)
	if len(ws) >= before || run.PreservedCount() <= registry {
		return fmt.Errorf("preserve: working set %d -> %d, registry %d -> %d", before, len(ws), registry, run.PreservedCount())
	}

	if ws = run.Apply("1-", ws); len(ws) != 0 {
		return fmt.Errorf("full-range exclusion left %d links", len(ws))
	}
	return nil
}

// memFetcher serves pages from memory and fails for unknown URLs.
type memFetcher map[string][]models.Anchor

func (m memFetcher) Name() string { return "memory" }

func (m memFetcher) Fetch(_ context.Context, opts models.RequestOptions) (*models.PageData, error) {
	anchors, ok := m[opts.URL]
	if !ok {
		return nil, fmt.Errorf("%s: not found", opts.URL)
	}
	return &models.PageData{URL: opts.URL, Anchors: anchors, Content: opts.URL}, nil
}

func checkFetchOrder(ctx context.Context) error {
	site := memFetcher{
		"https://check.invalid/u1": {{Href: "/a", Text: "a"}},
		"https://check.invalid/u3": {{Href: "/c", Text: "c"}},
	}
	urls := []string{"https://check.invalid/u1", "https://check.invalid/u2", "https://check.invalid/u3"}
	results := batch.New(site, cache.NewMemoryCache(), 3).FetchAll(ctx, urls)

	if len(results) != 3 {
		return fmt.Errorf("got %d results, want 3", len(results))
	}
	for i, r := range results {
		if r.URL != urls[i] {
			return fmt.Errorf("result %d is for %s, want %s", i, r.URL, urls[i])
		}
	}
	if results[0].Err != nil || results[2].Err != nil {
		return errors.New("successful fetches reported failure")
	}
	if results[1].Err == nil || len(results[1].Anchors()) != 0 {
		return errors.New("failed fetch did not yield an empty result")
	}
	return nil
}

// scriptedConsole feeds fixed operator input and records warnings.
type scriptedConsole struct {
	inputs []string
	warns  []string
}

func (c *scriptedConsole) ReadLine(string) (string, error) {
	if len(c.inputs) == 0 {
		return "", io.EOF
	}
	in := c.inputs[0]
	c.inputs = c.inputs[1:]
	return in, nil
}

func (c *scriptedConsole) ShowLinks(string, []curate.Entry) {}

func (c *scriptedConsole) Notice(string, ...any) {}

func (c *scriptedConsole) Warn(format string, args ...any) {
	c.warns = append(c.warns, fmt.Sprintf(format, args...))
}

type discardLog struct{}

func (discardLog) Append(int, string) error { return nil }

func checkApplyOnce(ctx context.Context) error {
	root := "https://check.invalid/"
	site := memFetcher{
		root:                      {{Href: "/a", Text: "a"}, {Href: "/b", Text: "b"}},
		"https://check.invalid/a": {{Href: "/c", Text: "c"}},
		"https://check.invalid/b": {{Href: "/d", Text: "d"}},
	}
	console := &scriptedConsole{inputs: []string{"apply", "next", "apply", "done"}}
	replay := curate.NewReplay(map[int][]string{1: {"p1"}, 2: {"1"}}, false)

	o := curate.New(curate.Options{
		Fetcher: batch.New(site, cache.NewMemoryCache(), 2),
		Console: console,
		Log:     discardLog{},
		Replay:  replay,
	})
	if err := o.Start(ctx, root); err != nil {
		return err
	}

	if !o.Run().Applied {
		return errors.New("first apply was not recorded")
	}
	if len(console.warns) != 1 || console.warns[0] != curate.ErrAlreadyApplied.Error() {
		return fmt.Errorf("second apply was not rejected: %v", console.warns)
	}
	if replay.Pending(2) != 1 || o.Run().PreservedCount() != 1 {
		return errors.New("rejected apply changed run state")
	}
	return nil
}
