package curate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/law-makers/curate/internal/config"
	"github.com/law-makers/curate/internal/engine/batch"
	"github.com/law-makers/curate/pkg/models"
	"github.com/rs/zerolog/log"
)

// Prompt is shown when waiting for an operator command.
const Prompt = `Enter numbers to exclude (space-separated, "-" for ranges), prefix with "p" to preserve, ` +
	`or "next", "apply", "list", "done": `

// Operator commands recognized besides selections.
const (
	CmdNext  = "next"
	CmdDone  = "done"
	CmdApply = "apply"
	CmdList  = "list"
)

// Entry is one numbered line of a displayed working set.
type Entry struct {
	Index int
	Link  models.Link
}

// Console is the operator's terminal.
type Console interface {
	// ReadLine prompts and returns one line of input. io.EOF means the
	// operator closed input.
	ReadLine(prompt string) (string, error)
	ShowLinks(header string, entries []Entry)
	Notice(format string, args ...any)
	Warn(format string, args ...any)
}

// Fetcher fetches a batch of URLs, one result per input in input order.
type Fetcher interface {
	FetchAll(ctx context.Context, urls []string) []batch.Result
}

// SelectionLog records operator selections for later replay.
type SelectionLog interface {
	Append(level int, command string) error
}

// Options configures an Orchestrator.
type Options struct {
	Fetcher  Fetcher
	Console  Console
	Log      SelectionLog
	Replay   *Replay
	Run      *Run
	MaxLinks int
}

// Orchestrator drives the level loop.
type Orchestrator struct {
	fetcher  Fetcher
	console  Console
	log      SelectionLog
	replay   *Replay
	run      *Run
	maxLinks int
}

// level is a pending unit of work on the orchestrator's stack.
type level struct {
	depth int
	seeds []string
}

// New creates an orchestrator. A nil Run starts fresh state and a nil
// Replay means nothing was saved.
func New(opts Options) *Orchestrator {
	if opts.Run == nil {
		opts.Run = NewRun()
	}
	if opts.Replay == nil {
		opts.Replay = NewReplay(nil, false)
	}
	if opts.MaxLinks <= 0 {
		opts.MaxLinks = config.DefaultMaxLinks
	}
	return &Orchestrator{
		fetcher:  opts.Fetcher,
		console:  opts.Console,
		log:      opts.Log,
		replay:   opts.Replay,
		run:      opts.Run,
		maxLinks: opts.MaxLinks,
	}
}

// Run returns the run state shared by every level.
func (o *Orchestrator) Run() *Run {
	return o.run
}

// Start curates from root until the operator runs out of levels or says done.
func (o *Orchestrator) Start(ctx context.Context, root string) error {
	stack := []level{{depth: 1, seeds: []string{root}}}

	for len(stack) > 0 {
		lv := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		next, done, err := o.processLevel(ctx, lv)
		if err != nil {
			return err
		}
		if done {
			stack = nil
			continue
		}
		if next != nil {
			stack = append(stack, *next)
		}
	}
	return nil
}

func (o *Orchestrator) processLevel(ctx context.Context, lv level) (*level, bool, error) {
	results := o.fetcher.FetchAll(ctx, lv.seeds)
	ws := BuildFrontier(results, o.maxLinks)

	log.Info().
		Int("level", lv.depth).
		Int("seeds", len(lv.seeds)).
		Int("links", len(ws)).
		Msg("Level ready")

	o.display("Remaining links:", ws, false)

	for {
		if err := ctx.Err(); err != nil {
			return nil, false, err
		}

		if cmd, ok := o.replay.Next(lv.depth); ok {
			o.console.Notice("Replaying Level %d: %s", lv.depth, cmd)
			ws = o.run.Apply(cmd, ws)
			o.display("Remaining links after exclusion:", ws, false)
			continue
		}

		input, err := o.console.ReadLine(Prompt)
		if errors.Is(err, io.EOF) {
			log.Debug().Int("level", lv.depth).Msg("Input closed, finishing run")
			return nil, true, nil
		}
		if err != nil {
			return nil, false, fmt.Errorf("reading command: %w", err)
		}

		cmd := strings.TrimSpace(input)
		switch cmd {
		case "":
			continue

		case CmdNext:
			seeds := o.nextSeeds(ws)
			if len(seeds) == 0 {
				o.console.Notice("No links to process.")
				return nil, false, nil
			}
			return &level{depth: lv.depth + 1, seeds: seeds}, false, nil

		case CmdDone:
			return nil, true, nil

		case CmdApply:
			applied, err := o.applySaved(lv.depth, ws)
			if err != nil {
				o.console.Warn("%v", err)
				continue
			}
			ws = applied
			o.display("Remaining links after applying saved selections:", ws, true)

		case CmdList:
			o.display("Remaining links:", ws, true)

		default:
			ws = o.run.Apply(cmd, ws)
			if err := o.log.Append(lv.depth, cmd); err != nil {
				return nil, false, fmt.Errorf("saving selection: %w", err)
			}
			o.console.Notice("Selection saved: Level %d: %s", lv.depth, cmd)
			o.display("Remaining links after exclusion:", ws, false)
		}
	}
}

// nextSeeds returns the active links that were not preserved. When every
// active link is gone, preserved links take their place.
func (o *Orchestrator) nextSeeds(ws []models.Link) []string {
	var seeds []string
	for _, l := range ws {
		if !o.run.IsPreserved(l.URL) {
			seeds = append(seeds, l.URL)
		}
	}
	if len(seeds) > 0 {
		return seeds
	}
	for _, l := range o.run.PreservedLinks() {
		seeds = append(seeds, l.URL)
	}
	return seeds
}

// applySaved applies every remaining saved command for depth in issue order.
// It is allowed once per run.
func (o *Orchestrator) applySaved(depth int, ws []models.Link) ([]models.Link, error) {
	if o.run.Applied {
		return ws, ErrAlreadyApplied
	}
	if o.replay.Pending(depth) == 0 {
		return ws, ErrNoSavedSelections
	}
	for _, cmd := range o.replay.Drain(depth) {
		ws = o.run.Apply(cmd, ws)
	}
	o.run.Applied = true
	log.Info().Int("level", depth).Int("links", len(ws)).Msg("Saved selections applied")
	return ws, nil
}

// display shows ws with its current indices. Unless force is set, URLs the
// operator has already seen are skipped.
func (o *Orchestrator) display(header string, ws []models.Link, force bool) {
	entries := make([]Entry, 0, len(ws))
	for i, l := range ws {
		if o.run.markShown(l.URL) || force {
			entries = append(entries, Entry{Index: i + 1, Link: l})
		}
	}
	o.console.ShowLinks(header, entries)
}
