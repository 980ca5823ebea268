package curate

// Replay holds saved selection commands per level. Each saved command is
// handed out at most once, either one at a time through Next or all at once
// through Drain.
type Replay struct {
	queues map[int][]string
	auto   bool
}

// NewReplay creates a replay queue. With auto set, the orchestrator consumes
// a level's saved commands before prompting; otherwise they wait for the
// apply command. A nil saved map gives an empty replay.
func NewReplay(saved map[int][]string, auto bool) *Replay {
	queues := make(map[int][]string, len(saved))
	for level, cmds := range saved {
		queues[level] = append([]string(nil), cmds...)
	}
	return &Replay{queues: queues, auto: auto}
}

// Next pops the next saved command for level when auto replay is on.
func (r *Replay) Next(level int) (string, bool) {
	if r == nil || !r.auto {
		return "", false
	}
	q := r.queues[level]
	if len(q) == 0 {
		return "", false
	}
	r.queues[level] = q[1:]
	return q[0], true
}

// Drain removes and returns every remaining saved command for level, in
// their original order.
func (r *Replay) Drain(level int) []string {
	if r == nil {
		return nil
	}
	q := r.queues[level]
	delete(r.queues, level)
	return q
}

// Pending returns the number of saved commands left for level.
func (r *Replay) Pending(level int) int {
	if r == nil {
		return 0
	}
	return len(r.queues[level])
}
