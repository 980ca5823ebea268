package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/law-makers/curate/internal/curate"
)

// maxLineSize bounds one line of operator input.
const maxLineSize = 1 << 20

type inputLine struct {
	text string
	err  error
}

// Console is the line-oriented operator terminal: prompts on out, answers
// from in.
type Console struct {
	scanner *bufio.Scanner
	out     io.Writer
	ctx     context.Context
	lines   chan inputLine
	once    sync.Once
}

// NewConsole creates a console reading from in and writing to out.
func NewConsole(in io.Reader, out io.Writer) *Console {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &Console{
		scanner: scanner,
		out:     out,
		ctx:     context.Background(),
		lines:   make(chan inputLine),
	}
}

// WithContext makes a pending ReadLine return ctx.Err() once ctx is done.
func (c *Console) WithContext(ctx context.Context) *Console {
	if ctx != nil {
		c.ctx = ctx
	}
	return c
}

// ReadLine prints prompt and returns the next input line without its line
// ending. It returns io.EOF once input is exhausted.
func (c *Console) ReadLine(prompt string) (string, error) {
	fmt.Fprint(c.out, Bold(prompt))
	c.once.Do(func() { go c.pump() })

	select {
	case l, ok := <-c.lines:
		if !ok {
			fmt.Fprintln(c.out)
			return "", io.EOF
		}
		if l.err != nil {
			fmt.Fprintln(c.out)
			return "", l.err
		}
		return l.text, nil
	case <-c.ctx.Done():
		fmt.Fprintln(c.out)
		return "", c.ctx.Err()
	}
}

// pump reads input on its own goroutine so a blocked read never holds up
// cancellation.
func (c *Console) pump() {
	defer close(c.lines)
	for c.scanner.Scan() {
		c.lines <- inputLine{text: c.scanner.Text()}
	}
	if err := c.scanner.Err(); err != nil {
		c.lines <- inputLine{err: err}
	}
}

// ShowLinks prints a header and the numbered entries.
func (c *Console) ShowLinks(header string, entries []curate.Entry) {
	fmt.Fprintln(c.out, Heading(header))
	for _, e := range entries {
		fmt.Fprintf(c.out, "%s %s\n", Bold(fmt.Sprintf("%d.", e.Index)), e.Link.Text)
		fmt.Fprintf(c.out, "   URL: %s\n\n", Dim(e.Link.URL))
	}
}

// Notice prints an informational line.
func (c *Console) Notice(format string, args ...any) {
	fmt.Fprintln(c.out, Info(fmt.Sprintf(format, args...)))
}

// Warn prints a non-fatal problem.
func (c *Console) Warn(format string, args ...any) {
	fmt.Fprintln(c.out, Warn(fmt.Sprintf(format, args...)))
}

// Done prints a success line.
func (c *Console) Done(format string, args ...any) {
	fmt.Fprintln(c.out, Success(fmt.Sprintf(format, args...)))
}
