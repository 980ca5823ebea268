package store

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

// ErrCorruptLog marks a selection log line that is not "Level <n>: <command>".
var ErrCorruptLog = errors.New("corrupt selection log")

// maxLineSize bounds one log line.
const maxLineSize = 1 << 20

var linePattern = regexp.MustCompile(`^Level (\d+):(?: (.*))?$`)

// SelectionLog is the append-only record of operator selections, one
// "Level <n>: <command>" line per selection.
type SelectionLog struct {
	path string
	mu   sync.Mutex
}

// NewSelectionLog creates a log backed by path. The file is created on first
// append.
func NewSelectionLog(path string) *SelectionLog {
	return &SelectionLog{path: path}
}

// Path returns the backing file path.
func (l *SelectionLog) Path() string {
	return l.path
}

// Append records command for level.
func (l *SelectionLog) Append(level int, command string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(f, "Level %d: %s\n", level, command); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Load reads the log and groups commands by level in issue order. A missing
// file is an empty log.
func (l *SelectionLog) Load() (map[int][]string, error) {
	f, err := os.Open(l.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[int][]string{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	saved, err := ParseSelections(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", l.path, err)
	}

	total := 0
	for _, cmds := range saved {
		total += len(cmds)
	}
	log.Debug().Str("path", l.path).Int("levels", len(saved)).Int("commands", total).Msg("Selection log loaded")
	return saved, nil
}

// ParseSelections parses log lines from r. Blank lines are skipped and
// entries with an empty command are ignored; any other line that does not
// match the log format is an ErrCorruptLog.
func ParseSelections(r io.Reader) (map[int][]string, error) {
	saved := make(map[int][]string)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for n := 1; scanner.Scan(); n++ {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		m := linePattern.FindStringSubmatch(line)
		if m == nil {
			return nil, fmt.Errorf("%w: line %d: %q", ErrCorruptLog, n, line)
		}
		level, err := strconv.Atoi(m[1])
		if err != nil || level < 1 {
			return nil, fmt.Errorf("%w: line %d: invalid level %q", ErrCorruptLog, n, m[1])
		}

		cmd := strings.TrimSpace(m[2])
		if cmd == "" {
			continue
		}
		saved[level] = append(saved[level], cmd)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return saved, nil
}
