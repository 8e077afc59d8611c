// Package input collects the request targets a command works on.
package input

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ErrNoInput is returned when there are no arguments and stdin is a terminal.
var ErrNoInput = errors.New("no input: pass an argument or pipe stdin")

// Read reads one target per line from r. Surrounding whitespace is trimmed;
// blank lines and lines starting with '#' are dropped.
func Read(r io.Reader) ([]string, error) {
	var targets []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		targets = append(targets, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return targets, nil
}

// Resolve returns args when non-empty, otherwise the targets piped on stdin.
// An interactive stdin with no args is an error rather than a silent wait.
func Resolve(args []string, stdin io.Reader) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) { //nolint:gosec // file descriptors fit in int
		return nil, ErrNoInput
	}
	targets, err := Read(stdin)
	if err != nil {
		return nil, err
	}
	if len(targets) == 0 {
		return nil, ErrNoInput
	}
	return targets, nil
}
