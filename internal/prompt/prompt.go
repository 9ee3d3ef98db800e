// Package prompt reads the user's choices from a line-oriented terminal.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"stream_finder/internal/domain"
)

// maxLineSize bounds a single input line.
const maxLineSize = 1 << 20

// ErrNoInput is returned when input ends before a valid choice was made.
var ErrNoInput = errors.New("input closed before a category was chosen")

type scanResult struct {
	text string
	ok   bool
	err  error
}

// Selector prompts over a line source and writes prompts to out.
type Selector struct {
	scanner *bufio.Scanner
	out     io.Writer

	// pending delivers the line being read when a previous read was
	// abandoned because its context ended.
	pending chan scanResult
}

func NewSelector(in io.Reader, out io.Writer) *Selector {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	return &Selector{
		scanner: scanner,
		out:     out,
	}
}

// readLine returns the next line trimmed of surrounding whitespace. ok is false
// once input is exhausted. It gives up with ctx.Err() when ctx ends first.
func (s *Selector) readLine(ctx context.Context) (line string, ok bool, err error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	if s.pending == nil {
		ch := make(chan scanResult, 1)
		go func() {
			ok := s.scanner.Scan()
			ch <- scanResult{text: s.scanner.Text(), ok: ok, err: s.scanner.Err()}
		}()
		s.pending = ch
	}

	select {
	case <-ctx.Done():
		return "", false, ctx.Err()
	case r := <-s.pending:
		s.pending = nil
		if r.ok {
			return strings.TrimSpace(r.text), true, nil
		}
		if r.err != nil {
			return "", false, fmt.Errorf("read input: %w", r.err)
		}
		return "", false, nil
	}
}

// ChooseTerm reads one line. End of input reads as an empty term.
func (s *Selector) ChooseTerm(ctx context.Context) (string, error) {
	line, _, err := s.readLine(ctx)
	return line, err
}

// ChooseGame lists categories as "index: name" and reads lines until one is a
// valid index. It returns the chosen category's id.
func (s *Selector) ChooseGame(ctx context.Context, categories []domain.Category) (string, error) {
	if len(categories) == 0 {
		return "", errors.New("no categories to choose from")
	}

	for i, c := range categories {
		fmt.Fprintf(s.out, "%d: %s\n", i, c.Name)
	}
	fmt.Fprintln(s.out, "Choose a category from the list:")

	for {
		line, ok, err := s.readLine(ctx)
		if err != nil {
			return "", err
		}
		if !ok {
			return "", ErrNoInput
		}

		choice, err := strconv.ParseUint(line, 10, 0)
		if err != nil {
			fmt.Fprintln(s.out, "Please enter a number:")
			continue
		}
		if choice >= uint64(len(categories)) {
			fmt.Fprintf(s.out, "Please enter a number between 0 and %d:\n", len(categories)-1)
			continue
		}

		fmt.Fprintf(s.out, "Category: %s\n", categories[choice].Name)
		return categories[choice].ID, nil
	}
}
