package prefs

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/stylegen-labs/stylegen/internal/templates"
	"golang.org/x/term"
)

// ErrInputAborted is returned when the interactive channel is closed,
// unavailable, or the run is cancelled while prompting.
var ErrInputAborted = errors.New("input aborted")

// maxAttempts is how many invalid answers a question tolerates.
const maxAttempts = 3

// Collector asks the question sequence over a line-oriented reader/writer.
type Collector struct {
	Registry *templates.Registry
	In       io.Reader
	Out      io.Writer
}

// Collect asks every question in order and returns the validated answers.
func (c *Collector) Collect(ctx context.Context) (*PreferenceSet, error) {
	reader := bufio.NewReader(c.In)
	answers := make(Answers)

	for _, q := range Questions(c.Registry) {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInputAborted, err)
		}
		v, err := ask(reader, c.Out, q)
		if err != nil {
			return nil, fmt.Errorf("question %q: %w", q.Name, err)
		}
		answers[q.Name] = v
	}

	return answers.PreferenceSet()
}

// Collect is a convenience wrapper around Collector.
func Collect(ctx context.Context, reg *templates.Registry, r io.Reader, w io.Writer) (*PreferenceSet, error) {
	c := &Collector{Registry: reg, In: r, Out: w}
	return c.Collect(ctx)
}

// RequireTerminal returns ErrInputAborted when f is not an interactive
// terminal, so a piped or closed stdin fails before any question is printed.
func RequireTerminal(f *os.File) error {
	if f == nil || !term.IsTerminal(int(f.Fd())) {
		return fmt.Errorf("%w: stdin is not a terminal (use --yes to accept defaults)", ErrInputAborted)
	}
	return nil
}

func ask(reader *bufio.Reader, w io.Writer, q Question) (any, error) {
	printQuestion(w, q)

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			fmt.Fprintf(w, "  %v\n", lastErr)
			printPrompt(w, q)
		}

		line, err := readLine(reader)
		if err != nil {
			return nil, err
		}

		v, err := parseAnswer(q, line)
		if err == nil {
			return v, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("too many invalid answers: %w", lastErr)
}

// readLine returns one trimmed line. A closed reader aborts the run.
func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && strings.TrimSpace(line) != "" {
			return strings.TrimSpace(line), nil
		}
		return "", fmt.Errorf("%w: %v", ErrInputAborted, err)
	}
	return strings.TrimSpace(line), nil
}

func printQuestion(w io.Writer, q Question) {
	fmt.Fprintf(w, "\n? %s\n", q.Message)
	if q.Kind != Confirm {
		for i, c := range q.Choices {
			mark := " "
			if c.Default {
				mark = "*"
			}
			fmt.Fprintf(w, "  %d)%s %s\n", i+1, mark, c.Label)
		}
	}
	printPrompt(w, q)
}

func printPrompt(w io.Writer, q Question) {
	switch q.Kind {
	case MultiSelect:
		fmt.Fprintf(w, "Enter numbers separated by commas, or 'none' [1-%d]: ", len(q.Choices))
	case SingleSelect:
		fmt.Fprintf(w, "Enter number [1-%d]: ", len(q.Choices))
	case Confirm:
		if q.Default {
			fmt.Fprint(w, "[Y/n]: ")
		} else {
			fmt.Fprint(w, "[y/N]: ")
		}
	}
}

// parseAnswer converts one line of input into the answer value for q.
// An empty line selects the default.
func parseAnswer(q Question, line string) (any, error) {
	switch q.Kind {
	case MultiSelect:
		return parseMulti(q, line)
	case SingleSelect:
		if line == "" {
			d := q.defaultValues()
			if len(d) == 0 {
				return nil, fmt.Errorf("a selection is required")
			}
			return d[0], nil
		}
		idx, err := parseIndex(line, len(q.Choices))
		if err != nil {
			return nil, err
		}
		return q.Choices[idx].Value, nil
	case Confirm:
		switch strings.ToLower(line) {
		case "":
			return q.Default, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		return nil, fmt.Errorf("invalid answer %q: enter y or n", line)
	}
	return nil, fmt.Errorf("unknown question kind %d", q.Kind)
}

// parseMulti keeps the order the numbers were typed in; repeated numbers
// collapse onto their first occurrence.
func parseMulti(q Question, line string) ([]string, error) {
	if line == "" {
		return q.defaultValues(), nil
	}
	if strings.EqualFold(line, "none") {
		return []string{}, nil
	}

	fields := strings.FieldsFunc(line, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' })
	seen := make(map[int]bool)
	values := make([]string, 0, len(fields))
	for _, f := range fields {
		idx, err := parseIndex(f, len(q.Choices))
		if err != nil {
			return nil, err
		}
		if seen[idx] {
			continue
		}
		seen[idx] = true
		values = append(values, q.Choices[idx].Value)
	}
	return values, nil
}

func parseIndex(s string, n int) (int, error) {
	num, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || num < 1 || num > n {
		return 0, fmt.Errorf("invalid selection %q: choose 1-%d", s, n)
	}
	return num - 1, nil
}
