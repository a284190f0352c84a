package turnplayer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/avast/retry-go/v4"
	"github.com/kballard/go-shellquote"

	"github.com/domino14/quarto/board"
)

var (
	ErrInvalidFormat = errors.New("invalid format")
	ErrOutOfRange    = errors.New("out of range")
)

// A LineReader reads one line of user input after showing prompt.
type LineReader interface {
	ReadLine(prompt string) (string, error)
}

// singleField splits line like a shell would and insists on exactly one
// word.
func singleField(line string) (string, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	if len(fields) != 1 {
		return "", fmt.Errorf("%w: expected a single value", ErrInvalidFormat)
	}
	return fields[0], nil
}

// ParseInt parses a single integer.
func ParseInt(line string) (int, error) {
	f, err := singleField(line)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(f)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidFormat, f)
	}
	return n, nil
}

// ParseIntInRange parses an integer in [lo, hi].
func ParseIntInRange(line string, lo, hi int) (int, error) {
	n, err := ParseInt(line)
	if err != nil {
		return 0, err
	}
	if n < lo || n > hi {
		return 0, fmt.Errorf("%w: %d is not between %d and %d", ErrOutOfRange, n, lo, hi)
	}
	return n, nil
}

// ParseYesNo accepts y or n in either case.
func ParseYesNo(line string) (bool, error) {
	f, err := singleField(line)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(f) {
	case "y":
		return true, nil
	case "n":
		return false, nil
	}
	return false, fmt.Errorf("%w: %q is not y or n", ErrOutOfRange, f)
}

// recoverable errors are the user's fault; they are answered with another
// prompt.
func recoverable(err error) bool {
	return errors.Is(err, ErrInvalidFormat) || errors.Is(err, ErrOutOfRange) ||
		errors.Is(err, board.ErrCellOccupied)
}

// ask keeps prompting until fn succeeds. Recoverable errors are reported to
// w; anything else (closed input, cancellation) is returned.
func ask[T any](ctx context.Context, w io.Writer, fn func() (T, error)) (T, error) {
	var fatal error
	val, err := retry.DoWithData(
		func() (T, error) {
			v, err := fn()
			if err != nil && !recoverable(err) {
				fatal = err
				return v, retry.Unrecoverable(err)
			}
			return v, err
		},
		retry.Context(ctx),
		retry.Attempts(0),
		retry.Delay(0),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(recoverable),
		retry.OnRetry(func(n uint, err error) {
			if errors.Is(err, board.ErrCellOccupied) {
				fmt.Fprintln(w, "That space is already occupied. Please select a different space.")
				return
			}
			fmt.Fprintf(w, "Invalid input: %v. Please try again.\n", err)
		}),
	)
	if fatal != nil {
		return val, fatal
	}
	return val, err
}

func readParsed[T any](ctx context.Context, in LineReader, w io.Writer, prompt string,
	parse func(string) (T, error)) (T, error) {

	return ask(ctx, w, func() (T, error) {
		line, err := in.ReadLine(prompt)
		if err != nil {
			var zero T
			return zero, err
		}
		return parse(line)
	})
}

// AskInt prompts until the user enters an integer in [lo, hi].
func AskInt(ctx context.Context, in LineReader, w io.Writer, prompt string, lo, hi int) (int, error) {
	return readParsed(ctx, in, w, prompt, func(line string) (int, error) {
		return ParseIntInRange(line, lo, hi)
	})
}

// AskYesNo prompts until the user answers y or n.
func AskYesNo(ctx context.Context, in LineReader, w io.Writer, prompt string) (bool, error) {
	return readParsed(ctx, in, w, prompt, ParseYesNo)
}
