// internal/threshold/selector.go
package threshold

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// Select picks the pair that applies at setpoint.
//
// Phases:
//   - validate: any invalid line fails the whole selection (no partial files)
//   - select: highest valid threshold <= setpoint; the earliest of equal thresholds wins
//
// Returns *Error with KindInvalidLines or KindNoMatch on failure.
func Select(lines []string, setpoint float64) (Pair, error) {
	if bad := InvalidLines(lines); len(bad) > 0 {
		return invalidPair, &Error{Kind: KindInvalidLines, Lines: bad}
	}

	best := invalidPair
	for _, line := range lines {
		p := ParseLine(line)
		if p.Valid() && p.Temperature <= setpoint && p.Temperature > best.Temperature {
			best = p
		}
	}

	if !best.Valid() {
		return invalidPair, &Error{Kind: KindNoMatch, Setpoint: setpoint}
	}
	return best, nil
}

// InvalidLines returns the 1-based numbers of lines that do not parse into a valid pair.
func InvalidLines(lines []string) []int {
	var bad []int
	for i, line := range lines {
		if !ParseLine(line).Valid() {
			bad = append(bad, i+1)
		}
	}
	return bad
}

// SelectFrom reads r to the end once and selects over that snapshot.
// A read failure is reported as KindFileNotFound.
func SelectFrom(r io.Reader, setpoint float64) (Pair, error) {
	lines, err := ReadLines(r)
	if err != nil {
		return invalidPair, &Error{Kind: KindFileNotFound, Err: err}
	}
	return Select(lines, setpoint)
}

// Evaluate opens path, snapshots it and selects the pair for setpoint.
// The file is re-read on every call.
func Evaluate(path string, setpoint float64) (Pair, error) {
	lines, err := Load(path)
	if err != nil {
		return invalidPair, err
	}

	p, err := Select(lines, setpoint)
	if e, ok := err.(*Error); ok {
		e.Path = path
	}
	return p, err
}

// Load reads the whole threshold file into memory.
func Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &Error{Kind: KindFileNotFound, Path: path, Err: err}
	}
	defer f.Close()

	lines, err := ReadLines(f)
	if err != nil {
		return nil, &Error{Kind: KindFileNotFound, Path: path, Err: err}
	}
	return lines, nil
}

// ReadLines splits r into lines without their terminators.
// Both "\n" and "\r\n" are accepted. Overlong lines are kept as-is so that
// validation can reject them.
func ReadLines(r io.Reader) ([]string, error) {
	br := bufio.NewReader(r)

	var lines []string
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			lines = append(lines, strings.TrimRight(line, "\r\n"))
		}
		if err == io.EOF {
			return lines, nil
		}
		if err != nil {
			return nil, err
		}
	}
}
