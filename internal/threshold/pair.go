// internal/threshold/pair.go
package threshold

import (
	"math"
	"strconv"
	"strings"

	"github.com/tamzrod/excitation-controller/internal/excitation"
)

// InvalidTemperature marks a temperature that could not be parsed.
// It is the smallest finite float64, so no valid threshold can equal it.
const InvalidTemperature = -math.MaxFloat64

// MaxLineLength is the longest accepted line, excluding the line terminator.
const MaxLineLength = 255

// Pair is one parsed threshold line.
type Pair struct {
	Temperature float64
	Excitation  int
}

// invalidPair is the starting point of every selection.
var invalidPair = Pair{
	Temperature: InvalidTemperature,
	Excitation:  excitation.Invalid,
}

// Valid reports whether the pair can be applied.
// Excitation must be a table code and Temperature must be above InvalidTemperature.
func (p Pair) Valid() bool {
	return excitation.InRange(p.Excitation) && p.Temperature > InvalidTemperature
}

// Label returns the excitation label, or "" for an invalid code.
func (p Pair) Label() string {
	return excitation.Label(p.Excitation)
}

// ParseLine converts "<temperature>,<label>[\r][\n]" into a Pair.
// It never fails; malformed parts become sentinels and Valid reports false.
// An empty line has no comma and is invalid, so a file ending in "\n\n"
// (a blank last line) is rejected as a whole.
func ParseLine(raw string) Pair {
	if len(trimEOL(raw)) > MaxLineLength {
		return invalidPair
	}

	tempText, labelText, found := strings.Cut(raw, ",")
	if !found {
		return invalidPair
	}

	return Pair{
		Temperature: parseTemperature(tempText),
		Excitation:  excitation.Code(trimEOL(labelText)),
	}
}

func parseTemperature(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return InvalidTemperature
	}
	return v
}

// trimEOL strips trailing carriage returns and line feeds.
func trimEOL(s string) string {
	return strings.TrimRight(s, "\r\n")
}
