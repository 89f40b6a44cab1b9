// internal/threshold/pair_test.go
package threshold

import (
	"math"
	"strings"
	"testing"

	"github.com/tamzrod/excitation-controller/internal/excitation"
)

func TestParseLine_EveryLabel(t *testing.T) {
	for _, e := range excitation.Entries() {
		p := ParseLine("120," + e.Label)
		if p.Excitation != e.Code {
			t.Fatalf("label %q: got code %d want %d", e.Label, p.Excitation, e.Code)
		}
		if p.Temperature != 120 {
			t.Fatalf("label %q: got temp %g want 120", e.Label, p.Temperature)
		}
		if !p.Valid() {
			t.Fatalf("label %q: expected valid pair", e.Label)
		}
	}
}

func TestParseLine_LineTerminators(t *testing.T) {
	for _, line := range []string{"120,30 nA", "120,30 nA\n", "120,30 nA\r\n", "120,30 nA\r"} {
		p := ParseLine(line)
		if p.Excitation != 1 || p.Temperature != 120 || !p.Valid() {
			t.Fatalf("%q: got %+v", line, p)
		}
	}
}

func TestParseLine_FractionalTemperature(t *testing.T) {
	p := ParseLine("1.5e-1,1 mV")
	if p.Temperature != 0.15 || p.Excitation != 12 {
		t.Fatalf("got %+v", p)
	}
}

func TestParseLine_UnknownLabel(t *testing.T) {
	p := ParseLine("120,invalid\r\n")
	if p.Excitation != excitation.Invalid {
		t.Fatalf("expected invalid excitation, got %d", p.Excitation)
	}
	if p.Valid() {
		t.Fatalf("pair with unknown label must be invalid")
	}
}

func TestParseLine_BadTemperature(t *testing.T) {
	for _, line := range []string{
		",30 nA\r\n",
		"abc,30 nA",
		"120",
		"",
		"120;30 nA",
		" 120,30 nA",
		"NaN,30 nA",
		"Inf,30 nA",
		"-Inf,30 nA",
	} {
		p := ParseLine(line)
		if p.Temperature != InvalidTemperature {
			t.Fatalf("%q: expected invalid temperature, got %g", line, p.Temperature)
		}
		if p.Valid() {
			t.Fatalf("%q: expected invalid pair", line)
		}
	}
}

func TestParseLine_SplitsOnFirstComma(t *testing.T) {
	p := ParseLine("120,30 nA,extra")
	if p.Temperature != 120 {
		t.Fatalf("got temp %g", p.Temperature)
	}
	if p.Valid() {
		t.Fatalf("label %q must not match", "30 nA,extra")
	}
}

func TestParseLine_LineTooLong(t *testing.T) {
	label := "30 nA"
	pad := strings.Repeat("0", MaxLineLength-len(",")-len(label)-len("120"))

	ok := ParseLine(pad + "120," + label + "\r\n")
	if !ok.Valid() {
		t.Fatalf("line at the length cap must be accepted")
	}

	long := ParseLine(pad + "0120," + label)
	if long.Valid() {
		t.Fatalf("line over the length cap must be rejected")
	}
}

func TestValid_Boundaries(t *testing.T) {
	cases := []struct {
		name string
		pair Pair
		want bool
	}{
		{"lowest code", Pair{120, 0}, true},
		{"highest code", Pair{120, 12}, true},
		{"code below range", Pair{120, -1}, false},
		{"code above range", Pair{120, 13}, false},
		{"temp at sentinel", Pair{InvalidTemperature, 3}, false},
		{"temp just above sentinel", Pair{math.Nextafter(InvalidTemperature, 0), 3}, true},
		{"max temp", Pair{math.MaxFloat64, 3}, true},
		{"negative temp", Pair{-273.15, 3}, true},
	}

	for _, c := range cases {
		if got := c.pair.Valid(); got != c.want {
			t.Fatalf("%s: Valid()=%v want %v", c.name, got, c.want)
		}
	}
}

func TestParseLine_SentinelValueIsInvalid(t *testing.T) {
	p := ParseLine("-1.7976931348623157e308,Off")
	if p.Temperature != InvalidTemperature {
		t.Fatalf("expected sentinel temperature, got %g", p.Temperature)
	}
	if p.Valid() {
		t.Fatalf("sentinel temperature must be invalid")
	}
}
