// cmd/excitation-check/main.go
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tamzrod/excitation-controller/internal/threshold"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	invalidStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	failStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "usage: excitation-check <threshold-file> <setpoint>")
		os.Exit(2)
	}

	setpoint, err := strconv.ParseFloat(os.Args[2], 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bad setpoint %q: %v\n", os.Args[2], err)
		os.Exit(2)
	}

	os.Exit(run(os.Stdout, os.Args[1], setpoint))
}

// run prints the file report and returns the process exit code.
func run(w io.Writer, path string, setpoint float64) int {
	lines, err := threshold.Load(path)
	if err != nil {
		fmt.Fprintln(w, failStyle.Render(describe(err)))
		return 1
	}

	pair, selErr := threshold.Select(lines, setpoint)
	fmt.Fprint(w, render(lines, setpoint, pair, selErr == nil))

	if selErr != nil {
		var e *threshold.Error
		if errors.As(selErr, &e) {
			e.Path = path
		}
		fmt.Fprintln(w, failStyle.Render(describe(selErr)))
		return 1
	}

	fmt.Fprintln(w, selectedStyle.Render(fmt.Sprintf(
		"selected: %s (code %d) at threshold %g for setpoint %g",
		pair.Label(), pair.Excitation, pair.Temperature, setpoint,
	)))
	return 0
}

// render builds one row per line; the selected tier is highlighted.
func render(lines []string, setpoint float64, selected threshold.Pair, ok bool) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("%-5s %-12s %-8s %-6s %s", "line", "threshold", "label", "code", "state")))
	b.WriteString("\n")

	marked := false
	for i, raw := range lines {
		p := threshold.ParseLine(raw)

		var state string
		style := dimStyle
		switch {
		case !p.Valid():
			state = "invalid: " + strconv.Quote(raw)
			style = invalidStyle
		case ok && !marked && p == selected:
			state = "selected"
			style = selectedStyle
			marked = true
		case p.Temperature > setpoint:
			state = "above setpoint"
		default:
			state = "eligible"
			style = lipgloss.NewStyle()
		}

		temp := "-"
		if p.Temperature != threshold.InvalidTemperature {
			temp = strconv.FormatFloat(p.Temperature, 'g', -1, 64)
		}
		code := "-"
		if p.Valid() {
			code = strconv.Itoa(p.Excitation)
		}

		b.WriteString(style.Render(fmt.Sprintf("%-5d %-12s %-8s %-6s %s", i+1, temp, p.Label(), code, state)))
		b.WriteString("\n")
	}

	return b.String()
}

func describe(err error) string {
	var e *threshold.Error
	if errors.As(err, &e) {
		return fmt.Sprintf("%s: %v", e.Kind, err)
	}
	return err.Error()
}
