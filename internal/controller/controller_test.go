// internal/controller/controller_test.go
package controller

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "thresholds.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func newLogger() (*logrus.Logger, *test.Hook) {
	l, hook := test.NewNullLogger()
	l.SetLevel(logrus.DebugLevel)
	return l, hook
}

func TestApply_Selected(t *testing.T) {
	log, _ := newLogger()
	path := writeFile(t, "118,300 nA\r\n122,30 nA\r\n")

	out := Apply(Input{Path: path, Setpoint: 125, PrevExcitation: 6, PrevTemperature: 90}, log)

	if !out.Selected || out.Defer || out.ErrorCode != 0 {
		t.Fatalf("unexpected outcome: %+v", out)
	}
	if out.Excitation != 1 || out.Temperature != 122 {
		t.Fatalf("got %+v", out)
	}
}

func TestApply_FailuresKeepPrevious(t *testing.T) {
	dir := t.TempDir()

	cases := []struct {
		name string
		path string
		code uint16
		kind string
	}{
		{"missing file", filepath.Join(dir, "missing.txt"), 1, "FileNotFound"},
		{"invalid lines", writeFile(t, "120,30 nA\nbad line\n"), 2, "FileContainsInvalidLines"},
		{"no match", writeFile(t, "126,30 nA\n"), 3, "NoMatchingThreshold"},
	}

	for _, c := range cases {
		log, hook := newLogger()

		out := Apply(Input{Path: c.path, Setpoint: 125, PrevExcitation: 6, PrevTemperature: 90}, log)

		if out.Selected {
			t.Fatalf("%s: must not select", c.name)
		}
		if !out.Defer {
			t.Fatalf("%s: defer flag not set", c.name)
		}
		if out.ErrorCode != c.code {
			t.Fatalf("%s: code got=%d want=%d", c.name, out.ErrorCode, c.code)
		}
		if out.Excitation != 6 || out.Temperature != 90 {
			t.Fatalf("%s: previous values not retained: %+v", c.name, out)
		}

		entry := hook.LastEntry()
		if entry == nil || entry.Level != logrus.WarnLevel {
			t.Fatalf("%s: expected warning log", c.name)
		}
		if entry.Data["kind"] != c.kind {
			t.Fatalf("%s: kind field got=%v want=%s", c.name, entry.Data["kind"], c.kind)
		}
		if entry.Data["path"] != c.path {
			t.Fatalf("%s: path field got=%v", c.name, entry.Data["path"])
		}
	}
}

func TestApply_NilLogger(t *testing.T) {
	out := Apply(Input{Path: filepath.Join(t.TempDir(), "nope"), PrevExcitation: 2}, nil)
	if out.Excitation != 2 || out.ErrorCode != 1 {
		t.Fatalf("got %+v", out)
	}
}

func TestApply_Idempotent(t *testing.T) {
	path := writeFile(t, strings.Repeat("100,Off\n", 3)+"120,1 mA\n")
	in := Input{Path: path, Setpoint: 150}

	a := Apply(in, nil)
	b := Apply(in, nil)
	if a != b {
		t.Fatalf("outputs differ: %+v vs %+v", a, b)
	}
}
