package preprocess

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rcornwell/tenbit/internal/diag"
)

func TestRunExpandsMacro(t *testing.T) {
	src := "mcro m1\nmov r1, r2\nadd r1, r2\nmcroend\nm1\nstop\n"
	var out bytes.Buffer
	sink := diag.NewCollecting()
	macros := Run(strings.NewReader(src), &out, sink)

	if sink.Failed() {
		t.Fatalf("unexpected diagnostics: %+v", sink.Diagnostics)
	}
	if _, ok := macros.Find("m1"); !ok {
		t.Fatal("macro m1 not recorded")
	}
	want := "mov r1, r2\nadd r1, r2\nstop\n"
	if out.String() != want {
		t.Errorf("got %q, want %q", out.String(), want)
	}
}

func TestRunPassesThroughNonMacroLines(t *testing.T) {
	src := "LOOP: mov r1, r2\n; a comment\n\nstop\n"
	var out bytes.Buffer
	sink := diag.NewCollecting()
	Run(strings.NewReader(src), &out, sink)
	if sink.Failed() {
		t.Fatalf("unexpected diagnostics: %+v", sink.Diagnostics)
	}
	if out.String() != src {
		t.Errorf("got %q, want %q", out.String(), src)
	}
}

func TestRunInvalidMacroName(t *testing.T) {
	src := "mcro mov\nstop\nmcroend\n"
	var out bytes.Buffer
	sink := diag.NewCollecting()
	Run(strings.NewReader(src), &out, sink)
	if !sink.Failed() {
		t.Error("expected a diagnostic for reserved-word macro name")
	}
}

func TestRunUnclosedMacro(t *testing.T) {
	src := "mcro m1\nstop\n"
	var out bytes.Buffer
	sink := diag.NewCollecting()
	Run(strings.NewReader(src), &out, sink)
	if !sink.Failed() {
		t.Error("expected a diagnostic for missing mcroend")
	}
}

func TestRunOverlongLine(t *testing.T) {
	src := strings.Repeat("x", 100) + "\nstop\n"
	var out bytes.Buffer
	sink := diag.NewCollecting()
	Run(strings.NewReader(src), &out, sink)
	if !sink.Failed() {
		t.Error("expected a diagnostic for overlong line")
	}
}
