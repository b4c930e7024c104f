package diag

import (
	"bytes"
	"strings"
	"testing"
)

func TestStderrFormat(t *testing.T) {
	var buf bytes.Buffer
	sink := NewStderr(&buf, "prog.as", 0)
	sink.Errorf(12, "undefined symbol %s", "FOO")
	want := "Error in file prog.as, line 12: undefined symbol FOO\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
	if !sink.Failed() {
		t.Error("Failed() = false after an error")
	}
	if sink.Count() != 1 {
		t.Errorf("Count() = %d, want 1", sink.Count())
	}
}

func TestStderrMaxCount(t *testing.T) {
	var buf bytes.Buffer
	sink := NewStderr(&buf, "prog.as", 2)
	sink.Errorf(1, "one")
	sink.Errorf(2, "two")
	sink.Errorf(3, "three")
	if sink.Count() != 3 {
		t.Errorf("Count() = %d, want 3", sink.Count())
	}
	lines := strings.Count(buf.String(), "\n")
	if lines != 2 {
		t.Errorf("wrote %d lines, want 2 (capped)", lines)
	}
	if !sink.Failed() {
		t.Error("Failed() = false, want true")
	}
}

func TestCollecting(t *testing.T) {
	sink := NewCollecting()
	if sink.Failed() {
		t.Error("Failed() = true on empty sink")
	}
	sink.Errorf(5, "bad %s", "thing")
	if !sink.Failed() {
		t.Error("Failed() = false after an error")
	}
	if sink.Count() != 1 {
		t.Errorf("Count() = %d, want 1", sink.Count())
	}
	if sink.Diagnostics[0].Line != 5 || sink.Diagnostics[0].Message != "bad thing" {
		t.Errorf("got %+v", sink.Diagnostics[0])
	}
}
