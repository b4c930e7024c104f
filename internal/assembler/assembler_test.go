package assembler

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rcornwell/tenbit/internal/config"
)

func TestValidateBaseName(t *testing.T) {
	valid := []string{"prog", "test_1", "a-b-c", "_leading"}
	for _, n := range valid {
		if err := ValidateBaseName(n); err != nil {
			t.Errorf("ValidateBaseName(%q) = %v, want nil", n, err)
		}
	}
	invalid := []string{"", "1prog", "has space", strings.Repeat("x", 51)}
	for _, n := range invalid {
		if err := ValidateBaseName(n); err == nil {
			t.Errorf("ValidateBaseName(%q) = nil, want error", n)
		}
	}
}

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path+".as", []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunSuccessProducesObjectFile(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "prog", "LOOP: mov #1, r1\nstop\n")

	ctx, err := New(path, config.Default(), nil, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	ok, err := ctx.Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !ok {
		t.Fatal("Run() ok = false, want true")
	}

	if _, err := os.Stat(path + ".ob"); err != nil {
		t.Errorf(".ob file missing: %v", err)
	}
	if _, err := os.Stat(path + ".am"); err != nil {
		t.Errorf(".am file should remain by default: %v", err)
	}
	if _, err := os.Stat(path + ".ent"); err == nil {
		t.Error(".ent file should not exist without .entry directives")
	}
}

func TestRunPurgeIntermediate(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "prog", "stop\n")

	cfg := config.Default()
	cfg.Assembler.KeepIntermediate = false
	ctx, err := New(path, cfg, nil, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	ok, err := ctx.Run()
	if err != nil || !ok {
		t.Fatalf("Run() = %v, %v", ok, err)
	}
	if _, err := os.Stat(path + ".am"); !os.IsNotExist(err) {
		t.Error(".am file should have been removed")
	}
}

func TestRunEntriesAndExternalsFiles(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "prog", "LOOP: jmp LOOP\n.entry LOOP\n.extern FOO\ncmp r1, FOO\n")

	ctx, err := New(path, config.Default(), nil, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	ok, err := ctx.Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !ok {
		t.Fatal("Run() ok = false, want true")
	}
	if _, err := os.Stat(path + ".ent"); err != nil {
		t.Errorf(".ent file missing: %v", err)
	}
	if _, err := os.Stat(path + ".ext"); err != nil {
		t.Errorf(".ext file missing: %v", err)
	}
}

func TestRunFirstPassFailureKeepsAM(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "prog", "mov r1\n")

	ctx, err := New(path, config.Default(), nil, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	ok, err := ctx.Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if ok {
		t.Fatal("Run() ok = true, want false for bad operand count")
	}
	if _, err := os.Stat(path + ".am"); err != nil {
		t.Errorf(".am file should persist after a first-pass failure: %v", err)
	}
	if _, err := os.Stat(path + ".ob"); err == nil {
		t.Error(".ob file should not exist after a failed run")
	}
}

func TestRunMissingInputFile(t *testing.T) {
	dir := t.TempDir()
	ctx, err := New(filepath.Join(dir, "nope"), config.Default(), nil, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	ok, err := ctx.Run()
	if err == nil {
		t.Error("Run() error = nil, want error for missing input file")
	}
	if ok {
		t.Error("Run() ok = true, want false")
	}
}
