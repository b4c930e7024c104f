/*
 * tenbit - Per-file assembler context
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package assembler wires the pre-processor and the two passes into a
// single per-file run. A Context owns everything that used to be process-
// wide globals in the original design: its own counters (via pass1/pass2),
// its own symbol table, its own diagnostic sink. Nothing survives past one
// Context's Run.
package assembler

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rcornwell/tenbit/internal/base4"
	"github.com/rcornwell/tenbit/internal/config"
	"github.com/rcornwell/tenbit/internal/diag"
	"github.com/rcornwell/tenbit/internal/pass1"
	"github.com/rcornwell/tenbit/internal/pass2"
	"github.com/rcornwell/tenbit/internal/preprocess"
	"github.com/rcornwell/tenbit/internal/symtab"
)

// MaxBaseNameLen is the longest accepted base name.
const MaxBaseNameLen = 50

// ValidateBaseName checks name against the filename convention: non-empty,
// at most MaxBaseNameLen characters, first character alphabetic or
// underscore, remainder alphanumeric, underscore, or hyphen.
func ValidateBaseName(name string) error {
	if name == "" || len(name) > MaxBaseNameLen {
		return fmt.Errorf("invalid filename %q: must be 1-%d characters", name, MaxBaseNameLen)
	}
	first := name[0]
	if !isAlpha(first) && first != '_' {
		return fmt.Errorf("invalid filename %q: must start with a letter or underscore", name)
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		if !isAlpha(c) && !isDigit(c) && c != '_' && c != '-' {
			return fmt.Errorf("invalid filename %q: character %q not allowed", name, c)
		}
	}
	return nil
}

func isAlpha(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }
func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// Context assembles one file: path is the argument as given (possibly with
// a directory component), BaseName is its trailing path component, used
// only for progress narration and validated against ValidateBaseName.
type Context struct {
	Path     string
	BaseName string
	Cfg      config.Config
	Out      io.Writer
	Logger   *slog.Logger
}

// New builds a Context for the file named by path (without extension). It
// validates only the base name component, per the original driver's
// "validate ONLY the base name" rule.
func New(path string, cfg config.Config, out io.Writer, logger *slog.Logger) (*Context, error) {
	base := filepath.Base(path)
	if err := ValidateBaseName(base); err != nil {
		return nil, err
	}
	return &Context{Path: path, BaseName: base, Cfg: cfg, Out: out, Logger: logger}, nil
}

func (c *Context) narrate(format string, args ...any) {
	if c.Out != nil {
		fmt.Fprintf(c.Out, format, args...)
	}
}

// Run executes the three-stage pipeline against <path>.as, producing
// <path>.am, <path>.ob, and conditionally <path>.ent/<path>.ext. It reports
// true only when every stage completes without a diagnostic.
func (c *Context) Run() (bool, error) {
	c.narrate("\n=== Processing file: %s ===\n", c.Path)
	c.logger().Debug("assembly started", "file", c.Path)

	asPath := c.Path + ".as"
	amPath := c.Path + ".am"

	in, err := os.Open(asPath)
	if err != nil {
		return false, fmt.Errorf("cannot open input file: %w", err)
	}
	defer in.Close()

	c.narrate("Phase 1: Pre-assembler (macro processing)...\n")
	var am bytes.Buffer
	preSink := diag.NewStderr(os.Stderr, amPath, c.Cfg.Assembler.MaxErrors)
	preprocess.Run(in, &am, preSink)
	if preSink.Failed() {
		c.narrate("Pre-assembler phase failed.\n")
		return false, nil
	}
	c.narrate("Phase 1 completed successfully.\n")

	if err := os.WriteFile(amPath, am.Bytes(), 0o644); err != nil {
		return false, fmt.Errorf("cannot create output file: %w", err)
	}

	c.narrate("Phase 2: First pass (symbol table building)...\n")
	p1Sink := diag.NewStderr(os.Stderr, amPath, c.Cfg.Assembler.MaxErrors)
	p1 := pass1.Run(bytes.NewReader(am.Bytes()), p1Sink, c.Cfg.Assembler.WordOverflowFatal)
	if !p1.OK {
		c.narrate("First pass failed.\n")
		return false, nil
	}
	c.narrate("Phase 2 completed successfully.\n")
	c.logger().Debug("first pass complete", "file", c.Path, "icf", p1.ICF, "dc", len(p1.Data))

	c.narrate("Phase 3: Second pass (code generation)...\n")
	p2Sink := diag.NewStderr(os.Stderr, amPath, c.Cfg.Assembler.MaxErrors)
	p2 := pass2.Run(bytes.NewReader(am.Bytes()), p1, p2Sink)
	if !p2.OK {
		c.narrate("Second pass failed.\n")
		return false, nil
	}

	if err := c.writeObjectFile(p1, p2); err != nil {
		return false, err
	}
	hasEntries, err := c.writeEntriesFile(p1.Symbols)
	if err != nil {
		return false, err
	}
	hasExternals, err := c.writeExternalsFile(p2.Externals)
	if err != nil {
		return false, err
	}

	c.narrate("Phase 3 completed successfully.\n")
	c.narrate("Output files generated:\n")
	c.narrate("  - %s.ob (object file)\n", c.BaseName)
	if hasEntries {
		c.narrate("  - %s.ent (entries file)\n", c.BaseName)
	}
	if hasExternals {
		c.narrate("  - %s.ext (externals file)\n", c.BaseName)
	}

	if !c.Cfg.Assembler.KeepIntermediate {
		os.Remove(amPath)
	}

	c.logger().Info("assembly succeeded", "file", c.Path)
	return true, nil
}

func (c *Context) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

func (c *Context) writeObjectFile(p1 *pass1.Result, p2 *pass2.Result) error {
	f, err := os.Create(c.Path + ".ob")
	if err != nil {
		return fmt.Errorf("cannot create object file: %w", err)
	}
	defer f.Close()

	codeSize := len(p2.Code)
	dataSize := len(p1.Data)
	fmt.Fprintf(f, "%s %s\n", base4.Encode(uint(codeSize)), base4.Encode(uint(dataSize)))

	for i, word := range p2.Code {
		fmt.Fprintf(f, "%s %s\n", base4.Encode(uint(pass1.ICStart+i)), base4.Encode(word))
	}
	for i, word := range p1.Data {
		fmt.Fprintf(f, "%s %s\n", base4.Encode(uint(p1.ICF+i)), base4.Encode(word))
	}
	return nil
}

func (c *Context) writeEntriesFile(symbols *symtab.Table) (bool, error) {
	var lines []string
	for _, sym := range symbols.All() {
		if sym.Attribute == symtab.Entry {
			lines = append(lines, fmt.Sprintf("%s %s\n", sym.Name, base4.Encode(uint(sym.Address))))
		}
	}
	if len(lines) == 0 {
		return false, nil
	}
	f, err := os.Create(c.Path + ".ent")
	if err != nil {
		return false, fmt.Errorf("cannot create entries file: %w", err)
	}
	defer f.Close()
	for _, l := range lines {
		io.WriteString(f, l)
	}
	return true, nil
}

func (c *Context) writeExternalsFile(externals []pass2.ExternalUsage) (bool, error) {
	if len(externals) == 0 {
		return false, nil
	}
	f, err := os.Create(c.Path + ".ext")
	if err != nil {
		return false, fmt.Errorf("cannot create externals file: %w", err)
	}
	defer f.Close()
	for _, ext := range externals {
		fmt.Fprintf(f, "%s %s\n", ext.Symbol, base4.Encode(uint(ext.Address)))
	}
	return true, nil
}

// FormatAddress renders addr as its base-4 form followed by its decimal
// value in parentheses.
func FormatAddress(addr int) string {
	return base4.Encode(uint(addr)) + " (" + strconv.Itoa(addr) + ")"
}
