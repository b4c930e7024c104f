/*
 * tenbit - Diagnostic sink
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

// Package diag carries assembly diagnostics out of the three translation
// stages without aborting them. A pass keeps processing lines after an
// error; the diagnostic sink is how it remembers that one occurred.
package diag

import (
	"fmt"
	"io"
)

// Sink collects diagnostics for a single file's pipeline run.
type Sink interface {
	Errorf(line int, format string, args ...any)
	Failed() bool
	Count() int
}

// Stderr is the production Sink: it writes "Error in file <path>, line <N>:
// <message>" to out for every diagnostic and latches once any are seen.
type Stderr struct {
	out      io.Writer
	file     string
	failed   bool
	count    int
	maxCount int // 0 = unlimited
}

// NewStderr returns a Sink that formats diagnostics against file and writes
// them to out. maxCount, if non-zero, stops writing further diagnostics
// once reached (the pass keeps running; only the noise is capped).
func NewStderr(out io.Writer, file string, maxCount int) *Stderr {
	return &Stderr{out: out, file: file, maxCount: maxCount}
}

func (s *Stderr) Errorf(line int, format string, args ...any) {
	s.failed = true
	s.count++
	if s.maxCount > 0 && s.count > s.maxCount {
		return
	}
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(s.out, "Error in file %s, line %d: %s\n", s.file, line, msg)
}

func (s *Stderr) Failed() bool { return s.failed }
func (s *Stderr) Count() int   { return s.count }

// Diagnostic is one recorded message, used by Collecting.
type Diagnostic struct {
	Line    int
	Message string
}

// Collecting is a Sink that buffers diagnostics instead of printing them,
// for tests that want to assert on diagnostic text.
type Collecting struct {
	Diagnostics []Diagnostic
}

func NewCollecting() *Collecting {
	return &Collecting{}
}

func (c *Collecting) Errorf(line int, format string, args ...any) {
	c.Diagnostics = append(c.Diagnostics, Diagnostic{Line: line, Message: fmt.Sprintf(format, args...)})
}

func (c *Collecting) Failed() bool { return len(c.Diagnostics) > 0 }
func (c *Collecting) Count() int   { return len(c.Diagnostics) }
