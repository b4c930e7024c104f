/*
 * tenbit - Macro pre-processor
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

// Package preprocess expands mcro/mcroend blocks into their bodies,
// turning a .as source stream into a .am expanded stream. Expansion
// happens only at single-token call sites and only once per call: a macro
// body is copied verbatim, never re-scanned for nested calls.
package preprocess

import (
	"fmt"
	"io"

	"github.com/rcornwell/tenbit/internal/diag"
	"github.com/rcornwell/tenbit/internal/lexutil"
	"github.com/rcornwell/tenbit/internal/lineread"
	"github.com/rcornwell/tenbit/internal/macro"
)

const (
	macroStart = "mcro"
	macroEnd   = "mcroend"
)

// Run expands r's macro blocks and writes the result to w, reporting
// diagnostics on sink. It returns the macro table built along the way
// (discarded by callers; useful to tests); whether w's contents are usable
// is reported through sink.Failed().
func Run(r io.Reader, w io.Writer, sink diag.Sink) *macro.Table {
	src := lineread.New(r)
	macros := macro.New()

	for {
		text, lineNum, overlong, ok := src.Next()
		if !ok {
			break
		}
		if overlong {
			sink.Errorf(lineNum, "line is longer than %d characters", lexutil.MaxLineLength)
			continue
		}
		if lexutil.IsEmpty(text) || lexutil.IsComment(text) {
			fmt.Fprintln(w, text)
			continue
		}

		tokens := lexutil.Tokenize(text)

		if len(tokens) == 2 && tokens[0] == macroStart {
			name := tokens[1]
			if !validMacroName(name) {
				sink.Errorf(lineNum, "invalid macro name or reserved word used")
				skipMacroBody(src)
				continue
			}
			body, endLine, closed := readMacroBody(src)
			if !closed {
				sink.Errorf(endLine, "macro definition missing mcroend")
				continue
			}
			macros.Add(name, body)
			continue
		}

		if len(tokens) == 1 {
			if body, found := macros.Find(tokens[0]); found {
				fmt.Fprint(w, body)
				continue
			}
		}

		fmt.Fprintln(w, text)
	}

	return macros
}

func validMacroName(name string) bool {
	return lexutil.IsValidLabel(name) && !lexutil.IsReservedWord(name)
}

// readMacroBody consumes lines verbatim until a sole "mcroend" token,
// returning the concatenated body (each line followed by a newline).
func readMacroBody(src *lineread.Source) (body string, lastLine int, closed bool) {
	var buf []byte
	for {
		text, lineNum, overlong, ok := src.Next()
		if !ok {
			return string(buf), lastLine, false
		}
		lastLine = lineNum
		if overlong {
			continue
		}
		if isMacroEnd(text) {
			return string(buf), lastLine, true
		}
		buf = append(buf, text...)
		buf = append(buf, '\n')
	}
}

// skipMacroBody discards an invalid macro definition's body so a bad
// `mcro` line doesn't desynchronize the scan from the rest of the file.
func skipMacroBody(src *lineread.Source) {
	for {
		text, _, overlong, ok := src.Next()
		if !ok {
			return
		}
		if overlong {
			continue
		}
		if isMacroEnd(text) {
			return
		}
	}
}

func isMacroEnd(line string) bool {
	tokens := lexutil.Tokenize(line)
	return len(tokens) == 1 && tokens[0] == macroEnd
}
