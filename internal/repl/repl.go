/*
 * tenbit - Interactive instruction encoder
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

// Package repl is a one-line-at-a-time instruction encoder for manual
// testing: it feeds each typed line through the real first and second
// passes against a throwaway, empty symbol table and prints the resulting
// machine word(s). It does not link multiple lines together; every prompt
// is encoded in isolation.
package repl

import (
	"errors"
	"fmt"
	"strings"

	"github.com/peterh/liner"

	"github.com/rcornwell/tenbit/internal/base4"
	"github.com/rcornwell/tenbit/internal/diag"
	"github.com/rcornwell/tenbit/internal/lexutil"
	"github.com/rcornwell/tenbit/internal/pass1"
	"github.com/rcornwell/tenbit/internal/pass2"
)

// Run starts the interactive prompt, reading lines until EOF or Ctrl-D.
func Run() {
	ln := liner.NewLiner()
	defer ln.Close()

	ln.SetCtrlCAborts(true)
	ln.SetCompleter(completeWord)

	for {
		text, err := ln.Prompt("asm> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				return
			}
			fmt.Println("error reading line:", err)
			return
		}
		ln.AppendHistory(text)
		if strings.TrimSpace(text) == "" {
			continue
		}
		encodeAndPrint(text)
	}
}

func encodeAndPrint(text string) {
	sink := diag.NewCollecting()

	p1 := pass1.Run(strings.NewReader(text+"\n"), sink, false)
	if !p1.OK || len(p1.Instrs) == 0 {
		printDiagnostics(sink)
		return
	}

	p2 := pass2.Run(strings.NewReader(text+"\n"), p1, sink)
	if !p2.OK {
		printDiagnostics(sink)
		return
	}

	for i, word := range p2.Code {
		fmt.Printf("  [%d] %s  0x%03X\n", i, base4.Encode(word), word)
	}
}

func printDiagnostics(sink *diag.Collecting) {
	for _, d := range sink.Diagnostics {
		fmt.Println("error:", d.Message)
	}
}

func completeWord(line string) []string {
	var out []string
	for _, w := range lexutil.Instructions {
		if strings.HasPrefix(w, line) {
			out = append(out, w)
		}
	}
	for _, w := range lexutil.Directives {
		if strings.HasPrefix(w, line) {
			out = append(out, w)
		}
	}
	return out
}
