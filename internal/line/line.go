/*
 * tenbit - Line parser
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

// Package line classifies one raw source line into its lexical components:
// an optional label, a command (instruction or directive), and up to two
// operands. It performs no semantic validation beyond shape.
package line

import (
	"strings"

	"github.com/rcornwell/tenbit/internal/lexutil"
)

// Parsed is the classification of one source line.
type Parsed struct {
	Label       string
	Command     string
	Operand1    string
	Operand2    string
	IsDirective bool
	IsEmpty     bool
	IsError     bool
}

// Parse classifies text per the procedure in the line-parser component:
// empty/comment lines short-circuit, a colon-terminated first token is a
// label, the next token is the command, and up to two further tokens are
// operands. On a directive line, any tokens beyond those are appended to
// Operand2, comma-joined, so value lists such as ".data 1, 2, 3" survive;
// on an instruction line they mark the line as an error.
func Parse(text string) Parsed {
	if lexutil.IsEmpty(text) || lexutil.IsComment(text) {
		return Parsed{IsEmpty: true}
	}

	tokens := lexutil.Tokenize(text)
	if len(tokens) == 0 {
		return Parsed{IsEmpty: true}
	}

	var p Parsed
	idx := 0

	if n := len(tokens[0]); n > 0 && tokens[0][n-1] == ':' {
		p.Label = tokens[0][:n-1]
		idx = 1
	}

	if idx < len(tokens) {
		p.Command = tokens[idx]
		p.IsDirective = len(p.Command) > 0 && p.Command[0] == '.'
		idx++
	}

	if idx < len(tokens) {
		p.Operand1 = tokens[idx]
		idx++
	}

	if idx < len(tokens) {
		p.Operand2 = tokens[idx]
		idx++
	}

	if idx < len(tokens) {
		if p.IsDirective {
			p.Operand2 += "," + strings.Join(tokens[idx:], ",")
		} else {
			p.IsError = true
		}
	}

	return p
}
