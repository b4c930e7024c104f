/*
 * tenbit - Line-length-checked source reader
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

// Package lineread is the "read-line stream" collaborator every pass reads
// through: a line-at-a-time cursor over an io.Reader that enforces the
// 80-character line-length invariant (I5) independent of terminal
// encoding quirks.
package lineread

import (
	"bufio"
	"io"
	"strings"

	"github.com/rcornwell/tenbit/internal/lexutil"
)

// Source reads logical lines from an underlying reader, tracking the
// 1-based line number and flagging lines over lexutil.MaxLineLength.
type Source struct {
	r    *bufio.Reader
	line int
}

// New wraps r for line-at-a-time reading.
func New(r io.Reader) *Source {
	return &Source{r: bufio.NewReader(r)}
}

// Next returns the next logical line. ok is false once the stream is
// exhausted. overlong reports that the line exceeded 80 characters; its
// text is not meaningful and callers should skip processing it.
func (s *Source) Next() (text string, lineNumber int, overlong bool, ok bool) {
	var buf []byte
	sawAny := false
	for {
		b, err := s.r.ReadByte()
		if err != nil {
			break
		}
		sawAny = true
		if b == '\n' {
			break
		}
		buf = append(buf, b)
		if len(buf) > lexutil.MaxLineLength {
			overlong = true
		}
	}
	if !sawAny {
		return "", 0, false, false
	}
	s.line++
	return strings.TrimSuffix(string(buf), "\r"), s.line, overlong, true
}
