/*
 * tenbit - Lexical helpers
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

// Package lexutil holds the character- and token-level helpers shared by
// the pre-processor and both assembly passes: whitespace trimming, blank
// and comment detection, label and integer validation, and the reserved
// word table.
package lexutil

import (
	"strconv"
	"strings"
)

const (
	MaxLineLength = 80
	MaxLabelLen   = 30
	MaxTokens     = 10
	MinInt        = -512
	MaxInt        = 511
)

var Instructions = []string{
	"mov", "cmp", "add", "sub", "not", "clr", "lea", "inc",
	"dec", "jmp", "bne", "red", "prn", "jsr", "rts", "stop",
}

var Directives = []string{".data", ".string", ".mat", ".entry", ".extern"}

var Registers = []string{"r0", "r1", "r2", "r3", "r4", "r5", "r6", "r7"}

// Trim strips ASCII whitespace from both ends of s.
func Trim(s string) string {
	return strings.TrimFunc(s, isSpace)
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

// IsEmpty reports whether line is empty once trimmed.
func IsEmpty(line string) bool {
	return Trim(line) == ""
}

// IsComment reports whether the first non-whitespace character of line is ';'.
func IsComment(line string) bool {
	t := Trim(line)
	return len(t) > 0 && t[0] == ';'
}

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isAlnum(b byte) bool {
	return isAlpha(b) || (b >= '0' && b <= '9')
}

// IsValidLabel reports whether name is a legal label: non-empty, at most
// MaxLabelLen characters, first character alphabetic, remainder
// alphanumeric, and not a reserved word.
func IsValidLabel(name string) bool {
	if name == "" || len(name) > MaxLabelLen {
		return false
	}
	if !isAlpha(name[0]) {
		return false
	}
	for i := 1; i < len(name); i++ {
		if !isAlnum(name[i]) {
			return false
		}
	}
	return !IsReservedWord(name)
}

// IsReservedWord reports whether w exactly matches an instruction mnemonic,
// directive name, or register name.
func IsReservedWord(w string) bool {
	for _, i := range Instructions {
		if w == i {
			return true
		}
	}
	for _, d := range Directives {
		if w == d {
			return true
		}
	}
	for _, r := range Registers {
		if w == r {
			return true
		}
	}
	return false
}

// IsValidInteger parses s as a base-10 signed integer in [MinInt, MaxInt].
// The entire token must consume; partial parses are rejected.
func IsValidInteger(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	if v < MinInt || v > MaxInt {
		return 0, false
	}
	return int(v), true
}

// Tokenize splits line on the delimiter set {space, tab, newline, carriage
// return, comma}, yielding at most MaxTokens tokens.
func Tokenize(line string) []string {
	tokens := make([]string, 0, MaxTokens)
	start := -1
	flush := func(end int) {
		if start >= 0 {
			tokens = append(tokens, line[start:end])
			start = -1
		}
	}
	for i := 0; i < len(line) && len(tokens) < MaxTokens; i++ {
		c := line[i]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == ',' {
			flush(i)
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if len(tokens) < MaxTokens {
		flush(len(line))
	}
	return tokens
}

// GetRegisterNumber returns the register index for "r0".."r7", or -1.
func GetRegisterNumber(name string) int {
	if len(name) != 2 || name[0] != 'r' {
		return -1
	}
	if name[1] < '0' || name[1] > '7' {
		return -1
	}
	return int(name[1] - '0')
}
