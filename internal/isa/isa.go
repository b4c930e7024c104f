/*
 * tenbit - Instruction set tables
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

// Package isa holds the fixed 16-opcode instruction set: mnemonic to
// opcode, legal addressing-mode masks per opcode, and instruction length
// arithmetic. It has no notion of symbols or files; it is the pure
// arithmetic the two passes both share.
package isa

import "github.com/rcornwell/tenbit/internal/lexutil"

// Addressing modes.
const (
	Immediate = 0
	Direct    = 1
	Matrix    = 2
	Register  = 3
)

// Opcode assigns mnemonic to opcode value; index = opcode.
var mnemonics = []string{
	"mov", "cmp", "add", "sub", "not", "clr", "lea", "inc",
	"dec", "jmp", "bne", "red", "prn", "jsr", "rts", "stop",
}

// Legal source/destination addressing-mode bitmasks, indexed by opcode.
// Bit N set means mode N is legal. A mask of 0 means the operand must be
// absent.
var srcMask = [16]int{
	0xF, 0xF, 0xF, 0xF, // mov cmp add sub
	0x0, 0x0, // not clr
	0x6,      // lea
	0x0, 0x0, 0x0, 0x0, 0x0, 0x0, 0x0, // inc dec jmp bne red prn jsr
	0x0, 0x0, // rts stop
}

var dstMask = [16]int{
	0xE, 0xF, 0xE, 0xE, // mov cmp add sub
	0xE, 0xE, // not clr
	0xE,                        // lea
	0xE, 0xE, 0xE, 0xE, 0xE, 0xF, 0xE, // inc dec jmp bne red prn jsr
	0x0, 0x0, // rts stop
}

// Opcode returns the opcode value for a mnemonic, or -1.
func Opcode(mnemonic string) int {
	for i, m := range mnemonics {
		if m == mnemonic {
			return i
		}
	}
	return -1
}

// Mnemonic returns the mnemonic for an opcode, or "".
func Mnemonic(opcode int) string {
	if opcode < 0 || opcode >= len(mnemonics) {
		return ""
	}
	return mnemonics[opcode]
}

// Arity returns the number of operands an opcode expects: 0, 1, or 2.
func Arity(opcode int) int {
	switch {
	case opcode == 14 || opcode == 15: // rts, stop
		return 0
	case opcode >= 4 && opcode <= 13: // not..jsr
		return 1
	default: // mov cmp add sub
		return 2
	}
}

// ValidAddressing reports whether srcMode and dstMode (-1 if the operand is
// absent) are legal for opcode.
func ValidAddressing(opcode, srcMode, dstMode int) bool {
	if opcode < 0 || opcode >= len(mnemonics) {
		return false
	}
	if !modeOK(srcMask[opcode], srcMode) {
		return false
	}
	return modeOK(dstMask[opcode], dstMode)
}

func modeOK(mask, mode int) bool {
	if mode == -1 {
		return mask == 0
	}
	return mask&(1<<uint(mode)) != 0
}

// Length returns the instruction length in machine words given its
// addressing modes (-1 if an operand is absent).
func Length(srcMode, dstMode int) int {
	length := 1
	switch srcMode {
	case Immediate, Direct:
		length++
	case Matrix:
		length += 2
	case Register:
		if dstMode != Register {
			length++
		}
	}
	switch dstMode {
	case Immediate, Direct:
		length++
	case Matrix:
		length += 2
	case Register:
		length++
	}
	return length
}

// AddressingMode classifies a raw operand token into one of the four
// addressing modes, or -1 if it is not syntactically valid in any mode.
func AddressingMode(operand string) int {
	if operand == "" {
		return -1
	}
	if operand[0] == '#' {
		if _, ok := lexutil.IsValidInteger(operand[1:]); ok {
			return Immediate
		}
		return -1
	}
	if lexutil.GetRegisterNumber(operand) != -1 {
		return Register
	}
	if containsRune(operand, '[') && containsRune(operand, ']') {
		return Matrix
	}
	if lexutil.IsValidLabel(operand) {
		return Direct
	}
	return -1
}

func containsRune(s string, r byte) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == r {
			return true
		}
	}
	return false
}
