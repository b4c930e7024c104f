/*
 * tenbit - First pass
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

// Package pass1 walks an expanded .am stream once, building the symbol
// table, the data image, and the address each instruction line will occupy
// once code generation runs. It never emits machine words itself; that is
// pass2's job, replayed over the InstrLine list this pass produces so the
// source never has to be scanned a third time.
package pass1

import (
	"io"
	"strconv"
	"strings"

	"github.com/rcornwell/tenbit/internal/diag"
	"github.com/rcornwell/tenbit/internal/isa"
	"github.com/rcornwell/tenbit/internal/lexutil"
	"github.com/rcornwell/tenbit/internal/line"
	"github.com/rcornwell/tenbit/internal/lineread"
	"github.com/rcornwell/tenbit/internal/symtab"
)

// ICStart is the address the first instruction word is assigned.
const ICStart = 100

// MemorySize is the total addressable word count shared by the code and
// data images.
const MemorySize = 256

// InstrLine is one instruction-bearing source line, resolved to the
// address it will occupy and the addressing modes of its operands. pass2
// replays these against a second read of the same .am stream.
type InstrLine struct {
	LineNumber int
	Address    int
	Opcode     int
	SrcOperand string
	SrcMode    int
	DstOperand string
	DstMode    int
}

// Result is everything the first pass produces for a single file.
type Result struct {
	Symbols *symtab.Table
	Data    []uint
	ICF     int
	Instrs  []InstrLine
	OK      bool
}

// Run performs the first pass over r, reporting diagnostics to sink.
// wordOverflowFatal controls what happens once the combined code and data
// image exceeds MemorySize (spec.md's (ICF-100)+DC <= 256 invariant): when
// true, the scan stops at the line that pushed the image over the limit;
// when false, the overflow is reported like any other diagnostic and the
// rest of the file is still scanned.
func Run(r io.Reader, sink diag.Sink, wordOverflowFatal bool) *Result {
	res := &Result{Symbols: symtab.New()}
	ic := ICStart
	dc := 0
	src := lineread.New(r)

	for {
		text, lineNum, overlong, ok := src.Next()
		if !ok {
			break
		}
		if overlong {
			sink.Errorf(lineNum, "line is longer than %d characters", lexutil.MaxLineLength)
			continue
		}

		p := line.Parse(text)
		if p.IsEmpty {
			continue
		}
		if p.IsError {
			sink.Errorf(lineNum, "invalid line format")
			continue
		}

		if p.Label != "" {
			if !handleLabel(res.Symbols, p, ic, dc, lineNum, sink) {
				continue
			}
		}

		if p.IsDirective {
			dc += handleDirective(res, p, dc, lineNum, sink)
			if checkImageOverflow(ic, dc, lineNum, sink) && wordOverflowFatal {
				break
			}
			continue
		}

		length, opcode, srcMode, dstMode, ok := validateInstruction(p, lineNum, sink)
		if !ok {
			continue
		}
		srcOperand, dstOperand := "", ""
		switch isa.Arity(opcode) {
		case 1:
			dstOperand = p.Operand1
		case 2:
			srcOperand, dstOperand = p.Operand1, p.Operand2
		}
		res.Instrs = append(res.Instrs, InstrLine{
			LineNumber: lineNum,
			Address:    ic,
			Opcode:     opcode,
			SrcOperand: srcOperand,
			SrcMode:    srcMode,
			DstOperand: dstOperand,
			DstMode:    dstMode,
		})
		ic += length
		if checkImageOverflow(ic, dc, lineNum, sink) && wordOverflowFatal {
			break
		}
	}

	res.ICF = ic
	if len(res.Data) < dc {
		res.Data = appendAt(res.Data, dc-1, 0)
	}
	res.Data = res.Data[:dc]
	res.Symbols.RelocateData(ic)
	res.OK = !sink.Failed()
	return res
}

// checkImageOverflow reports whether the combined image — (ic-ICStart)
// instruction words plus dc data words — has exceeded MemorySize, recording
// a diagnostic if so.
func checkImageOverflow(ic, dc, lineNum int, sink diag.Sink) bool {
	if (ic-ICStart)+dc > MemorySize {
		sink.Errorf(lineNum, "memory-image overflow: code and data exceed %d words", MemorySize)
		return true
	}
	return false
}

func handleLabel(symbols *symtab.Table, p line.Parsed, ic, dc, lineNum int, sink diag.Sink) bool {
	if !lexutil.IsValidLabel(p.Label) {
		sink.Errorf(lineNum, "invalid label name")
		return false
	}
	if symbols.Find(p.Label) != nil {
		sink.Errorf(lineNum, "label already defined")
		return false
	}

	switch {
	case p.IsDirective && p.Command == ".extern":
		return true
	case p.IsDirective && p.Command == ".entry":
		return true
	case p.IsDirective:
		symbols.Add(p.Label, dc, symtab.Data)
	default:
		symbols.Add(p.Label, ic, symtab.Code)
	}
	return true
}

// handleDirective dispatches a directive line and returns the number of
// data words it contributed (0 for .entry and .extern, which reserve none).
func handleDirective(res *Result, p line.Parsed, dc, lineNum int, sink diag.Sink) int {
	switch p.Command {
	case ".data":
		return directiveData(res, p, dc, lineNum, sink)
	case ".string":
		return directiveString(res, p, dc, lineNum, sink)
	case ".mat":
		return directiveMat(res, p, dc, lineNum, sink)
	case ".extern":
		directiveExtern(res, p, lineNum, sink)
		return 0
	case ".entry":
		return 0
	default:
		sink.Errorf(lineNum, "unknown directive")
		return 0
	}
}

func directiveData(res *Result, p line.Parsed, dc, lineNum int, sink diag.Sink) int {
	if p.Operand1 == "" {
		sink.Errorf(lineNum, ".data directive requires at least one value")
		return 0
	}
	operands := p.Operand1
	if p.Operand2 != "" {
		operands += "," + p.Operand2
	}

	count := 0
	for _, tok := range strings.Split(operands, ",") {
		tok = lexutil.Trim(tok)
		v, ok := lexutil.IsValidInteger(tok)
		if !ok {
			sink.Errorf(lineNum, "invalid integer value in data directive")
			return 0
		}
		if dc+count >= MemorySize {
			sink.Errorf(lineNum, "data memory overflow")
			return 0
		}
		res.Data = appendAt(res.Data, dc+count, uint(v)&0x3FF)
		count++
	}
	return count
}

func directiveString(res *Result, p line.Parsed, dc, lineNum int, sink diag.Sink) int {
	lit := p.Operand1
	if len(lit) < 2 || lit[0] != '"' || lit[len(lit)-1] != '"' {
		sink.Errorf(lineNum, "string must be enclosed in quotes")
		return 0
	}
	body := lit[1 : len(lit)-1]
	if dc+len(body)+1 >= MemorySize {
		sink.Errorf(lineNum, "data memory overflow")
		return 0
	}
	for i := 0; i < len(body); i++ {
		res.Data = appendAt(res.Data, dc+i, uint(body[i]))
	}
	res.Data = appendAt(res.Data, dc+len(body), 0)
	return len(body) + 1
}

func directiveMat(res *Result, p line.Parsed, dc, lineNum int, sink diag.Sink) int {
	if p.Operand1 == "" {
		sink.Errorf(lineNum, ".mat directive requires dimensions and values")
		return 0
	}
	rows, cols, ok := parseMatDims(p.Operand1)
	if !ok {
		sink.Errorf(lineNum, "invalid matrix dimensions format")
		return 0
	}
	expected := rows * cols
	if p.Operand2 == "" {
		sink.Errorf(lineNum, "not enough values for matrix dimensions")
		return 0
	}

	count := 0
	for _, tok := range strings.Split(p.Operand2, ",") {
		if count >= expected {
			break
		}
		tok = lexutil.Trim(tok)
		v, ok := lexutil.IsValidInteger(tok)
		if !ok {
			sink.Errorf(lineNum, "invalid integer value in matrix directive")
			return 0
		}
		if dc+count >= MemorySize {
			sink.Errorf(lineNum, "data memory overflow")
			return 0
		}
		res.Data = appendAt(res.Data, dc+count, uint(v)&0x3FF)
		count++
	}
	if count != expected {
		sink.Errorf(lineNum, "incorrect number of values for matrix dimensions")
		return 0
	}
	return count
}

func directiveExtern(res *Result, p line.Parsed, lineNum int, sink diag.Sink) {
	if p.Operand1 == "" {
		sink.Errorf(lineNum, ".extern directive requires exactly one symbol name")
		return
	}
	if !lexutil.IsValidLabel(p.Operand1) {
		sink.Errorf(lineNum, "invalid symbol name")
		return
	}
	if !res.Symbols.Add(p.Operand1, 0, symtab.External) {
		sink.Errorf(lineNum, "failed to add external symbol")
	}
}

// parseMatDims parses a "[rows][cols]" dimension token.
func parseMatDims(s string) (rows, cols int, ok bool) {
	open1 := strings.IndexByte(s, '[')
	close1 := strings.IndexByte(s, ']')
	if open1 < 0 || close1 < open1 {
		return 0, 0, false
	}
	rest := s[close1+1:]
	open2 := strings.IndexByte(rest, '[')
	close2 := strings.IndexByte(rest, ']')
	if open2 < 0 || close2 < open2 {
		return 0, 0, false
	}
	r, err1 := strconv.Atoi(s[open1+1 : close1])
	c, err2 := strconv.Atoi(rest[open2+1 : close2])
	if err1 != nil || err2 != nil || r <= 0 || c <= 0 {
		return 0, 0, false
	}
	return r, c, true
}

// validateInstruction resolves an instruction line's opcode, operand
// addressing modes, and word length, reporting every diagnostic the
// original design surfaces along the way.
func validateInstruction(p line.Parsed, lineNum int, sink diag.Sink) (length, opcode, srcMode, dstMode int, ok bool) {
	if p.Command == "" {
		sink.Errorf(lineNum, "missing instruction")
		return 0, 0, 0, 0, false
	}
	opcode = isa.Opcode(p.Command)
	if opcode == -1 {
		sink.Errorf(lineNum, "unknown instruction")
		return 0, 0, 0, 0, false
	}

	expected := isa.Arity(opcode)
	actual := 0
	if p.Operand1 != "" {
		actual++
	}
	if p.Operand2 != "" {
		actual++
	}
	if actual != expected {
		sink.Errorf(lineNum, "wrong number of operands")
		return 0, 0, 0, 0, false
	}

	srcMode, dstMode = -1, -1
	switch expected {
	case 1:
		dstMode = isa.AddressingMode(p.Operand1)
		if dstMode == -1 {
			sink.Errorf(lineNum, "invalid destination operand addressing mode")
			return 0, 0, 0, 0, false
		}
	case 2:
		srcMode = isa.AddressingMode(p.Operand1)
		if srcMode == -1 {
			sink.Errorf(lineNum, "invalid source operand addressing mode")
			return 0, 0, 0, 0, false
		}
		dstMode = isa.AddressingMode(p.Operand2)
		if dstMode == -1 {
			sink.Errorf(lineNum, "invalid destination operand addressing mode")
			return 0, 0, 0, 0, false
		}
	}

	if !isa.ValidAddressing(opcode, srcMode, dstMode) {
		sink.Errorf(lineNum, "invalid addressing mode for this instruction")
		return 0, 0, 0, 0, false
	}

	return isa.Length(srcMode, dstMode), opcode, srcMode, dstMode, true
}

// appendAt writes v at index idx of a growable word slice, padding with
// zeros as needed. Directives within a single line are always processed in
// increasing dc order, so idx never lands far ahead of len(data).
func appendAt(data []uint, idx int, v uint) []uint {
	for len(data) <= idx {
		data = append(data, 0)
	}
	data[idx] = v
	return data
}
