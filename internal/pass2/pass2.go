/*
 * tenbit - Second pass
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

// Package pass2 turns the first pass's resolved instruction list into
// machine words, resolves every operand against the symbol table built by
// pass1, and promotes .entry symbols. It re-reads the expanded source only
// to find .entry directives; instruction encoding runs entirely off
// pass1.Result.Instrs, not off the re-read text.
package pass2

import (
	"io"
	"strings"

	"github.com/rcornwell/tenbit/internal/diag"
	"github.com/rcornwell/tenbit/internal/isa"
	"github.com/rcornwell/tenbit/internal/lexutil"
	"github.com/rcornwell/tenbit/internal/line"
	"github.com/rcornwell/tenbit/internal/lineread"
	"github.com/rcornwell/tenbit/internal/pass1"
	"github.com/rcornwell/tenbit/internal/symtab"
)

// ARE field values.
const (
	areAbsolute   = 0
	areExternal   = 1
	areRelocated  = 2
)

// ExternalUsage records one site where an external symbol was referenced,
// in the order encoding visited them.
type ExternalUsage struct {
	Symbol  string
	Address int
}

// Result is the second pass's output for a single file.
type Result struct {
	Code      []uint // code image, index 0 corresponds to pass1.ICStart
	Externals []ExternalUsage
	OK        bool
}

// Run encodes p1's instructions into machine words and promotes .entry
// symbols found by re-scanning r, reporting diagnostics to sink.
func Run(r io.Reader, p1 *pass1.Result, sink diag.Sink) *Result {
	res := &Result{Code: make([]uint, p1.ICF-pass1.ICStart)}

	for _, instr := range p1.Instrs {
		encodeInstruction(res, p1.Symbols, instr, sink)
	}

	scanEntries(r, p1.Symbols, sink)

	res.OK = !sink.Failed()
	return res
}

func encodeInstruction(res *Result, symbols *symtab.Table, instr pass1.InstrLine, sink diag.Sink) {
	base := instr.Address - pass1.ICStart
	res.Code[base] = uint(instr.Opcode&0xF)<<6 | modeField(instr.SrcMode, 4) | modeField(instr.DstMode, 2)

	idx := base + 1
	if instr.SrcMode == isa.Register && instr.DstMode == isa.Register {
		res.Code[idx] = encodeTwoRegisters(instr.SrcOperand, instr.DstOperand)
		return
	}
	if instr.SrcOperand != "" {
		idx += encodeOperand(res, symbols, instr.SrcOperand, instr.SrcMode, idx, true, instr.LineNumber, sink)
	}
	if instr.DstOperand != "" {
		encodeOperand(res, symbols, instr.DstOperand, instr.DstMode, idx, false, instr.LineNumber, sink)
	}
}

func modeField(mode, shift int) uint {
	if mode == -1 {
		return 0
	}
	return uint(mode&0x3) << uint(shift)
}

// encodeOperand writes operand's words starting at idx and returns how many
// words it used.
func encodeOperand(res *Result, symbols *symtab.Table, operand string, mode, idx int, isSource bool, lineNum int, sink diag.Sink) int {
	switch mode {
	case isa.Immediate:
		v, _ := lexutil.IsValidInteger(operand[1:])
		res.Code[idx] = uint(v&0x3FF) << 2
		return 1
	case isa.Direct:
		return encodeDirect(res, symbols, operand, idx, lineNum, sink)
	case isa.Matrix:
		return encodeMatrix(res, symbols, operand, idx, lineNum, sink)
	case isa.Register:
		res.Code[idx] = encodeRegister(operand, isSource)
		return 1
	default:
		return 0
	}
}

func encodeDirect(res *Result, symbols *symtab.Table, operand string, idx, lineNum int, sink diag.Sink) int {
	sym := symbols.Find(operand)
	if sym == nil {
		sink.Errorf(lineNum, "undefined symbol")
		return 1
	}

	are := determineARE(sym)
	address := sym.Address
	if sym.Attribute == symtab.External {
		res.Externals = append(res.Externals, ExternalUsage{Symbol: operand, Address: idx + pass1.ICStart})
		address = 0
	}
	res.Code[idx] = uint(address&0x3FF)<<2 | uint(are)
	return 1
}

func encodeMatrix(res *Result, symbols *symtab.Table, operand string, idx, lineNum int, sink diag.Sink) int {
	label, rowReg, colReg, ok := parseMatrixOperand(operand)
	if !ok {
		sink.Errorf(lineNum, "invalid matrix operand format")
		return 2
	}
	sym := symbols.Find(label)
	if sym == nil {
		sink.Errorf(lineNum, "undefined matrix symbol")
		return 2
	}

	are := determineARE(sym)
	address := sym.Address
	if sym.Attribute == symtab.External {
		res.Externals = append(res.Externals, ExternalUsage{Symbol: label, Address: idx + pass1.ICStart})
		address = 0
	}
	res.Code[idx] = uint(address&0x3FF)<<2 | uint(are)
	res.Code[idx+1] = uint(rowReg&0x1F)<<5 | uint(colReg&0x1F)
	return 2
}

func encodeRegister(operand string, isSource bool) uint {
	reg := uint(lexutil.GetRegisterNumber(operand))
	if isSource {
		return (reg & 0x7) << 5
	}
	return (reg & 0x7) << 2
}

func encodeTwoRegisters(srcOperand, dstOperand string) uint {
	src := uint(lexutil.GetRegisterNumber(srcOperand))
	dst := uint(lexutil.GetRegisterNumber(dstOperand))
	return (src&0x7)<<5 | (dst&0x7)<<2
}

// determineARE reports the ARE value a direct or matrix reference to sym
// carries: external symbols are 1, anything else resolved at assembly time
// is 2.
func determineARE(sym *symtab.Symbol) int {
	if sym.Attribute == symtab.External {
		return areExternal
	}
	return areRelocated
}

// parseMatrixOperand splits "LABEL[rX][rY]" into its label and two register
// indices.
func parseMatrixOperand(operand string) (label string, rowReg, colReg int, ok bool) {
	open1 := strings.IndexByte(operand, '[')
	close1 := strings.IndexByte(operand, ']')
	if open1 < 0 || close1 < open1 {
		return "", 0, 0, false
	}
	rest := operand[close1+1:]
	open2 := strings.IndexByte(rest, '[')
	close2 := strings.IndexByte(rest, ']')
	if open2 < 0 || close2 < open2 {
		return "", 0, 0, false
	}
	label = operand[:open1]
	rowReg = lexutil.GetRegisterNumber(operand[open1+1 : close1])
	colReg = lexutil.GetRegisterNumber(rest[open2+1 : close2])
	if rowReg == -1 || colReg == -1 {
		return "", 0, 0, false
	}
	return label, rowReg, colReg, true
}

func scanEntries(r io.Reader, symbols *symtab.Table, sink diag.Sink) {
	src := lineread.New(r)
	for {
		text, lineNum, overlong, ok := src.Next()
		if !ok {
			return
		}
		if overlong {
			continue
		}
		p := line.Parse(text)
		if p.IsEmpty || p.IsError || !p.IsDirective || p.Command != ".entry" {
			continue
		}
		promoteEntry(symbols, p.Operand1, lineNum, sink)
	}
}

func promoteEntry(symbols *symtab.Table, name string, lineNum int, sink diag.Sink) {
	if name == "" {
		sink.Errorf(lineNum, ".entry directive requires exactly one symbol name")
		return
	}
	sym := symbols.Find(name)
	if sym == nil {
		sink.Errorf(lineNum, "symbol not defined")
		return
	}
	if sym.Attribute == symtab.External {
		sink.Errorf(lineNum, "an external symbol cannot be an entry point")
		return
	}
	sym.Attribute = symtab.Entry
}
