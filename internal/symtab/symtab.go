/*
 * tenbit - Symbol table
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

// Package symtab is the assembler's symbol table: an insertion-ordered map
// from name to (address, attribute). The original C implementation uses a
// head-inserted singly linked list, which reverses enumeration order; this
// port keeps insertion order directly since every output format (.ent
// enumeration, §8 property P3) is defined in terms of it.
package symtab

// Attribute classifies a symbol.
type Attribute int

const (
	Code Attribute = iota
	Data
	External
	Entry
)

func (a Attribute) String() string {
	switch a {
	case Code:
		return "code"
	case Data:
		return "data"
	case External:
		return "external"
	case Entry:
		return "entry"
	default:
		return "unknown"
	}
}

// Symbol is one entry in the table.
type Symbol struct {
	Name      string
	Address   int
	Attribute Attribute
}

// Table is an insertion-ordered, unique-key symbol table.
type Table struct {
	order []string
	byKey map[string]*Symbol
}

// New returns an empty symbol table.
func New() *Table {
	return &Table{byKey: make(map[string]*Symbol)}
}

// Add inserts a new symbol. It reports false if the name already exists.
func (t *Table) Add(name string, address int, attr Attribute) bool {
	if _, exists := t.byKey[name]; exists {
		return false
	}
	sym := &Symbol{Name: name, Address: address, Attribute: attr}
	t.byKey[name] = sym
	t.order = append(t.order, name)
	return true
}

// Find returns the symbol named name, or nil.
func (t *Table) Find(name string) *Symbol {
	return t.byKey[name]
}

// All returns every symbol in insertion order. The returned slice must not
// be mutated; attribute changes go through the returned *Symbol pointers.
func (t *Table) All() []*Symbol {
	out := make([]*Symbol, len(t.order))
	for i, name := range t.order {
		out[i] = t.byKey[name]
	}
	return out
}

// RelocateData adds icf to the address of every symbol with the Data
// attribute, binding data addresses to sit immediately after the code
// image once the final instruction count is known.
func (t *Table) RelocateData(icf int) {
	for _, name := range t.order {
		sym := t.byKey[name]
		if sym.Attribute == Data {
			sym.Address += icf
		}
	}
}
