/*
 * tenbit - Macro table
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

// Package macro is the pre-processor's name-to-body table. It is scoped to
// a single source file and discarded once that file's .am has been
// produced.
package macro

// Table is an insertion-ordered, unique-key macro table.
type Table struct {
	order []string
	body  map[string]string
}

// New returns an empty macro table.
func New() *Table {
	return &Table{body: make(map[string]string)}
}

// Add inserts name with the given body. It reports false (and leaves the
// table unchanged) if name is already defined — duplicate macro
// definitions are dropped silently per the pre-processor's design.
func (t *Table) Add(name, body string) bool {
	if _, exists := t.body[name]; exists {
		return false
	}
	t.body[name] = body
	t.order = append(t.order, name)
	return true
}

// Find returns the body for name and whether it exists.
func (t *Table) Find(name string) (string, bool) {
	b, ok := t.body[name]
	return b, ok
}
