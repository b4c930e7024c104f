/*
 * tenbit - Base-4 letter codec
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

// Package base4 renders a 10-bit machine word as the object file's quirky
// 5-letter alphabet: a=00, b=01, c=10, d=11, most-significant digit first.
package base4

const digits = "abcd"

// Encode renders the low 10 bits of n as exactly 5 base-4 letters.
func Encode(n uint) string {
	n &= 0x3FF
	buf := make([]byte, 5)
	for i := 4; i >= 0; i-- {
		buf[i] = digits[n&0x3]
		n >>= 2
	}
	return string(buf)
}

// Decode is the inverse of Encode; it returns false if s is not exactly 5
// characters from the base-4 alphabet.
func Decode(s string) (uint, bool) {
	if len(s) != 5 {
		return 0, false
	}
	var n uint
	for i := 0; i < 5; i++ {
		var d uint
		switch s[i] {
		case 'a':
			d = 0
		case 'b':
			d = 1
		case 'c':
			d = 2
		case 'd':
			d = 3
		default:
			return 0, false
		}
		n = n<<2 | d
	}
	return n, true
}
