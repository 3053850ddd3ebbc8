/*
 * rv32im core - hexadecimal text formatting for dump output
 *
 * Copyright 2026, The rv32im core Authors
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

// Package hexfmt renders words and byte slices as fixed-width hex text for
// the repl's register/CSR/memory dump commands, the same byte-at-a-time
// strings.Builder approach the teacher uses for its own dump formatting.
package hexfmt

import "strings"

const hexDigits = "0123456789abcdef"

// Word appends the 8-digit hex form of each value in words to str,
// space-separated.
func Word(str *strings.Builder, words []uint32) {
	for _, w := range words {
		shift := 28
		for i := 0; i < 8; i++ {
			str.WriteByte(hexDigits[(w>>shift)&0xf])
			shift -= 4
		}
		str.WriteByte(' ')
	}
}

// Bytes appends the 2-digit hex form of each byte in data to str. If space
// is true, a separating space follows each byte.
func Bytes(str *strings.Builder, space bool, data []byte) {
	for _, b := range data {
		str.WriteByte(hexDigits[(b>>4)&0xf])
		str.WriteByte(hexDigits[b&0xf])
		if space {
			str.WriteByte(' ')
		}
	}
}
