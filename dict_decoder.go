// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzw

type decEntry struct {
	prefix uint32 // Code of the sequence without its last byte
	length uint32 // Length of the sequence
	suffix byte   // Last byte of the sequence
	first  byte   // First byte of the sequence
}

// decDict is the dictionary used by the decoder. It is indexed by code and
// holds each sequence as a link to its prefix plus a single suffix byte.
type decDict struct {
	entries  []decEntry
	nextCode uint32 // Code assigned by the next insertion
	buf      []byte // Scratch space for Sequence
}

func (dd *decDict) Init() {
	if cap(dd.entries) < numLiterals {
		dd.entries = make([]decEntry, numLiterals, 2*numLiterals)
	}
	dd.entries = dd.entries[:numLiterals]
	for i := range dd.entries {
		c := byte(i)
		dd.entries[i] = decEntry{length: 1, suffix: c, first: c}
	}
	dd.nextCode = numLiterals
}

// Len reports the number of entries, including the single byte literals.
func (dd *decDict) Len() int { return int(dd.nextCode) }

// Has reports whether code is assigned.
func (dd *decDict) Has(code uint32) bool { return code < dd.nextCode }

// First reports the first byte of the sequence for code.
func (dd *decDict) First(code uint32) byte { return dd.entries[code].first }

// Sequence returns the sequence for code. The returned slice is only valid
// until the next call to Sequence.
func (dd *decDict) Sequence(code uint32) []byte {
	n := int(dd.entries[code].length)
	if cap(dd.buf) < n {
		dd.buf = make([]byte, n, 2*n)
	}
	buf := dd.buf[:n]
	for i := n - 1; i >= 0; i-- {
		e := &dd.entries[code]
		buf[i] = e.suffix
		code = e.prefix
	}
	return buf
}

// Insert adds the sequence for code followed by c as the next code,
// provided that the next code does not exceed limit.
// It reports whether the sequence was added.
func (dd *decDict) Insert(code uint32, c byte, limit uint32) bool {
	if dd.nextCode > limit {
		return false
	}
	e := dd.entries[code]
	dd.entries = append(dd.entries, decEntry{
		prefix: code,
		length: e.length + 1,
		suffix: c,
		first:  e.first,
	})
	dd.nextCode++
	return true
}
