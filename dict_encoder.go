// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzw

import "github.com/dsnet/lzw/internal"

// encDict is the dictionary used by the encoder. It is a trie where every node
// is identified by its code. The children of a node are found by looking up
// the parent code together with the next byte, which makes extending the
// current match by one byte a single map access.
type encDict struct {
	children map[uint32]uint32 // Maps (parent code, byte) to child code
	nextCode uint32            // Code assigned by the next insertion
}

func (ed *encDict) Init() {
	if ed.children == nil {
		ed.children = make(map[uint32]uint32)
	} else {
		for k := range ed.children {
			delete(ed.children, k)
		}
	}
	ed.nextCode = numLiterals
}

func childKey(code uint32, c byte) uint32 { return code<<8 | uint32(c) }

// Len reports the number of entries, including the single byte literals.
func (ed *encDict) Len() int { return int(ed.nextCode) }

// Extend reports the code of the sequence for code followed by c.
func (ed *encDict) Extend(code uint32, c byte) (uint32, bool) {
	child, ok := ed.children[childKey(code, c)]
	return child, ok
}

// Lookup reports the code for the entire sequence seq.
func (ed *encDict) Lookup(seq []byte) (uint32, bool) {
	if len(seq) == 0 {
		return 0, false
	}
	code := uint32(seq[0])
	for _, c := range seq[1:] {
		var ok bool
		if code, ok = ed.Extend(code, c); !ok {
			return 0, false
		}
	}
	return code, true
}

// Insert adds the sequence for code followed by c as the next code,
// provided that the next code does not exceed limit.
// It reports whether the sequence was added.
func (ed *encDict) Insert(code uint32, c byte, limit uint32) bool {
	if ed.nextCode > limit {
		return false
	}
	key := childKey(code, c)
	if internal.Debug {
		if _, ok := ed.children[key]; ok || code >= ed.nextCode {
			panic("lzw: invalid dictionary insertion")
		}
	}
	ed.children[key] = ed.nextCode
	ed.nextCode++
	return true
}
