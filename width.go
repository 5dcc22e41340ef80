// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzw

// codeWidth tracks the number of bits used per code.
//
// The encoder and decoder must widen at exactly the same point in the stream.
// The encoder attempts one dictionary insertion after each code it emits.
// Before that insertion it calls Grow with the code about to be assigned, and
// if that code does not fit in the current width, the width is increased by
// one bit. The decoder is one insertion behind the encoder, so it calls Grow
// after it finishes each code (before reading the next one) with its own next
// code, which is the same code the encoder assigned right after emitting the
// code just read.
//
// In ModeStatic the width starts at maxBits and thus never grows.
type codeWidth struct {
	bits    uint // Current code width
	maxBits uint // Largest permitted code width

	widened []uint32 // Codes at which the width was increased
}

func (cw *codeWidth) Init(mode Mode, maxBits uint) {
	*cw = codeWidth{bits: maxBits, maxBits: maxBits, widened: cw.widened[:0]}
	if mode == ModeAdaptive {
		cw.bits = initBits
	}
}

// Limit reports the largest code the dictionary may hold at the current width.
func (cw *codeWidth) Limit() uint32 { return maxCode(cw.bits) }

// Grow increases the width by at most one bit if nextCode does not fit in the
// current width. It reports whether the width changed.
func (cw *codeWidth) Grow(nextCode uint32) bool {
	if nextCode <= maxCode(cw.bits) || cw.bits >= cw.maxBits {
		return false
	}
	cw.bits++
	cw.widened = append(cw.widened, nextCode)
	return true
}
