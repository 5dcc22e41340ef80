// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package lzw implements a Lempel-Ziv-Welch compressed data format.
//
// A stream starts with a small header recording the extension of the original
// file, the code width mode, and the maximum code width. The header is followed
// by the LZW codes, packed most-significant-bit first with no padding between
// them, and finally zero padding up to the next byte boundary.
//
// Two width modes exist. In ModeStatic, every code is written using exactly
// MaxBits bits. In ModeAdaptive, codes start at 9 bits and the width grows by
// one bit every time the dictionary outgrows the current width, up to MaxBits.
// In both modes the dictionary stops growing once it fills MaxBits worth of
// codes, and encoding continues with the entries already present.
//
// The format is not compatible with the GIF, TIFF, or PDF variants of LZW.
package lzw

import (
	"runtime"
	"strconv"
)

// Mode selects how the width of each code is chosen.
type Mode uint8

const (
	ModeStatic   Mode = 0 // Every code uses MaxBits bits
	ModeAdaptive Mode = 1 // Code width grows from 9 bits up to MaxBits
)

func (m Mode) String() string {
	switch m {
	case ModeStatic:
		return "static"
	case ModeAdaptive:
		return "adaptive"
	default:
		return "Mode(" + strconv.Itoa(int(m)) + ")"
	}
}

// ParseMode parses the name of a mode as returned by Mode.String.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "static", "fixed":
		return ModeStatic, nil
	case "adaptive", "variable":
		return ModeAdaptive, nil
	}
	return 0, Error("unknown mode: " + s)
}

const (
	MinBits     = 9  // Minimum value for MaxBits
	MaxBits     = 24 // Maximum value for MaxBits
	DefaultBits = 12 // MaxBits used when no configuration is provided

	initBits    = 9   // Starting code width in ModeAdaptive
	numLiterals = 256 // Codes 0..255 are the single byte sequences
	maxBitWidth = 24  // Widest value the bit writer and reader accept
)

// maxCode reports the largest code representable in nb bits.
func maxCode(nb uint) uint32 { return 1<<nb - 1 }

// Error is the wrapper type for errors specific to this library.
type Error string

func (e Error) Error() string { return "lzw: " + string(e) }

var (
	// ErrTruncated reports that the stream ended in the middle of a code.
	ErrTruncated error = Error("stream is truncated")

	// ErrInvalidCode reports a code that is neither in the dictionary nor
	// the next code about to be assigned.
	ErrInvalidCode error = Error("invalid code")

	// ErrCorruptHeader reports a missing or malformed stream header.
	ErrCorruptHeader error = Error("header is corrupted")

	// ErrInvalidConfig reports an unusable WriterConfig.
	ErrInvalidConfig error = Error("invalid configuration")

	// ErrInvalidWidth reports a bit width outside of 1..24.
	ErrInvalidWidth error = Error("invalid bit width")
)

func errRecover(err *error) {
	switch ex := recover().(type) {
	case nil:
		// Do nothing.
	case runtime.Error:
		panic(ex)
	case error:
		*err = ex
	default:
		panic(ex)
	}
}
