// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzw

import (
	"bufio"
	"io"
)

type byteReader interface {
	io.Reader
	io.ByteReader
}

// The bitReader never reads more bytes than necessary to satisfy a request,
// so that the read offset always reflects the exact amount of input that the
// decoded codes occupy.
type bitReader struct {
	rd      byteReader
	bufBits uint64 // Buffer to hold some bits
	numBits uint   // Number of valid bits in bufBits
	offset  int64  // Number of bytes read from the underlying io.Reader
}

func (br *bitReader) Init(r io.Reader) {
	if rr, ok := r.(byteReader); ok {
		*br = bitReader{rd: rr}
	} else {
		*br = bitReader{rd: bufio.NewReader(r)}
	}
}

// ReadByte reads a single byte. The bit buffer must be byte-aligned.
func (br *bitReader) ReadByte() (byte, error) {
	if br.numBits%8 != 0 {
		return 0, Error("non-aligned bit buffer")
	}
	if br.numBits > 0 {
		br.numBits -= 8
		c := byte(br.bufBits >> br.numBits)
		br.bufBits &= 1<<br.numBits - 1
		return c, nil
	}
	c, err := br.rd.ReadByte()
	if err == nil {
		br.offset++
	}
	return c, err
}

// ReadBits reads nb bits in MSB order from the underlying reader.
//
// It reports false if the underlying reader is exhausted before this call
// consumed any bytes and the only bits left are the zero padding at the end of
// the stream. If the reader runs out part way through the bits, then it panics
// with ErrTruncated. Other IO errors are also raised by panicking.
func (br *bitReader) ReadBits(nb uint) (uint32, bool) {
	if nb == 0 || nb > maxBitWidth {
		panic(ErrInvalidWidth)
	}
	var fed bool
	for br.numBits < nb {
		c, err := br.rd.ReadByte()
		if err != nil {
			if err != io.EOF {
				panic(err)
			}
			if !fed && br.numBits < 8 && br.bufBits == 0 {
				br.numBits = 0
				return 0, false
			}
			panic(ErrTruncated)
		}
		fed = true
		br.offset++
		br.bufBits = br.bufBits<<8 | uint64(c)
		br.numBits += 8
	}
	br.numBits -= nb
	val := uint32(br.bufBits >> br.numBits)
	br.bufBits &= 1<<br.numBits - 1
	return val, true
}
