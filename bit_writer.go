// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzw

import (
	"io"

	"github.com/dsnet/lzw/internal"
)

// Number of pending bytes that triggers a write to the underlying io.Writer.
const flushSize = 4096

// The bitWriter packs values in MSB order. Whole bytes are moved out of the
// bit buffer as soon as they are complete, so that at most 7 bits are ever
// left pending between calls.
type bitWriter struct {
	wr      io.Writer
	bufBits uint64 // Buffer to hold some bits
	numBits uint   // Number of valid bits in bufBits
	buf     []byte // Completed bytes not yet written to wr
	total   int64  // Total number of bits produced, including padding
	offset  int64  // Number of bytes written to wr
}

func (bw *bitWriter) Init(w io.Writer) {
	*bw = bitWriter{wr: w, buf: bw.buf[:0]}
}

// BitsWritten reports the number of bits produced thus far.
func (bw *bitWriter) BitsWritten() int64 { return bw.total }

// Write writes raw bytes. The bit buffer must be byte-aligned.
func (bw *bitWriter) Write(buf []byte) (int, error) {
	if bw.numBits > 0 {
		return 0, Error("non-aligned bit buffer")
	}
	bw.buf = append(bw.buf, buf...)
	bw.total += 8 * int64(len(buf))
	return len(buf), nil
}

// WriteBits writes the lower nb bits of v in MSB order.
// Any bits of v above nb are ignored.
func (bw *bitWriter) WriteBits(v uint32, nb uint) {
	if nb == 0 || nb > maxBitWidth {
		panic(ErrInvalidWidth)
	}
	bw.bufBits = bw.bufBits<<nb | uint64(v)&(1<<nb-1)
	bw.numBits += nb
	bw.total += int64(nb)
	for bw.numBits >= 8 {
		bw.numBits -= 8
		bw.buf = append(bw.buf, byte(bw.bufBits>>bw.numBits))
	}
	bw.bufBits &= 1<<bw.numBits - 1
	if internal.Debug && bw.numBits >= 8 {
		panic("lzw: bit buffer not drained")
	}
	if len(bw.buf) >= flushSize {
		bw.writeBuf()
	}
}

// Flush pads the final partial byte with zero bits and writes all pending
// bytes to the underlying writer. If an IO error occurs, then it panics.
func (bw *bitWriter) Flush() {
	if bw.numBits > 0 {
		pads := 8 - bw.numBits
		bw.buf = append(bw.buf, byte(bw.bufBits<<pads))
		bw.total += int64(pads)
		bw.bufBits, bw.numBits = 0, 0
	}
	bw.writeBuf()
}

func (bw *bitWriter) writeBuf() {
	if len(bw.buf) == 0 {
		return
	}
	cnt, err := bw.wr.Write(bw.buf)
	bw.offset += int64(cnt)
	if err == nil && cnt < len(bw.buf) {
		err = io.ErrShortWrite
	}
	if err != nil {
		panic(err)
	}
	bw.buf = bw.buf[:0]
}
