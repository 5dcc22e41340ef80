// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzw

import (
	"io"
	"time"
)

// Number of decoded bytes to gather before handing them out through Read.
const blockSize = 1 << 15

// A Reader decompresses a single LZW stream.
//
// The stream carries no length or checksum. A stream cut short is reported as
// ErrTruncated only if the cut leaves a partial code or non-zero bits behind.
// A cut that ends on a code boundary followed by at most seven zero bits
// looks like a complete stream and decodes without error to a prefix of the
// original data.
type Reader struct {
	InputOffset  int64 // Total number of bytes read from underlying io.Reader
	OutputOffset int64 // Total number of bytes emitted from Read

	rd      bitReader // Input source
	dict    decDict   // Code to sequence dictionary
	width   codeWidth // Current code width
	hdr     Header    // Header read at the start of the stream
	prev    uint32    // Last code decoded
	started bool      // Whether prev holds a code
	toRead  []byte    // Uncompressed data ready to be emitted from Read
	buf     []byte    // Backing storage for toRead
	err     error     // Persistent error

	start, end time.Time
}

// NewReader returns a new Reader that decompresses data from r.
// The stream header is read before NewReader returns.
func NewReader(r io.Reader) (*Reader, error) {
	zr := new(Reader)
	if err := zr.Reset(r); err != nil {
		return nil, err
	}
	return zr, nil
}

func (zr *Reader) Read(buf []byte) (int, error) {
	for {
		if len(zr.toRead) > 0 {
			cnt := copy(buf, zr.toRead)
			zr.toRead = zr.toRead[cnt:]
			zr.OutputOffset += int64(cnt)
			return cnt, nil
		}
		if zr.err != nil {
			return 0, zr.err
		}

		func() {
			defer errRecover(&zr.err)
			zr.decodeBlock()
		}()
		zr.InputOffset = zr.rd.offset
		if zr.err != nil && zr.end.IsZero() {
			zr.end = time.Now()
		}
	}
}

// decodeBlock decodes codes until at least blockSize bytes are available or
// the stream ends. Data decoded before an error is discarded.
func (zr *Reader) decodeBlock() {
	zr.buf = zr.buf[:0]
	for len(zr.buf) < blockSize {
		code, ok := zr.rd.ReadBits(zr.width.bits)
		if !ok {
			zr.toRead = zr.buf
			panic(io.EOF)
		}
		zr.buf = append(zr.buf, zr.decodeCode(code)...)
	}
	zr.toRead = zr.buf
}

// decodeCode returns the sequence for code and adds the sequence that the
// encoder assigned right after emitting the previous code.
//
// The encoder adds an entry one step ahead of the decoder. Thus, the code read
// may be the very entry that the decoder is about to add. That entry is the
// previous sequence followed by its own first byte.
func (zr *Reader) decodeCode(code uint32) []byte {
	if !zr.started {
		if code >= numLiterals {
			panic(ErrInvalidCode)
		}
		zr.started = true
	} else {
		limit := zr.width.Limit()
		var c byte
		switch {
		case zr.dict.Has(code):
			c = zr.dict.First(code)
		case code == zr.dict.nextCode && code <= limit:
			c = zr.dict.First(zr.prev)
		default:
			panic(ErrInvalidCode)
		}
		zr.dict.Insert(zr.prev, c, limit)
	}
	zr.prev = code
	zr.width.Grow(zr.dict.nextCode)
	return zr.dict.Sequence(code)
}

// Close ends the use of the Reader. It does not close the underlying
// io.Reader. It returns the persistent error, if any, other than io.EOF.
func (zr *Reader) Close() error {
	if zr.err == io.EOF || zr.err == io.ErrClosedPipe {
		zr.toRead = nil // Make sure future reads fail
		zr.err = io.ErrClosedPipe
		return nil
	}
	return zr.err
}

// Reset discards the Reader's state and reads a new stream header from r.
func (zr *Reader) Reset(r io.Reader) error {
	*zr = Reader{
		rd:    zr.rd,
		dict:  zr.dict,
		width: zr.width,
		buf:   zr.buf[:0],
		start: time.Now(),
	}
	zr.rd.Init(r)
	zr.dict.Init()
	if zr.hdr, zr.err = readHeader(&zr.rd); zr.err != nil {
		zr.hdr = Header{}
	} else {
		zr.width.Init(zr.hdr.Mode, uint(zr.hdr.MaxBits))
	}
	zr.InputOffset = zr.rd.offset
	return zr.err
}

// Header reports the header read at the start of the stream.
func (zr *Reader) Header() Header { return zr.hdr }

// Stats reports statistics of the stream decoded thus far.
// The figures are final once Read returns io.EOF.
func (zr *Reader) Stats() Stats {
	end := zr.end
	if end.IsZero() {
		end = time.Now()
	}
	in, out := 8*zr.InputOffset, 8*zr.OutputOffset
	return Stats{
		Elapsed:    end.Sub(zr.start),
		InputBits:  in,
		OutputBits: out,
		Rate:       spaceSaving(out, in),
		DictSize:   zr.dict.Len(),
	}
}
