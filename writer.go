// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzw

import (
	"io"
	"strings"
	"time"
)

// WriterConfig configures a Writer.
type WriterConfig struct {
	Mode      Mode   // Code width mode
	MaxBits   int    // Maximum code width (9..24); DefaultBits if zero
	Extension string // Extension of the original file, recorded in the header
}

// header builds the stream header for conf. A nil conf selects ModeAdaptive
// with DefaultBits.
func (conf *WriterConfig) header() (Header, error) {
	h := Header{Mode: ModeAdaptive, MaxBits: DefaultBits}
	if conf != nil {
		h.Extension = strings.TrimPrefix(conf.Extension, ".")
		h.Mode = conf.Mode
		if conf.MaxBits != 0 {
			h.MaxBits = conf.MaxBits
		}
	}
	if !h.valid() {
		return Header{}, ErrInvalidConfig
	}
	return h, nil
}

type Writer struct {
	InputOffset  int64 // Total number of bytes accepted by Write
	OutputOffset int64 // Total number of bytes written to underlying io.Writer

	wr    bitWriter // Output sink
	dict  encDict   // Sequence to code dictionary
	width codeWidth // Current code width
	hdr   Header    // Header written at the start of the stream
	cur   uint32    // Code of the longest sequence matched thus far
	match bool      // Whether cur holds a sequence
	err   error     // Persistent error

	start, end time.Time
}

// NewWriter returns a new Writer that compresses data into w.
// The header is written together with the first codes.
func NewWriter(w io.Writer, conf *WriterConfig) (*Writer, error) {
	hdr, err := conf.header()
	if err != nil {
		return nil, err
	}
	zw := &Writer{hdr: hdr}
	if err := zw.Reset(w); err != nil {
		return nil, err
	}
	return zw, nil
}

func (zw *Writer) Write(buf []byte) (int, error) {
	if zw.err != nil {
		return 0, zw.err
	}

	var cnt int
	func() {
		defer errRecover(&zw.err)
		for _, c := range buf {
			zw.encodeByte(c)
			cnt++
		}
	}()
	zw.InputOffset += int64(cnt)
	zw.OutputOffset = zw.wr.offset
	return cnt, zw.err
}

// encodeByte extends the current match with c. When the extended sequence is
// not known, the code for the current match is emitted and the extended
// sequence is added to the dictionary, if it still has room.
func (zw *Writer) encodeByte(c byte) {
	if !zw.match {
		zw.cur, zw.match = uint32(c), true
		return
	}
	if code, ok := zw.dict.Extend(zw.cur, c); ok {
		zw.cur = code
		return
	}
	zw.wr.WriteBits(zw.cur, zw.width.bits)
	zw.width.Grow(zw.dict.nextCode)
	zw.dict.Insert(zw.cur, c, zw.width.Limit())
	zw.cur = uint32(c)
}

// Close emits the code for any pending sequence, pads the stream to a byte
// boundary and flushes it. It does not close the underlying io.Writer.
func (zw *Writer) Close() error {
	if zw.err == io.ErrClosedPipe {
		return nil
	}
	if zw.err != nil {
		return zw.err
	}

	func() {
		defer errRecover(&zw.err)
		if zw.match {
			zw.wr.WriteBits(zw.cur, zw.width.bits)
			zw.match = false
		}
		zw.wr.Flush()
	}()
	zw.OutputOffset = zw.wr.offset
	zw.end = time.Now()
	if zw.err != nil {
		return zw.err
	}
	zw.err = io.ErrClosedPipe // Make sure future writes fail
	return nil
}

// Reset discards the Writer's state and makes it equivalent to the result of
// NewWriter with the original configuration, but writing to w instead.
func (zw *Writer) Reset(w io.Writer) error {
	*zw = Writer{
		wr:    zw.wr,
		dict:  zw.dict,
		width: zw.width,
		hdr:   zw.hdr,
		start: time.Now(),
	}
	zw.wr.Init(w)
	zw.dict.Init()
	zw.width.Init(zw.hdr.Mode, uint(zw.hdr.MaxBits))
	_, err := zw.wr.Write(zw.hdr.appendTo(nil))
	return err
}

// Header reports the header written at the start of the stream.
func (zw *Writer) Header() Header { return zw.hdr }

// Stats reports statistics of the stream produced thus far.
// The figures are final once Close returns.
func (zw *Writer) Stats() Stats {
	end := zw.end
	if end.IsZero() {
		end = time.Now()
	}
	in, out := 8*zw.InputOffset, zw.wr.BitsWritten()
	return Stats{
		Elapsed:    end.Sub(zw.start),
		InputBits:  in,
		OutputBits: out,
		Rate:       spaceSaving(in, out),
		DictSize:   zw.dict.Len(),
	}
}
