// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzw

import (
	"bytes"
	"io"
	"strings"
)

// Maximum length of the extension recorded in the header.
const maxExtLen = 255

// Header is the metadata that precedes the codes of every stream.
//
// The encoded form is:
//	[len:1][extension:len][mode:1][maxBits:1]
type Header struct {
	Extension string // Extension of the original file without the leading dot
	Mode      Mode   // Code width mode
	MaxBits   int    // Maximum code width in bits
}

func (h Header) valid() bool {
	return validExtension(h.Extension) &&
		(h.Mode == ModeStatic || h.Mode == ModeAdaptive) &&
		MinBits <= h.MaxBits && h.MaxBits <= MaxBits
}

// validExtension reports whether ext can safely be appended to a file name.
func validExtension(ext string) bool {
	if len(ext) > maxExtLen || ext == "." || ext == ".." {
		return false
	}
	return !strings.ContainsAny(ext, "/\\\x00")
}

func (h Header) appendTo(buf []byte) []byte {
	buf = append(buf, byte(len(h.Extension)))
	buf = append(buf, h.Extension...)
	return append(buf, byte(h.Mode), byte(h.MaxBits))
}

// readHeader decodes the header from r.
// A missing or malformed header is reported as ErrCorruptHeader.
func readHeader(r io.ByteReader) (h Header, err error) {
	defer errRecover(&err)
	readByte := func() byte {
		c, err := r.ReadByte()
		if err == io.EOF {
			panic(ErrCorruptHeader)
		}
		if err != nil {
			panic(err)
		}
		return c
	}

	ext := make([]byte, readByte())
	for i := range ext {
		ext[i] = readByte()
	}
	h.Extension = string(ext)
	h.Mode = Mode(readByte())
	h.MaxBits = int(readByte())
	if !h.valid() {
		panic(ErrCorruptHeader)
	}
	return h, nil
}

// ParseHeader decodes the header at the start of a compressed stream.
func ParseHeader(data []byte) (Header, error) {
	h, err := readHeader(bytes.NewReader(data))
	if err != nil {
		return Header{}, err
	}
	return h, nil
}
