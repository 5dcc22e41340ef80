// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package testutil

import (
	"encoding/hex"
	"errors"
	"regexp"
	"strconv"
	"strings"
)

var (
	reBin = regexp.MustCompile("^[01]{1,32}$")
	reDec = regexp.MustCompile("^D[0-9]+:[0-9]+$")
	reHex = regexp.MustCompile("^H[0-9]+:[0-9a-fA-F]{1,8}$")
	reRaw = regexp.MustCompile("^X:[0-9a-fA-F]+$")
	reQnt = regexp.MustCompile("[*][0-9]+$")
)

// DecodeBitGen decodes a BitGen formatted string.
//
// The BitGen format allows a bit-stream to be scripted by hand as a series of
// tokens, so that tests can spell out the exact codes of a compressed stream
// along with comments describing them. All bits are packed starting with the
// most-significant bit of each byte, which is the order LZW codes are stored.
//
// Tokens are separated by white space of any kind. Any bytes on a line that
// appear after a '#' character are ignored.
//
// A token made of 1 to 32 '0' and '1' characters is written bit by bit, in the
// order the characters appear.
//
// A token of the form "D[0-9]+:[0-9]+" is a decimal value and a token of the
// form "H[0-9]+:[0-9a-fA-F]{1,8}" is a hexadecimal value. The number before
// the colon is the bit-length, which must be between 1 and 32 and be long
// enough to hold the value. The value is written most-significant bit first.
//
// A token of the form "X:[0-9a-fA-F]+" is a run of literal bytes. It may only
// be used when the bit-stream is byte-aligned.
//
// Any token may be followed by a quantifier of the form "*[0-9]+", which
// repeats the token that many times.
//
// If the bit-stream does not end on a byte boundary, it is padded with zero
// bits up to the next byte.
//
// Example BitGen string:
//	H8:00 H8:00 H8:09 # Header: no extension, static mode, 9-bit codes
//	D9:65             # 'A'
//	D9:256            # "AA", assigned right after the previous code
//	D9:65             # 'A'
//
// Generated output stream (in hexadecimal):
//	"00000920c00820"
func DecodeBitGen(str string) ([]byte, error) {
	var toks []string
	for _, s := range strings.Split(str, "\n") {
		if i := strings.IndexByte(s, '#'); i >= 0 {
			s = s[:i]
		}
		toks = append(toks, strings.Fields(s)...)
	}

	var bw bitBuffer
	for _, t := range toks {
		rep := 1
		if reQnt.MatchString(t) {
			i := strings.LastIndexByte(t, '*')
			n, err := strconv.Atoi(t[i+1:])
			if err != nil {
				return nil, errors.New("testutil: invalid quantified token: " + t)
			}
			t, rep = t[:i], n
		}

		switch {
		case reBin.MatchString(t):
			var v uint64
			for _, b := range t {
				v = v<<1 | uint64(b-'0')
			}
			for i := 0; i < rep; i++ {
				bw.WriteBits(v, uint(len(t)))
			}
		case reDec.MatchString(t) || reHex.MatchString(t):
			i := strings.IndexByte(t, ':')
			base := 10
			if t[0] == 'H' {
				base = 16
			}
			n, err1 := strconv.Atoi(t[1:i])
			v, err2 := strconv.ParseUint(t[i+1:], base, 64)
			if err1 != nil || err2 != nil || n < 1 || n > 32 {
				return nil, errors.New("testutil: invalid numeric token: " + t)
			}
			if v>>uint(n) != 0 {
				return nil, errors.New("testutil: integer overflow on token: " + t)
			}
			for i := 0; i < rep; i++ {
				bw.WriteBits(v, uint(n))
			}
		case reRaw.MatchString(t):
			b, err := hex.DecodeString(t[2:])
			if err != nil {
				return nil, errors.New("testutil: invalid raw bytes token: " + t)
			}
			for i := 0; i < rep; i++ {
				if err := bw.WriteBytes(b); err != nil {
					return nil, err
				}
			}
		default:
			return nil, errors.New("testutil: invalid token: " + t)
		}
	}
	return bw.Bytes(), nil
}

// bitBuffer is a minimal MSB-first bit packer. It is kept separate from the
// bit writer under test so that the two can be checked against each other.
type bitBuffer struct {
	b []byte
	n uint // Number of bits used in the last byte; 0 means aligned
}

func (b *bitBuffer) WriteBytes(buf []byte) error {
	if b.n != 0 {
		return errors.New("testutil: unaligned write")
	}
	b.b = append(b.b, buf...)
	return nil
}

func (b *bitBuffer) WriteBits(v uint64, nb uint) {
	for i := nb; i > 0; i-- {
		if b.n == 0 {
			b.b = append(b.b, 0x00)
		}
		if v&(1<<(i-1)) != 0 {
			b.b[len(b.b)-1] |= 0x80 >> b.n
		}
		b.n = (b.n + 1) % 8
	}
}

func (b *bitBuffer) Bytes() []byte { return b.b }
