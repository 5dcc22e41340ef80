// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package testutil

import (
	"bytes"
	"testing"
)

func TestDecodeBitGen(t *testing.T) {
	vectors := []struct {
		input  string
		output []byte
		valid  bool
	}{{
		input:  "",
		output: nil,
		valid:  true,
	}, {
		input:  "1",
		output: []byte{0x80},
		valid:  true,
	}, {
		input:  "0101 1",
		output: []byte{0x58},
		valid:  true,
	}, {
		input:  "D9:65 D9:256 D9:65",
		output: []byte{0x20, 0xc0, 0x08, 0x20},
		valid:  true,
	}, {
		input:  "H8:00 H8:00 H8:09 # Header\nD9:65 D9:256 D9:65",
		output: []byte{0x00, 0x00, 0x09, 0x20, 0xc0, 0x08, 0x20},
		valid:  true,
	}, {
		input:  "H12:abc H4:d",
		output: []byte{0xab, 0xcd},
		valid:  true,
	}, {
		input:  "X:0102 H8:ff*2",
		output: []byte{0x01, 0x02, 0xff, 0xff},
		valid:  true,
	}, {
		input:  "1*3 0*5",
		output: []byte{0xe0},
		valid:  true,
	}, {
		input: "D8:256", // Overflow
		valid: false,
	}, {
		input: "D0:0", // Zero-length
		valid: false,
	}, {
		input: "1 X:00", // Unaligned raw bytes
		valid: false,
	}, {
		input: "Q:12",
		valid: false,
	}}

	for i, v := range vectors {
		output, err := DecodeBitGen(v.input)
		if valid := err == nil; valid != v.valid {
			t.Errorf("test %d, validity mismatch: got %v, want %v (%v)", i, valid, v.valid, err)
		}
		if v.valid && !bytes.Equal(output, v.output) {
			t.Errorf("test %d, output mismatch:\ngot  %x\nwant %x", i, output, v.output)
		}
	}
}

func TestCorpora(t *testing.T) {
	for _, c := range Corpora {
		for _, n := range []int{0, 1, 1000, 1 << 16} {
			b1, b2 := c.Gen(n), c.Gen(n)
			if len(b1) != n {
				t.Errorf("%s: length mismatch: got %d, want %d", c.Name, len(b1), n)
			}
			if !bytes.Equal(b1, b2) {
				t.Errorf("%s: output is not deterministic for size %d", c.Name, n)
			}
		}
	}
}
