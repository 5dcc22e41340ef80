// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzw

import (
	"bytes"
	"io"
	"testing"

	"github.com/dsnet/lzw/internal/testutil"
	"github.com/google/go-cmp/cmp"
)

func TestBitReader(t *testing.T) {
	db := testutil.MustDecodeBitGen

	var vectors = []struct {
		desc   string
		input  []byte
		width  uint
		output []uint32 // Values read before the end of the stream
		offset int64    // Expected offset after reading
		err    error    // Expected error at the end of the stream
	}{{
		desc:  "empty stream",
		width: 9,
	}, {
		desc:   "single 9-bit value with padding",
		input:  db("D9:65"),
		width:  9,
		output: []uint32{65},
		offset: 2,
	}, {
		desc:   "three 9-bit values with padding",
		input:  db("D9:65 D9:256 D9:65"),
		width:  9,
		output: []uint32{65, 256, 65},
		offset: 4,
	}, {
		desc:   "16-bit values end on a byte boundary",
		input:  db("H16:0041 H16:0100"),
		width:  16,
		output: []uint32{0x41, 0x100},
		offset: 4,
	}, {
		desc:   "truncated 16-bit value",
		input:  db("H16:0041 H8:01"),
		width:  16,
		output: []uint32{0x41},
		offset: 3,
		err:    ErrTruncated,
	}, {
		desc:   "truncated 24-bit value",
		input:  db("H24:000041 H16:0001"),
		width:  24,
		output: []uint32{0x41},
		offset: 5,
		err:    ErrTruncated,
	}, {
		desc:   "non-zero padding is not a clean end",
		input:  db("D9:65 1111111"),
		width:  9,
		output: []uint32{65},
		offset: 2,
		err:    ErrTruncated,
	}, {
		desc:   "extra zero byte holds another code",
		input:  db("D9:65 0*7 H8:00"),
		width:  9,
		output: []uint32{65, 0},
		offset: 3,
	}}

	for i, v := range vectors {
		var br bitReader
		br.Init(bytes.NewReader(v.input))

		var output []uint32
		var err error
		func() {
			defer errRecover(&err)
			for {
				val, ok := br.ReadBits(v.width)
				if !ok {
					return
				}
				output = append(output, val)
			}
		}()

		if err != v.err {
			t.Errorf("test %d, %s\nerror mismatch: got %v, want %v", i, v.desc, err, v.err)
		}
		if !cmp.Equal(output, v.output) {
			t.Errorf("test %d, %s\noutput mismatch:\ngot  %v\nwant %v", i, v.desc, output, v.output)
		}
		if br.offset != v.offset {
			t.Errorf("test %d, %s\noffset mismatch: got %d, want %d", i, v.desc, br.offset, v.offset)
		}
	}
}

func TestBitReaderIOError(t *testing.T) {
	input := testutil.MustDecodeBitGen("D9:65 D9:256 D9:65")
	var br bitReader
	br.Init(&testutil.BuggyReader{R: bytes.NewReader(input), N: 2, Err: io.ErrNoProgress})

	var err error
	func() {
		defer errRecover(&err)
		for {
			if _, ok := br.ReadBits(9); !ok {
				return
			}
		}
	}()
	if err != io.ErrNoProgress {
		t.Errorf("error mismatch: got %v, want %v", err, io.ErrNoProgress)
	}
}
