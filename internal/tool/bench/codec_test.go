// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bench

import (
	"bytes"
	"fmt"
	"io"
	"testing"

	"github.com/dsnet/lzw/internal/testutil"
)

// TestCodecs tests that the output of each registered encoder is a valid input
// for each registered decoder of the same format. This test runs in O(n^2)
// where n is the number of codecs of a format.
func TestCodecs(t *testing.T) {
	for _, c := range testutil.Corpora {
		dd := c.Gen(1 << 16)
		t.Run(fmt.Sprintf("Corpus:%v", c.Name), func(t *testing.T) { testFormats(t, dd) })
	}
}

func testFormats(t *testing.T, dd []byte) {
	t.Parallel()
	for _, ft := range []int{FormatLZW, FormatGIF, FormatFlate, FormatXZ} {
		cs := Codecs(ft)
		if len(cs) == 0 {
			continue
		}
		t.Run(fmt.Sprintf("Format:%v", ft), func(t *testing.T) { testEncoders(t, cs, dd) })
	}
}

func testEncoders(t *testing.T, cs []Codec, dd []byte) {
	t.Parallel()
	const level = 12 // Valid for every format once clamped
	for _, enc := range cs {
		enc := enc
		if enc.Encode == nil {
			continue
		}
		t.Run(fmt.Sprintf("Encoder:%v", enc.Name), func(t *testing.T) {
			be := new(bytes.Buffer)
			zw := enc.Encode(be, level)
			if _, err := io.Copy(zw, bytes.NewReader(dd)); err != nil {
				t.Fatalf("unexpected Write error: %v", err)
			}
			if err := zw.Close(); err != nil {
				t.Fatalf("unexpected Close error: %v", err)
			}
			testDecoders(t, cs, dd, be.Bytes())
		})
	}
}

func testDecoders(t *testing.T, cs []Codec, dd, de []byte) {
	t.Parallel()
	for _, dec := range cs {
		dec := dec
		if dec.Decode == nil {
			continue
		}
		t.Run(fmt.Sprintf("Decoder:%v", dec.Name), func(t *testing.T) {
			bd := new(bytes.Buffer)
			zr := dec.Decode(bytes.NewReader(de))
			if _, err := io.Copy(bd, zr); err != nil {
				t.Fatalf("unexpected Read error: %v", err)
			}
			if err := zr.Close(); err != nil {
				t.Fatalf("unexpected Close error: %v", err)
			}
			if !bytes.Equal(bd.Bytes(), dd) {
				t.Error("data mismatch")
			}
		})
	}
}
