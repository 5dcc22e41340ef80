// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build gofuzz
// +build gofuzz

package lzw

import (
	"bytes"

	"github.com/dsnet/lzw"
)

func Fuzz(data []byte) int {
	output, hdr, ok := decode(data)
	if ok {
		conf := &lzw.WriterConfig{Mode: hdr.Mode, MaxBits: hdr.MaxBits, Extension: hdr.Extension}
		testRoundTrip(output, conf)
	}
	for _, bits := range []int{lzw.MinBits, lzw.DefaultBits, 16} {
		testRoundTrip(data, &lzw.WriterConfig{Mode: lzw.ModeStatic, MaxBits: bits})
		testRoundTrip(data, &lzw.WriterConfig{Mode: lzw.ModeAdaptive, MaxBits: bits})
	}
	if ok {
		return 1 // Favor valid inputs
	}
	return 0
}

// decode attempts to decompress the input. Any error is acceptable, but the
// decoder must never panic.
func decode(data []byte) ([]byte, lzw.Header, bool) {
	output, _, err := lzw.Decompress(data)
	if err != nil {
		return nil, lzw.Header{}, false
	}
	hdr, err := lzw.ParseHeader(data)
	if err != nil {
		panic("header accepted by the decoder but rejected by ParseHeader")
	}
	return output, hdr, true
}

// testRoundTrip compresses the input and then decompresses it, checking that
// the data and dictionary sizes match.
func testRoundTrip(want []byte, conf *lzw.WriterConfig) {
	data, wst, err := lzw.Compress(want, conf)
	if err != nil {
		panic(err)
	}
	got, rst, err := lzw.Decompress(data)
	if err != nil {
		panic(err)
	}
	if !bytes.Equal(got, want) {
		panic("mismatching bytes")
	}
	if wst.DictSize != rst.DictSize {
		panic("mismatching dictionary size")
	}
}
