// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package testutil is a collection of testing helper methods.
package testutil

import (
	"encoding/hex"
	"errors"
	"io"
	"io/ioutil"
)

// LoadFile reads a file to use as benchmark input, sized to exactly n bytes.
// A negative n keeps the file as is. A short file is repeated until n bytes
// are reached, where each repetition has every byte XORed with the repetition
// count.
func LoadFile(file string, n int) ([]byte, error) {
	b, err := ioutil.ReadFile(file)
	if err != nil {
		return nil, err
	}
	if n > len(b) && len(b) == 0 {
		return nil, errors.New("testutil: cannot extend empty file: " + file)
	}
	return extend(b, n), nil
}

func extend(b []byte, n int) []byte {
	switch {
	case n < 0:
		return b
	case n <= len(b):
		return b[:n]
	}
	out := make([]byte, n)
	for i := range out {
		out[i] = b[i%len(b)] ^ byte(i/len(b))
	}
	return out
}

// MustDecodeHex must decode a hexadecimal string or else panics.
func MustDecodeHex(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}

// MustDecodeBitGen must decode a BitGen formatted string or else panics.
func MustDecodeBitGen(s string) []byte {
	b, err := DecodeBitGen(s)
	if err != nil {
		panic(err)
	}
	return b
}

// BuggyReader returns Err once N bytes have been read from R.
type BuggyReader struct {
	R   io.Reader
	N   int64
	Err error
}

func (br *BuggyReader) Read(buf []byte) (int, error) {
	n, err := br.R.Read(buf[:clamp(len(buf), br.N)])
	return n, failAfter(&br.N, n, err, br.Err)
}

// BuggyWriter returns Err once N bytes have been written to W.
type BuggyWriter struct {
	W   io.Writer
	N   int64
	Err error
}

func (bw *BuggyWriter) Write(buf []byte) (int, error) {
	n, err := bw.W.Write(buf[:clamp(len(buf), bw.N)])
	return n, failAfter(&bw.N, n, err, bw.Err)
}

func clamp(n int, max int64) int {
	if max < 0 {
		return 0
	}
	if int64(n) > max {
		return int(max)
	}
	return n
}

// failAfter deducts n from the remaining budget and substitutes fail for a
// nil err once the budget is exhausted.
func failAfter(budget *int64, n int, err, fail error) error {
	*budget -= int64(n)
	if err == nil && *budget <= 0 {
		return fail
	}
	return err
}
