// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzw

import (
	"bytes"
	"io"
	"time"
)

// Stats summarizes a single compression or decompression run.
type Stats struct {
	Elapsed    time.Duration // Time spent between Reset and the end of the stream
	InputBits  int64         // Size of the input consumed, in bits
	OutputBits int64         // Size of the output produced, in bits

	// Rate is the space saved by compression in percent, computed as
	// (1 - compressed/original) * 100 for both directions.
	// It is zero when the original data is empty.
	Rate float64

	DictSize int // Number of dictionary entries at the end of the stream
}

func spaceSaving(original, compressed int64) float64 {
	if original == 0 {
		return 0
	}
	return (1 - float64(compressed)/float64(original)) * 100
}

// Compress compresses data using conf. A nil conf selects ModeAdaptive with
// DefaultBits.
func Compress(data []byte, conf *WriterConfig) ([]byte, Stats, error) {
	var bb bytes.Buffer
	zw, err := NewWriter(&bb, conf)
	if err != nil {
		return nil, Stats{}, err
	}
	if _, err := zw.Write(data); err != nil {
		return nil, Stats{}, err
	}
	if err := zw.Close(); err != nil {
		return nil, Stats{}, err
	}
	return bb.Bytes(), zw.Stats(), nil
}

// Decompress decompresses an entire stream produced by Compress or Writer.
// The mode and width are taken from the stream header.
func Decompress(data []byte) ([]byte, Stats, error) {
	zr, err := NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, Stats{}, err
	}
	var bb bytes.Buffer
	if _, err := io.Copy(&bb, zr); err != nil {
		return nil, Stats{}, err
	}
	if err := zr.Close(); err != nil {
		return nil, Stats{}, err
	}
	return bb.Bytes(), zr.Stats(), nil
}
