// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build !no_std_lib
// +build !no_std_lib

package bench

import (
	"compress/flate"
	"compress/lzw"
	"io"
)

func init() {
	Register(Codec{
		Format: FormatGIF,
		Name:   "std",
		Encode: func(w io.Writer, lvl int) io.WriteCloser {
			return lzw.NewWriter(w, lzw.MSB, 8)
		},
		Decode: func(r io.Reader) io.ReadCloser {
			return lzw.NewReader(r, lzw.MSB, 8)
		},
	})
	Register(Codec{
		Format: FormatFlate,
		Name:   "std",
		Encode: func(w io.Writer, lvl int) io.WriteCloser {
			zw, err := flate.NewWriter(w, flateLevel(lvl))
			if err != nil {
				panic(err)
			}
			return zw
		},
		Decode: flate.NewReader,
	})
}

// flateLevel clamps a benchmark level to the DEFLATE levels 1 through 9.
func flateLevel(lvl int) int {
	switch {
	case lvl < flate.BestSpeed:
		return flate.BestSpeed
	case lvl > flate.BestCompression:
		return flate.BestCompression
	default:
		return lvl
	}
}
