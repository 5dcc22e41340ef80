// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build !no_ds_lib
// +build !no_ds_lib

package bench

import (
	"io"

	"github.com/dsnet/lzw"
)

func init() {
	dec := func(r io.Reader) io.ReadCloser {
		zr, err := lzw.NewReader(r)
		if err != nil {
			return errReader{err}
		}
		return zr
	}
	newEncoder := func(mode lzw.Mode) Encoder {
		return func(w io.Writer, lvl int) io.WriteCloser {
			zw, err := lzw.NewWriter(w, &lzw.WriterConfig{Mode: mode, MaxBits: lzwBits(lvl)})
			if err != nil {
				panic(err)
			}
			return zw
		}
	}
	Register(Codec{FormatLZW, CodecStatic, newEncoder(lzw.ModeStatic), dec})
	Register(Codec{FormatLZW, CodecAdaptive, newEncoder(lzw.ModeAdaptive), dec})
}

// lzwBits maps a benchmark level onto a valid maximum code width.
// Levels below lzw.MinBits select lzw.DefaultBits.
func lzwBits(lvl int) int {
	switch {
	case lvl < lzw.MinBits:
		return lzw.DefaultBits
	case lvl > lzw.MaxBits:
		return lzw.MaxBits
	default:
		return lvl
	}
}
