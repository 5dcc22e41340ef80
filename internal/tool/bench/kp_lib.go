// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build !no_kp_lib
// +build !no_kp_lib

package bench

import (
	"io"

	"github.com/klauspost/compress/flate"
)

func init() {
	Register(Codec{
		Format: FormatFlate,
		Name:   "kp",
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
