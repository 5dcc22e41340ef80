// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build !no_xz_lib
// +build !no_xz_lib

package bench

import (
	"io"
	"io/ioutil"

	"github.com/ulikunitz/xz"
)

func init() {
	Register(Codec{
		Format: FormatXZ,
		Name:   "uk",
		Encode: func(w io.Writer, lvl int) io.WriteCloser {
			// The level selects the dictionary capacity as a power of two,
			// which is comparable to the maximum LZW code width.
			conf := xz.WriterConfig{DictCap: 1 << uint(xzDictBits(lvl))}
			zw, err := conf.NewWriter(w)
			if err != nil {
				panic(err)
			}
			return zw
		},
		Decode: func(r io.Reader) io.ReadCloser {
			zr, err := xz.NewReader(r)
			if err != nil {
				return errReader{err}
			}
			return ioutil.NopCloser(zr)
		},
	})
}

func xzDictBits(lvl int) int {
	switch {
	case lvl < 12:
		return 12
	case lvl > 26:
		return 26
	default:
		return lvl
	}
}
