// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package testutil

import "bytes"

// Corpus is a named generator of deterministic test data.
type Corpus struct {
	Name string
	Gen  func(n int) []byte
}

// Corpora lists the generated inputs shared by the tests and benchmarks.
// Each generator favors a different kind of dictionary growth.
var Corpora = []Corpus{
	{"zeros", Zeros},
	{"random", func(n int) []byte { return NewRand(0).Bytes(n) }},
	{"digits", Digits},
	{"text", func(n int) []byte { return Text(NewRand(1), n) }},
	{"repeats", func(n int) []byte { return Repeats(NewRand(2), n) }},
}

// Zeros returns n zero bytes. Every code extends the previous sequence by one
// byte, so the dictionary grows as slowly as possible.
func Zeros(n int) []byte { return make([]byte, n) }

// Digits returns the decimal digits of a simple counter.
func Digits(n int) []byte {
	var b []byte
	for i := 0; len(b) < n; i++ {
		b = appendInt(b, i)
		b = append(b, '\n')
	}
	return b[:n]
}

func appendInt(b []byte, i int) []byte {
	var buf [20]byte
	p := len(buf)
	for {
		p--
		buf[p] = byte('0' + i%10)
		if i /= 10; i == 0 {
			break
		}
	}
	return append(b, buf[p:]...)
}

var words = []string{
	"the", "of", "and", "to", "in", "a", "is", "that", "for", "it",
	"as", "was", "with", "be", "by", "on", "not", "he", "this", "are",
	"or", "his", "from", "at", "which", "but", "have", "an", "had", "they",
	"dictionary", "sequence", "compression", "stream", "width", "header",
	"encoder", "decoder", "literal", "adaptive", "static", "code",
}

// Text returns English-like text drawn from a small vocabulary.
func Text(r *Rand, n int) []byte {
	var bb bytes.Buffer
	for bb.Len() < n {
		w := words[r.Intn(len(words))]
		bb.WriteString(w)
		switch p := r.Float32(); {
		case p <= 0.05:
			bb.WriteString(".\n")
		case p <= 0.15:
			bb.WriteString(", ")
		default:
			bb.WriteByte(' ')
		}
	}
	return bb.Bytes()[:n]
}

// Repeats returns mostly random data where a large bulk of the output is a
// copy of some earlier section. This favors LZ77 based compression, while
// LZW only benefits from the shorter repeated sequences.
func Repeats(r *Rand, n int) []byte {
	var b []byte
	if n <= 0 {
		return b
	}

	randLen := func() int {
		switch p := r.Float32(); {
		case p <= 0.15:
			return 4 + r.Intn(4)
		case p <= 0.30:
			return 8 + r.Intn(8)
		case p <= 0.45:
			return 16 + r.Intn(16)
		case p <= 0.60:
			return 32 + r.Intn(32)
		case p <= 0.75:
			return 64 + r.Intn(64)
		case p <= 0.90:
			return 128 + r.Intn(128)
		default:
			return 256 + r.Intn(256)
		}
	}
	randDist := func() int {
		for {
			// Distances are powers of two buckets from 1 up to 32768.
			lo := 1 << uint(r.Intn(15))
			if d := lo + r.Intn(lo); d <= len(b) {
				return d
			}
		}
	}
	writeRand := func(l int) {
		b = append(b, r.Bytes(l)...)
	}
	writeCopy := func(d, l int) {
		for i := 0; i < l; i++ {
			b = append(b, b[len(b)-d])
		}
	}

	writeRand(randLen())
	for len(b) < n {
		switch p := r.Float32(); {
		case p <= 0.1:
			writeRand(randLen())
		case p <= 0.9:
			d, l := randDist(), randLen()
			for d <= l && d < len(b) {
				d = randDist()
			}
			writeCopy(d, l)
		default:
			writeCopy(randDist(), randLen())
		}
	}
	return b[:n]
}
