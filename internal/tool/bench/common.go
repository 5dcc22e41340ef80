// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package bench measures the LZW codec against itself across code widths and
// modes, and against other compressors, in terms of space saving and speed.
//
// Every measurement is reported as lzw.Stats, so that figures for other
// formats read the same way as those of the LZW codec.
package bench

import (
	"bytes"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path"
	"regexp"
	"runtime"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/dsnet/golib/unitconv"
	"github.com/dsnet/lzw"
	"github.com/dsnet/lzw/internal/testutil"
)

const (
	FormatLZW   = iota // This module's LZW format
	FormatGIF          // LZW as used by GIF, with clear and end codes
	FormatFlate        // DEFLATE
	FormatXZ           // XZ container around LZMA2
)

// Names of the LZW codecs, one per code width mode.
const (
	CodecStatic   = "static"
	CodecAdaptive = "adaptive"
)

// An Encoder constructs a compressor for the given level.
// For FormatLZW the level is the maximum code width. Other formats clamp the
// level into their own range.
type Encoder func(io.Writer, int) io.WriteCloser
type Decoder func(io.Reader) io.ReadCloser

// A Codec is one implementation of a format.
type Codec struct {
	Format int
	Name   string
	Encode Encoder
	Decode Decoder // May be nil if the implementation cannot decompress
}

var (
	registry []Codec

	// List of search paths for test files.
	Paths []string
)

// Register adds c to the known codecs, replacing a codec with the same
// format and name.
func Register(c Codec) {
	for i, rc := range registry {
		if rc.Format == c.Format && rc.Name == c.Name {
			registry[i] = c
			return
		}
	}
	registry = append(registry, c)
}

// Lookup returns the codec registered for format under name.
func Lookup(format int, name string) (Codec, bool) {
	for _, c := range registry {
		if c.Format == format && c.Name == name {
			return c, true
		}
	}
	return Codec{}, false
}

// Codecs returns the codecs of format sorted by name. If names is non-empty,
// only codecs with one of those names are returned.
func Codecs(format int, names ...string) []Codec {
	var cs []Codec
	for _, c := range registry {
		if c.Format == format && (len(names) == 0 || contains(names, c.Name)) {
			cs = append(cs, c)
		}
	}
	sort.Slice(cs, func(i, j int) bool { return cs[i].Name < cs[j].Name })
	return cs
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}

// LoadInput loads n bytes of input. If name refers to one of the generated
// corpora in testutil, then the data is generated. Otherwise, name is a file
// searched for in Paths.
func LoadInput(name string, n int) ([]byte, error) {
	for _, c := range testutil.Corpora {
		if c.Name == name {
			if n < 0 {
				n = 1 << 20
			}
			return c.Gen(n), nil
		}
	}
	return testutil.LoadFile(getPath(name), n)
}

// A Sample is the measurement of one codec on one input at one level.
type Sample struct {
	Codec string
	Level int

	// Figures of the compression run. DictSize is only known for FormatLZW.
	lzw.Stats

	EncSpeed float64 // Compression speed in MB/s of raw data; zero if not measured
	DecSpeed float64 // Decompression speed in MB/s of raw data; zero if not measured

	Err error // Reason the sample could not be taken
}

// Measure compresses input with c at level lvl and verifies that the output
// decompresses back to input. If speed is set, both directions are also
// benchmarked.
func Measure(c Codec, input []byte, lvl int, speed bool) Sample {
	s := Sample{Codec: c.Name, Level: lvl}
	if c.Encode == nil {
		s.Err = fmt.Errorf("codec %s cannot compress", c.Name)
		return s
	}

	var bb bytes.Buffer
	start := time.Now()
	wr := c.Encode(&bb, lvl)
	if _, err := io.Copy(wr, bytes.NewReader(input)); err != nil {
		s.Err = err
		return s
	}
	if err := wr.Close(); err != nil {
		s.Err = err
		return s
	}
	if zw, ok := wr.(interface{ Stats() lzw.Stats }); ok {
		s.Stats = zw.Stats()
	} else {
		raw, comp := 8*int64(len(input)), 8*int64(bb.Len())
		s.Stats = lzw.Stats{
			Elapsed:    time.Since(start),
			InputBits:  raw,
			OutputBits: comp,
			Rate:       spaceSaving(raw, comp),
		}
	}

	output := bb.Bytes()
	if c.Decode != nil {
		got, err := decode(c.Decode, output)
		if err != nil {
			s.Err = err
			return s
		}
		if !bytes.Equal(got, input) {
			s.Err = fmt.Errorf("codec %s: decompressed data mismatch", c.Name)
			return s
		}
	}

	if speed {
		s.EncSpeed = speedOf(testing.Benchmark(func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				wr := c.Encode(ioutil.Discard, lvl)
				if _, err := io.Copy(wr, bytes.NewReader(input)); err != nil {
					b.Fatalf("unexpected error: %v", err)
				}
				if err := wr.Close(); err != nil {
					b.Fatalf("unexpected error: %v", err)
				}
				b.SetBytes(int64(len(input)))
			}
		}))
		if c.Decode != nil {
			s.DecSpeed = speedOf(testing.Benchmark(func(b *testing.B) {
				for i := 0; i < b.N; i++ {
					rd := c.Decode(bytes.NewReader(output))
					if _, err := io.Copy(ioutil.Discard, rd); err != nil {
						b.Fatalf("unexpected error: %v", err)
					}
					if err := rd.Close(); err != nil {
						b.Fatalf("unexpected error: %v", err)
					}
					b.SetBytes(int64(len(input)))
				}
			}))
		}
	}
	return s
}

func decode(dec Decoder, input []byte) ([]byte, error) {
	var bb bytes.Buffer
	rd := dec(bytes.NewReader(input))
	if _, err := io.Copy(&bb, rd); err != nil {
		return nil, err
	}
	if err := rd.Close(); err != nil {
		return nil, err
	}
	return bb.Bytes(), nil
}

// errReader reports a header error through Read so that a corrupt stream
// shows up as a failed sample instead of a crash.
type errReader struct{ err error }

func (r errReader) Read([]byte) (int, error) { return 0, r.err }
func (r errReader) Close() error { return r.err }

// spaceSaving matches the Rate of lzw.Stats.
func spaceSaving(original, compressed int64) float64 {
	if original == 0 {
		return 0
	}
	return (1 - float64(compressed)/float64(original)) * 100
}

func speedOf(r testing.BenchmarkResult) float64 {
	if r.N == 0 || r.T == 0 {
		return 0
	}
	us := (float64(r.T.Nanoseconds()) / 1e3) / float64(r.N)
	return float64(r.Bytes) / us
}

// A Suite is the set of inputs and levels that codecs are measured on.
type Suite struct {
	Files  []string // Corpus names or files searched for in Paths
	Levels []int
	Sizes  []int
	Speed  bool   // Measure compression and decompression speed
	Tick   func() // Called before every sample, if non-nil
}

// Run measures every codec on every file, level, and size.
//
// The values returned have the following structure:
//	samples: [len(Files)*len(Levels)*len(Sizes)][len(cs)]Sample
//	names:   [len(Files)*len(Levels)*len(Sizes)]string
func (s Suite) Run(cs []Codec) (samples [][]Sample, names []string) {
	for _, f := range s.Files {
		for _, l := range s.Levels {
			for _, n := range s.Sizes {
				input, err := LoadInput(f, n)
				row := make([]Sample, len(cs))
				for j, c := range cs {
					row[j] = s.sample(c, input, l, err)
				}
				samples = append(samples, row)
				names = append(names, getName(f, l, len(input)))
			}
		}
	}
	return samples, names
}

// CompareModes measures the static codec against the adaptive codec at every
// level, which is the maximum code width.
//
// The values returned have the following structure:
//	samples: [len(Files)*len(Sizes)][2*len(Levels)]Sample
//	names:   [len(Files)*len(Sizes)]string
// Each row holds a static and then an adaptive sample for every level.
func (s Suite) CompareModes() (samples [][]Sample, names []string) {
	static, okS := Lookup(FormatLZW, CodecStatic)
	adaptive, okA := Lookup(FormatLZW, CodecAdaptive)
	var errMissing error
	if !okS || !okA {
		errMissing = fmt.Errorf("LZW codecs are not registered")
	}

	for _, f := range s.Files {
		for _, n := range s.Sizes {
			input, err := LoadInput(f, n)
			if err == nil {
				err = errMissing
			}
			var row []Sample
			for _, l := range s.Levels {
				row = append(row, s.sample(static, input, l, err))
				row = append(row, s.sample(adaptive, input, l, err))
			}
			samples = append(samples, row)
			names = append(names, path.Base(f)+":"+sizeName(len(input)))
		}
	}
	return samples, names
}

func (s Suite) sample(c Codec, input []byte, lvl int, err error) Sample {
	if s.Tick != nil {
		s.Tick()
	}
	if err != nil {
		return Sample{Codec: c.Name, Level: lvl, Err: err}
	}
	runtime.GC()
	return Measure(c, input, lvl, s.Speed)
}

func getPath(file string) string {
	if path.IsAbs(file) {
		return file
	}
	for _, p := range Paths {
		p = path.Join(p, file)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return file
}

var reExp = regexp.MustCompile(`\.0*e\+0*`)

func sizeName(n int) string {
	switch n {
	case 1e3, 1e4, 1e5, 1e6, 1e7, 1e8, 1e9:
		return reExp.ReplaceAllString(fmt.Sprintf("%e", float64(n)), "e")
	default:
		s := unitconv.FormatPrefix(float64(n), unitconv.Base1024, 2)
		return strings.Replace(s, ".00", "", -1)
	}
}

func getName(f string, l, n int) string {
	return fmt.Sprintf("%s:%d:%s", path.Base(f), l, sizeName(n))
}
