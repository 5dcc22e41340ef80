// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzw

import (
	"bytes"
	"io"
	"io/ioutil"
	"testing"

	"github.com/dsnet/lzw/internal/testutil"
)

func TestWriter(t *testing.T) {
	db := testutil.MustDecodeBitGen

	var vectors = []struct {
		desc   string        // Description of the test
		conf   *WriterConfig // Writer configuration
		input  string        // Test input string
		output []byte        // Expected output string
	}{{
		desc:   "empty input, default configuration",
		output: db("H8:00 H8:01 H8:0c"),
	}, {
		desc:   "empty input, static 9-bit",
		conf:   &WriterConfig{Mode: ModeStatic, MaxBits: 9},
		output: db("H8:00 H8:00 H8:09"),
	}, {
		desc:  "single literal",
		conf:  &WriterConfig{Mode: ModeStatic, MaxBits: 9},
		input: "A",
		output: db(`
			H8:00 H8:00 H8:09 # Header: static, 9-bit
			D9:65             # 'A'
		`),
	}, {
		desc:  "run of four bytes",
		conf:  &WriterConfig{Mode: ModeStatic, MaxBits: 9},
		input: "AAAA",
		output: db(`
			H8:00 H8:00 H8:09 # Header: static, 9-bit
			D9:65             # 'A', adds 256: "AA"
			D9:256            # "AA", adds 257: "AAA"
			D9:65             # 'A'
		`),
	}, {
		desc:  "run of four bytes, adaptive",
		conf:  &WriterConfig{Mode: ModeAdaptive, MaxBits: 9},
		input: "AAAA",
		output: db(`
			H8:00 H8:01 H8:09 # Header: adaptive, 9-bit
			D9:65 D9:256 D9:65
		`),
	}, {
		desc:  "sequence referencing the newest entry",
		conf:  &WriterConfig{Mode: ModeStatic, MaxBits: 9},
		input: "ABABABA",
		output: db(`
			H8:00 H8:00 H8:09 # Header: static, 9-bit
			D9:65             # 'A', adds 256: "AB"
			D9:66             # 'B', adds 257: "BA"
			D9:256            # "AB", adds 258: "ABA"
			D9:258            # "ABA"
		`),
	}, {
		desc:  "extension and static 16-bit",
		conf:  &WriterConfig{Mode: ModeStatic, MaxBits: 16, Extension: ".txt"},
		input: "AB",
		output: db(`
			H8:03 X:747874    # Extension: "txt"
			H8:00 H8:10       # Header: static, 16-bit
			H16:0041 H16:0042 # "AB"
		`),
	}, {
		desc:  "static 24-bit",
		conf:  &WriterConfig{Mode: ModeStatic, MaxBits: 24},
		input: "A",
		output: db(`
			H8:00 H8:00 H8:18 # Header: static, 24-bit
			H24:000041        # 'A'
		`),
	}}

	for i, v := range vectors {
		var buf bytes.Buffer
		wr, err := NewWriter(&buf, v.conf)
		if err != nil {
			t.Errorf("test %d, %s\nunexpected NewWriter error: %v", i, v.desc, err)
			continue
		}
		cnt, err := io.WriteString(wr, v.input)
		if err != nil {
			t.Errorf("test %d, %s\nunexpected Write error: %v", i, v.desc, err)
		}
		if cnt != len(v.input) {
			t.Errorf("test %d, %s\nwrite count mismatch: got %d, want %d", i, v.desc, cnt, len(v.input))
		}
		if err := wr.Close(); err != nil {
			t.Errorf("test %d, %s\nunexpected Close error: %v", i, v.desc, err)
		}

		if output := buf.Bytes(); !bytes.Equal(output, v.output) {
			t.Errorf("test %d, %s\noutput mismatch:\ngot  %x\nwant %x", i, v.desc, output, v.output)
		}
		if wr.InputOffset != int64(len(v.input)) {
			t.Errorf("test %d, %s\ninput offset mismatch: got %d, want %d", i, v.desc, wr.InputOffset, len(v.input))
		}
		if wr.OutputOffset != int64(len(v.output)) {
			t.Errorf("test %d, %s\noutput offset mismatch: got %d, want %d", i, v.desc, wr.OutputOffset, len(v.output))
		}
	}
}

func TestWriterInvalidConfig(t *testing.T) {
	var buf bytes.Buffer
	for _, conf := range []*WriterConfig{
		{MaxBits: 8},
		{MaxBits: 25},
		{Mode: 3},
		{Extension: "../x"},
	} {
		if _, err := NewWriter(&buf, conf); err != ErrInvalidConfig {
			t.Errorf("config %+v, error mismatch: got %v, want %v", *conf, err, ErrInvalidConfig)
		}
	}
	if buf.Len() != 0 {
		t.Errorf("unexpected output for invalid configurations: %x", buf.Bytes())
	}
}

func TestWriterReset(t *testing.T) {
	input := testutil.Text(testutil.NewRand(0), 1<<16)
	conf := &WriterConfig{Mode: ModeAdaptive, MaxBits: 14, Extension: "txt"}
	want, _, err := Compress(input, conf)
	if err != nil {
		t.Fatalf("unexpected Compress error: %v", err)
	}

	wr, err := NewWriter(ioutil.Discard, conf)
	if err != nil {
		t.Fatalf("unexpected NewWriter error: %v", err)
	}
	if _, err := wr.Write(input[:100]); err != nil {
		t.Fatalf("unexpected Write error: %v", err)
	}
	for i := 0; i < 2; i++ {
		var buf bytes.Buffer
		if err := wr.Reset(&buf); err != nil {
			t.Fatalf("test %d, unexpected Reset error: %v", i, err)
		}
		if _, err := wr.Write(input); err != nil {
			t.Errorf("test %d, unexpected Write error: %v", i, err)
		}
		if err := wr.Close(); err != nil {
			t.Errorf("test %d, unexpected Close error: %v", i, err)
		}
		if !bytes.Equal(buf.Bytes(), want) {
			t.Errorf("test %d, output mismatch after Reset", i)
		}
		if h := wr.Header(); h.Extension != "txt" || h.MaxBits != 14 {
			t.Errorf("test %d, header mismatch: got %+v", i, h)
		}
	}
}

func TestWriterClose(t *testing.T) {
	var buf bytes.Buffer
	wr, err := NewWriter(&buf, nil)
	if err != nil {
		t.Fatalf("unexpected NewWriter error: %v", err)
	}
	if _, err := wr.Write([]byte("hello")); err != nil {
		t.Fatalf("unexpected Write error: %v", err)
	}
	if err := wr.Close(); err != nil {
		t.Errorf("unexpected Close error: %v", err)
	}
	n := buf.Len()
	if err := wr.Close(); err != nil {
		t.Errorf("unexpected second Close error: %v", err)
	}
	if _, err := wr.Write([]byte("world")); err != io.ErrClosedPipe {
		t.Errorf("mismatching Write error after Close: got %v, want %v", err, io.ErrClosedPipe)
	}
	if buf.Len() != n {
		t.Errorf("unexpected output after Close: got %d bytes, want %d", buf.Len(), n)
	}
}

func TestWriterIOError(t *testing.T) {
	input := testutil.NewRand(0).Bytes(1 << 16)
	wr, err := NewWriter(&testutil.BuggyWriter{
		W:   ioutil.Discard,
		N:   100,
		Err: io.ErrShortWrite,
	}, &WriterConfig{Mode: ModeStatic, MaxBits: 16})
	if err != nil {
		t.Fatalf("unexpected NewWriter error: %v", err)
	}

	cnt, err := wr.Write(input)
	if err != io.ErrShortWrite {
		t.Errorf("mismatching Write error: got %v, want %v", err, io.ErrShortWrite)
	}
	if cnt >= len(input) {
		t.Errorf("write count mismatch: got %d, want < %d", cnt, len(input))
	}
	if _, err := wr.Write(input); err != io.ErrShortWrite {
		t.Errorf("mismatching persistent Write error: got %v, want %v", err, io.ErrShortWrite)
	}
	if err := wr.Close(); err != io.ErrShortWrite {
		t.Errorf("mismatching Close error: got %v, want %v", err, io.ErrShortWrite)
	}
	if wr.OutputOffset != 100 {
		t.Errorf("output offset mismatch: got %d, want %d", wr.OutputOffset, 100)
	}
}

func BenchmarkEncode(b *testing.B) {
	for _, c := range testutil.Corpora {
		for _, mode := range []Mode{ModeStatic, ModeAdaptive} {
			input := c.Gen(1 << 20)
			conf := &WriterConfig{Mode: mode, MaxBits: 16}
			b.Run(c.Name+"/"+mode.String(), func(b *testing.B) {
				b.SetBytes(int64(len(input)))
				b.ReportAllocs()
				wr, err := NewWriter(ioutil.Discard, conf)
				if err != nil {
					b.Fatalf("unexpected NewWriter error: %v", err)
				}
				for i := 0; i < b.N; i++ {
					if err := wr.Reset(ioutil.Discard); err != nil {
						b.Fatalf("unexpected Reset error: %v", err)
					}
					if _, err := wr.Write(input); err != nil {
						b.Fatalf("unexpected Write error: %v", err)
					}
					if err := wr.Close(); err != nil {
						b.Fatalf("unexpected Close error: %v", err)
					}
				}
			})
		}
	}
}
