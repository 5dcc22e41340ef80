// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Command lzw compresses and decompresses files in the LZW format.
//
// Compressed files are named after the input with the extension replaced by
// ".lzw". The original extension is kept in the stream header, so that
// decompression restores the original file name.
//
// Example usage:
//	$ lzw -mode static -bits 16 -stats report.csv
//	$ lzw -d -csv stats.csv report.lzw
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dsnet/golib/unitconv"
	"github.com/dsnet/lzw"
	"github.com/pkg/errors"
)

// Extension of compressed files.
const lzwExt = ".lzw"

var (
	decompress = flag.Bool("d", false, "decompress instead of compress")
	modeName   = flag.String("mode", lzw.ModeAdaptive.String(), "code width mode: static or adaptive")
	maxBits    = flag.Int("bits", lzw.DefaultBits, "maximum code width in bits (9..24)")
	outDir     = flag.String("o", "", "output directory; defaults to the directory of each input")
	force      = flag.Bool("f", false, "overwrite existing output files")
	showStats  = flag.Bool("stats", false, "print statistics for every file")
	csvPath    = flag.String("csv", "", "append a row of statistics for every file to this CSV file")
)

// options holds the parsed command line configuration.
type options struct {
	decompress bool
	conf       lzw.WriterConfig
	outDir     string
	force      bool
}

// result describes a single processed file.
type result struct {
	input, output string
	op            string // "compress" or "decompress"
	hdr           lzw.Header
	stats         lzw.Stats
}

var csvHeader = []string{
	"file", "op", "mode", "bits", "elapsed_ns", "input_bits", "output_bits", "rate", "dict_size",
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] file...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(1)
	}

	mode, err := lzw.ParseMode(*modeName)
	if err != nil {
		log.Fatalf("%+v", errors.Wrap(err, "invalid -mode"))
	}
	if err := checkBits(*maxBits); err != nil {
		log.Fatalf("%+v", err)
	}
	opts := options{
		decompress: *decompress,
		conf:       lzw.WriterConfig{Mode: mode, MaxBits: *maxBits},
		outDir:     *outDir,
		force:      *force,
	}

	var results []result
	for _, name := range flag.Args() {
		r, err := processFile(name, opts)
		if err != nil {
			log.Fatalf("%+v", err)
		}
		if *showStats {
			fmt.Println(formatResult(r))
		}
		results = append(results, r)
	}
	if *csvPath != "" {
		if err := appendCSV(*csvPath, results); err != nil {
			log.Fatalf("%+v", err)
		}
	}
}

// checkBits rejects widths that WriterConfig would otherwise replace with
// lzw.DefaultBits.
func checkBits(n int) error {
	if n < lzw.MinBits || n > lzw.MaxBits {
		return errors.Errorf("invalid -bits %d: must be within [%d, %d]", n, lzw.MinBits, lzw.MaxBits)
	}
	return nil
}

func processFile(name string, opts options) (result, error) {
	if opts.decompress {
		return decompressFile(name, opts)
	}
	return compressFile(name, opts)
}

// compressFile compresses name into a file with the ".lzw" extension.
func compressFile(name string, opts options) (r result, err error) {
	r = result{input: name, op: "compress"}
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(filepath.Base(name), ext)
	r.output = outputPath(name, opts.outDir, base+lzwExt)

	conf := opts.conf
	conf.Extension = strings.TrimPrefix(ext, ".")
	err = transcode(name, r.output, opts.force, func(dst io.Writer, src io.Reader) error {
		zw, err := lzw.NewWriter(dst, &conf)
		if err != nil {
			return errors.Wrapf(err, "cannot compress %q", name)
		}
		if _, err := io.Copy(zw, src); err != nil {
			return errors.Wrapf(err, "cannot compress %q", name)
		}
		if err := zw.Close(); err != nil {
			return errors.Wrapf(err, "cannot compress %q", name)
		}
		r.hdr, r.stats = zw.Header(), zw.Stats()
		return nil
	})
	return r, err
}

// decompressFile decompresses name, restoring the extension recorded in the
// stream header.
func decompressFile(name string, opts options) (r result, err error) {
	r = result{input: name, op: "decompress"}
	hdr, err := readHeader(name)
	if err != nil {
		return r, err
	}
	base := strings.TrimSuffix(filepath.Base(name), lzwExt)
	if hdr.Extension != "" {
		base += "." + hdr.Extension
	}
	r.output = outputPath(name, opts.outDir, base)

	err = transcode(name, r.output, opts.force, func(dst io.Writer, src io.Reader) error {
		zr, err := lzw.NewReader(src)
		if err != nil {
			return errors.Wrapf(err, "cannot decompress %q", name)
		}
		if _, err := io.Copy(dst, zr); err != nil {
			return errors.Wrapf(err, "cannot decompress %q", name)
		}
		if err := zr.Close(); err != nil {
			return errors.Wrapf(err, "cannot decompress %q", name)
		}
		r.hdr, r.stats = zr.Header(), zr.Stats()
		return nil
	})
	return r, err
}

// readHeader reads just the stream header of a compressed file.
func readHeader(name string) (lzw.Header, error) {
	f, err := os.Open(name)
	if err != nil {
		return lzw.Header{}, errors.WithStack(err)
	}
	defer f.Close()
	zr, err := lzw.NewReader(f)
	if err != nil {
		return lzw.Header{}, errors.Wrapf(err, "cannot read header of %q", name)
	}
	return zr.Header(), nil
}

func outputPath(input, dir, base string) string {
	if dir == "" {
		dir = filepath.Dir(input)
	}
	return filepath.Join(dir, base)
}

// transcode runs fn from the input file into a newly created output file.
// The output is removed if fn fails.
func transcode(input, output string, force bool, fn func(io.Writer, io.Reader) error) (err error) {
	if filepath.Clean(output) == filepath.Clean(input) {
		return errors.Errorf("output would overwrite input %q", input)
	}
	src, err := os.Open(input)
	if err != nil {
		return errors.WithStack(err)
	}
	defer src.Close()

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !force {
		flags |= os.O_EXCL
	}
	dst, err := os.OpenFile(output, flags, 0664)
	if err != nil {
		return errors.WithStack(err)
	}
	defer func() {
		if cerr := dst.Close(); err == nil && cerr != nil {
			err = errors.WithStack(cerr)
		}
		if err != nil {
			os.Remove(output)
		}
	}()
	return fn(dst, src)
}

func formatResult(r result) string {
	size := func(bits int64) string {
		return unitconv.FormatPrefix(float64(bits/8), unitconv.Base1024, 2) + "B"
	}
	return fmt.Sprintf("%s -> %s: %s -> %s, %.2f%% saved, %d entries, %v mode, %d bits, %v",
		r.input, r.output, size(r.stats.InputBits), size(r.stats.OutputBits),
		r.stats.Rate, r.stats.DictSize, r.hdr.Mode, r.hdr.MaxBits,
		r.stats.Elapsed.Round(time.Microsecond))
}

func csvRecord(r result) []string {
	return []string{
		r.input,
		r.op,
		r.hdr.Mode.String(),
		fmt.Sprint(r.hdr.MaxBits),
		fmt.Sprint(r.stats.Elapsed.Nanoseconds()),
		fmt.Sprint(r.stats.InputBits),
		fmt.Sprint(r.stats.OutputBits),
		fmt.Sprintf("%.4f", r.stats.Rate),
		fmt.Sprint(r.stats.DictSize),
	}
}

// appendCSV appends one row per result to the CSV file at name, writing the
// column names first if the file is empty.
func appendCSV(name string, results []result) (err error) {
	f, err := os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0664)
	if err != nil {
		return errors.WithStack(err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = errors.WithStack(cerr)
		}
	}()
	fi, err := f.Stat()
	if err != nil {
		return errors.WithStack(err)
	}

	w := csv.NewWriter(f)
	if fi.Size() == 0 {
		if err := w.Write(csvHeader); err != nil {
			return errors.WithStack(err)
		}
	}
	for _, r := range results {
		if err := w.Write(csvRecord(r)); err != nil {
			return errors.WithStack(err)
		}
	}
	w.Flush()
	return errors.Wrapf(w.Error(), "cannot write %q", name)
}
