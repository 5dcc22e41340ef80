// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build ignore
// +build ignore

// Benchmark tool to study the LZW codec. It reports the space saving and
// final dictionary size of the static and adaptive modes across maximum code
// widths, and puts them next to other compressors.
//
// Inputs are either the names of generated corpora (zeros, random, digits,
// text, repeats) or files found in the search paths.
//
// Example usage:
//	$ go build -o benchmark main.go
//	$ ./benchmark \
//		-tests   modes,ratio   \
//		-formats lzw,gif,fl,xz \
//		-files   text,repeats  \
//		-levels  9,12,16,24    \
//		-sizes   1e5,1e6       \
//		-csv     results.csv
//
// The modes test only concerns the LZW format and ignores -formats and
// -codecs. For other formats the level is clamped into their own range.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/dsnet/golib/unitconv"
	"github.com/dsnet/lzw/internal/testutil"
	"github.com/dsnet/lzw/internal/tool/bench"
)

const (
	defaultTests   = "modes,ratio,speed"
	defaultFormats = "lzw,gif,fl,xz"
	defaultLevels  = "9,12,16"
	defaultSizes   = "1e4,1e5,1e6"
)

var formats = []struct {
	name string
	enum int
}{
	{"lzw", bench.FormatLZW},
	{"gif", bench.FormatGIF},
	{"fl", bench.FormatFlate},
	{"xz", bench.FormatXZ},
}

var csvHeader = []string{
	"test", "format", "input", "codec", "level",
	"input_bits", "output_bits", "rate", "dict_size", "enc_mbps", "dec_mbps",
}

func main() {
	log.SetFlags(0)
	f0 := flag.String("tests", defaultTests, "List of tests: modes, ratio, speed")
	f1 := flag.String("formats", defaultFormats, "List of formats for the ratio and speed tests")
	f2 := flag.String("codecs", "", "List of codecs to include; all if empty")
	f3 := flag.String("paths", ".", "List of paths to search for test files")
	f4 := flag.String("files", defaultFiles(), "List of corpora or input files")
	f5 := flag.String("levels", defaultLevels, "List of levels; the maximum code width for LZW")
	f6 := flag.String("sizes", defaultSizes, "List of input sizes")
	f7 := flag.String("csv", "", "Write every sample to this CSV file")
	flag.Parse()

	var sep = regexp.MustCompile("[,:]")
	split := func(s string) []string {
		if s == "" {
			return nil
		}
		return sep.Split(s, -1)
	}
	parseInts := func(flagName, s string) []int {
		var ns []int
		for _, v := range split(s) {
			n, err := unitconv.ParsePrefix(v, unitconv.AutoParse)
			if err != nil {
				log.Fatalf("invalid -%s value %q: %v", flagName, v, err)
			}
			ns = append(ns, int(n))
		}
		return ns
	}

	var fmts []int
	for _, s := range split(*f1) {
		enum, ok := formatEnum(s)
		if !ok {
			log.Fatalf("invalid format %q", s)
		}
		fmts = append(fmts, enum)
	}
	codecs := split(*f2)
	bench.Paths = split(*f3)
	suite := bench.Suite{
		Files:  split(*f4),
		Levels: parseInts("levels", *f5),
		Sizes:  parseInts("sizes", *f6),
	}

	var rec recorder
	ts := time.Now()
	for _, t := range split(*f0) {
		switch t {
		case "modes":
			runModes(suite, &rec)
		case "ratio", "speed":
			for _, f := range fmts {
				runFormat(t, f, suite, codecs, &rec)
			}
		default:
			log.Fatalf("invalid test %q", t)
		}
	}
	fmt.Printf("RUNTIME: %v\n", time.Since(ts))

	if *f7 != "" {
		if err := rec.writeFile(*f7); err != nil {
			log.Fatalf("cannot write %s: %v", *f7, err)
		}
	}
}

func defaultFiles() string {
	var s []string
	for _, c := range testutil.Corpora {
		s = append(s, c.Name)
	}
	return strings.Join(s, ",")
}

func formatEnum(name string) (int, bool) {
	for _, f := range formats {
		if f.name == name {
			return f.enum, true
		}
	}
	return 0, false
}

func formatName(enum int) string {
	for _, f := range formats {
		if f.enum == enum {
			return f.name
		}
	}
	return fmt.Sprint(enum)
}

// newTicker returns a function that prints progress for total samples.
func newTicker(total int) func() {
	var cnt int
	return func() {
		pct := 100.0 * float64(cnt) / float64(total)
		fmt.Printf("\t[%6.2f%%] %d of %d\r", pct, cnt, total)
		cnt++
	}
}

// runModes prints, for every input, the space saving of the static and
// adaptive modes at each maximum code width, and how many percentage points
// the adaptive mode gains over the static mode.
func runModes(s bench.Suite, rec *recorder) {
	fmt.Println("BENCHMARK: lzw:modes")
	s.Tick = newTicker(2 * len(s.Files) * len(s.Levels) * len(s.Sizes))
	samples, names := s.CompareModes()

	head := []string{"input"}
	for _, l := range s.Levels {
		head = append(head, fmt.Sprintf("static:%d", l), fmt.Sprintf("adaptive:%d", l), "gain", "dict")
	}
	rows := [][]string{head}
	for i, row := range samples {
		cells := []string{names[i]}
		for j := 0; j < len(row); j += 2 {
			st, ad := row[j], row[j+1]
			gain := ""
			if st.Err == nil && ad.Err == nil {
				gain = fmt.Sprintf("%+.2f", ad.Rate-st.Rate)
			}
			cells = append(cells, rateCell(st), rateCell(ad), gain, dictCell(ad))
		}
		rows = append(rows, cells)
		rec.add("modes", bench.FormatLZW, names[i], row...)
	}
	printTable(rows)
	fmt.Println()
}

// runFormat prints the ratio or speed test for all selected codecs of f.
func runFormat(test string, f int, s bench.Suite, names []string, rec *recorder) {
	fmt.Printf("BENCHMARK: %s:%s\n", formatName(f), test)
	cs := bench.Codecs(f, names...)
	if len(cs) == 0 {
		fmt.Print("\tSKIP: There are no codecs available.\n\n")
		return
	}
	s.Speed = test == "speed"
	s.Tick = newTicker(len(cs) * len(s.Files) * len(s.Levels) * len(s.Sizes))
	samples, inputs := s.Run(cs)

	head := []string{"input"}
	for _, c := range cs {
		switch {
		case s.Speed:
			head = append(head, c.Name+" enc MB/s", "dec MB/s")
		case f == bench.FormatLZW:
			head = append(head, c.Name+" rate", "dict")
		default:
			head = append(head, c.Name+" rate")
		}
	}
	rows := [][]string{head}
	for i, row := range samples {
		cells := []string{inputs[i]}
		for _, smp := range row {
			switch {
			case s.Speed:
				cells = append(cells, speedCell(smp.Err, smp.EncSpeed), speedCell(smp.Err, smp.DecSpeed))
			case f == bench.FormatLZW:
				cells = append(cells, rateCell(smp), dictCell(smp))
			default:
				cells = append(cells, rateCell(smp))
			}
		}
		rows = append(rows, cells)
		rec.add(test, f, inputs[i], row...)
	}
	printTable(rows)
	fmt.Println()
}

func rateCell(s bench.Sample) string {
	if s.Err != nil {
		return "error"
	}
	return fmt.Sprintf("%.2f%%", s.Rate)
}

func dictCell(s bench.Sample) string {
	if s.Err != nil {
		return ""
	}
	return fmt.Sprint(s.DictSize)
}

func speedCell(err error, v float64) string {
	if err != nil {
		return "error"
	}
	if v == 0 {
		return ""
	}
	return fmt.Sprintf("%.2f", v)
}

// printTable prints rows with the first column left-aligned and every other
// column right-aligned.
func printTable(rows [][]string) {
	var widths []int
	for _, row := range rows {
		for i, s := range row {
			if i == len(widths) {
				widths = append(widths, 0)
			}
			if widths[i] < len(s) {
				widths[i] = len(s)
			}
		}
	}
	for _, row := range rows {
		var sb strings.Builder
		sb.WriteString("\t")
		for i, s := range row {
			pad := strings.Repeat(" ", widths[i]-len(s))
			if i == 0 {
				sb.WriteString(s + pad)
			} else {
				sb.WriteString("  " + pad + s)
			}
		}
		fmt.Println(sb.String())
	}
}

// recorder collects samples as CSV records.
type recorder struct {
	records [][]string
}

func (r *recorder) add(test string, f int, input string, samples ...bench.Sample) {
	for _, s := range samples {
		if s.Err != nil {
			continue
		}
		r.records = append(r.records, []string{
			test,
			formatName(f),
			input,
			s.Codec,
			fmt.Sprint(s.Level),
			fmt.Sprint(s.InputBits),
			fmt.Sprint(s.OutputBits),
			fmt.Sprintf("%.4f", s.Rate),
			fmt.Sprint(s.DictSize),
			fmt.Sprintf("%.2f", s.EncSpeed),
			fmt.Sprintf("%.2f", s.DecSpeed),
		})
	}
}

func (r *recorder) writeFile(name string) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	w.Write(csvHeader)
	w.WriteAll(r.records)
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
