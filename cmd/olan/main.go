// cmd/olan/main.go
// Copyright(c) 2022-2025 arusti contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// olan resolves OLAN aerobatic sequences into figures and elements and
// prints or exports the result.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"runtime"
	"time"

	"github.com/arusti/arusti/aero"
	"github.com/arusti/arusti/export"
	"github.com/arusti/arusti/log"
	"github.com/arusti/arusti/olan"
	"github.com/arusti/arusti/util"

	"github.com/apenwarr/fixconsole"
	"github.com/goforj/godump"
	"golang.org/x/sync/errgroup"
)

var (
	logLevel   = flag.String("loglevel", "info", "logging level: debug, info, warn, error")
	logDir     = flag.String("logdir", "", "log file directory")
	xmlTag     = flag.String("xmltag", "", "XML element holding the sequence (default \""+util.DefaultXMLTag+"\" for .xml and .seq files)")
	format     = flag.String("format", "dump", "output format: dump, json, msgpack")
	outFile    = flag.String("o", "", "write output to this file rather than stdout")
	compress   = flag.Bool("zstd", false, "zstd-compress json and msgpack output")
	indent     = flag.Bool("indent", false, "indent json output")
	lint       = flag.Bool("lint", false, "check the sequences and report problems instead of printing them")
	nJobs      = flag.Int("j", runtime.NumCPU(), "number of sequences to resolve concurrently")
	cacheSize  = flag.Int("cachesize", 256, "number of resolved sequences to keep in memory")
	diskCache  = flag.Int64("diskcache", 0, "cache resolved sequences on disk, using at most this many bytes (0 disables)")
	expr       = flag.String("e", "", "resolve this sequence rather than reading files")
	cpuprofile = flag.String("cpuprofile", "", "write CPU profile to file")
	memprofile = flag.String("memprofile", "", "write memory profile to this file")
)

// diskCacheVersion must change whenever the resolved form of a sequence
// does.
const diskCacheVersion = "sequences-v1"

var ErrCrashed = errors.New("Crashed while resolving sequence")

type input struct {
	name string
	path string // empty for -e
	text string
}

type result struct {
	seq aero.Sequence
	err error
}

func main() {
	os.Exit(run())
}

func run() (status int) {
	// Reported if a panic is caught below.
	status = 1

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: olan [flags] [sequence files...]\nwhere [flags] may be:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := fixconsole.FixConsoleIfNeeded(); err != nil {
		fmt.Printf("FixConsole: %v\n", err)
	}

	lg := log.New(*logLevel, *logDir)
	defer lg.CatchAndReportCrash()

	profiler, err := util.CreateProfiler(*cpuprofile, *memprofile)
	if err != nil {
		lg.Errorf("%v", err)
	}
	defer profiler.Cleanup(lg)

	var inputs []input
	if *expr != "" {
		inputs = append(inputs, input{name: "-e", text: *expr})
	}
	for _, path := range flag.Args() {
		inputs = append(inputs, input{name: path, path: path})
	}
	if len(inputs) == 0 {
		flag.Usage()
		return 2
	}

	var outFormat export.Format
	if *format != "dump" {
		if outFormat, err = export.ParseFormat(*format); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 2
		}
	}

	var dc *util.DiskCache
	if *diskCache > 0 {
		if dc, err = util.NewDiskCache(diskCacheVersion, *diskCache); err != nil {
			lg.Warnf("disk cache disabled: %v", err)
		}
	}

	results := resolveAll(inputs, dc, profiler, lg)

	var w io.Writer = os.Stdout
	if *outFile != "" {
		f, err := os.Create(*outFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		defer f.Close()
		w = f
	}
	bw := bufio.NewWriter(w)

	var e util.ErrorLogger
	for i, in := range inputs {
		e.Push(in.name)
		if err := results[i].err; err != nil {
			var se *olan.SyntaxError
			if errors.As(err, &se) {
				e.ErrorString("%v\n%s", err, se.Diagnostic())
			} else {
				e.Error(err)
			}
		} else if *lint {
			olan.Lint(results[i].seq, &e)
		} else if err := write(bw, in, results[i].seq, outFormat); err != nil {
			e.Error(err)
		}
		e.Pop()
	}

	if err := bw.Flush(); err != nil {
		e.Error(err)
	}

	if dc != nil {
		if n, err := dc.Cull(); err != nil {
			lg.Warnf("culling disk cache: %v", err)
		} else if n > 0 {
			lg.Infof("removed %d sequences from the disk cache", n)
		}
	}

	if e.HaveErrors() {
		e.PrintErrors(os.Stderr, lg)
		if *lint {
			fmt.Fprintf(os.Stderr, "%d problems in %d figures\n", e.NumErrors(), e.Figures())
		}
		return 1
	}
	lg.Infof("resolved %d sequences in %s", len(inputs), time.Since(lg.Start))
	return 0
}

// resolveAll loads and resolves the inputs concurrently. Results are
// returned in the order of inputs.
func resolveAll(inputs []input, dc *util.DiskCache, profiler *util.Profiler, lg *log.Logger) []result {
	cache := olan.NewCache(*cacheSize, 0, lg)
	results := make([]result, len(inputs))

	var eg errgroup.Group
	eg.SetLimit(max(*nJobs, 1))
	for i, in := range inputs {
		eg.Go(func() error {
			defer lg.CatchAndReportCrash()
			defer profiler.Time(in.name)()

			// Left in place if resolving panics.
			results[i].err = fmt.Errorf("%s: %w", in.name, ErrCrashed)

			results[i].seq, results[i].err = resolve(in, cache, dc, lg)
			return nil
		})
	}
	eg.Wait()

	return results
}

func resolve(in input, cache *olan.Cache, dc *util.DiskCache, lg *log.Logger) (aero.Sequence, error) {
	text := in.text
	if in.path != "" {
		var err error
		if text, err = util.LoadSequence(in.path, *xmlTag); err != nil {
			return aero.Sequence{}, err
		}
	}

	if dc != nil {
		if seq, err := dc.Get(text); err == nil {
			lg.Debugf("%s: found in disk cache", in.name)
			return seq, nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			lg.Warnf("%s: disk cache: %v", in.name, err)
		}
	}

	seq, err := cache.Parse(text)
	if err != nil {
		return aero.Sequence{}, err
	}

	if dc != nil {
		if err := dc.Put(text, seq); err != nil {
			lg.Warnf("%s: unable to cache: %v", in.name, err)
		}
	}
	return seq, nil
}

func write(w io.Writer, in input, seq aero.Sequence, f export.Format) error {
	if *format == "dump" {
		fmt.Fprintf(w, "%s: %d figures\n", in.name, len(seq.Figures))
		for i, fig := range seq.Figures {
			fmt.Fprintf(w, "%3d  %s\n", i+1, fig)
		}
		godump.Fdump(w, seq)
		return nil
	}
	return export.Encode(w, seq, f, export.Options{Compress: *compress, Indent: *indent})
}
