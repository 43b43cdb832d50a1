// util/util_test.go
// Copyright(c) 2022-2025 arusti contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/arusti/arusti/aero"

	"github.com/klauspost/compress/zstd"
)

func writeFile(t *testing.T, name string, contents []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, contents, 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func compress(t *testing.T, b []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw, err := zstd.NewWriter(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := zw.Write(b); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

const seqXML = `<?xml version="1.0"?>
<sequence>
  <class>powered</class>
  <category>Unlimited</category>
  <sequence_text> /dq v .''s.''irp...'-~ </sequence_text>
  <notes>1q h</notes>
</sequence>`

func TestLoadSequence(t *testing.T) {
	for _, test := range []struct {
		name     string
		file     string
		contents []byte
		tag      string
		expected string
	}{
		{"text", "seq.olan", []byte("# unlimited known\n/dq v\n\n  1q h  \n"), "", "/dq v 1q h"},
		{"xml by extension", "seq.seq", []byte(seqXML), "", "/dq v .''s.''irp...'-~"},
		{"xml by tag", "seq.dat", []byte(seqXML), "notes", "1q h"},
		{"zstd text", "seq.olan.zst", compress(t, []byte("o d")), "", "o d"},
		{"zstd xml", "seq.xml.zst", compress(t, []byte(seqXML)), "", "/dq v .''s.''irp...'-~"},
	} {
		t.Run(test.name, func(t *testing.T) {
			got, err := LoadSequence(writeFile(t, test.file, test.contents), test.tag)
			if err != nil {
				t.Fatal(err)
			}
			if got != test.expected {
				t.Errorf("got %q, expected %q", got, test.expected)
			}
		})
	}
}

func TestLoadSequenceErrors(t *testing.T) {
	for _, test := range []struct {
		name     string
		file     string
		contents []byte
		tag      string
	}{
		{"empty text", "empty.olan", []byte("# nothing\n\n"), ""},
		{"missing tag", "seq.xml", []byte(seqXML), "figures"},
		{"empty tag", "seq.xml", []byte("<sequence><sequence_text> </sequence_text></sequence>"), ""},
	} {
		t.Run(test.name, func(t *testing.T) {
			if _, err := LoadSequence(writeFile(t, test.file, test.contents), test.tag); !errors.Is(err, ErrNoSequence) {
				t.Errorf("got %v, expected %v", err, ErrNoSequence)
			}
		})
	}

	if _, err := LoadSequence(filepath.Join(t.TempDir(), "missing.olan"), ""); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("got %v, expected %v", err, os.ErrNotExist)
	}
}

var errInvalid = errors.New("invalid")

func TestErrorLogger(t *testing.T) {
	var e ErrorLogger
	if e.HaveErrors() {
		t.Errorf("new ErrorLogger has errors")
	}

	e.Push("seq.olan")
	e.PushFigure(2)
	e.ErrorString("bad %s", "roll")
	e.PushElement(4)
	e.Error(errInvalid)
	e.Pop()
	e.Pop()
	e.Error(errors.New("oops"))
	e.Pop()
	e.Push("other.olan")
	e.PushFigure(2)
	e.ErrorString("bad turn")
	e.Pop()
	e.Pop()

	if e.CurrentDepth() != 0 {
		t.Errorf("got depth %d, expected 0", e.CurrentDepth())
	}
	expected := "seq.olan / figure 2: bad roll\nseq.olan / figure 2 / element 4: invalid\nseq.olan: oops\n" +
		"other.olan / figure 2: bad turn"
	if e.String() != expected {
		t.Errorf("got %q, expected %q", e.String(), expected)
	}

	problems := e.Problems()
	if len(problems) != 4 {
		t.Fatalf("got %d problems, expected 4", len(problems))
	}
	for i, loc := range [][2]int{{2, 0}, {2, 4}, {0, 0}, {2, 0}} {
		if problems[i].Figure != loc[0] || problems[i].Element != loc[1] {
			t.Errorf("problem %d: got figure %d element %d, expected %v", i, problems[i].Figure, problems[i].Element, loc)
		}
	}
	if !errors.Is(problems[1].Err, errInvalid) {
		t.Errorf("got %v, expected %v", problems[1].Err, errInvalid)
	}
	if e.Figures() != 2 {
		t.Errorf("got %d figures with problems, expected 2", e.Figures())
	}

	var buf strings.Builder
	e.PrintErrors(&buf, nil)
	if buf.String() != expected+"\n" {
		t.Errorf("got %q, expected %q", buf.String(), expected+"\n")
	}

	var nilLogger *ErrorLogger
	if nilLogger.HaveErrors() || nilLogger.NumErrors() != 0 || nilLogger.CurrentDepth() != 0 {
		t.Errorf("nil ErrorLogger reports state")
	}
}

func TestDiskCache(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", dir)
	t.Setenv("HOME", dir)
	t.Setenv("LocalAppData", dir)

	loop := aero.Sequence{Figures: []aero.Figure{{Elements: []aero.Element{
		aero.NewLine(0), aero.NewRadius(360), aero.NewLine(0)}}}}
	line := aero.Sequence{Figures: []aero.Figure{{Elements: []aero.Element{aero.NewLine(0)}}}}

	c, err := NewDiskCache("test-v1", 1<<20)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Get("o"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("got %v for an empty cache, expected %v", err, fs.ErrNotExist)
	}

	if err := c.Put("o", loop); err != nil {
		t.Fatal(err)
	}
	if err := c.Put("0", line); err != nil {
		t.Fatal(err)
	}
	got, err := c.Get("o")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, loop) {
		t.Errorf("got %v, expected %v", got, loop)
	}

	// An entry found under another text's name is not returned.
	if err := os.Rename(c.path("0"), c.path("d")); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Get("d"); !errors.Is(err, ErrCacheMismatch) {
		t.Errorf("got %v, expected %v", err, ErrCacheMismatch)
	}

	// A newer version sees none of the old entries.
	c2, err := NewDiskCache("test-v2", 0)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c2.Get("o"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("got %v from a different version, expected %v", err, fs.ErrNotExist)
	}

	// Culling to zero bytes removes the entries of every version.
	if n, err := c2.Cull(); err != nil || n != 2 {
		t.Errorf("got %d removed / %v, expected 2", n, err)
	}
	if _, err := c.Get("o"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("got %v after culling, expected %v", err, fs.ErrNotExist)
	}
}

func TestDiskCacheCullsLeastRecentlyUsed(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", dir)
	t.Setenv("HOME", dir)
	t.Setenv("LocalAppData", dir)

	c, err := NewDiskCache("test-v1", 0)
	if err != nil {
		t.Fatal(err)
	}
	seq := aero.Sequence{Figures: []aero.Figure{{Elements: []aero.Element{aero.NewLine(0)}}}}
	old := time.Now().Add(-time.Hour)
	for i, text := range []string{"0 0", "0 ~0"} {
		if err := c.Put(text, seq); err != nil {
			t.Fatal(err)
		}
		stamp := old.Add(time.Duration(i) * time.Minute)
		if err := os.Chtimes(c.path(text), stamp, stamp); err != nil {
			t.Fatal(err)
		}
	}

	// Reading the older entry makes the other one the least recently used.
	if _, err := c.Get("0 0"); err != nil {
		t.Fatal(err)
	}
	fi, err := os.Stat(c.path("0 0"))
	if err != nil {
		t.Fatal(err)
	}
	c.maxBytes = fi.Size()

	if n, err := c.Cull(); err != nil || n != 1 {
		t.Fatalf("got %d removed / %v, expected 1", n, err)
	}
	if _, err := c.Get("0 0"); err != nil {
		t.Errorf("recently used entry was culled: %v", err)
	}
	if _, err := c.Get("0 ~0"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("got %v, expected %v", err, fs.ErrNotExist)
	}
}

func TestProfilerTimings(t *testing.T) {
	p, err := CreateProfiler("", "")
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Go(func() {
			defer p.Time(fmt.Sprintf("seq%d", i))()
		})
	}
	wg.Wait()
	if got := len(p.Slowest(100)); got != 8 {
		t.Errorf("got %d timings, expected 8", got)
	}

	p.timings = []Timing{{"o", time.Millisecond}, {"h", 20 * time.Millisecond}, {"d", 5 * time.Millisecond}}
	slowest := p.Slowest(2)
	if len(slowest) != 2 || slowest[0].Name != "h" || slowest[1].Name != "d" {
		t.Errorf("got %v, expected h then d", slowest)
	}
	p.Cleanup(nil)

	var nilProfiler *Profiler
	nilProfiler.Time("x")()
	nilProfiler.Cleanup(nil)
	if nilProfiler.Slowest(1) != nil {
		t.Errorf("nil Profiler has timings")
	}
}
