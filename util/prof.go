// util/prof.go
// Copyright(c) 2022-2025 arusti contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"cmp"
	"fmt"
	"os"
	"runtime/pprof"
	"slices"
	"sync"
	"time"

	"github.com/arusti/arusti/log"
)

// Profiler profiles a batch run over many sequences: optionally with
// pprof CPU and heap profiles, and always by timing each sequence.
type Profiler struct {
	cpu, mem *os.File

	mu      sync.Mutex
	timings []Timing
}

type Timing struct {
	Name     string
	Duration time.Duration
}

// CreateProfiler starts CPU profiling to the file cpu and arranges for a
// heap profile to be written to mem at Cleanup. Either may be empty.
func CreateProfiler(cpu, mem string) (*Profiler, error) {
	p := &Profiler{}

	var err error
	if cpu != "" {
		if p.cpu, err = os.Create(cpu); err != nil {
			return nil, fmt.Errorf("%s: unable to create CPU profile file: %w", cpu, err)
		} else if err = pprof.StartCPUProfile(p.cpu); err != nil {
			p.cpu.Close()
			return nil, fmt.Errorf("unable to start CPU profile: %w", err)
		}
	}

	if mem != "" {
		if p.mem, err = os.Create(mem); err != nil {
			p.Cleanup(nil)
			return nil, fmt.Errorf("%s: unable to create memory profile file: %w", mem, err)
		}
	}

	return p, nil
}

// Time starts timing the named sequence; the returned function stops it.
// It may be used concurrently.
func (p *Profiler) Time(name string) func() {
	if p == nil {
		return func() {}
	}
	start := time.Now()
	return func() {
		d := time.Since(start)
		p.mu.Lock()
		defer p.mu.Unlock()
		p.timings = append(p.timings, Timing{Name: name, Duration: d})
	}
}

// Slowest returns up to n timings, slowest first.
func (p *Profiler) Slowest(n int) []Timing {
	if p == nil {
		return nil
	}
	p.mu.Lock()
	t := slices.Clone(p.timings)
	p.mu.Unlock()

	slices.SortStableFunc(t, func(a, b Timing) int {
		return cmp.Compare(b.Duration, a.Duration)
	})
	return t[:min(n, len(t))]
}

// Cleanup stops profiling, writes the heap profile and logs the slowest
// sequences to lg, which may be nil.
func (p *Profiler) Cleanup(lg *log.Logger) {
	if p == nil {
		return
	}
	if p.cpu != nil {
		pprof.StopCPUProfile()
		p.cpu.Close()
		p.cpu = nil
	}
	if p.mem != nil {
		if err := pprof.WriteHeapProfile(p.mem); err != nil {
			fmt.Fprintf(os.Stderr, "unable to write memory profile file: %v\n", err)
		}
		p.mem.Close()
		p.mem = nil
	}

	for _, t := range p.Slowest(5) {
		lg.Debugf("%s: resolved in %s", t.Name, t.Duration)
	}
}
