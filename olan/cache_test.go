// olan/cache_test.go
// Copyright(c) 2022-2025 arusti contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package olan

import (
	"errors"
	"sync"
	"testing"
)

func TestCacheReturnsCopies(t *testing.T) {
	c := NewCache(8, 0, nil)

	a, err := c.Parse("1b1 o")
	if err != nil {
		t.Fatal(err)
	}
	a.Figures[0].Elements[1].MainAngle = 12345
	a.Figures = a.Figures[:1]

	b, err := c.Parse("1b1 o")
	if err != nil {
		t.Fatal(err)
	}
	if len(b.Figures) != 2 {
		t.Fatalf("got %d figures, expected 2", len(b.Figures))
	}
	if b.Figures[0].Elements[1].MainAngle != 90 {
		t.Errorf("got %d, expected 90: cached sequence was modified", b.Figures[0].Elements[1].MainAngle)
	}
	if c.Len() != 1 {
		t.Errorf("got %d cached sequences, expected 1", c.Len())
	}
}

func TestCacheSkipsErrors(t *testing.T) {
	c := NewCache(8, 0, nil)
	if _, err := c.Parse("d("); !errors.Is(err, ErrSyntax) {
		t.Errorf("got %v, expected a syntax error", err)
	}
	if c.Len() != 0 {
		t.Errorf("got %d cached sequences, expected 0", c.Len())
	}
}

func TestCacheEviction(t *testing.T) {
	c := NewCache(2, 0, nil)
	for _, s := range []string{"o", "d", "v"} {
		if _, err := c.Parse(s); err != nil {
			t.Fatal(err)
		}
	}
	if c.Len() != 2 {
		t.Errorf("got %d cached sequences, expected 2", c.Len())
	}
	c.Purge()
	if c.Len() != 0 {
		t.Errorf("got %d cached sequences after purge, expected 0", c.Len())
	}
}

func TestCacheConcurrent(t *testing.T) {
	c := NewCache(4, 0, nil)
	inputs := []string{"o", "1q", "h", "-d-", "1b1"}

	var wg sync.WaitGroup
	for i := range 32 {
		wg.Go(func() {
			text := inputs[i%len(inputs)]
			seq, err := c.Parse(text)
			if err != nil {
				t.Errorf("%q: %v", text, err)
				return
			}
			seq.Figures[0].Elements[0].MainAngle = i
		})
	}
	wg.Wait()

	seq, err := c.Parse("o")
	if err != nil {
		t.Fatal(err)
	}
	if seq.Figures[0].Elements[0].MainAngle != 0 {
		t.Errorf("got %d, expected 0", seq.Figures[0].Elements[0].MainAngle)
	}
}
