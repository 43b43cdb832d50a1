// olan/cache.go
// Copyright(c) 2022-2025 arusti contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package olan

import (
	"time"

	"github.com/arusti/arusti/aero"
	"github.com/arusti/arusti/log"

	"github.com/brunoga/deep"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Cache memoizes resolved sequences by their source text. It is safe for
// concurrent use. Sequences handed out are private copies, so callers may
// modify them.
type Cache struct {
	parser *Parser
	lru    *expirable.LRU[string, aero.Sequence]
	lg     *log.Logger
}

// NewCache returns a Cache holding up to size sequences, each for at most
// ttl; zero for either means no limit.
func NewCache(size int, ttl time.Duration, lg *log.Logger) *Cache {
	return &Cache{
		parser: NewParser(lg),
		lru:    expirable.NewLRU[string, aero.Sequence](size, nil, ttl),
		lg:     lg,
	}
}

// Parse returns the resolved sequence for text, parsing it on a miss.
// Inputs that fail to parse are not cached.
func (c *Cache) Parse(text string) (aero.Sequence, error) {
	if seq, ok := c.lru.Get(text); ok {
		c.lg.Debugf("%q: cache hit", text)
		return deep.MustCopy(seq), nil
	}

	seq, err := c.parser.Parse(text)
	if err != nil {
		return aero.Sequence{}, err
	}
	c.lru.Add(text, seq)
	return deep.MustCopy(seq), nil
}

func (c *Cache) Len() int {
	return c.lru.Len()
}

func (c *Cache) Purge() {
	c.lru.Purge()
}
