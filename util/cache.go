// util/cache.go
// Copyright(c) 2022-2025 arusti contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/arusti/arusti/aero"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"
)

var ErrCacheMismatch = errors.New("Cached sequence is for different text")

// DiskCache keeps resolved sequences in the user's cache directory across
// runs, one msgpack encoded, zstd compressed file per sequence text.
// Entries live in a directory named for the version of the resolved
// form, so changing the version orphans the old entries until they are
// culled.
type DiskCache struct {
	root, dir string
	maxBytes  int64
}

type diskCacheEntry struct {
	Text     string        `msgpack:"text"`
	Sequence aero.Sequence `msgpack:"sequence"`
}

// NewDiskCache returns a cache for the given version of resolved
// sequences that Cull keeps within maxBytes.
func NewDiskCache(version string, maxBytes int64) (*DiskCache, error) {
	cd, err := os.UserCacheDir()
	if err != nil {
		return nil, err
	}
	root := filepath.Join(cd, "arusti")
	return &DiskCache{root: root, dir: filepath.Join(root, version), maxBytes: maxBytes}, nil
}

func (c *DiskCache) path(text string) string {
	h := sha256.Sum256([]byte(text))
	return filepath.Join(c.dir, hex.EncodeToString(h[:])+".msgpack.zst")
}

// Get returns the sequence stored for text. A miss returns an error that
// wraps fs.ErrNotExist. A hit marks the entry as recently used.
func (c *DiskCache) Get(text string) (aero.Sequence, error) {
	path := c.path(text)
	f, err := os.Open(path)
	if err != nil {
		return aero.Sequence{}, err
	}
	defer f.Close()

	zr, err := zstd.NewReader(f, zstd.WithDecoderConcurrency(0))
	if err != nil {
		return aero.Sequence{}, err
	}
	defer zr.Close()

	var entry diskCacheEntry
	if err := msgpack.NewDecoder(zr).Decode(&entry); err != nil {
		return aero.Sequence{}, err
	}
	if entry.Text != text {
		return aero.Sequence{}, ErrCacheMismatch
	}

	now := time.Now()
	_ = os.Chtimes(path, now, now)
	return entry.Sequence, nil
}

// Put stores seq as the resolved form of text.
func (c *DiskCache) Put(text string, seq aero.Sequence) error {
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return err
	}

	// Written under a temporary name so concurrent readers never see a
	// partial entry.
	f, err := os.CreateTemp(c.dir, "put-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())
	defer f.Close()

	zw, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return err
	}
	if err := msgpack.NewEncoder(zw).Encode(diskCacheEntry{Text: text, Sequence: seq}); err != nil {
		zw.Close()
		return err
	}
	if err := zw.Close(); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), c.path(text))
}

// Cull removes the least recently used entries of every version until the
// cache takes at most the size it was created with. It returns the number
// of entries removed.
func (c *DiskCache) Cull() (int, error) {
	if _, err := os.Stat(c.root); errors.Is(err, fs.ErrNotExist) {
		return 0, nil // Nothing to cull
	}

	type fileInfo struct {
		path    string
		size    int64
		modTime time.Time
	}
	var files []fileInfo
	var totalSize int64

	err := filepath.WalkDir(c.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if info, err := d.Info(); err == nil {
			files = append(files, fileInfo{path: path, size: info.Size(), modTime: info.ModTime()})
			totalSize += info.Size()
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	slices.SortFunc(files, func(a, b fileInfo) int {
		return a.modTime.Compare(b.modTime)
	})

	removed := 0
	for len(files) > 0 && totalSize > c.maxBytes {
		if err := os.Remove(files[0].path); err == nil {
			totalSize -= files[0].size
			removed++
		}
		files = files[1:]
	}
	return removed, nil
}
