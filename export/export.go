// export/export.go
// Copyright(c) 2022-2025 arusti contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package export flattens resolved sequences into key/value records and
// writes them as JSON or msgpack.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/arusti/arusti/aero"

	"github.com/iancoleman/orderedmap"
	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"
)

var (
	ErrCombining     = errors.New("Unresolved combining element cannot be exported")
	ErrUnknownFormat = errors.New("Unknown output format")
)

type Format int

const (
	JSON Format = iota
	Msgpack
)

func ParseFormat(s string) (Format, error) {
	switch s {
	case "json":
		return JSON, nil
	case "msgpack":
		return Msgpack, nil
	default:
		return 0, fmt.Errorf("%s: %w", s, ErrUnknownFormat)
	}
}

func (f Format) String() string {
	switch f {
	case JSON:
		return "json"
	case Msgpack:
		return "msgpack"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

type Options struct {
	// Compress wraps the output in a zstd stream.
	Compress bool
	// Indent pretty-prints JSON output.
	Indent bool
}

// ElementMap returns the record for e with its keys in a fixed order:
// type, attitude, main_angle, aux_angle, roll_type and matching. The
// roll_type key is only present for rolled elements.
func ElementMap(e aero.Element) (*orderedmap.OrderedMap, error) {
	if e.Type.Kind == aero.Combining {
		return nil, ErrCombining
	}

	m := orderedmap.New()
	m.Set("type", e.Type.Kind.String())
	m.Set("attitude", e.Attitude.String())
	m.Set("main_angle", e.MainAngle)
	m.Set("aux_angle", e.AuxAngle)
	if e.RollType != aero.RollNone {
		m.Set("roll_type", e.RollType.String())
	}
	m.Set("matching", e.Matching)
	return m, nil
}

// SequenceMaps returns one list of element records per figure.
func SequenceMaps(seq aero.Sequence) ([][]*orderedmap.OrderedMap, error) {
	figs := make([][]*orderedmap.OrderedMap, len(seq.Figures))
	for i, fig := range seq.Figures {
		for j, e := range fig.Elements {
			m, err := ElementMap(e)
			if err != nil {
				return nil, fmt.Errorf("figure %d element %d: %w", i, j, err)
			}
			figs[i] = append(figs[i], m)
		}
	}
	return figs, nil
}

// orderedRecord encodes an ordered map as a msgpack map, preserving its
// key order.
type orderedRecord struct {
	m *orderedmap.OrderedMap
}

var _ msgpack.CustomEncoder = orderedRecord{}

func (r orderedRecord) EncodeMsgpack(enc *msgpack.Encoder) error {
	keys := r.m.Keys()
	if err := enc.EncodeMapLen(len(keys)); err != nil {
		return err
	}
	for _, k := range keys {
		v, _ := r.m.Get(k)
		if err := enc.EncodeString(k); err != nil {
			return err
		}
		if err := enc.Encode(v); err != nil {
			return err
		}
	}
	return nil
}

// Encode writes seq to w in the given format.
func Encode(w io.Writer, seq aero.Sequence, format Format, opts Options) error {
	figs, err := SequenceMaps(seq)
	if err != nil {
		return err
	}

	var zw *zstd.Encoder
	if opts.Compress {
		if zw, err = zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBestCompression)); err != nil {
			return fmt.Errorf("failed to create zstd writer: %w", err)
		}
		defer zw.Close()
		w = zw
	}

	switch format {
	case JSON:
		enc := json.NewEncoder(w)
		if opts.Indent {
			enc.SetIndent("", "  ")
		}
		err = enc.Encode(figs)

	case Msgpack:
		records := make([][]orderedRecord, len(figs))
		for i, fig := range figs {
			for _, m := range fig {
				records[i] = append(records[i], orderedRecord{m})
			}
		}
		err = msgpack.NewEncoder(w).Encode(records)

	default:
		err = fmt.Errorf("%s: %w", format, ErrUnknownFormat)
	}
	if err != nil {
		return err
	}

	if zw != nil {
		if err := zw.Close(); err != nil {
			return fmt.Errorf("failed to close zstd writer: %w", err)
		}
	}
	return nil
}
