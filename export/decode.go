// export/decode.go
// Copyright(c) 2022-2025 arusti contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package export

import (
	"errors"
	"fmt"
	"io"

	"github.com/arusti/arusti/aero"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"
)

var ErrUnknownName = errors.New("Unknown name in record")

// Record is an exported element as read back from msgpack.
type Record struct {
	Type      string `msgpack:"type" json:"type"`
	Attitude  string `msgpack:"attitude" json:"attitude"`
	MainAngle int    `msgpack:"main_angle" json:"main_angle"`
	AuxAngle  int    `msgpack:"aux_angle" json:"aux_angle"`
	RollType  string `msgpack:"roll_type,omitempty" json:"roll_type,omitempty"`
	Matching  int    `msgpack:"matching" json:"matching"`
}

// DecodeMsgpack reads figures written by Encode in Msgpack format.
func DecodeMsgpack(r io.Reader, compressed bool) ([][]Record, error) {
	if compressed {
		zr, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(0))
		if err != nil {
			return nil, fmt.Errorf("failed to create zstd reader: %w", err)
		}
		defer zr.Close()
		r = zr
	}

	var figs [][]Record
	if err := msgpack.NewDecoder(r).Decode(&figs); err != nil {
		return nil, fmt.Errorf("failed to decode sequence: %w", err)
	}
	return figs, nil
}

func lookupName[T fmt.Stringer](name string, values []T) (T, error) {
	for _, v := range values {
		if v.String() == name {
			return v, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("%q: %w", name, ErrUnknownName)
}

var (
	elementKinds = []aero.ElementKind{aero.Line, aero.Radius, aero.Turn, aero.Stall}
	attitudes    = []aero.Attitude{aero.Normal, aero.Inverted, aero.KnifeEdge}
	rollTypes    = []aero.RollType{aero.RollStandard, aero.RollFlick, aero.RollInvertedFlick, aero.RollSpin,
		aero.RollInvertedSpin, aero.RollHesitationHalves, aero.RollHesitationQuarters, aero.RollHesitationEighths}
)

// Element converts the record back to an element.
func (r Record) Element() (aero.Element, error) {
	kind, err := lookupName(r.Type, elementKinds)
	if err != nil {
		return aero.Element{}, err
	}
	att, err := lookupName(r.Attitude, attitudes)
	if err != nil {
		return aero.Element{}, err
	}
	rt := aero.RollNone
	if r.RollType != "" {
		if rt, err = lookupName(r.RollType, rollTypes); err != nil {
			return aero.Element{}, err
		}
	}

	return aero.Element{
		Type:      aero.ElementType{Kind: kind},
		Attitude:  att,
		MainAngle: r.MainAngle,
		AuxAngle:  r.AuxAngle,
		RollType:  rt,
		Matching:  r.Matching,
	}, nil
}

// Sequence converts decoded records back to a sequence.
func Sequence(figs [][]Record) (aero.Sequence, error) {
	seq := aero.Sequence{Figures: make([]aero.Figure, len(figs))}
	for i, fig := range figs {
		for j, r := range fig {
			e, err := r.Element()
			if err != nil {
				return aero.Sequence{}, fmt.Errorf("figure %d element %d: %w", i, j, err)
			}
			seq.Figures[i].Elements = append(seq.Figures[i].Elements, e)
		}
	}
	return seq, nil
}
