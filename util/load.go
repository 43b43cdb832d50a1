// util/load.go
// Copyright(c) 2022-2025 arusti contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"bufio"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// DefaultXMLTag is the element that holds the OLAN string in sequence
// files saved by OpenAero.
const DefaultXMLTag = "sequence_text"

var ErrNoSequence = errors.New("No sequence found")

// LoadSequence returns the OLAN text stored in the file at path. Files
// ending in .zst are decompressed first. If xmlTag is non-empty, or the
// file is a .xml or .seq document, the text of the first matching element
// is returned. Otherwise the file is read as plain text, ignoring lines
// that start with '#'.
func LoadSequence(path, xmlTag string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var r io.Reader = f
	if name, ok := strings.CutSuffix(path, ".zst"); ok {
		zr, err := zstd.NewReader(f, zstd.WithDecoderConcurrency(0))
		if err != nil {
			return "", fmt.Errorf("%s: %w", path, err)
		}
		defer zr.Close()
		r, path = zr, name
	}

	if xmlTag == "" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".xml", ".seq":
			xmlTag = DefaultXMLTag
		}
	}

	var text string
	if xmlTag != "" {
		text, err = sequenceFromXML(r, xmlTag)
	} else {
		text, err = sequenceFromText(r)
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	return text, nil
}

func sequenceFromText(r io.Reader) (string, error) {
	var parts []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts = append(parts, line)
	}
	if err := sc.Err(); err != nil {
		return "", err
	}
	if len(parts) == 0 {
		return "", ErrNoSequence
	}
	return strings.Join(parts, " "), nil
}

func sequenceFromXML(r io.Reader, tag string) (string, error) {
	d := xml.NewDecoder(r)
	for {
		tok, err := d.Token()
		if err == io.EOF {
			return "", fmt.Errorf("<%s>: %w", tag, ErrNoSequence)
		} else if err != nil {
			return "", err
		}

		if se, ok := tok.(xml.StartElement); ok && se.Name.Local == tag {
			var elem struct {
				Text string `xml:",chardata"`
			}
			if err := d.DecodeElement(&elem, &se); err != nil {
				return "", err
			}
			if text := strings.TrimSpace(elem.Text); text != "" {
				return text, nil
			}
			return "", fmt.Errorf("<%s>: %w", tag, ErrNoSequence)
		}
	}
}
