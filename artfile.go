// Package artfile provides a pure Go decoder for the `.art` files produced
// by the Mischief vector-drawing application.
//
// The file wraps a Mischief-packing compressed payload (an LZMA-family
// range-coded LZ77 stream) in a small container: magic bytes, a
// version-selected header, and a raw-size prefix. This package parses the
// container, decompresses the payload, and surfaces the shallow metadata
// (pen table, layer directory, pins) the container format carries ahead of
// the full payload record walk, which is out of scope here.
//
// Basic usage:
//
//	f, _ := os.Open("drawing.art")
//	out, md, err := artfile.Decode(f)
//	if err != nil {
//	    log.Fatal(err)
//	}
package artfile

import (
	"fmt"
	"io"

	"github.com/inkstone-labs/mischiefart/internal/container"
)

// Decode reads a full `.art` file from r, decompresses its payload, and
// returns the decompressed bytes alongside the metadata recovered from the
// container header and the leading payload records.
func Decode(r io.Reader) ([]byte, *Metadata, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("reading file: %w", err)
	}
	return DecodeBytes(data)
}

// DecodeBytes is Decode for an already in-memory file.
func DecodeBytes(data []byte) ([]byte, *Metadata, error) {
	d := newDecoder(data)
	return d.decode()
}

// DecodeMetadata reads only the container header and leading payload
// records without returning the full decompressed output.
func DecodeMetadata(r io.Reader) (*Metadata, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	d := newDecoder(data)
	_, md, err := d.decode()
	return md, err
}

// PenInfo is one entry of the pen table that precedes the layer directory
// in the decompressed payload (spec §10, recovered from
// original_source/artparser.py's pen_info walk). Brush/blend semantics are
// not interpreted here — only the raw scalar fields.
type PenInfo struct {
	Color   uint32
	Width   float32
	Opacity float32
	Blend   uint32
}

// LayerInfo is one entry of the layer directory.
type LayerInfo struct {
	Name       string
	Visibility float32
	Opacity    float32
}

// Metadata holds the container-level and leading-payload fields this
// package surfaces. Stroke/action decoding is out of scope (spec §1: the
// post-decompression payload parser is an external collaborator).
type Metadata struct {
	// Version is the container header layout this file used.
	Version container.Version

	// Pinned indicates the file magic was the "pinned" variant.
	Pinned bool

	// Pins holds the pin records from a 0x82-version file (empty
	// otherwise).
	Pins []container.PinRecord

	// UncompressedSize is the announced length of the decompressed
	// payload.
	UncompressedSize uint32

	// Pens is the pen table read from the decompressed payload.
	Pens []PenInfo

	// Layers is the layer directory read from the decompressed payload.
	Layers []LayerInfo
}
