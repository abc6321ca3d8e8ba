package artfile

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/inkstone-labs/mischiefart/internal/container"
	"github.com/inkstone-labs/mischiefart/internal/decomp"
)

// decoder holds the state of a single `.art` decode.
type decoder struct {
	raw     []byte
	header  container.Header
	payload []byte
}

func newDecoder(data []byte) *decoder {
	return &decoder{raw: data}
}

// decode parses the container, decompresses the payload, and walks the
// leading payload records (pen table, layer directory) into Metadata.
func (d *decoder) decode() ([]byte, *Metadata, error) {
	if err := d.readContainer(); err != nil {
		return nil, nil, fmt.Errorf("reading container: %w", err)
	}

	out, err := decomp.Decompress(d.payload)
	if err != nil {
		return nil, nil, fmt.Errorf("decompressing payload: %w", err)
	}

	md := &Metadata{
		Version:          d.header.Version,
		Pinned:           d.header.Pinned,
		Pins:             d.header.Pins,
		UncompressedSize: uint32(len(out)),
	}
	if err := readLeadingRecords(out, md); err != nil {
		return nil, nil, fmt.Errorf("reading payload records: %w", err)
	}

	return out, md, nil
}

func (d *decoder) readContainer() error {
	hdr, payload, err := container.ParseHeader(d.raw)
	if err != nil {
		return err
	}
	d.header = hdr
	d.payload = payload
	return nil
}

// recordReader is a small bounds-checked cursor over the decompressed
// payload, mirroring the fixed-field reads original_source/artparser.py
// performs (read_int, read_float, read_string) but only as far as the pen
// table and layer directory this package surfaces.
type recordReader struct {
	data []byte
	pos  int
}

func (r *recordReader) uint32() (uint32, error) {
	if r.pos+4 > len(r.data) {
		return 0, io.ErrUnexpectedEOF
	}
	v := binary.LittleEndian.Uint32(r.data[r.pos : r.pos+4])
	r.pos += 4
	return v, nil
}

func (r *recordReader) float32() (float32, error) {
	bits, err := r.uint32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(bits), nil
}

func (r *recordReader) string() (string, error) {
	n, err := r.uint32()
	if err != nil {
		return "", err
	}
	if r.pos+int(n) > len(r.data) {
		return "", io.ErrUnexpectedEOF
	}
	s := string(r.data[r.pos : r.pos+int(n)])
	r.pos += int(n)
	return s, nil
}

// readLeadingRecords reads the simplified record shapes this package
// surfaces, starting at offset 0 of the decompressed payload: a
// count-prefixed pen table followed by a count-prefixed layer directory.
// An empty payload yields no pens and no layers. The leading header fields
// original_source skips as
// opaque version/unknown scalars are not reconstructed here — spec.md §1
// scopes the full payload walk out of the core, and only the pen table and
// layer directory are surfaced (spec §10).

func readLeadingRecords(payload []byte, md *Metadata) error {
	if len(payload) == 0 {
		return nil
	}
	r := &recordReader{data: payload}

	penCount, err := r.uint32()
	if err != nil {
		return fmt.Errorf("reading pen count: %w", err)
	}
	md.Pens = make([]PenInfo, 0, penCount)
	for i := uint32(0); i < penCount; i++ {
		color, err := r.uint32()
		if err != nil {
			return fmt.Errorf("reading pen %d color: %w", i, err)
		}
		width, err := r.float32()
		if err != nil {
			return fmt.Errorf("reading pen %d width: %w", i, err)
		}
		opacity, err := r.float32()
		if err != nil {
			return fmt.Errorf("reading pen %d opacity: %w", i, err)
		}
		blend, err := r.uint32()
		if err != nil {
			return fmt.Errorf("reading pen %d blend mode: %w", i, err)
		}
		md.Pens = append(md.Pens, PenInfo{Color: color, Width: width, Opacity: opacity, Blend: blend})
	}

	layerCount, err := r.uint32()
	if err != nil {
		return fmt.Errorf("reading layer count: %w", err)
	}
	md.Layers = make([]LayerInfo, 0, layerCount)
	for i := uint32(0); i < layerCount; i++ {
		name, err := r.string()
		if err != nil {
			return fmt.Errorf("reading layer %d name: %w", i, err)
		}
		visibility, err := r.float32()
		if err != nil {
			return fmt.Errorf("reading layer %d visibility: %w", i, err)
		}
		opacity, err := r.float32()
		if err != nil {
			return fmt.Errorf("reading layer %d opacity: %w", i, err)
		}
		md.Layers = append(md.Layers, LayerInfo{Name: name, Visibility: visibility, Opacity: opacity})
	}

	return nil
}
