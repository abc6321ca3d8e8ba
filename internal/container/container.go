// Package container parses the Mischief `.art` file framing that wraps a
// compressed payload: magic detection, version-selected header layout, the
// optional pin-block section, and the raw-size prefix that bounds the
// compressed payload handed to internal/decomp.
package container

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Version identifies which header layout a file uses.
type Version int

const (
	// VersionLegacy is the fixed 0x28-byte header with no pins section.
	VersionLegacy Version = iota
	// Version0x81 adds a documents-properties block ahead of the raw-size
	// field, with no pins.
	Version0x81
	// Version0x82 additionally carries a pin-block count and records.
	Version0x82
)

func (v Version) String() string {
	switch v {
	case VersionLegacy:
		return "legacy"
	case Version0x81:
		return "0x81"
	case Version0x82:
		return "0x82"
	default:
		return "unknown"
	}
}

// PinRecord is one entry of a 0x82 pin block: a canvas position and the
// index of the layer it annotates.
type PinRecord struct {
	X, Y       int32
	LayerIndex int32
}

// Header is the parsed file framing, excluding the compressed payload bytes
// themselves (returned separately by ParseHeader).
type Header struct {
	Version Version
	Pinned  bool
	Pins    []PinRecord
	RawSize uint32 // length in bytes of the compressed payload that follows
}

var (
	magicPlain  = [4]byte{0xC5, 0xB3, 0x8B, 0xE9}
	magicPinned = [4]byte{0xC5, 0xB3, 0x8B, 0xE7}
)

var (
	// ErrBadMagic is returned when the first four bytes match neither
	// recognised file magic.
	ErrBadMagic = errors.New("container: unrecognized file magic")
	// ErrTruncatedHeader is returned when a fixed-size header field, or the
	// declared compressed payload, does not fit in the remaining bytes.
	ErrTruncatedHeader = errors.New("container: header shorter than declared layout")
)

const legacyHeaderLen = 0x28

const (
	versionByteExtendedA = 0x81
	versionByteExtendedB = 0x82
)

// ParseHeader reads the file magic and header for data and returns the
// parsed Header plus the compressed payload slice (already bounded to
// header.RawSize bytes — no zero padding added here; that is
// internal/decomp's responsibility).
func ParseHeader(data []byte) (Header, []byte, error) {
	if len(data) < 5 {
		return Header{}, nil, fmt.Errorf("reading magic and version byte: %w", ErrTruncatedHeader)
	}

	var magic [4]byte
	copy(magic[:], data[0:4])

	var pinned bool
	switch magic {
	case magicPlain:
		pinned = false
	case magicPinned:
		pinned = true
	default:
		return Header{}, nil, ErrBadMagic
	}

	switch data[4] {
	case versionByteExtendedA:
		return parseExtendedHeader(data, Version0x81, pinned, false)
	case versionByteExtendedB:
		return parseExtendedHeader(data, Version0x82, pinned, true)
	default:
		return parseLegacyHeader(data, pinned)
	}
}

func parseLegacyHeader(data []byte, pinned bool) (Header, []byte, error) {
	if len(data) < legacyHeaderLen {
		return Header{}, nil, fmt.Errorf("reading legacy header: %w", ErrTruncatedHeader)
	}
	rawSize := binary.LittleEndian.Uint32(data[0x24:0x28])
	payload, err := slicePayload(data[legacyHeaderLen:], rawSize)
	if err != nil {
		return Header{}, nil, err
	}
	return Header{Version: VersionLegacy, Pinned: pinned, RawSize: rawSize}, payload, nil
}

// docPropsLen is the size of the documents-properties block that 0x81 and
// 0x82 headers carry ahead of the pins section (when present) and the
// raw-size field. The single surviving original_source revision predates
// this layout, so the exact field contents are not recovered here — only
// its length is load-bearing for locating the raw-size field correctly.
const docPropsLen = 16

func parseExtendedHeader(data []byte, v Version, pinned, hasPins bool) (Header, []byte, error) {
	offset := 5
	if len(data) < offset+docPropsLen {
		return Header{}, nil, fmt.Errorf("reading documents-properties block: %w", ErrTruncatedHeader)
	}
	offset += docPropsLen

	var pins []PinRecord
	if hasPins {
		var err error
		pins, offset, err = parsePins(data, offset)
		if err != nil {
			return Header{}, nil, err
		}
	}

	if len(data) < offset+4 {
		return Header{}, nil, fmt.Errorf("reading raw size field: %w", ErrTruncatedHeader)
	}
	rawSize := binary.LittleEndian.Uint32(data[offset : offset+4])
	offset += 4

	payload, err := slicePayload(data[offset:], rawSize)
	if err != nil {
		return Header{}, nil, err
	}
	return Header{Version: v, Pinned: pinned, Pins: pins, RawSize: rawSize}, payload, nil
}

const pinRecordLen = 12 // X, Y, LayerIndex, each a 4-byte LE int32

func parsePins(data []byte, offset int) ([]PinRecord, int, error) {
	if len(data) < offset+4 {
		return nil, 0, fmt.Errorf("reading pin count: %w", ErrTruncatedHeader)
	}
	count := binary.LittleEndian.Uint32(data[offset : offset+4])
	offset += 4

	pins := make([]PinRecord, 0, count)
	for i := uint32(0); i < count; i++ {
		if len(data) < offset+pinRecordLen {
			return nil, 0, fmt.Errorf("reading pin %d: %w", i, ErrTruncatedHeader)
		}
		pins = append(pins, PinRecord{
			X:          int32(binary.LittleEndian.Uint32(data[offset : offset+4])),
			Y:          int32(binary.LittleEndian.Uint32(data[offset+4 : offset+8])),
			LayerIndex: int32(binary.LittleEndian.Uint32(data[offset+8 : offset+12])),
		})
		offset += pinRecordLen
	}
	return pins, offset, nil
}

func slicePayload(rest []byte, rawSize uint32) ([]byte, error) {
	if uint64(len(rest)) < uint64(rawSize) {
		return nil, fmt.Errorf("reading compressed payload (%d bytes declared, %d available): %w", rawSize, len(rest), ErrTruncatedHeader)
	}
	return rest[:rawSize], nil
}
