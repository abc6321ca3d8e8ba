package artfile

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

// buildEmptyArt constructs a minimal legacy-header .art file whose payload
// decompresses to zero bytes, so readLeadingRecords has nothing to read.
func buildEmptyArt(t *testing.T) []byte {
	t.Helper()

	const legacyHeaderLen = 0x28
	header := make([]byte, legacyHeaderLen)
	copy(header[0:4], []byte{0xC5, 0xB3, 0x8B, 0xE9})

	compressed := make([]byte, 9) // prefix only: uncompressed size 0
	binary.LittleEndian.PutUint32(header[0x24:0x28], uint32(len(compressed)))

	return append(header, compressed...)
}

func TestDecodeBytes_EmptyPayload(t *testing.T) {
	data := buildEmptyArt(t)
	out, md, err := DecodeBytes(data)
	require.NoError(t, err)
	require.Empty(t, out)
	require.Equal(t, uint32(0), md.UncompressedSize)
	require.Empty(t, md.Pens)
	require.Empty(t, md.Layers)
}

func TestDecodeBytes_BadMagic(t *testing.T) {
	data := buildEmptyArt(t)
	data[0] = 0x00
	_, _, err := DecodeBytes(data)
	require.Error(t, err)
}

func TestDecodeBytes_TruncatedFile(t *testing.T) {
	_, _, err := DecodeBytes([]byte{1, 2, 3})
	require.Error(t, err)
}
