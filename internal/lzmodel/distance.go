package lzmodel

import "github.com/inkstone-labs/mischiefart/internal/rangecoder"

// EndOfStream is the sentinel distance value (all-ones) the long-distance
// raw-bit path can produce. The main decode loop treats it as a clean
// terminator rather than a literal distance (see spec §9 Open Question).
const EndOfStream uint32 = 0xFFFFFFFF

// DistanceCoder decodes a copy distance using a coarse/fine split: hot
// distances 0..3 are coded directly, medium distances use per-range
// adaptive low bits, and very long distances spend raw (unmodelled) bits
// on their high-entropy middle portion and reserve adaptation only for the
// bottom nibble.
type DistanceCoder struct {
	coarse   [4]*rangecoder.MSBTree    // selected by min(lengthCode, 3), 6-bit MSB-first
	medium   [5][2]*rangecoder.LSBTree // medium[extra-1][nmsb], extra in 1..5
	longTail *rangecoder.LSBTree       // shared 4-bit LSB-first tail for extra>=6
}

// NewDistanceCoder allocates a distance coder.
func NewDistanceCoder() *DistanceCoder {
	dc := &DistanceCoder{
		longTail: rangecoder.NewLSBTree(4),
	}
	for i := range dc.coarse {
		dc.coarse[i] = rangecoder.NewMSBTree(6)
	}
	for extra := 1; extra <= 5; extra++ {
		dc.medium[extra-1][0] = rangecoder.NewLSBTree(extra)
		dc.medium[extra-1][1] = rangecoder.NewLSBTree(extra)
	}
	return dc
}

// Get decodes the next distance given lengthCode = copy_len - 2.
func (dc *DistanceCoder) Get(d *rangecoder.Decoder, lengthCode int) uint32 {
	capped := lengthCode
	if capped > 3 {
		capped = 3
	}
	c := dc.coarse[capped].Get(d)
	if c < 4 {
		return uint32(c)
	}

	nmsb := c & 1
	extra := 1 + ((c - 4) >> 1)
	h := uint32(2|nmsb) << uint(extra)

	if extra < 6 {
		return h | uint32(dc.medium[extra-1][nmsb].Get(d))
	}

	for bitpos := extra - 1; bitpos >= 4; bitpos-- {
		h |= uint32(d.DecodeRawBit()) << uint(bitpos)
	}
	return h | uint32(dc.longTail.Get(d))
}
