// Package rangecoder implements the adaptive binary range decoder used by
// Mischief packing: a range coder with an 11-bit adaptive probability
// threshold per context, plus the unary, MSB-first and LSB-first integer
// decoders built on top of it.
//
// This mirrors the entropy package of the teacher codec in shape
// (a hand-rolled arithmetic decoder with per-context adaptive state) but
// implements a different coder: a carry-less range coder with a single
// 11-bit probability per context, rather than the MQ coder's 94-state
// table.
package rangecoder

// Decoder consumes a compressed byte stream and exposes the two decode
// primitives the rest of the packing format is built from: an adaptive
// bit against a caller-owned probability, and an unbiased raw bit.
//
// The caller is responsible for padding the input with four trailing zero
// bytes (see the Mischief packing container format) so that renormalising
// past the end of real data reads zeros instead of faulting; Decoder itself
// additionally guards against running past the padded slice, returning
// zero bytes forever rather than panicking.
type Decoder struct {
	scale  uint32
	value  uint32
	data   []byte
	cursor int
}

// New creates a Decoder over data (the compressed bytes following the
// 9-byte Mischief packing prefix, already including the 4-byte zero pad)
// seeded with the big-endian initial value read from that prefix.
func New(initialValue uint32, data []byte) *Decoder {
	return &Decoder{
		scale: 0xFFFFFFFF,
		value: initialValue,
		data:  data,
	}
}

func (d *Decoder) nextByte() byte {
	if d.cursor >= len(d.data) {
		return 0
	}
	b := d.data[d.cursor]
	d.cursor++
	return b
}

// renormalize restores the invariant scale >= 0x01000000. A single decode
// step never consumes more than one renormalising shift.
func (d *Decoder) renormalize() {
	if d.scale < 0x01000000 {
		d.scale <<= 8
		d.value = (d.value << 8) | uint32(d.nextByte())
	}
}

// DecodeBit decodes one bit against an adaptive probability threshold,
// updating p's estimate by a 1/32-step exponential moving average.
func (d *Decoder) DecodeBit(p *AdaptiveProb) int {
	d.renormalize()
	bound := (d.scale >> 11) * uint32(p.threshold)
	if d.value < bound {
		d.scale = bound
		p.threshold = p.threshold - ((p.threshold + 0x1f) >> 5) + 0x40
		return 0
	}
	d.value -= bound
	d.scale -= bound
	p.threshold = p.threshold - (p.threshold >> 5)
	return 1
}

// DecodeRawBit decodes one unbiased bit with no adaptive model, used for
// the high-entropy tail of long distances.
func (d *Decoder) DecodeRawBit() int {
	d.renormalize()
	d.scale >>= 1
	if d.value < d.scale {
		return 0
	}
	d.value -= d.scale
	return 1
}

// AdaptiveProb is a single 11-bit probability threshold (range 1..0x7FF),
// neutral at 0x400. It is mutated in place by Decoder.DecodeBit.
type AdaptiveProb struct {
	threshold uint16
}

// NewAdaptiveProb returns a probability initialised to the neutral value.
func NewAdaptiveProb() AdaptiveProb {
	return AdaptiveProb{threshold: 0x400}
}

// Threshold returns the current probability estimate, mostly for tests
// that assert on the invariant that it stays within 1..0x7FF.
func (p AdaptiveProb) Threshold() uint16 {
	return p.threshold
}
