// Package lzmodel implements the copy-length and copy-distance sub-models
// of Mischief packing, built on the bit-model abstractions in
// internal/rangecoder.
package lzmodel

import "github.com/inkstone-labs/mischiefart/internal/rangecoder"

// LengthCoder decodes a copy length (before the caller adds the +2 bias)
// in 0..271, partitioned by a two-step unary selector into three ranges:
// 0..7, 8..15 (each a distinct 3-bit MSB-first tree per subcontext) and
// 16..271 (an 8-bit MSB-first tree shared across all four subcontexts).
type LengthCoder struct {
	selector *rangecoder.UnaryProb
	short    [4][2]*rangecoder.MSBTree // [subcontext][0 => base 0, 1 => base 8]
	long     *rangecoder.MSBTree       // shared 16..271 range
}

// NewLengthCoder allocates a length coder. The 16..271 tree is a single
// shared instance referenced by every subcontext, as required by the
// format (see DESIGN.md).
func NewLengthCoder() *LengthCoder {
	lc := &LengthCoder{
		selector: rangecoder.NewUnaryProb(2),
		long:     rangecoder.NewMSBTree(8),
	}
	for sub := 0; sub < 4; sub++ {
		lc.short[sub][0] = rangecoder.NewMSBTree(3)
		lc.short[sub][1] = rangecoder.NewMSBTree(3)
	}
	return lc
}

// Get decodes the next length for the given subcontext (output length mod
// 4 at call time).
func (lc *LengthCoder) Get(d *rangecoder.Decoder, subcontext int) int {
	switch lc.selector.Get(d) {
	case 0:
		return 0 + lc.short[subcontext][0].Get(d)
	case 1:
		return 8 + lc.short[subcontext][1].Get(d)
	default:
		return 16 + lc.long.Get(d)
	}
}
