package rangecoder

// LiteralCoder decodes an 8-bit byte, optionally conditioned on a
// "reference" byte (the byte that would have been copied, had the
// preceding token been a reference instead of a literal). It holds three
// parallel 256-slot probability tables addressed with the same
// start-at-1 flat-tree trick MSBTree uses: no-context, and one for each
// possible reference bit (0 or 1).
type LiteralCoder struct {
	noContext [256]AdaptiveProb
	refZero   [256]AdaptiveProb
	refOne    [256]AdaptiveProb
}

// NewLiteralCoder allocates a literal coder with all probabilities at
// their neutral value.
func NewLiteralCoder() *LiteralCoder {
	lc := &LiteralCoder{}
	for i := range lc.noContext {
		lc.noContext[i] = NewAdaptiveProb()
		lc.refZero[i] = NewAdaptiveProb()
		lc.refOne[i] = NewAdaptiveProb()
	}
	return lc
}

// Get decodes one byte. If hasRef is true, ref supplies the reference byte:
// each bit position is decoded against the context table matching ref's
// corresponding bit until a decoded bit disagrees with it, after which all
// remaining bits fall back to the no-context table.
func (lc *LiteralCoder) Get(d *Decoder, hasRef bool, ref byte) byte {
	useContext := hasRef
	v := 1
	for i := 0; i < 8; i++ {
		var probs *[256]AdaptiveProb
		var refBit int
		if useContext {
			if (ref<<uint(i))&0x80 != 0 {
				refBit = 1
				probs = &lc.refOne
			} else {
				refBit = 0
				probs = &lc.refZero
			}
		} else {
			probs = &lc.noContext
		}
		bit := d.DecodeBit(&probs[v])
		v = (v << 1) | bit
		if useContext && bit != refBit {
			useContext = false
		}
	}
	return byte(v & 0xFF)
}
