package rangecoder

// UnaryProb decodes a small integer in 0..n by walking up to n adaptive
// bits, stopping at the first 0.
type UnaryProb struct {
	probs []AdaptiveProb
}

// NewUnaryProb allocates a unary coder producing values in 0..n.
func NewUnaryProb(n int) *UnaryProb {
	probs := make([]AdaptiveProb, n)
	for i := range probs {
		probs[i] = NewAdaptiveProb()
	}
	return &UnaryProb{probs: probs}
}

// Get decodes the next value.
func (u *UnaryProb) Get(d *Decoder) int {
	for i := range u.probs {
		if d.DecodeBit(&u.probs[i]) == 0 {
			return i
		}
	}
	return len(u.probs)
}
