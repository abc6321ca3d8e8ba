package rangecoder

import "testing"

func TestLiteralCoder_Degenerate(t *testing.T) {
	tests := []struct {
		name    string
		d       *Decoder
		hasRef  bool
		ref     byte
		want    byte
	}{
		{"all_zero_no_ref", New(0, allZeros(16)), false, 0, 0x00},
		{"all_one_no_ref", New(0xFFFFFFFF, allOnes(16)), false, 0, 0xFF},
		// The reference byte only changes which context table is consulted,
		// not the bits the degenerate vector forces out of it: every table
		// starts at the same neutral threshold, so the decoded byte is the
		// same regardless of hasRef/ref.
		{"all_one_with_matching_ref", New(0xFFFFFFFF, allOnes(16)), true, 0xFF, 0xFF},
		{"all_one_with_mismatched_ref", New(0xFFFFFFFF, allOnes(16)), true, 0x00, 0xFF},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lc := NewLiteralCoder()
			if got := lc.Get(tt.d, tt.hasRef, tt.ref); got != tt.want {
				t.Errorf("got %#x, want %#x", got, tt.want)
			}
		})
	}
}
