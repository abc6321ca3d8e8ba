package rangecoder

import "testing"

func TestUnaryProb_Degenerate(t *testing.T) {
	tests := []struct {
		name string
		d    *Decoder
		want int
	}{
		{"all_zero_stops_immediately", New(0, allZeros(16)), 0},
		{"all_one_exhausts", New(0xFFFFFFFF, allOnes(16)), 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := NewUnaryProb(4)
			if got := u.Get(tt.d); got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}
