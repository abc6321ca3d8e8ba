package decomp

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

func buildPayload(uncompressedSize uint32, initialValue uint32, body []byte) []byte {
	p := make([]byte, prefixLen+len(body))
	binary.LittleEndian.PutUint32(p[0:4], uncompressedSize)
	p[4] = 0 // ignored version byte
	binary.BigEndian.PutUint32(p[5:9], initialValue)
	copy(p[9:], body)
	return p
}

func TestDecompress_TruncatedInput(t *testing.T) {
	_, err := Decompress([]byte{1, 2, 3})
	if !errors.Is(err, ErrTruncatedInput) {
		t.Fatalf("got %v, want ErrTruncatedInput", err)
	}
}

func TestDecompress_EmptyPayload(t *testing.T) {
	// Per spec §8 scenario 1: announced_length = 0 with any prefix returns
	// an empty result after consuming only the header.
	payload := buildPayload(0, 0, nil)
	out, err := Decompress(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("got %d bytes, want 0", len(out))
	}
}

// TestDecompress_AllZeroRun exercises spec §8 scenario 2 (a run of a single
// literal byte). An all-zero body, combined with initialValue 0, is a
// degenerate range-coder input: the decoder's internal value stays 0
// forever, so every adaptive bit it decodes is 0. That forces the
// is_reference decision to 0 (literal) on every iteration and the literal
// byte itself to 0x00, so the loop appends exactly uncompressedSize zero
// bytes and stops — without ever touching the reference/state-machine
// transition paths.
func TestDecompress_AllZeroRun(t *testing.T) {
	const n = 16
	body := make([]byte, 64)
	payload := buildPayload(n, 0, body)

	out, err := Decompress(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := bytes.Repeat([]byte{0x00}, n)
	if !bytes.Equal(out, want) {
		t.Fatalf("got %v, want %v", out, want)
	}
}

// TestDecompress_EmptyHistoryReference exercises the empty_history error
// path: an all-ones degenerate body forces is_reference to 1 on the very
// first iteration, while the output buffer is still empty.
func TestDecompress_EmptyHistoryReference(t *testing.T) {
	body := make([]byte, 64)
	for i := range body {
		body[i] = 0xFF
	}
	payload := buildPayload(100, 0xFFFFFFFF, body)

	_, err := Decompress(payload)
	if !errors.Is(err, ErrEmptyHistory) {
		t.Fatalf("got %v, want ErrEmptyHistory", err)
	}
}

func TestDecompress_ExactlyPrefixNoBody(t *testing.T) {
	payload := buildPayload(0, 0, nil)
	if len(payload) != prefixLen {
		t.Fatalf("test fixture has %d bytes, want exactly prefixLen %d", len(payload), prefixLen)
	}
	out, err := Decompress(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out == nil || len(out) != 0 {
		t.Fatalf("got %v, want empty non-nil slice", out)
	}
}
