// Package decomp wires the range decoder, the literal/length/distance
// sub-models, the LZ77 output buffer and the control state machine together
// into the single entry point the container format calls: Decompress.
package decomp

import (
	"encoding/binary"
	"fmt"

	"github.com/inkstone-labs/mischiefart/internal/lz77"
	"github.com/inkstone-labs/mischiefart/internal/lzmodel"
	"github.com/inkstone-labs/mischiefart/internal/packstate"
	"github.com/inkstone-labs/mischiefart/internal/rangecoder"
)

// prefixLen is the fixed size of the compressed-payload prefix: 4-byte LE
// uncompressed length, 1 ignored byte, 4-byte BE range-coder initial value.
const prefixLen = 9

// padLen is the number of zero bytes the caller must be able to read past
// the end of the real payload; Decompress pads internally so renormalising
// at stream exhaustion reads zeros rather than faulting.
const padLen = 4

// Decompress decodes a Mischief-packed compressed payload. payload is the
// full compressed blob as stored by the container (prefix plus range-coded
// body, with no padding required from the caller). It returns exactly
// uncompressedSize bytes on success.
func Decompress(payload []byte) ([]byte, error) {
	if len(payload) < prefixLen {
		return nil, ErrTruncatedInput
	}

	uncompressedSize := binary.LittleEndian.Uint32(payload[0:4])
	// payload[4] is ignored: historically a container/version byte.
	initialValue := binary.BigEndian.Uint32(payload[5:9])

	body := make([]byte, len(payload)-prefixLen+padLen)
	copy(body, payload[prefixLen:])

	rc := rangecoder.New(initialValue, body)
	out := lz77.NewBuffer(uncompressedSize)

	literals := make([]*rangecoder.LiteralCoder, 8)
	for i := range literals {
		literals[i] = rangecoder.NewLiteralCoder()
	}
	lengthNewDist := lzmodel.NewLengthCoder()
	lengthReusedDist := lzmodel.NewLengthCoder()
	distCoder := lzmodel.NewDistanceCoder()
	mru := &packstate.MRU4{}
	graph := packstate.Build()

	state := graph.Base
	wasRef := false
	var mismatchByte byte
	haveMismatch := false

	for uint32(out.Len()) < uncompressedSize {
		ctx := out.LenMod4()
		isRef := rc.DecodeBit(&state.IsReference[ctx])

		if isRef == 0 {
			sel := out.Earlier(0) >> 5
			b := literals[sel].Get(rc, haveMismatch, mismatchByte)
			out.Append(b)
			state = state.AfterLiteral
			haveMismatch = false
			wasRef = false
			continue
		}

		if out.Len() == 0 {
			return nil, ErrEmptyHistory
		}

		kind := state.ReferenceKind.Get(rc)

		var length int
		var dist uint32
		var nextState *packstate.State

		switch {
		case kind == 0:
			length = lengthNewDist.Get(rc, ctx) + 2
			dist = distCoder.Get(rc, length-2)
			if dist == lzmodel.EndOfStream {
				break
			}
			mru.Push(dist)
			nextState = graph.AfterNewDist[packstate.Idx(wasRef)]

		case kind == 1 && rc.DecodeBit(&state.Kind1Trivial[ctx]) == 0:
			length = 1
			dist = mru.Head()
			nextState = graph.AfterTrivial[packstate.Idx(wasRef)]

		default:
			length = lengthReusedDist.Get(rc, ctx) + 2
			dist = mru.Promote(kind - 1)
			nextState = graph.AfterReused[packstate.Idx(wasRef)]
		}

		if dist == lzmodel.EndOfStream {
			break
		}

		if uint32(out.Len())+uint32(length) > uncompressedSize {
			return nil, ErrStreamOverflow
		}

		out.Copy(dist, length)
		mismatchByte = out.Earlier(dist)
		haveMismatch = true
		wasRef = true
		state = nextState
	}

	if uint32(out.Len()) != uncompressedSize {
		return nil, fmt.Errorf("%w: got %d of %d bytes", ErrStreamUnderflow, out.Len(), uncompressedSize)
	}
	return out.Bytes(), nil
}
