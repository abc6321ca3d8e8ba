package packstate

import "github.com/inkstone-labs/mischiefart/internal/rangecoder"

// State is one node of the 12-node control state machine. Its probability
// models are conditioned on which state is active: each State owns its own
// "is this token a reference?" bits, its own reference-kind unary coder,
// and its own "is this a trivial one-byte copy?" bits, all indexed by the
// output length modulo 4.
type State struct {
	AfterLiteral  *State
	IsReference   [4]rangecoder.AdaptiveProb
	ReferenceKind *rangecoder.UnaryProb
	Kind1Trivial  [4]rangecoder.AdaptiveProb
}

func newState(afterLiteral *State) *State {
	s := &State{ReferenceKind: rangecoder.NewUnaryProb(4)}
	for i := 0; i < 4; i++ {
		s.IsReference[i] = rangecoder.NewAdaptiveProb()
		s.Kind1Trivial[i] = rangecoder.NewAdaptiveProb()
	}
	s.AfterLiteral = afterLiteral
	if s.AfterLiteral == nil {
		s.AfterLiteral = s
	}
	return s
}

// Graph is the pre-built 12-state DAG plus the after-reference transition
// tables, indexed by whether the previous token was also a reference
// (0 = literal preceded it, 1 = a reference preceded it).
type Graph struct {
	Base            *State
	AfterNewDist    [2]*State
	AfterReused     [2]*State
	AfterTrivial    [2]*State
}

// Build constructs the 12 states and wires the after-literal / after-
// reference links described in spec §4.6. State indices below follow the
// chains documented there (7→4→1→0, 8→5→2→0, 9→6→3→0, A→4→1→0, B→5→2→0).
func Build() *Graph {
	s0 := newState(nil) // base: self-loop
	s1 := newState(s0)
	s2 := newState(s0)
	s3 := newState(s0)
	s4 := newState(s1) // intermediate after new distance
	s5 := newState(s2) // intermediate after reused distance
	s6 := newState(s3) // intermediate after trivial copy
	s7 := newState(s4) // after new distance, was_ref=false
	s8 := newState(s5) // after reused distance, was_ref=false
	s9 := newState(s6) // after trivial copy, was_ref=false
	s10 := newState(s4) // after new distance, was_ref=true
	s11 := newState(s5) // shared: after reused/trivial, was_ref=true

	return &Graph{
		Base:         s0,
		AfterNewDist: [2]*State{s7, s10},
		AfterReused:  [2]*State{s8, s11},
		AfterTrivial: [2]*State{s9, s11},
	}
}

// Idx converts a "was the previous token a reference" boolean into the
// 0/1 index the after-reference tables are keyed by.
func Idx(wasRef bool) int {
	if wasRef {
		return 1
	}
	return 0
}
