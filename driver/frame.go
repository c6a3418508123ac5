package driver

import (
	"github.com/parsekit/gramsql/cst"
	"github.com/parsekit/gramsql/grammar"
)

// FrameState is the lifecycle of a parse frame (spec §3.3): Initial work
// happens once, WaitingForChild suspends the frame while a pushed child
// frame runs, and Complete hands a result back to whichever frame is
// waiting on it. Folding a child's result into the frame's accumulated
// state (and deciding whether to push another child or finish) happens
// directly when the engine resumes a WaitingForChild frame; no frame is
// ever put in StateCombining, and the engine reports a frame found in that
// state as a malformed-grammar error.
type FrameState uint8

const (
	StateInitial FrameState = iota
	StateWaitingForChild
	StateCombining
	StateComplete
)

func (s FrameState) String() string {
	switch s {
	case StateInitial:
		return "Initial"
	case StateWaitingForChild:
		return "WaitingForChild"
	case StateCombining:
		return "Combining"
	case StateComplete:
		return "Complete"
	default:
		return "Unknown"
	}
}

// seqCtx is the Sequence combinator's scratch state (spec §4.4).
type seqCtx struct {
	maxIdx      int
	hasMaxIdx   bool
	elemIdx     int
	pendingGap  []cst.Node
	accumulated []cst.Node
}

// oneOfCtx is the OneOf combinator's scratch state (spec §4.5): it tries
// each candidate in order and keeps the longest match seen so far.
type oneOfCtx struct {
	candidates   []grammar.ID
	candidateIdx int
	bestNode     cst.Node
	bestEnd      int
	bestFound    bool
}

// anyNumCtx is the shared scratch state for AnyNumberOf (spec §4.6) and
// AnySetOf (spec §4.10): both repeatedly try a set of elements at the
// current position until nothing more matches, differing only in whether
// an element that already matched may match again.
type anyNumCtx struct {
	elements      []grammar.ID
	min           int
	max           *int
	maxPerElement *int
	isSetOf       bool

	workingPos   int
	repCount     int
	perElemCount map[grammar.ID]int
	matchedSet   map[grammar.ID]bool
	pendingGap   []cst.Node
	accumulated  []cst.Node

	trialPos          int
	roundCandidates   []grammar.ID
	roundCandidateIdx int
	bestNode          cst.Node
	bestEnd           int
	bestElemID        grammar.ID
	bestFound         bool
}

type delimStage uint8

const (
	delimMatchingElement delimStage = iota
	delimMatchingDelimiter
)

// delimCtx is the Delimited combinator's scratch state (spec §4.7).
type delimCtx struct {
	stage             delimStage
	elements          []grammar.ID
	delimiter         grammar.ID
	minDelimiters     int
	allowTrailing     bool
	optionalDelimiter bool

	workingPos     int
	delimiterCount int
	hasMatchedOnce bool
	pendingGap     []cst.Node
	accumulated    []cst.Node
	lastGoodEnd    int
	lastGoodAccum  []cst.Node

	delimPending     bool
	delimPendingNode cst.Node
	delimPendingGap  []cst.Node
	delimPendingEnd  int

	trialPos          int
	roundCandidates   []grammar.ID
	roundCandidateIdx int
	bestNode          cst.Node
	bestEnd           int
	bestFound         bool
}

type bracketStage uint8

const (
	bracketMatchingOpen bracketStage = iota
	bracketMatchingContent
	bracketMatchingClose
)

// bracketCtx is the Bracketed combinator's scratch state (spec §4.8). The
// middle children are parsed as an implicit Sequence bounded by the
// resolved closing bracket's token index.
type bracketCtx struct {
	stage        bracketStage
	startChildID grammar.ID
	endChildID   grammar.ID
	content      []grammar.ID

	openPos    int
	closeIdx   int
	hasClose   bool
	contentMax int

	contentElemIdx int
	resumePos      int
	pendingGap     []cst.Node
	accumulated    []cst.Node
}

// refCtx is the Ref combinator's scratch state (spec §4.9): it expands the
// target at the Ref's own position, then wraps the target's result as a
// named node. A Ref does not collect leading transparent tokens itself;
// any gap before it is collected by the enclosing combinator.
type refCtx struct {
	name            string
	segmentType     string
	target          grammar.ID
	excludeID       grammar.ID
	hasExclude      bool
	checkingExclude bool
}

// Frame is one entry on the parser's explicit stack (spec §3.3). At most
// one variant-specific context field is populated, matching the grammar
// instruction's Variant (terminal matchers complete in one step and
// populate none); which one is a property of GrammarID, not of the
// Frame type, so Go represents the union as a set of nilable pointers
// rather than an enum-with-payload.
type Frame struct {
	id        uint64
	grammarID grammar.ID
	pos       int

	hasParentMaxIdx bool
	parentMaxIdx    int
	terminators     []grammar.ID
	parseMode       grammar.ParseMode

	state        FrameState
	waitChildID  uint64
	checkpointed bool

	resultNode cst.Node
	endPos     int

	seq *seqCtx
	one *oneOfCtx
	any *anyNumCtx
	del *delimCtx
	brk *bracketCtx
	ref *refCtx
}
