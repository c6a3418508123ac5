package driver

import (
	list "github.com/bahlo/generic-list-go"
)

// checkpoint records the transparent token positions a single parse frame
// has claimed since it was pushed (spec §4.15). On Commit those positions
// stay claimed; on Rollback they are un-claimed so a sibling alternative
// (a different OneOf candidate, a retried AnyNumberOf repetition) can claim
// them instead.
//
// The position list is backed by github.com/bahlo/generic-list-go, a
// generic doubly-linked list, so positions can be appended in O(1) and the
// whole checkpoint discarded in O(1) without a slice reallocation per mark.
type checkpoint struct {
	frameID   uint64
	positions *list.List[int]
}

// checkpointLog is the parser-wide stack of checkpoints, one per
// currently-open frame. Its depth exactly tracks the live frame stack: a
// frame pushes its checkpoint the moment it starts running and pops it
// (via Commit or Rollback) the moment it completes, so the checkpoint atop
// the log is always the checkpoint of the frame currently doing work.
type checkpointLog struct {
	stack   []*checkpoint
	claimed map[int]bool
}

func newCheckpointLog() *checkpointLog {
	return &checkpointLog{claimed: make(map[int]bool)}
}

// Push opens a new checkpoint for frameID.
func (c *checkpointLog) Push(frameID uint64) {
	c.stack = append(c.stack, &checkpoint{frameID: frameID, positions: list.New[int]()})
}

// Mark claims pos as consumed by the currently-open (topmost) checkpoint.
// It reports whether pos was newly claimed; if some other still-open
// ancestor frame already claimed it, Mark is a no-op and returns false —
// the caller should treat that as the end of a transparent run, since the
// position is spoken for.
func (c *checkpointLog) Mark(pos int) bool {
	if c.claimed[pos] {
		return false
	}
	c.claimed[pos] = true
	if len(c.stack) > 0 {
		top := c.stack[len(c.stack)-1]
		top.positions.PushBack(pos)
	}
	return true
}

// Commit closes the checkpoint for frameID, folding its claimed positions
// into whichever checkpoint is now on top (its parent frame's), so that if
// the parent itself later rolls back, positions claimed by an already
// -committed child are un-claimed along with it. frameID must be the
// checkpoint currently on top of the log.
func (c *checkpointLog) Commit(frameID uint64) {
	cp := c.pop(frameID)
	if cp == nil {
		return
	}
	if len(c.stack) > 0 {
		parent := c.stack[len(c.stack)-1]
		for e := cp.positions.Front(); e != nil; e = e.Next() {
			parent.positions.PushBack(e.Value)
		}
	}
}

// Unmark un-claims a set of positions directly, without involving a frame's
// checkpoint. It is used when a composite combinator speculatively collects
// a leading transparent gap before an element that turns out not to match
// and is optional: the gap was never emitted into the output tree, so its
// positions must not stay claimed.
func (c *checkpointLog) Unmark(positions []int) {
	for _, pos := range positions {
		delete(c.claimed, pos)
	}
}

// Rollback closes the checkpoint for frameID and un-claims every position
// it had recorded, so a sibling attempt may claim them again.
func (c *checkpointLog) Rollback(frameID uint64) {
	cp := c.pop(frameID)
	if cp == nil {
		return
	}
	for e := cp.positions.Front(); e != nil; e = e.Next() {
		delete(c.claimed, e.Value)
	}
}

func (c *checkpointLog) pop(frameID uint64) *checkpoint {
	n := len(c.stack)
	if n == 0 {
		return nil
	}
	top := c.stack[n-1]
	if top.frameID != frameID {
		// A frame may complete without ever registering a checkpoint (it
		// never reached dispatchInitial, e.g. it failed before touching
		// input); nothing to pop in that case.
		return nil
	}
	c.stack = c.stack[:n-1]
	return top
}
