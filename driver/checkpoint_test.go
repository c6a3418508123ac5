package driver

import "testing"

func TestCheckpointCommitFoldsIntoParent(t *testing.T) {
	log := newCheckpointLog()
	log.Push(1) // parent
	log.Push(2) // child
	log.Mark(5)
	log.Mark(6)
	log.Commit(2)

	// positions should now belong to the parent checkpoint; rolling the
	// parent back must un-claim them.
	log.Rollback(1)
	if log.claimed[5] || log.claimed[6] {
		t.Error("expected positions folded from a committed child to be un-claimed on parent rollback")
	}
}

func TestCheckpointRollbackUnclaims(t *testing.T) {
	log := newCheckpointLog()
	log.Push(1)
	log.Mark(0)
	log.Mark(1)
	log.Rollback(1)
	if log.claimed[0] || log.claimed[1] {
		t.Error("expected Rollback to un-claim every position the checkpoint recorded")
	}
}

func TestCheckpointMarkRefusesAlreadyClaimed(t *testing.T) {
	log := newCheckpointLog()
	log.Push(1)
	if !log.Mark(0) {
		t.Fatal("first Mark of a fresh position should succeed")
	}
	if log.Mark(0) {
		t.Error("second Mark of the same position should report false")
	}
}

func TestCheckpointUnmarkDirect(t *testing.T) {
	log := newCheckpointLog()
	log.Push(1)
	log.Mark(3)
	log.Unmark([]int{3})
	if log.claimed[3] {
		t.Error("expected Unmark to clear the claim without touching the checkpoint stack")
	}
	// the position should be claimable again
	if !log.Mark(3) {
		t.Error("expected position to be re-claimable after Unmark")
	}
}
