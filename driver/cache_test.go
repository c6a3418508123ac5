package driver

import (
	"testing"

	"github.com/parsekit/gramsql/grammar"
)

func TestParseCacheDisabledNeverStores(t *testing.T) {
	c := newParseCache()
	c.enabled = false
	key := cacheKey{grammarID: 1, pos: 0}
	c.put(key, cacheValue{endPos: 3})
	if _, ok := c.get(key); ok {
		t.Error("expected a disabled cache to never return a hit")
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0 for a disabled cache", c.Len())
	}
}

func TestParseCacheRoundTrip(t *testing.T) {
	c := newParseCache()
	key := cacheKey{grammarID: 7, pos: 2, termFP: 42}
	c.put(key, cacheValue{endPos: 5})
	v, ok := c.get(key)
	if !ok {
		t.Fatal("expected a hit after put")
	}
	if v.endPos != 5 {
		t.Errorf("endPos = %d, want 5", v.endPos)
	}
	other := key
	other.pos = 3
	if _, ok := c.get(other); ok {
		t.Error("expected a different pos to miss the cache")
	}
}

func TestFingerprintTerminatorsStableAndOrderSensitive(t *testing.T) {
	a := fingerprintTerminators([]grammar.ID{1, 2, 3})
	b := fingerprintTerminators([]grammar.ID{1, 2, 3})
	if a != b {
		t.Error("expected identical terminator sets to fingerprint identically")
	}
	c := fingerprintTerminators([]grammar.ID{3, 2, 1})
	if a == c {
		t.Error("expected reordered terminator sets to fingerprint differently")
	}
	empty := fingerprintTerminators(nil)
	if empty == a {
		t.Error("expected an empty terminator set to fingerprint differently from a non-empty one")
	}
}
