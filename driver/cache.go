// Package driver implements the iterative, stack-based parsing engine: the
// parse frame and frame stack (spec §3.3), the dispatch loop (spec §4.2),
// every combinator and terminal handler (spec §4.3–§4.10), terminator
// scanning (spec §4.11), parse-mode finalization (spec §4.12), the parse
// cache (spec §4.14), and the checkpoint log (spec §4.15).
package driver

import (
	"hash/fnv"
	"strconv"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/parsekit/gramsql/cst"
	"github.com/parsekit/gramsql/grammar"
)

// cacheKey is the memoization key for a tentative parse attempt (spec
// §4.14): the grammar being matched, the starting position, a fingerprint
// of the active terminator set, the inherited max_idx, and an optional
// parse-mode override.
type cacheKey struct {
	grammarID    grammar.ID
	pos          int
	termFP       uint64
	maxIdx       int
	hasMaxIdx    bool
	modeOverride int8 // the frame's effective grammar.ParseMode
}

type cacheValue struct {
	node   cst.Node
	endPos int
}

// parseCache memoizes tentative parse results keyed by (grammar, position,
// terminator fingerprint, max_idx). It is purely a function of immutable
// inputs — concurrent readers would be safe — but a Parser and its cache
// are owned by exactly one parse invocation (spec §4.14, §5).
//
// The backing store is an insertion-ordered map (github.com/wk8/go-ordered-map/v2)
// rather than a plain Go map, so Dump (used by tests and trace tooling)
// reports entries in the deterministic order they were first populated
// instead of Go's randomized map iteration order.
type parseCache struct {
	enabled bool
	entries *orderedmap.OrderedMap[cacheKey, cacheValue]
}

func newParseCache() *parseCache {
	return &parseCache{
		enabled: true,
		entries: orderedmap.New[cacheKey, cacheValue](),
	}
}

func (c *parseCache) get(key cacheKey) (cacheValue, bool) {
	if !c.enabled {
		return cacheValue{}, false
	}
	v, ok := c.entries.Get(key)
	return v, ok
}

func (c *parseCache) put(key cacheKey, v cacheValue) {
	if !c.enabled {
		return
	}
	c.entries.Set(key, v)
}

func (c *parseCache) Len() int {
	return c.entries.Len()
}

// Dump returns the cache contents in insertion order, for debugging.
func (c *parseCache) Dump() []string {
	out := make([]string, 0, c.entries.Len())
	for pair := c.entries.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, strconv.Itoa(int(pair.Key.grammarID))+"@"+strconv.Itoa(pair.Key.pos))
	}
	return out
}

// fingerprintTerminators hashes a terminator set into a single uint64 so it
// can be used as part of a cacheKey without retaining a slice (which
// wouldn't be comparable, and so couldn't be a map key).
func fingerprintTerminators(ids []grammar.ID) uint64 {
	h := fnv.New64a()
	var buf [4]byte
	for _, id := range ids {
		buf[0] = byte(id)
		buf[1] = byte(id >> 8)
		buf[2] = byte(id >> 16)
		buf[3] = byte(id >> 24)
		_, _ = h.Write(buf[:])
	}
	return h.Sum64()
}
