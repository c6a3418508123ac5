package grammar

// Flags packs the boolean attributes of a grammar instruction into 16 bits
// (spec §3.2).
type Flags uint16

const (
	Optional Flags = 1 << iota
	ResetTerminators
	AllowGaps
	AllowTrailing
	OptionalDelimiter
	HasSimpleHint
	HasExclude
	HasAntiTemplate
	IsConditional
	HasExplicitTarget
)

// Has reports whether any bit set in bit is also set in f.
func (f Flags) Has(bit Flags) bool {
	return f&bit != 0
}

// With returns f with bit set.
func (f Flags) With(bit Flags) Flags {
	return f | bit
}

// Without returns f with bit cleared.
func (f Flags) Without(bit Flags) Flags {
	return f &^ bit
}
