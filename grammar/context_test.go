package grammar

import "testing"

func TestInstIsOptional(t *testing.T) {
	tests := []struct {
		name string
		in   Inst
		want bool
	}{
		{"flag set", Inst{Variant: Sequence, Flags: Optional}, true},
		{"flag unset", Inst{Variant: Sequence}, false},
		{"anynumberof min 0", Inst{Variant: AnyNumberOf, MinTimes: 0}, true},
		{"anynumberof min 1", Inst{Variant: AnyNumberOf, MinTimes: 1}, false},
		{"anysetof min 0", Inst{Variant: AnySetOf, MinTimes: 0}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.IsOptional(); got != tt.want {
				t.Errorf("IsOptional() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSimpleHintMatches(t *testing.T) {
	var nilHint *SimpleHint
	if !nilHint.Matches("ANYTHING", "whatever") {
		t.Error("nil hint should match everything")
	}

	h := &SimpleHint{
		RawValues:  map[string]struct{}{"SELECT": {}},
		TokenTypes: map[string]struct{}{"numeric_literal": {}},
	}
	if !h.Matches("SELECT", "keyword") {
		t.Error("expected raw-value match")
	}
	if !h.Matches("1", "numeric_literal") {
		t.Error("expected token-type match")
	}
	if h.Matches("FROM", "keyword") {
		t.Error("expected no match")
	}
}

// buildTinyTables constructs a minimal table set exercising every accessor:
// Root -> Sequence[StringParser("SELECT"), TypedParser("numeric_literal")]
func buildTinyTables() *Tables {
	strs := []string{"SELECT", "keyword", "numeric_literal", "numeric_literal"}
	insts := []Inst{
		0: {Variant: StringParser, FirstChildIdx: 0}, // template "SELECT"
		1: {Variant: TypedParser, FirstChildIdx: 2},  // template "numeric_literal"
		2: {Variant: Sequence, FirstChildIdx: 0, ChildCount: 2},
	}
	return &Tables{
		Insts:          insts,
		ChildIDs:       []ID{0, 1},
		AuxData:        []uint32{1, 3},
		AuxDataOffsets: []uint32{0, 1, 0},
		Strings:        strs,
		Root:           2,
		SegmentNames:   map[string]ID{"Root": 2},
	}
}

func TestContextAccessors(t *testing.T) {
	ctx := NewContext(buildTinyTables())

	if got := ctx.Template(0); got != "SELECT" {
		t.Errorf("Template(0) = %q, want SELECT", got)
	}
	if got := ctx.ProducedTokenType(0); got != "keyword" {
		t.Errorf("ProducedTokenType(0) = %q, want keyword", got)
	}
	if got := ctx.Template(1); got != "numeric_literal" {
		t.Errorf("Template(1) = %q, want numeric_literal", got)
	}
	children := ctx.Children(2)
	if len(children) != 2 || children[0] != 0 || children[1] != 1 {
		t.Errorf("Children(2) = %v, want [0 1]", children)
	}
	if id, ok := ctx.Tables().Lookup("Root"); !ok || id != 2 {
		t.Errorf("Lookup(Root) = (%v, %v), want (2, true)", id, ok)
	}
}
