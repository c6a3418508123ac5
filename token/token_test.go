package token

import "testing"

func TestIsTransparent(t *testing.T) {
	tests := []struct {
		name string
		tok  Token
		want bool
	}{
		{"code word", Token{IsCode: true}, false},
		{"whitespace", Token{IsWhitespace: true}, true},
		{"newline", Token{TokenType: TypeNewline}, true},
		{"comment", Token{IsComment: true}, true},
		{"meta", Token{IsMeta: true}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tok.IsTransparent(); got != tt.want {
				t.Errorf("IsTransparent() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsOpenBracket(t *testing.T) {
	for _, raw := range []string{"(", "[", "{"} {
		if !(Token{Raw: raw}).IsOpenBracket() {
			t.Errorf("IsOpenBracket(%q) = false, want true", raw)
		}
	}
	for _, raw := range []string{")", "]", "}", "x"} {
		if (Token{Raw: raw}).IsOpenBracket() {
			t.Errorf("IsOpenBracket(%q) = true, want false", raw)
		}
	}
}

func TestLastCodeIndexBefore(t *testing.T) {
	s := Stream{
		{Raw: "SELECT", IsCode: true},
		{Raw: " ", IsWhitespace: true},
		{Raw: "1", IsCode: true},
		{Raw: " ", IsWhitespace: true},
	}
	if got := s.LastCodeIndexBefore(4); got != 2 {
		t.Errorf("LastCodeIndexBefore(4) = %d, want 2", got)
	}
	if got := s.LastCodeIndexBefore(1); got != 0 {
		t.Errorf("LastCodeIndexBefore(1) = %d, want 0", got)
	}
	if got := s.LastCodeIndexBefore(0); got != -1 {
		t.Errorf("LastCodeIndexBefore(0) = %d, want -1", got)
	}
}
