package fixture

import (
	"regexp"
	"strings"

	"github.com/parsekit/gramsql/token"
)

// Token type tags the fixture lexer assigns. A real dialect's lexer would
// own a much larger set; this is just enough to drive the sample grammar
// in grammar.go.
const (
	TypeKeyword     token.Type = "keyword"
	TypeIdentifier  token.Type = "identifier"
	TypeNumeric     token.Type = "numeric_literal"
	TypeStringLit   token.Type = "string_literal"
	TypeOperator    token.Type = "operator"
	TypePunctuation token.Type = "punctuation"
)

var lexPatterns = []struct {
	re        *regexp.Regexp
	tokenType token.Type
	code      bool
}{
	{regexp.MustCompile(`^--[^\n]*`), token.TypeComment, false},
	{regexp.MustCompile(`^/\*([^*]|\*[^/])*\*/`), token.TypeComment, false},
	{regexp.MustCompile(`^[ \t]+`), token.TypeWhitespace, false},
	{regexp.MustCompile(`^\r?\n`), token.TypeNewline, false},
	{regexp.MustCompile(`^'([^']|'')*'`), TypeStringLit, true},
	{regexp.MustCompile(`^[0-9]+(\.[0-9]+)?`), TypeNumeric, true},
	{regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*`), TypeIdentifier, true},
	{regexp.MustCompile(`^(<=|>=|<>|!=|=|<|>|\+|-|\*|/)`), TypeOperator, true},
	{regexp.MustCompile(`^[(),.;]`), TypePunctuation, true},
}

var keywords = map[string]struct{}{
	"SELECT": {}, "FROM": {}, "WHERE": {}, "AND": {}, "OR": {}, "NOT": {},
	"AS": {}, "JOIN": {}, "ON": {}, "INNER": {}, "LEFT": {}, "OUTER": {},
	"ORDER": {}, "BY": {}, "GROUP": {}, "HAVING": {}, "LIMIT": {}, "DISTINCT": {},
	"INSERT": {}, "INTO": {}, "VALUES": {}, "UPDATE": {}, "SET": {}, "DELETE": {},
	"NULL": {}, "IS": {}, "IN": {}, "LIKE": {}, "BETWEEN": {}, "ASC": {}, "DESC": {},
}

func upper(s string) string {
	return strings.ToUpper(s)
}

// Lex tokenizes src into a token.Stream terminated by a single
// end_of_file token, promoting bare identifiers to the keyword type when
// their uppercased text is one of the grammar's reserved words (plain
// case-insensitive keyword recognition, no separate keyword regex needed).
func Lex(src string) token.Stream {
	var toks []token.Token
	rest := src
	offset := 0
	line, col := 1, 1

	advance := func(raw string) {
		for _, r := range raw {
			if r == '\n' {
				line++
				col = 1
			} else {
				col++
			}
		}
		offset += len(raw)
		rest = rest[len(raw):]
	}

	for len(rest) > 0 {
		matched := false
		for _, pat := range lexPatterns {
			loc := pat.re.FindString(rest)
			if loc == "" {
				continue
			}
			matched = true
			tokenType := pat.tokenType
			if pat.code && tokenType == TypeIdentifier {
				if _, ok := keywords[upper(loc)]; ok {
					tokenType = TypeKeyword
				}
			}
			start := offset
			toks = append(toks, token.Token{
				Raw:          loc,
				TokenType:    tokenType,
				IsCode:       pat.code,
				IsWhitespace: tokenType == token.TypeWhitespace,
				IsComment:    tokenType == token.TypeComment,
				PosMarker: token.PositionMarker{
					SourceSlice: [2]int{start, start + len(loc)},
					Line:        line,
					Col:         col,
				},
			})
			advance(loc)
			break
		}
		if !matched {
			// Unrecognized byte: surface it as a one-rune code token rather
			// than looping forever or silently dropping input.
			r := rest[:1]
			start := offset
			toks = append(toks, token.Token{
				Raw:       r,
				TokenType: TypePunctuation,
				IsCode:    true,
				PosMarker: token.PositionMarker{SourceSlice: [2]int{start, start + 1}, Line: line, Col: col},
			})
			advance(r)
		}
	}

	toks = append(toks, token.Token{TokenType: token.TypeEndOfFile})
	pairBrackets(toks)
	return token.Stream(toks)
}

// pairBrackets resolves MatchingBracketIdx for every paren in toks (spec
// §6: the lexer, not the parser, is responsible for bracket pairing).
func pairBrackets(toks []token.Token) {
	var stack []int
	for i, t := range toks {
		if !t.IsCode {
			continue
		}
		switch t.Raw {
		case "(":
			stack = append(stack, i)
		case ")":
			if len(stack) == 0 {
				continue
			}
			openIdx := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			closeIdx := i
			toks[openIdx].MatchingBracketIdx = &closeIdx
			toks[closeIdx].MatchingBracketIdx = &openIdx
		}
	}
}
