package fixture

import (
	"regexp"

	"github.com/parsekit/gramsql/grammar"
)

// SQLTables builds a small SELECT-only dialect exercising every
// combinator and most terminal matchers: a qualified-name chain built
// with AnyNumberOf, a column list with Delimited and a star/list OneOf, a
// parenthesized-condition grammar that recurses through Bracketed, an
// AND/OR condition chain via Delimited with a MultiStringParser
// delimiter, and an ORDER BY clause whose ASC/DESC modifier uses
// AnySetOf. It stands in for the "dialect library" collaborator the core
// engine consumes (spec §1) — nothing here is part of the core itself.
func SQLTables() *grammar.Tables {
	return sqlTables(true)
}

// SQLTablesNoHints builds the identical dialect with every simple hint
// omitted, for cross-checking that hint pruning never changes a parse
// result (spec §8 "hint soundness").
func SQLTablesNoHints() *grammar.Tables {
	return sqlTables(false)
}

func sqlTables(withHints bool) *grammar.Tables {
	b := NewBuilder()
	hintRaw := func(id grammar.ID, vals ...string) {
		if withHints {
			b.RawHint(id, vals...)
		}
	}
	hintTyped := func(id grammar.ID, types ...string) {
		if withHints {
			b.TypedHint(id, types...)
		}
	}

	// --- terminals ---
	identifier := b.Reserve()
	b.DefineTypedParser(identifier, string(TypeIdentifier))

	numeric := b.Reserve()
	b.DefineTypedParser(numeric, string(TypeNumeric))

	stringLit := b.Reserve()
	b.DefineRegexParser(stringLit,
		regexp.MustCompile(`^'.*'$`),
		string(TypeStringLit),
		regexp.MustCompile(`^''$`), // reject the empty string literal
	)

	kwSelect := b.Reserve()
	b.DefineStringParser(kwSelect, "SELECT", string(TypeKeyword))
	kwFrom := b.Reserve()
	b.DefineStringParser(kwFrom, "FROM", string(TypeKeyword))
	kwWhere := b.Reserve()
	b.DefineStringParser(kwWhere, "WHERE", string(TypeKeyword))
	kwAs := b.Reserve()
	b.DefineStringParser(kwAs, "AS", string(TypeKeyword))
	kwOrder := b.Reserve()
	b.DefineStringParser(kwOrder, "ORDER", string(TypeKeyword))
	kwBy := b.Reserve()
	b.DefineStringParser(kwBy, "BY", string(TypeKeyword))

	andOr := b.Reserve()
	b.DefineMultiStringParser(andOr, []string{"AND", "OR"}, string(TypeKeyword))
	ascDesc := b.Reserve()
	b.DefineMultiStringParser(ascDesc, []string{"ASC", "DESC"}, string(TypeKeyword))

	star := b.Reserve()
	b.DefineToken(star, "*")
	comma := b.Reserve()
	b.DefineToken(comma, ",")
	dot := b.Reserve()
	b.DefineToken(dot, ".")
	lparen := b.Reserve()
	b.DefineToken(lparen, "(")
	rparen := b.Reserve()
	b.DefineToken(rparen, ")")
	eq := b.Reserve()
	b.DefineToken(eq, "=")

	const gaps = grammar.AllowGaps

	// --- QualifiedName: identifier (. identifier)* ---
	qualTailElem := b.Reserve()
	b.DefineSequence(qualTailElem, []grammar.ID{dot, identifier}, grammar.Strict, gaps)
	qualTailAny := b.Reserve()
	b.DefineAnyNumberOf(qualTailAny, []grammar.ID{qualTailElem}, AnyNumberOfSpec{Min: 0}, gaps)
	qualifiedNameSeq := b.Reserve()
	b.DefineSequence(qualifiedNameSeq, []grammar.ID{identifier, qualTailAny}, grammar.Strict, gaps)
	refQualifiedName := b.Reserve()
	b.DefineRef(refQualifiedName, "QualifiedName", "", qualifiedNameSeq, true, 0, false, 0)

	// --- ColumnExpr: QualifiedName (AS identifier)? ---
	aliasElem := b.Reserve()
	b.DefineSequence(aliasElem, []grammar.ID{kwAs, identifier}, grammar.Strict, gaps)
	one := 1
	aliasAny := b.Reserve()
	b.DefineAnyNumberOf(aliasAny, []grammar.ID{aliasElem}, AnyNumberOfSpec{Min: 0, Max: &one}, gaps)
	columnExprSeq := b.Reserve()
	b.DefineSequence(columnExprSeq, []grammar.ID{refQualifiedName, aliasAny}, grammar.Strict, gaps)
	refColumnExpr := b.Reserve()
	b.DefineRef(refColumnExpr, "ColumnExpr", "select_clause_element", columnExprSeq, true, 0, false, 0)

	// --- ColumnList: * | ColumnExpr (, ColumnExpr)* ---
	columnDelimited := b.Reserve()
	b.DefineDelimited(columnDelimited, []grammar.ID{refColumnExpr}, comma, 0, gaps)
	columnListOneOf := b.Reserve()
	b.DefineOneOf(columnListOneOf, []grammar.ID{star, columnDelimited}, 0, 0, false)
	hintRaw(star, "*")
	hintTyped(columnDelimited, string(TypeIdentifier))
	refColumnList := b.Reserve()
	b.DefineRef(refColumnList, "ColumnList", "", columnListOneOf, true, 0, false, 0)

	// --- Value: numeric | string | QualifiedName ---
	valueOneOf := b.Reserve()
	b.DefineOneOf(valueOneOf, []grammar.ID{numeric, stringLit, refQualifiedName}, 0, 0, false)
	refValue := b.Reserve()
	b.DefineRef(refValue, "Value", "literal", valueOneOf, true, 0, false, 0)

	// --- Comparison: QualifiedName = Value ---
	comparisonSeq := b.Reserve()
	b.DefineSequence(comparisonSeq, []grammar.ID{refQualifiedName, eq, refValue}, grammar.Strict, gaps)
	refComparison := b.Reserve()
	b.DefineRef(refComparison, "Comparison", "expression", comparisonSeq, true, 0, false, 0)

	// --- Condition: Comparison | ( Condition ) ---
	conditionOneOf := b.Reserve()
	refCondition := b.Reserve()
	parenConditionBrk := b.Reserve()
	refParenCondition := b.Reserve()
	b.DefineOneOf(conditionOneOf, []grammar.ID{refComparison, refParenCondition}, 0, 0, false)
	b.DefineRef(refCondition, "Condition", "expression", conditionOneOf, true, 0, false, 0)
	b.DefineBracketed(parenConditionBrk, lparen, rparen, []grammar.ID{refCondition}, gaps)
	b.DefineRef(refParenCondition, "ParenCondition", "expression", parenConditionBrk, true, 0, false, 0)
	hintTyped(refComparison, string(TypeIdentifier))
	hintRaw(refParenCondition, "(")

	// --- WhereClause: WHERE Condition ((AND|OR) Condition)* ---
	conditionChain := b.Reserve()
	b.DefineDelimited(conditionChain, []grammar.ID{refCondition}, andOr, 0, gaps)
	whereClauseSeq := b.Reserve()
	b.DefineSequence(whereClauseSeq, []grammar.ID{kwWhere, conditionChain}, grammar.Strict, gaps)
	refWhereClause := b.Reserve()
	b.DefineRef(refWhereClause, "WhereClause", "", whereClauseSeq, true, 0, false, 0)
	b.t.Insts[refWhereClause].Flags = b.t.Insts[refWhereClause].Flags.With(grammar.Optional)

	// --- OrderByClause: ORDER BY OrderItem (, OrderItem)* ---
	orderItemSeq := b.Reserve()
	ascDescSet := b.Reserve()
	b.DefineAnySetOf(ascDescSet, []grammar.ID{ascDesc}, AnyNumberOfSpec{Min: 0, Max: &one, MaxPerElement: &one}, gaps)
	b.DefineSequence(orderItemSeq, []grammar.ID{refQualifiedName, ascDescSet}, grammar.Strict, gaps)
	refOrderItem := b.Reserve()
	b.DefineRef(refOrderItem, "OrderByItem", "", orderItemSeq, true, 0, false, 0)
	orderByDelimited := b.Reserve()
	b.DefineDelimited(orderByDelimited, []grammar.ID{refOrderItem}, comma, 0, gaps)
	orderByClauseSeq := b.Reserve()
	b.DefineSequence(orderByClauseSeq, []grammar.ID{kwOrder, kwBy, orderByDelimited}, grammar.Strict, gaps)
	refOrderByClause := b.Reserve()
	b.DefineRef(refOrderByClause, "OrderByClause", "", orderByClauseSeq, true, 0, false, 0)
	b.t.Insts[refOrderByClause].Flags = b.t.Insts[refOrderByClause].Flags.With(grammar.Optional)

	// --- SelectStatement: SELECT ColumnList FROM QualifiedName WhereClause? OrderByClause? ---
	selectStatementSeq := b.Reserve()
	b.DefineSequence(selectStatementSeq, []grammar.ID{
		kwSelect, refColumnList, kwFrom, refQualifiedName, refWhereClause, refOrderByClause,
	}, grammar.GreedyOnceStarted, gaps)
	refSelectStatement := b.Reserve()
	b.DefineRef(refSelectStatement, "SelectStatement", "statement", selectStatementSeq, true, 0, false, 0)

	statementOneOf := b.Reserve()
	b.DefineOneOf(statementOneOf, []grammar.ID{refSelectStatement}, 0, 0, false)
	refStatement := b.Reserve()
	b.DefineRef(refStatement, "Statement", "", statementOneOf, true, 0, false, 0)

	b.SetRoot(refStatement)
	return b.Build()
}
