package sqlast

import (
	"strings"

	"github.com/xwb1989/sqlparser"

	"github.com/sqlshield/sqlshield/pkg/types"
)

// CommandKindOf classifies a parsed statement into the coarse command kinds
// the rest of the engine reasons about.
func CommandKindOf(stmt sqlparser.Statement) types.CommandKind {
	switch stmt.(type) {
	case *sqlparser.Select, *sqlparser.Union, *sqlparser.ParenSelect:
		return types.CommandSelect
	case *sqlparser.Insert:
		return types.CommandInsert
	case *sqlparser.Update:
		return types.CommandUpdate
	case *sqlparser.Delete:
		return types.CommandDelete
	default:
		return types.CommandUnknown
	}
}

// WhereOf returns the top-level WHERE clause of stmt, if the statement kind
// has one at all. ok is false for statement kinds with no WHERE slot (e.g.
// INSERT); a true ok with a nil *sqlparser.Where means the slot exists but was
// left empty — the "no WHERE clause" case rule checkers look for.
func WhereOf(stmt sqlparser.Statement) (where *sqlparser.Where, ok bool) {
	switch s := stmt.(type) {
	case *sqlparser.Select:
		return s.Where, true
	case *sqlparser.Update:
		return s.Where, true
	case *sqlparser.Delete:
		return s.Where, true
	default:
		return nil, false
	}
}

// HasWhere reports whether stmt both has a WHERE slot and a non-empty predicate in it.
func HasWhere(stmt sqlparser.Statement) bool {
	where, ok := WhereOf(stmt)
	return ok && where != nil && where.Expr != nil
}

// LimitOf returns the LIMIT clause of stmt, or nil if absent/not applicable.
func LimitOf(stmt sqlparser.Statement) *sqlparser.Limit {
	sel, ok := stmt.(*sqlparser.Select)
	if !ok {
		return nil
	}
	return sel.Limit
}

// OrderByOf returns the ORDER BY clause of stmt, or nil if absent/not applicable.
func OrderByOf(stmt sqlparser.Statement) sqlparser.OrderBy {
	sel, ok := stmt.(*sqlparser.Select)
	if !ok {
		return nil
	}
	return sel.OrderBy
}

// IntLiteral extracts the integer value of a LIMIT/OFFSET expression when it
// is a plain numeric literal. ok is false for bind-parameter placeholders
// (the value is not known until execution time, so the rule cannot evaluate
// it structurally and must skip).
func IntLiteral(expr sqlparser.Expr) (value int64, ok bool) {
	sqlVal, isVal := expr.(*sqlparser.SQLVal)
	if !isVal || sqlVal.Type != sqlparser.IntVal {
		return 0, false
	}
	var n int64
	for _, b := range sqlVal.Val {
		if b < '0' || b > '9' {
			return 0, false
		}
		n = n*10 + int64(b-'0')
	}
	return n, true
}

// tautologyComparisons are operators under which identical left/right operands
// (or two string/numeric literals with equal textual value) make the
// comparison a constant-true predicate: `x = x`, `'a' = 'a'`.
var tautologyComparisons = map[string]bool{
	sqlparser.EqualStr:       true,
	sqlparser.LessEqualStr:   true,
	sqlparser.GreaterEqualStr: true,
}

// IsTautology reports whether expr is a constant-true predicate: `1=1`,
// `'a'='a'`, a bare boolean-true literal, or any of the caller-configured
// textual patterns (matched against the expression's canonical rendering, for
// patterns that cannot be expressed structurally, e.g. a shop-specific
// "1=1 /* trusted */" convention). Detection for the built-in cases is
// AST-structural: it compares parsed operands, not raw SQL text.
func IsTautology(expr sqlparser.Expr, extraPatterns []string) bool {
	if expr == nil {
		return false
	}
	if tautologicalNode(expr) {
		return true
	}
	if len(extraPatterns) == 0 {
		return false
	}
	rendered := sqlparser.String(expr)
	for _, pattern := range extraPatterns {
		if pattern != "" && strings.Contains(rendered, pattern) {
			return true
		}
	}
	return false
}

func tautologicalNode(expr sqlparser.Expr) bool {
	switch e := expr.(type) {
	case *sqlparser.ParenExpr:
		return tautologicalNode(e.Expr)
	case *sqlparser.AndExpr:
		return tautologicalNode(e.Left) && tautologicalNode(e.Right)
	case *sqlparser.OrExpr:
		return tautologicalNode(e.Left) || tautologicalNode(e.Right)
	case *sqlparser.ComparisonExpr:
		if !tautologyComparisons[e.Operator] {
			return false
		}
		return sameLiteralOrColumn(e.Left, e.Right)
	case *sqlparser.BoolVal:
		return bool(*e)
	case *sqlparser.ColName:
		name := strings.ToLower(e.Name.String())
		return name == "true"
	default:
		return false
	}
}

// sameLiteralOrColumn reports whether two operands are trivially and
// structurally equal: the same column reference on both sides, or two literal
// values with equal textual content (covers `1=1`, `'a'='a'`, and their
// negative-form analogues).
func sameLiteralOrColumn(left, right sqlparser.Expr) bool {
	if lc, ok := left.(*sqlparser.ColName); ok {
		if rc, ok := right.(*sqlparser.ColName); ok {
			return strings.EqualFold(lc.Name.String(), rc.Name.String()) &&
				strings.EqualFold(lc.Qualifier.Name.String(), rc.Qualifier.Name.String())
		}
	}
	lv, lok := left.(*sqlparser.SQLVal)
	rv, rok := right.(*sqlparser.SQLVal)
	if lok && rok {
		return lv.Type == rv.Type && string(lv.Val) == string(rv.Val)
	}
	return false
}

// ColumnNames collects every bare column identifier referenced anywhere in
// stmt: select list, WHERE, ON, SET. Table-qualified references keep only the
// column's own name, matching the blacklist/whitelist rules' "identifier,
// case-insensitive" contract.
func ColumnNames(stmt sqlparser.Statement) []string {
	var names []string
	_ = sqlparser.Walk(func(node sqlparser.SQLNode) (bool, error) {
		if col, ok := node.(*sqlparser.ColName); ok {
			names = append(names, col.Name.String())
		}
		return true, nil
	}, stmt)
	return names
}

// TableNames collects the bare table names referenced by stmt's FROM/UPDATE/
// DELETE-FROM clause. Other statement kinds, INSERT included, yield nil.
func TableNames(stmt sqlparser.Statement) []string {
	var exprs sqlparser.TableExprs
	switch s := stmt.(type) {
	case *sqlparser.Select:
		exprs = s.From
	case *sqlparser.Update:
		exprs = s.TableExprs
	case *sqlparser.Delete:
		exprs = s.TableExprs
	default:
		return nil
	}
	var names []string
	for _, expr := range exprs {
		_ = sqlparser.Walk(func(node sqlparser.SQLNode) (bool, error) {
			if tbl, ok := node.(sqlparser.TableName); ok && !tbl.IsEmpty() {
				names = append(names, tbl.Name.String())
			}
			return true, nil
		}, expr)
	}
	return names
}

// OnConditions collects every JOIN ON predicate in stmt's FROM clause. The
// dummy-condition rule treats these the same as a WHERE predicate
// "WHERE (or ON) contains a constant-true expression").
func OnConditions(stmt sqlparser.Statement) []sqlparser.Expr {
	var exprs sqlparser.TableExprs
	switch s := stmt.(type) {
	case *sqlparser.Select:
		exprs = s.From
	case *sqlparser.Update:
		exprs = s.TableExprs
	case *sqlparser.Delete:
		exprs = s.TableExprs
	default:
		return nil
	}
	var conds []sqlparser.Expr
	for _, expr := range exprs {
		_ = sqlparser.Walk(func(node sqlparser.SQLNode) (bool, error) {
			if join, ok := node.(*sqlparser.JoinTableExpr); ok && join.Condition.On != nil {
				conds = append(conds, join.Condition.On)
			}
			return true, nil
		}, expr)
	}
	return conds
}

// IsCountStarSelect reports whether sel's select list is exactly `COUNT(*)`,
// the shape the count-star rule looks for.
func IsCountStarSelect(sel *sqlparser.Select) bool {
	if len(sel.SelectExprs) != 1 {
		return false
	}
	aliased, ok := sel.SelectExprs[0].(*sqlparser.AliasedExpr)
	if !ok {
		return false
	}
	fn, ok := aliased.Expr.(*sqlparser.FuncExpr)
	if !ok || !strings.EqualFold(fn.Name.String(), "count") {
		return false
	}
	if len(fn.Exprs) != 1 {
		return false
	}
	_, isStar := fn.Exprs[0].(*sqlparser.StarExpr)
	return isStar
}
