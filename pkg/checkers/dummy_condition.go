package checkers

import (
	"github.com/xwb1989/sqlparser"

	"github.com/sqlshield/sqlshield/pkg/sqlast"
	"github.com/sqlshield/sqlshield/pkg/types"
)

// DummyCondition fires when a WHERE or ON clause contains a constant-true
// expression (`1=1`, `'a'='a'`, a bare `true`), or any additionally
// configured textual pattern. Detection of the built-in shapes is
// AST-structural: it compares parsed operands, never the raw SQL text.
type DummyCondition struct{}

// NewDummyCondition constructs the dummy-condition checker.
func NewDummyCondition() *DummyCondition { return &DummyCondition{} }

func (*DummyCondition) Name() string               { return "dummy-condition" }
func (*DummyCondition) DefaultRisk() types.RiskLevel { return types.RiskHigh }

func (c *DummyCondition) Check(ctx *types.SqlContext, cfg *types.RuleCheckerConfig) ([]types.Violation, error) {
	if ctx.AST == nil || ctx.AST.Degraded || ctx.AST.Statement == nil {
		return nil, nil
	}

	patterns := extraPatterns(cfg)
	risk := cfg.ResolvedRisk(c.DefaultRisk())

	var found []types.Violation
	if where, ok := sqlast.WhereOf(ctx.AST.Statement); ok && where != nil && where.Expr != nil {
		if containsTautology(where.Expr, patterns) {
			found = append(found, violation(
				risk,
				c.Name(),
				"WHERE clause contains a constant-true condition",
				"remove the tautological predicate or replace it with a real filter",
				ctx.StatementID,
			))
		}
	}
	for _, on := range sqlast.OnConditions(ctx.AST.Statement) {
		if containsTautology(on, patterns) {
			found = append(found, violation(
				risk,
				c.Name(),
				"JOIN ON clause contains a constant-true condition",
				"remove the tautological join predicate or replace it with a real join key",
				ctx.StatementID,
			))
			break
		}
	}
	return found, nil
}

// containsTautology reports whether expr, or any operand reached through
// AND/OR/parentheses, is constant-true, so `1=1 AND status=1` counts too.
func containsTautology(expr sqlparser.Expr, patterns []string) bool {
	if sqlast.IsTautology(expr, patterns) {
		return true
	}
	switch e := expr.(type) {
	case *sqlparser.AndExpr:
		return containsTautology(e.Left, patterns) || containsTautology(e.Right, patterns)
	case *sqlparser.OrExpr:
		return containsTautology(e.Left, patterns) || containsTautology(e.Right, patterns)
	case *sqlparser.ParenExpr:
		return containsTautology(e.Expr, patterns)
	}
	return false
}

func extraPatterns(cfg *types.RuleCheckerConfig) []string {
	if cfg == nil || cfg.Data == nil {
		return nil
	}
	raw, ok := cfg.Data["patterns"].([]string)
	if !ok {
		return nil
	}
	return raw
}
