package checkers

import (
	"github.com/xwb1989/sqlparser"

	"github.com/sqlshield/sqlshield/pkg/sqlast"
	"github.com/sqlshield/sqlshield/pkg/types"
)

// CountStar fires on a bare `SELECT COUNT(*) ...` with no WHERE: a full table
// count, which on large tables can be as expensive as a full scan despite
// returning a single row. This rule is registered like any other checker, but
// ships disabled by default — counting a table is a legitimate, common
// operation, and most callers would rather not be warned every time.
type CountStar struct{}

// NewCountStar constructs the count-star checker.
func NewCountStar() *CountStar { return &CountStar{} }

func (*CountStar) Name() string                { return "count-star" }
func (*CountStar) DefaultRisk() types.RiskLevel { return types.RiskMedium }

func (c *CountStar) Check(ctx *types.SqlContext, cfg *types.RuleCheckerConfig) ([]types.Violation, error) {
	if ctx.AST == nil || ctx.AST.Degraded || ctx.AST.Statement == nil {
		return nil, nil
	}
	sel, ok := ctx.AST.Statement.(*sqlparser.Select)
	if !ok || !sqlast.IsCountStarSelect(sel) {
		return nil, nil
	}
	if sqlast.HasWhere(ctx.AST.Statement) {
		return nil, nil
	}

	risk := cfg.ResolvedRisk(c.DefaultRisk())
	return []types.Violation{violation(
		risk,
		c.Name(),
		"SELECT COUNT(*) with no WHERE counts the entire table",
		"maintain a running counter, or add a WHERE predicate that narrows the count",
		ctx.StatementID,
	)}, nil
}
