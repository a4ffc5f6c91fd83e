package checkers

import (
	"github.com/sqlshield/sqlshield/pkg/sqlast"
	"github.com/sqlshield/sqlshield/pkg/types"
)

// NoConditionPagination fires when a SELECT is being paginated — either via a
// logical-pagination marker or a physical LIMIT — but its WHERE is absent or
// tautological. Paginating an unfiltered table is the classic "deep offset
// scans every row up to the offset" performance trap, compounded here by the
// complete lack of a selective predicate.
type NoConditionPagination struct{}

// NewNoConditionPagination constructs the no-condition-pagination checker.
func NewNoConditionPagination() *NoConditionPagination { return &NoConditionPagination{} }

func (*NoConditionPagination) Name() string               { return "no-condition-pagination" }
func (*NoConditionPagination) DefaultRisk() types.RiskLevel { return types.RiskCritical }

func (c *NoConditionPagination) Check(ctx *types.SqlContext, cfg *types.RuleCheckerConfig) ([]types.Violation, error) {
	if ctx.AST == nil || ctx.AST.Degraded || ctx.AST.Statement == nil {
		return nil, nil
	}
	if sqlast.CommandKindOf(ctx.AST.Statement) != types.CommandSelect {
		return nil, nil
	}

	paginated := ctx.Pagination != nil || sqlast.LimitOf(ctx.AST.Statement) != nil
	if !paginated {
		return nil, nil
	}

	where, hasWhereSlot := sqlast.WhereOf(ctx.AST.Statement)
	noCondition := !hasWhereSlot || where == nil || where.Expr == nil ||
		sqlast.IsTautology(where.Expr, extraPatterns(cfg))
	if !noCondition {
		return nil, nil
	}

	risk := cfg.ResolvedRisk(c.DefaultRisk())
	return []types.Violation{violation(
		risk,
		c.Name(),
		"paginated SELECT has no effective WHERE condition",
		"add a selective WHERE predicate before paginating this query",
		ctx.StatementID,
	)}, nil
}
