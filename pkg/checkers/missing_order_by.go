package checkers

import (
	"github.com/sqlshield/sqlshield/pkg/sqlast"
	"github.com/sqlshield/sqlshield/pkg/types"
)

// MissingOrderBy fires when a SELECT has a LIMIT but no ORDER BY. Without a
// deterministic order, which rows a LIMIT returns is up to the engine's
// internal plan, and can silently change between executions or after an
// index change — surprising behavior for anything that paginates.
type MissingOrderBy struct{}

// NewMissingOrderBy constructs the missing-order-by checker.
func NewMissingOrderBy() *MissingOrderBy { return &MissingOrderBy{} }

func (*MissingOrderBy) Name() string               { return "missing-order-by" }
func (*MissingOrderBy) DefaultRisk() types.RiskLevel { return types.RiskLow }

func (c *MissingOrderBy) Check(ctx *types.SqlContext, cfg *types.RuleCheckerConfig) ([]types.Violation, error) {
	if ctx.AST == nil || ctx.AST.Degraded || ctx.AST.Statement == nil {
		return nil, nil
	}
	if sqlast.LimitOf(ctx.AST.Statement) == nil {
		return nil, nil
	}
	if len(sqlast.OrderByOf(ctx.AST.Statement)) > 0 {
		return nil, nil
	}

	risk := cfg.ResolvedRisk(c.DefaultRisk())
	return []types.Violation{violation(
		risk,
		c.Name(),
		"LIMIT without ORDER BY: result order is not deterministic",
		"add an ORDER BY over a column that uniquely (or near-uniquely) orders the result",
		ctx.StatementID,
	)}, nil
}
