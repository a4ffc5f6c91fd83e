package checkers

import (
	"github.com/sqlshield/sqlshield/pkg/sqlast"
	"github.com/sqlshield/sqlshield/pkg/types"
)

// NoWhereClause fires when a top-level DELETE or UPDATE (and, if configured,
// SELECT) carries no WHERE clause at all — the single highest-value check in
// this engine, since an unqualified DELETE/UPDATE is the most common
// catastrophic mistake it exists to catch.
type NoWhereClause struct{}

// NewNoWhereClause constructs the no-where-clause checker.
func NewNoWhereClause() *NoWhereClause { return &NoWhereClause{} }

func (*NoWhereClause) Name() string               { return "no-where-clause" }
func (*NoWhereClause) DefaultRisk() types.RiskLevel { return types.RiskCritical }

func (c *NoWhereClause) Check(ctx *types.SqlContext, cfg *types.RuleCheckerConfig) ([]types.Violation, error) {
	if ctx.AST == nil || ctx.AST.Degraded || ctx.AST.Statement == nil {
		return nil, nil
	}

	kind := sqlast.CommandKindOf(ctx.AST.Statement)
	switch kind {
	case types.CommandDelete, types.CommandUpdate:
		// always in scope
	case types.CommandSelect:
		if !includeSelect(cfg) {
			return nil, nil
		}
	default:
		return nil, nil
	}

	if sqlast.HasWhere(ctx.AST.Statement) {
		return nil, nil
	}

	risk := cfg.ResolvedRisk(c.DefaultRisk())
	return []types.Violation{violation(
		risk,
		c.Name(),
		kind.String()+" statement has no WHERE clause",
		"add a WHERE clause scoping the affected rows, or confirm a full-table operation is intentional",
		ctx.StatementID,
	)}, nil
}

func includeSelect(cfg *types.RuleCheckerConfig) bool {
	if cfg == nil || cfg.Data == nil {
		return false
	}
	v, ok := cfg.Data["include_select"].(bool)
	return ok && v
}
