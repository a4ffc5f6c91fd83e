package checkers

import (
	"github.com/sqlshield/sqlshield/pkg/sqlast"
	"github.com/sqlshield/sqlshield/pkg/types"
)

// LogicalPagination fires when the caller told the ORM layer to paginate
// (SqlContext.Pagination is set) but the resolved SQL has no LIMIT at all —
// meaning the ORM is about to pull the full result set into memory and
// paginate there, a CRITICAL failure mode.
//
// Per the Open Questions resolution in DESIGN.md: when the resolved SQL does
// contain a LIMIT, this rule does not fire, regardless of whether its
// offset/size match the marker — deep-pagination and large-page-size already
// bound the physical LIMIT/OFFSET independently.
type LogicalPagination struct{}

// NewLogicalPagination constructs the logical-pagination checker.
func NewLogicalPagination() *LogicalPagination { return &LogicalPagination{} }

func (*LogicalPagination) Name() string               { return "logical-pagination" }
func (*LogicalPagination) DefaultRisk() types.RiskLevel { return types.RiskCritical }

func (c *LogicalPagination) Check(ctx *types.SqlContext, cfg *types.RuleCheckerConfig) ([]types.Violation, error) {
	if ctx.Pagination == nil {
		return nil, nil
	}
	if ctx.AST == nil || ctx.AST.Degraded || ctx.AST.Statement == nil {
		return nil, nil
	}
	if sqlast.CommandKindOf(ctx.AST.Statement) != types.CommandSelect {
		return nil, nil
	}
	if sqlast.LimitOf(ctx.AST.Statement) != nil {
		return nil, nil
	}

	risk := cfg.ResolvedRisk(c.DefaultRisk())
	return []types.Violation{violation(
		risk,
		c.Name(),
		"pagination marker present but resolved SQL has no LIMIT: pagination will happen in memory",
		"ensure the pagination plugin augments the SQL with LIMIT/OFFSET before it reaches the database",
		ctx.StatementID,
	)}, nil
}
