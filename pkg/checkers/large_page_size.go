package checkers

import (
	"fmt"

	"github.com/sqlshield/sqlshield/pkg/sqlast"
	"github.com/sqlshield/sqlshield/pkg/types"
)

// DefaultMaxPageSize is the large-page-size threshold absent explicit config.
const DefaultMaxPageSize = 1000

// LargePageSize fires when a SELECT's LIMIT row count exceeds the configured
// threshold — a single oversized page can dominate a connection's memory and
// network time as badly as an unbounded query, just with a LIMIT clause
// giving false confidence that it's bounded.
type LargePageSize struct{}

// NewLargePageSize constructs the large-page-size checker.
func NewLargePageSize() *LargePageSize { return &LargePageSize{} }

func (*LargePageSize) Name() string               { return "large-page-size" }
func (*LargePageSize) DefaultRisk() types.RiskLevel { return types.RiskMedium }

func (c *LargePageSize) Check(ctx *types.SqlContext, cfg *types.RuleCheckerConfig) ([]types.Violation, error) {
	if ctx.AST == nil || ctx.AST.Degraded || ctx.AST.Statement == nil {
		return nil, nil
	}
	limit := sqlast.LimitOf(ctx.AST.Statement)
	if limit == nil || limit.Rowcount == nil {
		return nil, nil
	}
	pageSize, ok := sqlast.IntLiteral(limit.Rowcount)
	if !ok {
		return nil, nil
	}

	maxPageSize := intOption(cfg, "max_page_size", DefaultMaxPageSize)
	if pageSize <= int64(maxPageSize) {
		return nil, nil
	}

	risk := cfg.ResolvedRisk(c.DefaultRisk())
	return []types.Violation{violation(
		risk,
		c.Name(),
		fmt.Sprintf("LIMIT %d exceeds the maximum allowed page size %d", pageSize, maxPageSize),
		"reduce the page size or stream the result instead of fetching it in one page",
		ctx.StatementID,
	)}, nil
}
