package checkers

import (
	"fmt"

	"github.com/sqlshield/sqlshield/pkg/sqlast"
	"github.com/sqlshield/sqlshield/pkg/types"
)

// DefaultMaxOffset is the deep-pagination threshold absent explicit config.
const DefaultMaxOffset = 10000

// DeepPagination fires when a SELECT's OFFSET exceeds the configured
// threshold. Large offsets force the database to scan and discard that many
// rows before returning anything, a cost that grows linearly with the offset
// and falls off a cliff well before the default threshold on most engines.
type DeepPagination struct{}

// NewDeepPagination constructs the deep-pagination checker.
func NewDeepPagination() *DeepPagination { return &DeepPagination{} }

func (*DeepPagination) Name() string               { return "deep-pagination" }
func (*DeepPagination) DefaultRisk() types.RiskLevel { return types.RiskMedium }

func (c *DeepPagination) Check(ctx *types.SqlContext, cfg *types.RuleCheckerConfig) ([]types.Violation, error) {
	if ctx.AST == nil || ctx.AST.Degraded || ctx.AST.Statement == nil {
		return nil, nil
	}
	limit := sqlast.LimitOf(ctx.AST.Statement)
	if limit == nil || limit.Offset == nil {
		return nil, nil
	}
	offset, ok := sqlast.IntLiteral(limit.Offset)
	if !ok {
		return nil, nil
	}

	maxOffset := intOption(cfg, "max_offset", DefaultMaxOffset)
	if offset <= int64(maxOffset) {
		return nil, nil
	}

	risk := cfg.ResolvedRisk(c.DefaultRisk())
	return []types.Violation{violation(
		risk,
		c.Name(),
		fmt.Sprintf("OFFSET %d exceeds the maximum allowed offset %d", offset, maxOffset),
		"use keyset/seek pagination instead of a large OFFSET",
		ctx.StatementID,
	)}, nil
}

func intOption(cfg *types.RuleCheckerConfig, key string, deflt int) int {
	if cfg == nil || cfg.Data == nil {
		return deflt
	}
	switch v := cfg.Data[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return deflt
	}
}
