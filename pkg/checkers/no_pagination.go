package checkers

import (
	"strings"

	"github.com/sqlshield/sqlshield/pkg/sqlast"
	"github.com/sqlshield/sqlshield/pkg/types"
)

// NoPagination fires when a SELECT against a configured "large table" has no
// LIMIT at all. Its default risk is MEDIUM, but it steps down to INFO when a
// narrow WHERE predicate is present — an unpaginated SELECT against a large
// table with a selective filter is far less dangerous than the same query run
// completely unfiltered.
type NoPagination struct{}

// NewNoPagination constructs the no-pagination checker.
func NewNoPagination() *NoPagination { return &NoPagination{} }

func (*NoPagination) Name() string               { return "no-pagination" }
func (*NoPagination) DefaultRisk() types.RiskLevel { return types.RiskMedium }

func (c *NoPagination) Check(ctx *types.SqlContext, cfg *types.RuleCheckerConfig) ([]types.Violation, error) {
	if ctx.AST == nil || ctx.AST.Degraded || ctx.AST.Statement == nil {
		return nil, nil
	}
	if sqlast.CommandKindOf(ctx.AST.Statement) != types.CommandSelect {
		return nil, nil
	}
	if sqlast.LimitOf(ctx.AST.Statement) != nil {
		return nil, nil
	}

	largeTables := stringSet(cfg, "large_tables")
	if len(largeTables) == 0 {
		return nil, nil
	}
	onLargeTable := false
	for _, table := range sqlast.TableNames(ctx.AST.Statement) {
		if largeTables[strings.ToLower(table)] {
			onLargeTable = true
			break
		}
	}
	if !onLargeTable {
		return nil, nil
	}

	risk := cfg.ResolvedRisk(c.DefaultRisk())
	message := "SELECT against a large table has no LIMIT"
	if sqlast.HasWhere(ctx.AST.Statement) {
		risk = types.RiskInfo
		message = "SELECT against a large table has no LIMIT, but a WHERE predicate narrows it"
	}

	return []types.Violation{violation(
		risk,
		c.Name(),
		message,
		"add a LIMIT, or confirm the WHERE predicate is selective enough to bound the result",
		ctx.StatementID,
	)}, nil
}
