package checkers

import (
	"fmt"
	"strings"

	"github.com/sqlshield/sqlshield/pkg/sqlast"
	"github.com/sqlshield/sqlshield/pkg/types"
)

// BlacklistField fires when a SELECT or UPDATE references a column whose
// identifier (case-insensitive) appears in the configured blacklist — the
// classic use case is keeping application code off a sensitive or deprecated
// column without having to audit every call site by hand.
type BlacklistField struct{}

// NewBlacklistField constructs the blacklist-field checker.
func NewBlacklistField() *BlacklistField { return &BlacklistField{} }

func (*BlacklistField) Name() string               { return "blacklist-field" }
func (*BlacklistField) DefaultRisk() types.RiskLevel { return types.RiskHigh }

func (c *BlacklistField) Check(ctx *types.SqlContext, cfg *types.RuleCheckerConfig) ([]types.Violation, error) {
	if ctx.AST == nil || ctx.AST.Degraded || ctx.AST.Statement == nil {
		return nil, nil
	}
	kind := sqlast.CommandKindOf(ctx.AST.Statement)
	if kind != types.CommandSelect && kind != types.CommandUpdate {
		return nil, nil
	}

	blacklist := stringSet(cfg, "blacklist")
	if len(blacklist) == 0 {
		return nil, nil
	}

	risk := cfg.ResolvedRisk(c.DefaultRisk())
	seen := map[string]bool{}
	var found []types.Violation
	for _, col := range sqlast.ColumnNames(ctx.AST.Statement) {
		key := strings.ToLower(col)
		if !blacklist[key] || seen[key] {
			continue
		}
		seen[key] = true
		found = append(found, violation(
			risk,
			c.Name(),
			fmt.Sprintf("column %q is blacklisted", col),
			"remove the reference or route this access through an approved path",
			ctx.StatementID,
		))
	}
	return found, nil
}

func stringSet(cfg *types.RuleCheckerConfig, key string) map[string]bool {
	if cfg == nil || cfg.Data == nil {
		return nil
	}
	raw, ok := cfg.Data[key].([]string)
	if !ok {
		return nil
	}
	set := make(map[string]bool, len(raw))
	for _, v := range raw {
		set[strings.ToLower(v)] = true
	}
	return set
}
