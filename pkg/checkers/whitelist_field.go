package checkers

import (
	"fmt"
	"strings"

	"github.com/sqlshield/sqlshield/pkg/sqlast"
	"github.com/sqlshield/sqlshield/pkg/types"
)

// WhitelistField fires when a SELECT or UPDATE against a configured table
// references at least one column not present in that table's whitelist.
// Unlike BlacklistField, this is an allow-list: tables with no configured
// whitelist are left alone, since an empty whitelist would otherwise flag
// every column of every query.
type WhitelistField struct{}

// NewWhitelistField constructs the whitelist-field checker.
func NewWhitelistField() *WhitelistField { return &WhitelistField{} }

func (*WhitelistField) Name() string               { return "whitelist-field" }
func (*WhitelistField) DefaultRisk() types.RiskLevel { return types.RiskHigh }

func (c *WhitelistField) Check(ctx *types.SqlContext, cfg *types.RuleCheckerConfig) ([]types.Violation, error) {
	if ctx.AST == nil || ctx.AST.Degraded || ctx.AST.Statement == nil {
		return nil, nil
	}
	kind := sqlast.CommandKindOf(ctx.AST.Statement)
	if kind != types.CommandSelect && kind != types.CommandUpdate {
		return nil, nil
	}

	whitelists := tableColumnMap(cfg)
	if len(whitelists) == 0 {
		return nil, nil
	}

	var allowed map[string]bool
	for _, table := range sqlast.TableNames(ctx.AST.Statement) {
		if cols, ok := whitelists[strings.ToLower(table)]; ok {
			allowed = cols
			break
		}
	}
	if allowed == nil {
		return nil, nil
	}

	risk := cfg.ResolvedRisk(c.DefaultRisk())
	seen := map[string]bool{}
	var found []types.Violation
	for _, col := range sqlast.ColumnNames(ctx.AST.Statement) {
		key := strings.ToLower(col)
		if allowed[key] || seen[key] {
			continue
		}
		seen[key] = true
		found = append(found, violation(
			risk,
			c.Name(),
			fmt.Sprintf("column %q is not in the configured whitelist for this table", col),
			"add the column to the table's whitelist if this access is intentional",
			ctx.StatementID,
		))
	}
	return found, nil
}

// tableColumnMap reads `rules.whitelist-field.tables.<table>` from cfg.Data,
// expected to be map[string][]string already decoded by the config loader.
func tableColumnMap(cfg *types.RuleCheckerConfig) map[string]map[string]bool {
	if cfg == nil || cfg.Data == nil {
		return nil
	}
	raw, ok := cfg.Data["tables"].(map[string][]string)
	if !ok {
		return nil
	}
	out := make(map[string]map[string]bool, len(raw))
	for table, cols := range raw {
		set := make(map[string]bool, len(cols))
		for _, col := range cols {
			set[strings.ToLower(col)] = true
		}
		out[strings.ToLower(table)] = set
	}
	return out
}
