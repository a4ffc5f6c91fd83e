// Package checkers implements the SQL safety rule checkers and the
// registry the Orchestrator discovers them through. Each checker is grounded
// on the same rule/advisor split the reference stack uses, generalized from a
// schema-DDL-linting domain to a runtime DML/DQL-safety domain: a checker is
// a small, self-contained unit that inspects a parsed SqlContext and appends
// zero or more Violations, nothing more.
package checkers

import (
	"github.com/sqlshield/sqlshield/pkg/types"
)

// Checker is one detection rule. Check must be a pure function of its inputs:
// no mutation of ctx, no shared mutable state between calls, deterministic
// output for a given (ctx, config) pair.
type Checker interface {
	// Name is the rule's config key, e.g. "no-where-clause".
	Name() string
	// DefaultRisk is the risk level used when config carries no override.
	DefaultRisk() types.RiskLevel
	// Check inspects ctx (which always carries a non-nil AST, possibly
	// degraded) and returns the violations it finds, or an error if the
	// checker itself failed unexpectedly — callers (the Orchestrator) treat
	// a returned error as "no violations, log and move on", never as fatal.
	Check(ctx *types.SqlContext, cfg *types.RuleCheckerConfig) ([]types.Violation, error)
}

// violation is a small builder shared by every checker implementation to keep
// the risk-override/location plumbing in one place.
func violation(risk types.RiskLevel, rule, message, suggestion, statementID string) types.Violation {
	return types.Violation{
		Risk:       risk,
		Rule:       rule,
		Message:    message,
		Suggestion: suggestion,
		Location:   &types.Location{StatementID: statementID},
	}
}
