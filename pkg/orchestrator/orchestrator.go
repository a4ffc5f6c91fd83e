// Package orchestrator runs the registered rule checkers against a single
// parsed SQL context and aggregates their violations into one result.
package orchestrator

import (
	"fmt"

	"github.com/sqlshield/sqlshield/pkg/checkers"
	"github.com/sqlshield/sqlshield/pkg/logger"
	"github.com/sqlshield/sqlshield/pkg/types"
)

// Orchestrator runs every enabled checker in registry order and aggregates
// their output into a single ValidationResult. A checker that panics or
// returns an error is isolated: it is logged and contributes zero
// violations, but never aborts the run for the other checkers.
type Orchestrator struct {
	registry *checkers.Registry
	log      logger.Interface
}

// New builds an Orchestrator over the given registry. A nil logger disables
// failure-isolation logging.
func New(registry *checkers.Registry, log logger.Interface) *Orchestrator {
	if registry == nil {
		registry = checkers.Default
	}
	return &Orchestrator{registry: registry, log: log}
}

// Run evaluates every checker enabled in cfg against ctx, in registry
// registration order, and returns the aggregated result.
func (o *Orchestrator) Run(ctx *types.SqlContext, cfg *types.GlobalConfig) *types.ValidationResult {
	result := &types.ValidationResult{Risk: types.RiskPass}

	for _, checker := range o.registry.All() {
		ruleCfg := cfg.Rule(checker.Name())
		if !ruleCfg.Enabled {
			continue
		}
		violations := o.runOne(checker, ctx, ruleCfg)
		for _, v := range violations {
			result.Add(v)
		}
	}

	return result
}

// runOne invokes a single checker with panic and error isolation.
func (o *Orchestrator) runOne(checker checkers.Checker, ctx *types.SqlContext, cfg *types.RuleCheckerConfig) (violations []types.Violation) {
	defer func() {
		if r := recover(); r != nil {
			o.warn("rule checker panicked", checker.Name(), ctx.StatementID, fmt.Errorf("%v", r))
			violations = nil
		}
	}()

	v, err := checker.Check(ctx, cfg)
	if err != nil {
		o.warn("rule checker returned an error", checker.Name(), ctx.StatementID, err)
		return nil
	}
	return v
}

func (o *Orchestrator) warn(msg, rule, statementID string, err error) {
	if o.log == nil {
		return
	}
	o.log.Warn(msg, "rule", rule, "statement_id", statementID, "error", err)
}
