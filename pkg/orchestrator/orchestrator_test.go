package orchestrator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sqlshield/sqlshield/pkg/checkers"
	"github.com/sqlshield/sqlshield/pkg/types"
)

type stubChecker struct {
	name       string
	violations []types.Violation
	err        error
	panics     bool
}

func (s *stubChecker) Name() string                { return s.name }
func (s *stubChecker) DefaultRisk() types.RiskLevel { return types.RiskMedium }
func (s *stubChecker) Check(*types.SqlContext, *types.RuleCheckerConfig) ([]types.Violation, error) {
	if s.panics {
		panic("boom")
	}
	return s.violations, s.err
}

func registryOf(cs ...checkers.Checker) *checkers.Registry {
	r := checkers.NewRegistry()
	for _, c := range cs {
		r.Register(c)
	}
	return r
}

func allRulesEnabled(names ...string) *types.GlobalConfig {
	rules := make(map[string]*types.RuleCheckerConfig, len(names))
	for _, n := range names {
		rules[n] = &types.RuleCheckerConfig{Enabled: true}
	}
	return &types.GlobalConfig{Rules: rules}
}

func TestRunAggregatesViolations(t *testing.T) {
	registry := registryOf(
		&stubChecker{name: "a", violations: []types.Violation{{Risk: types.RiskLow, Rule: "a"}}},
		&stubChecker{name: "b", violations: []types.Violation{{Risk: types.RiskHigh, Rule: "b"}}},
	)
	o := New(registry, nil)
	result := o.Run(&types.SqlContext{}, allRulesEnabled("a", "b"))

	require.Len(t, result.Violations, 2)
	require.Equal(t, types.RiskHigh, result.Risk)
}

func TestRunSkipsDisabledRules(t *testing.T) {
	registry := registryOf(&stubChecker{name: "a", violations: []types.Violation{{Risk: types.RiskLow}}})
	o := New(registry, nil)
	cfg := &types.GlobalConfig{Rules: map[string]*types.RuleCheckerConfig{"a": {Enabled: false}}}

	result := o.Run(&types.SqlContext{}, cfg)
	require.True(t, result.Passed())
}

func TestRunIsolatesCheckerError(t *testing.T) {
	registry := registryOf(
		&stubChecker{name: "broken", err: errors.New("rule exploded")},
		&stubChecker{name: "fine", violations: []types.Violation{{Risk: types.RiskLow}}},
	)
	o := New(registry, nil)
	result := o.Run(&types.SqlContext{}, allRulesEnabled("broken", "fine"))

	require.Len(t, result.Violations, 1)
}

func TestRunIsolatesCheckerPanic(t *testing.T) {
	registry := registryOf(
		&stubChecker{name: "broken", panics: true},
		&stubChecker{name: "fine", violations: []types.Violation{{Risk: types.RiskLow}}},
	)
	o := New(registry, nil)
	result := o.Run(&types.SqlContext{}, allRulesEnabled("broken", "fine"))

	require.Len(t, result.Violations, 1)
}
