package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRiskLevel(t *testing.T) {
	cases := map[string]RiskLevel{
		"":         RiskPass,
		"pass":     RiskPass,
		"INFO":     RiskInfo,
		"low":      RiskLow,
		"Medium":   RiskMedium,
		"HIGH":     RiskHigh,
		"critical": RiskCritical,
	}
	for input, want := range cases {
		got, err := ParseRiskLevel(input)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	_, err := ParseRiskLevel("bogus")
	require.Error(t, err)
}

func TestRiskLevelOrdering(t *testing.T) {
	require.True(t, RiskCritical > RiskHigh)
	require.True(t, RiskHigh > RiskMedium)
	require.True(t, RiskMedium > RiskLow)
	require.True(t, RiskLow > RiskInfo)
	require.True(t, RiskInfo > RiskPass)
}

func TestValidationResultAdd(t *testing.T) {
	r := &ValidationResult{Risk: RiskPass}
	require.True(t, r.Passed())

	r.Add(Violation{Risk: RiskLow, Rule: "missing-order-by", Message: "no order by"})
	require.False(t, r.Passed())
	require.Equal(t, RiskLow, r.Risk)

	r.Add(Violation{Risk: RiskCritical, Rule: "no-where-clause", Message: "no where"})
	require.Equal(t, RiskCritical, r.Risk)
	require.Len(t, r.Violations, 2)
}

func TestGlobalConfigRuleUnknownDisabled(t *testing.T) {
	cfg := &GlobalConfig{Rules: map[string]*RuleCheckerConfig{
		"no-where-clause": {Enabled: true},
	}}
	require.True(t, cfg.Rule("no-where-clause").Enabled)
	require.False(t, cfg.Rule("made-up-rule").Enabled)
}

func TestRuleCheckerConfigResolvedRisk(t *testing.T) {
	var c *RuleCheckerConfig
	require.Equal(t, RiskMedium, c.ResolvedRisk(RiskMedium))

	override := RiskHigh
	c = &RuleCheckerConfig{RiskOverride: &override}
	require.Equal(t, RiskHigh, c.ResolvedRisk(RiskMedium))
}

func TestNewDeduplicationKeyNormalizesWhitespace(t *testing.T) {
	a := SqlContext{SQL: "SELECT  *   FROM users", Datasource: "primary"}
	b := SqlContext{SQL: "SELECT * FROM users", Datasource: "primary"}
	require.Equal(t, NewDeduplicationKey(&a), NewDeduplicationKey(&b))

	c := SqlContext{SQL: "SELECT * FROM users", Datasource: "replica"}
	require.NotEqual(t, NewDeduplicationKey(&a), NewDeduplicationKey(&c))
}

func TestSqlContextWithASTDoesNotMutateOriginal(t *testing.T) {
	original := SqlContext{SQL: "SELECT 1"}
	enriched := original.WithAST(&AST{Degraded: true})
	require.Nil(t, original.AST)
	require.NotNil(t, enriched.AST)
}
