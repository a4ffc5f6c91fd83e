package strategy

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sqlshield/sqlshield/pkg/types"
)

func passingResult() *types.ValidationResult {
	return &types.ValidationResult{Risk: types.RiskPass}
}

func failingResult() *types.ValidationResult {
	r := &types.ValidationResult{}
	r.Add(types.Violation{Risk: types.RiskCritical, Rule: "no-where-clause", Message: "missing WHERE"})
	return r
}

func TestApplyBlockRaisesError(t *testing.T) {
	err := Apply(types.StrategyBlock, failingResult(), "primary", nil)
	require.Error(t, err)
	var safetyErr *SqlSafetyError
	require.ErrorAs(t, err, &safetyErr)
	require.Contains(t, safetyErr.Error(), "primary")
	require.Contains(t, safetyErr.Error(), "CRITICAL")
	require.Equal(t, SQLSTATE, safetyErr.SQLState())
}

func TestApplyPassingNeverErrors(t *testing.T) {
	require.NoError(t, Apply(types.StrategyBlock, passingResult(), "primary", nil))
	require.NoError(t, Apply(types.StrategyWarn, passingResult(), "primary", nil))
	require.NoError(t, Apply(types.StrategyLog, passingResult(), "primary", nil))
}

func TestApplyWarnAndLogNeverError(t *testing.T) {
	require.NoError(t, Apply(types.StrategyWarn, failingResult(), "primary", nil))
	require.NoError(t, Apply(types.StrategyLog, failingResult(), "primary", nil))
}

func TestSqlSafetyErrorIsAnError(t *testing.T) {
	var err error = &SqlSafetyError{Datasource: "ds", Result: failingResult()}
	require.True(t, errors.As(err, new(*SqlSafetyError)))
}
