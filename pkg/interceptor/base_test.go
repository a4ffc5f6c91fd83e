package interceptor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sqlshield/sqlshield/pkg/strategy"
	"github.com/sqlshield/sqlshield/pkg/types"
)

type stubValidator struct {
	result *types.ValidationResult
	err    error
}

func (s *stubValidator) Validate(types.SqlContext) (*types.ValidationResult, error) {
	return s.result, s.err
}

type collectingSink struct {
	events []types.AuditEvent
}

func (c *collectingSink) Publish(e types.AuditEvent) {
	c.events = append(c.events, e)
}

func TestInterceptBlocksOnBlockStrategy(t *testing.T) {
	result := &types.ValidationResult{}
	result.Add(types.Violation{Risk: types.RiskCritical, Rule: "no-where-clause", Message: "no where"})

	sink := &collectingSink{}
	base := NewBase(&stubValidator{result: result}, func() types.Strategy { return types.StrategyBlock }, sink, nil)

	called := false
	rows, err := base.Intercept(context.Background(), types.SqlContext{SQL: "DELETE FROM t"}, func() (int64, error) {
		called = true
		return 1, nil
	})

	require.Error(t, err)
	require.False(t, called)
	require.Equal(t, int64(0), rows)
	var safetyErr *strategy.SqlSafetyError
	require.ErrorAs(t, err, &safetyErr)
	require.Len(t, sink.events, 1)
	require.True(t, sink.events[0].Blocked)
}

func TestInterceptProceedsOnPass(t *testing.T) {
	sink := &collectingSink{}
	base := NewBase(&stubValidator{result: &types.ValidationResult{Risk: types.RiskPass}}, func() types.Strategy { return types.StrategyBlock }, sink, nil)

	rows, err := base.Intercept(context.Background(), types.SqlContext{SQL: "SELECT 1"}, func() (int64, error) {
		return 5, nil
	})

	require.NoError(t, err)
	require.Equal(t, int64(5), rows)
	require.Len(t, sink.events, 1)
	require.False(t, sink.events[0].Blocked)
}

func TestInterceptWarnStrategyStillProceeds(t *testing.T) {
	result := &types.ValidationResult{}
	result.Add(types.Violation{Risk: types.RiskHigh, Rule: "blacklist-field", Message: "blacklisted"})

	base := NewBase(&stubValidator{result: result}, func() types.Strategy { return types.StrategyWarn }, nil, nil)

	called := false
	_, err := base.Intercept(context.Background(), types.SqlContext{SQL: "SELECT ssn FROM t"}, func() (int64, error) {
		called = true
		return 0, nil
	})

	require.NoError(t, err)
	require.True(t, called)
}
