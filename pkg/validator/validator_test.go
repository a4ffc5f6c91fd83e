package validator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sqlshield/sqlshield/pkg/checkers"
	"github.com/sqlshield/sqlshield/pkg/config"
	"github.com/sqlshield/sqlshield/pkg/types"
)

func TestValidateFlagsMissingWhere(t *testing.T) {
	holder := config.NewHolder(config.Default(), "", nil)
	v := New(holder)

	result, err := v.Validate(types.SqlContext{
		SQL:         "DELETE FROM users",
		Layer:       types.LayerJDBC,
		StatementID: "t:1",
		Datasource:  "primary",
	})
	require.NoError(t, err)
	require.False(t, result.Passed())
	require.Equal(t, types.RiskCritical, result.Risk)
}

func TestValidatePassesCleanStatement(t *testing.T) {
	holder := config.NewHolder(config.Default(), "", nil)
	v := New(holder)

	result, err := v.Validate(types.SqlContext{
		SQL:         "SELECT id FROM users WHERE id = 1",
		Layer:       types.LayerJDBC,
		StatementID: "t:1",
		Datasource:  "primary",
	})
	require.NoError(t, err)
	require.True(t, result.Passed())
}

func TestValidateRespectsDisabledLayer(t *testing.T) {
	cfg := config.Default()
	cfg.LayerEnabled[types.LayerOrmMapper] = false
	holder := config.NewHolder(cfg, "", nil)
	v := New(holder)

	result, err := v.Validate(types.SqlContext{
		SQL:         "DELETE FROM users",
		Layer:       types.LayerOrmMapper,
		StatementID: "t:1",
	})
	require.NoError(t, err)
	require.True(t, result.Passed())
}

func TestValidateDeduplicatesRepeatedAttempt(t *testing.T) {
	holder := config.NewHolder(config.Default(), "", nil)
	v := New(holder, WithRegistry(checkers.Default))

	ctx := types.SqlContext{
		SQL:         "DELETE FROM users",
		Layer:       types.LayerJDBC,
		StatementID: "t:1",
		Datasource:  "primary",
	}

	first, err := v.Validate(ctx)
	require.NoError(t, err)

	second, err := v.Validate(ctx)
	require.NoError(t, err)
	require.Same(t, first, second)
}

func TestValidateStrictModeEmitsInfoDiagnosticOnParseFailure(t *testing.T) {
	cfg := config.Default()
	cfg.ParserLenientMode = false
	holder := config.NewHolder(cfg, "", nil)
	v := New(holder)

	result, err := v.Validate(types.SqlContext{SQL: "SELEKT * FROM t", Layer: types.LayerJDBC})
	require.NoError(t, err)
	require.Equal(t, types.RiskInfo, result.Risk)
	require.Len(t, result.Violations, 1)
	require.Equal(t, unparseableRule, result.Violations[0].Rule)
}
