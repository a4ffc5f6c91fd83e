package checkers

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xwb1989/sqlparser"

	"github.com/sqlshield/sqlshield/pkg/sqlast"
	"github.com/sqlshield/sqlshield/pkg/types"
)

func ctxFor(t *testing.T, sql string) *types.SqlContext {
	t.Helper()
	stmt, err := sqlparser.Parse(sql)
	require.NoError(t, err)
	return &types.SqlContext{
		SQL:         sql,
		StatementID: "test:1",
		Command:     sqlast.CommandKindOf(stmt),
		AST:         &types.AST{Statement: stmt},
	}
}

func enabled(data map[string]interface{}) *types.RuleCheckerConfig {
	return &types.RuleCheckerConfig{Enabled: true, Data: data}
}

func TestNoWhereClause(t *testing.T) {
	c := NewNoWhereClause()

	v, err := c.Check(ctxFor(t, "DELETE FROM users"), enabled(nil))
	require.NoError(t, err)
	require.Len(t, v, 1)

	v, err = c.Check(ctxFor(t, "DELETE FROM users WHERE id = 1"), enabled(nil))
	require.NoError(t, err)
	require.Empty(t, v)

	// SELECT is out of scope unless explicitly opted in.
	v, err = c.Check(ctxFor(t, "SELECT * FROM users"), enabled(nil))
	require.NoError(t, err)
	require.Empty(t, v)

	v, err = c.Check(ctxFor(t, "SELECT * FROM users"), enabled(map[string]interface{}{"include_select": true}))
	require.NoError(t, err)
	require.Len(t, v, 1)
}

func TestDummyCondition(t *testing.T) {
	c := NewDummyCondition()

	v, err := c.Check(ctxFor(t, "UPDATE users SET active = 0 WHERE 1 = 1"), enabled(nil))
	require.NoError(t, err)
	require.Len(t, v, 1)

	v, err = c.Check(ctxFor(t, "UPDATE users SET active = 0 WHERE id = 7"), enabled(nil))
	require.NoError(t, err)
	require.Empty(t, v)
}

func TestBlacklistField(t *testing.T) {
	c := NewBlacklistField()
	cfg := enabled(map[string]interface{}{"blacklist": []string{"ssn"}})

	v, err := c.Check(ctxFor(t, "SELECT ssn, name FROM users"), cfg)
	require.NoError(t, err)
	require.Len(t, v, 1)

	v, err = c.Check(ctxFor(t, "SELECT name FROM users"), cfg)
	require.NoError(t, err)
	require.Empty(t, v)
}

func TestWhitelistField(t *testing.T) {
	c := NewWhitelistField()
	cfg := enabled(map[string]interface{}{
		"tables": map[string][]string{"users": {"id", "name"}},
	})

	v, err := c.Check(ctxFor(t, "SELECT id, name FROM users"), cfg)
	require.NoError(t, err)
	require.Empty(t, v)

	v, err = c.Check(ctxFor(t, "SELECT id, ssn FROM users"), cfg)
	require.NoError(t, err)
	require.Len(t, v, 1)

	// Tables with no configured whitelist are left alone.
	v, err = c.Check(ctxFor(t, "SELECT anything FROM orders"), cfg)
	require.NoError(t, err)
	require.Empty(t, v)
}

func TestLogicalPagination(t *testing.T) {
	c := NewLogicalPagination()

	ctx := ctxFor(t, "SELECT * FROM users")
	ctx.Pagination = &types.PaginationMarker{Offset: 0, Size: 20}
	v, err := c.Check(ctx, enabled(nil))
	require.NoError(t, err)
	require.Len(t, v, 1)

	ctxWithLimit := ctxFor(t, "SELECT * FROM users LIMIT 20")
	ctxWithLimit.Pagination = &types.PaginationMarker{Offset: 0, Size: 20}
	v, err = c.Check(ctxWithLimit, enabled(nil))
	require.NoError(t, err)
	require.Empty(t, v)
}

func TestNoConditionPagination(t *testing.T) {
	c := NewNoConditionPagination()

	v, err := c.Check(ctxFor(t, "SELECT * FROM users LIMIT 20"), enabled(nil))
	require.NoError(t, err)
	require.Len(t, v, 1)

	v, err = c.Check(ctxFor(t, "SELECT * FROM users WHERE id > 5 LIMIT 20"), enabled(nil))
	require.NoError(t, err)
	require.Empty(t, v)
}

func TestDeepPagination(t *testing.T) {
	c := NewDeepPagination()

	v, err := c.Check(ctxFor(t, "SELECT * FROM users LIMIT 10 OFFSET 50000"), enabled(nil))
	require.NoError(t, err)
	require.Len(t, v, 1)

	v, err = c.Check(ctxFor(t, "SELECT * FROM users LIMIT 10 OFFSET 10"), enabled(nil))
	require.NoError(t, err)
	require.Empty(t, v)

	v, err = c.Check(ctxFor(t, "SELECT * FROM users LIMIT 10 OFFSET 200"), enabled(map[string]interface{}{"max_offset": 100}))
	require.NoError(t, err)
	require.Len(t, v, 1)
}

func TestLargePageSize(t *testing.T) {
	c := NewLargePageSize()

	v, err := c.Check(ctxFor(t, "SELECT * FROM users LIMIT 5000"), enabled(nil))
	require.NoError(t, err)
	require.Len(t, v, 1)

	v, err = c.Check(ctxFor(t, "SELECT * FROM users LIMIT 50"), enabled(nil))
	require.NoError(t, err)
	require.Empty(t, v)
}

func TestMissingOrderBy(t *testing.T) {
	c := NewMissingOrderBy()

	v, err := c.Check(ctxFor(t, "SELECT * FROM users LIMIT 10"), enabled(nil))
	require.NoError(t, err)
	require.Len(t, v, 1)

	v, err = c.Check(ctxFor(t, "SELECT * FROM users ORDER BY id LIMIT 10"), enabled(nil))
	require.NoError(t, err)
	require.Empty(t, v)
}

func TestNoPagination(t *testing.T) {
	c := NewNoPagination()
	cfg := enabled(map[string]interface{}{"large_tables": []string{"events"}})

	v, err := c.Check(ctxFor(t, "SELECT * FROM events"), cfg)
	require.NoError(t, err)
	require.Len(t, v, 1)
	require.Equal(t, types.RiskMedium, v[0].Risk)

	v, err = c.Check(ctxFor(t, "SELECT * FROM events WHERE id = 1"), cfg)
	require.NoError(t, err)
	require.Len(t, v, 1)
	require.Equal(t, types.RiskInfo, v[0].Risk)

	v, err = c.Check(ctxFor(t, "SELECT * FROM small_table"), cfg)
	require.NoError(t, err)
	require.Empty(t, v)
}

func TestCountStar(t *testing.T) {
	c := NewCountStar()

	v, err := c.Check(ctxFor(t, "SELECT COUNT(*) FROM users"), enabled(nil))
	require.NoError(t, err)
	require.Len(t, v, 1)

	v, err = c.Check(ctxFor(t, "SELECT COUNT(*) FROM users WHERE active = 1"), enabled(nil))
	require.NoError(t, err)
	require.Empty(t, v)
}

func TestDefaultRegistryHasAllBuiltins(t *testing.T) {
	names := map[string]bool{}
	for _, c := range Default.All() {
		names[c.Name()] = true
	}
	for _, want := range []string{
		"no-where-clause", "dummy-condition", "blacklist-field", "whitelist-field",
		"logical-pagination", "no-condition-pagination", "deep-pagination",
		"large-page-size", "missing-order-by", "no-pagination", "count-star",
	} {
		require.True(t, names[want], "missing rule %q", want)
	}
}
