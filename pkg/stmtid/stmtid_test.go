package stmtid

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestForJDBCIsStableAndScoped(t *testing.T) {
	a := ForJDBC("primary", "SELECT 1")
	b := ForJDBC("primary", "SELECT 1")
	require.Equal(t, a, b)

	c := ForJDBC("replica", "SELECT 1")
	require.NotEqual(t, a, c)

	d := ForJDBC("primary", "SELECT 2")
	require.NotEqual(t, a, d)
}

func TestForJDBCDefaultsMissingDatasource(t *testing.T) {
	id := ForJDBC("", "SELECT 1")
	require.Contains(t, id, ":-:")
}

func TestForMapperAndForWrapper(t *testing.T) {
	require.Equal(t, "ORM-MAPPER:UserMapper.findActive", ForMapper("UserMapper.findActive"))
	require.Equal(t, "ORM-WRAPPER:call-site-42", ForWrapper("call-site-42"))
}
