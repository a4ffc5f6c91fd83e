package sqlast

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseCachesSuccessfulParse(t *testing.T) {
	f := New(8, false)
	ast, err := f.Parse("SELECT * FROM users")
	require.NoError(t, err)
	require.NotNil(t, ast.Statement)
	require.False(t, ast.Degraded)
	require.Equal(t, 1, f.Len())

	ast2, err := f.Parse("SELECT * FROM users")
	require.NoError(t, err)
	require.Same(t, ast, ast2)
	require.Equal(t, 1, f.Len())
}

func TestParseStrictModeReturnsParseError(t *testing.T) {
	f := New(8, false)
	_, err := f.Parse("SELEKT * FROM users")
	require.Error(t, err)
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestParseLenientModeReturnsDegradedAST(t *testing.T) {
	f := New(8, true)
	ast, err := f.Parse("SELEKT * FROM users")
	require.NoError(t, err)
	require.True(t, ast.Degraded)
	require.Nil(t, ast.Statement)
}

func TestClearCache(t *testing.T) {
	f := New(8, false)
	_, err := f.Parse("SELECT 1")
	require.NoError(t, err)
	require.Equal(t, 1, f.Len())

	f.ClearCache()
	require.Equal(t, 0, f.Len())
}
