package normalize

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBool(t *testing.T) {
	require.True(t, Bool(true))
	require.True(t, Bool("true"))
	require.True(t, Bool("TRUE"))
	require.True(t, Bool("1"))
	require.True(t, Bool("yes"))
	require.True(t, Bool(" Yes "))

	require.False(t, Bool(false))
	require.False(t, Bool("false"))
	require.False(t, Bool("0"))
	require.False(t, Bool(""))
	require.False(t, Bool(nil))
	require.False(t, Bool(1)) // only strings and bools are accepted
}

func TestNumber(t *testing.T) {
	require.Equal(t, 42.5, Number(42.5, 0))
	require.Equal(t, 42.0, Number("42", 0))
	require.Equal(t, 1500000.0, Number(" 1500000 ", 0))
	require.Equal(t, 7.0, Number(7, 0))
	require.Equal(t, -1.0, Number("abc", -1))
	require.Equal(t, -1.0, Number(nil, -1))
}

func TestStringList(t *testing.T) {
	require.Equal(t, []string{"a"}, StringList("a"))
	require.Equal(t, []string{"a", "b"}, StringList([]string{"a", " b "}))
	require.Equal(t, []string{"a", "b"}, StringList([]interface{}{"a", "b", 3}))
	require.Nil(t, StringList(""))
	require.Nil(t, StringList(nil))
	require.Nil(t, StringList([]string{"  "}))
}

func TestTruncate(t *testing.T) {
	require.Equal(t, "abc", Truncate("  abc  ", 10))
	require.Equal(t, "ab", Truncate("abcdef", 2))
	require.Equal(t, "", Truncate("   ", 5))
}
