package validator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsValidEmail(t *testing.T) {
	require.True(t, IsValidEmail("user@example.com"))
	require.True(t, IsValidEmail("a.b+tag@sub.example.vn"))
	require.False(t, IsValidEmail(""))
	require.False(t, IsValidEmail("not-an-email"))
	require.False(t, IsValidEmail("user@"))
}

func TestIsValidPhone(t *testing.T) {
	require.True(t, IsValidPhone("0912345678"))
	require.True(t, IsValidPhone("+84912345678"))
	require.True(t, IsValidPhone("09 1234 5678"))
	require.False(t, IsValidPhone(""))
	require.False(t, IsValidPhone("abc"))
	require.False(t, IsValidPhone("123"))
}

func TestIsValidURL(t *testing.T) {
	require.True(t, IsValidURL("https://example.com"))
	require.True(t, IsValidURL("http://www.example.com/path?x=1"))
	require.False(t, IsValidURL(""))
	require.False(t, IsValidURL("ftp://example.com"))
	require.False(t, IsValidURL("example"))
}

func TestIsValidBankAccount(t *testing.T) {
	require.True(t, IsValidBankAccount("123456789"))
	require.True(t, IsValidBankAccount("1234 5678 90"))
	require.False(t, IsValidBankAccount(""))
	require.False(t, IsValidBankAccount("12345"))
	require.False(t, IsValidBankAccount("abc123456"))
}
