package cloudinary

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPublicIDFromURL(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"https://res.cloudinary.com/demo/image/upload/v1700000000/scamwatch/reports/abc123.jpg", "scamwatch/reports/abc123"},
		{"https://res.cloudinary.com/demo/image/upload/scamwatch/reports/abc123.png", "scamwatch/reports/abc123"},
		{"https://example.com/uploads/reports/file.jpg", ""},
		{"", ""},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, PublicIDFromURL(tc.url), "url %q", tc.url)
	}
}

func TestNewService_RequiresCredentials(t *testing.T) {
	_, err := NewService("", "key", "secret", "folder")
	require.Error(t, err)
}
