package nickname

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateFormat(t *testing.T) {
	for i := 0; i < 50; i++ {
		name := Generate()
		parts := strings.Split(name, " ")
		require.Len(t, parts, 3, "nickname %q should be color animal number", name)
		require.Contains(t, colors, parts[0])
		require.Contains(t, animals, parts[1])

		n, err := strconv.Atoi(parts[2])
		require.NoError(t, err)
		require.GreaterOrEqual(t, n, 1000)
		require.LessOrEqual(t, n, 9999)
	}
}
