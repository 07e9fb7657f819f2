package keys

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewRoomCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		code, err := NewRoomCode()
		require.NoError(t, err)
		norm, ok := NormalizeRoomCode(code)
		require.True(t, ok, code)
		require.Equal(t, code, norm)
		seen[code] = true
	}
	require.Greater(t, len(seen), 1)
}

func TestNormalizeRoomCode(t *testing.T) {
	code, ok := NormalizeRoomCode("  ab12cd ")
	require.True(t, ok)
	require.Equal(t, "AB12CD", code)

	for _, bad := range []string{"", "ABC", "ABCDEFG", "AB-2CD", "ÄB12CD"} {
		_, ok := NormalizeRoomCode(bad)
		require.False(t, ok, bad)
	}
}

func TestPlayerKey(t *testing.T) {
	require.Equal(t, "rosa_maria", PlayerKey("  Rosa   Maria "))
	require.Equal(t, "", PlayerKey("   "))
}
