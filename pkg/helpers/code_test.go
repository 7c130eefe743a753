package helpers

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewConfirmationCode(t *testing.T) {
	for i := 0; i < 1000; i++ {
		code, err := NewConfirmationCode()
		require.NoError(t, err)
		require.Len(t, code, 6)
		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		require.GreaterOrEqual(t, n, 100000)
		require.LessOrEqual(t, n, 999999)
	}
}

func TestNewConfirmationCodeVaries(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code, err := NewConfirmationCode()
		require.NoError(t, err)
		seen[code] = true
	}
	// 50 draws from a 900k space colliding down to a single value would mean
	// the generator is broken.
	require.Greater(t, len(seen), 1)
}
