package otp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contexta-app/contexta/pkg/otp"
)

func TestGenerateCode(t *testing.T) {
	t.Parallel()

	t.Run("produces exactly n digits", func(t *testing.T) {
		code, err := otp.GenerateCode(otp.CodeLength)
		require.NoError(t, err)
		require.Len(t, code, otp.CodeLength)
		for _, r := range code {
			assert.True(t, r >= '0' && r <= '9', "unexpected rune %q", r)
		}
	})

	t.Run("rejects non-positive length", func(t *testing.T) {
		_, err := otp.GenerateCode(0)
		require.ErrorIs(t, err, otp.ErrInvalidCodeLength)
	})

	t.Run("codes are not constant", func(t *testing.T) {
		seen := map[string]bool{}
		for range 32 {
			code, err := otp.GenerateCode(otp.CodeLength)
			require.NoError(t, err)
			seen[code] = true
		}
		assert.Greater(t, len(seen), 1)
	})
}

func TestGenerateResetToken(t *testing.T) {
	t.Parallel()

	token, err := otp.GenerateResetToken()
	require.NoError(t, err)
	require.Len(t, token, otp.ResetTokenBytes*2)

	other, err := otp.GenerateResetToken()
	require.NoError(t, err)
	assert.NotEqual(t, token, other)
}

func TestMatches(t *testing.T) {
	t.Parallel()

	assert.True(t, otp.Matches("123456", "123456"))
	assert.False(t, otp.Matches("123456", "123457"))
	assert.False(t, otp.Matches("123456", "12345"))
	assert.False(t, otp.Matches("", "123456"))
	assert.False(t, otp.Matches("123456", ""))
	assert.False(t, otp.Matches("", ""))
}
