package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{"simple password", "password123"},
		{"complex password", "P@ssw0rd!#$%^&*()"},
		{"long password", strings.Repeat("a", 100)},
		{"empty password", ""},
		{"unicode password", "пароль🔒密码"},
		{"whitespace password", "   spaces   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := HashPassword(tt.password)
			require.NoError(t, err)
			require.NotEmpty(t, hash)

			// bcrypt modular crypt format
			require.True(t, strings.HasPrefix(hash, "$2"),
				"hash should be in bcrypt format")

			require.NoError(t, VerifyPassword(tt.password, hash))
		})
	}
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	h1, err := HashPassword("same-password")
	require.NoError(t, err)
	h2, err := HashPassword("same-password")
	require.NoError(t, err)

	require.NotEqual(t, h1, h2, "each hash should carry a fresh salt")
}

func TestVerifyPassword_Mismatch(t *testing.T) {
	hash, err := HashPassword("correct-horse")
	require.NoError(t, err)

	err = VerifyPassword("battery-staple", hash)
	require.ErrorIs(t, err, ErrPasswordMismatch)
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	err := VerifyPassword("anything", "not-a-bcrypt-hash")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrPasswordMismatch)
}

func TestPasswordTruncation(t *testing.T) {
	// bcrypt caps input at 72 bytes; anything beyond the cap is ignored.
	long := strings.Repeat("x", 80)
	hash, err := HashPassword(long)
	require.NoError(t, err)

	// Same 72-byte prefix verifies even with a different tail.
	require.NoError(t, VerifyPassword(strings.Repeat("x", 72)+"different", hash))
	require.NoError(t, VerifyPassword(strings.Repeat("x", 72), hash))

	// A change inside the first 72 bytes does not.
	require.ErrorIs(t, VerifyPassword(strings.Repeat("y", 72), hash), ErrPasswordMismatch)
}
