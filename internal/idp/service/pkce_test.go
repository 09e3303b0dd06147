package service

import (
	"crypto/sha256"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidatePKCE(t *testing.T) {
	t.Parallel()

	const confidentialSecret = "client-secret"

	t.Run("public clients require challenge", func(t *testing.T) {
		_, _, err := validatePKCE("", "", "")
		require.ErrorIs(t, err, ErrInvalidRequest)
	})

	t.Run("confidential clients may omit challenge", func(t *testing.T) {
		challenge, method, err := validatePKCE("", "", confidentialSecret)
		require.Nil(t, err)
		require.Empty(t, challenge)
		require.Empty(t, method)
	})

	t.Run("defaults to S256 when method omitted", func(t *testing.T) {
		challenge, method, err := validatePKCE("pkce-challenge", "", "")
		require.Nil(t, err)
		require.Equal(t, "pkce-challenge", challenge)
		require.Equal(t, "S256", method)
	})

	t.Run("accepts case-insensitive methods", func(t *testing.T) {
		challenge, method, err := validatePKCE("abc", "plain", "")
		require.Nil(t, err)
		require.Equal(t, "abc", challenge)
		require.Equal(t, "plain", method)

		challenge, method, err = validatePKCE("xyz", "s256", "")
		require.Nil(t, err)
		require.Equal(t, "xyz", challenge)
		require.Equal(t, "S256", method)
	})

	t.Run("rejects unsupported methods", func(t *testing.T) {
		_, _, err := validatePKCE("abc", "S123", "")
		require.ErrorIs(t, err, ErrInvalidRequest)
	})
}

func TestVerifyCodeVerifier(t *testing.T) {
	t.Parallel()

	t.Run("plain verifier must match challenge", func(t *testing.T) {
		require.NoError(t, verifyCodeVerifier("verifier", "plain", "verifier"))
		require.ErrorIs(t, verifyCodeVerifier("verifier", "plain", "other"), ErrInvalidGrant)
	})

	t.Run("S256 verifier computes hash", func(t *testing.T) {
		verifier := "example-verifier"
		sum := sha256.Sum256([]byte(verifier))
		challenge := base64.RawURLEncoding.EncodeToString(sum[:])

		require.NoError(t, verifyCodeVerifier(challenge, "S256", verifier))
		require.ErrorIs(t, verifyCodeVerifier(challenge, "S256", "wrong"), ErrInvalidGrant)
	})

	t.Run("empty challenge accepts any verifier", func(t *testing.T) {
		require.NoError(t, verifyCodeVerifier("", "S256", ""))
		require.NoError(t, verifyCodeVerifier("", "", "anything"))
	})

	t.Run("missing verifier is a malformed request", func(t *testing.T) {
		sum := sha256.Sum256([]byte("data"))
		challenge := base64.RawURLEncoding.EncodeToString(sum[:])
		require.ErrorIs(t, verifyCodeVerifier(challenge, "S256", ""), ErrInvalidRequest)
	})

	t.Run("unsupported stored method is a malformed request", func(t *testing.T) {
		require.ErrorIs(t, verifyCodeVerifier("abc", "S512", "abc"), ErrInvalidRequest)
	})
}

func TestEffectiveScope(t *testing.T) {
	t.Parallel()

	t.Run("empty request inherits client scope", func(t *testing.T) {
		require.Equal(t, "openid profile", effectiveScope("", "openid profile"))
	})

	t.Run("request clamped to client scope", func(t *testing.T) {
		require.Equal(t, "openid", effectiveScope("openid admin", "openid profile"))
	})

	t.Run("duplicates dropped", func(t *testing.T) {
		require.Equal(t, "openid", effectiveScope("openid openid", "openid profile"))
	})
}
