package jwtx

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOctJWK(t *testing.T) {
	t.Parallel()

	m := &Minter{Secret: []byte("shared-secret"), Issuer: "iss"}
	jwk := m.OctJWK("latchkey-hs256")

	require.Equal(t, "oct", jwk.Kty)
	require.Equal(t, "sig", jwk.Use)
	require.Equal(t, "HS256", jwk.Alg)
	require.Equal(t, "latchkey-hs256", jwk.Kid)

	raw, err := base64.RawURLEncoding.DecodeString(jwk.K)
	require.NoError(t, err)
	require.Equal(t, []byte("shared-secret"), raw)
}
