package jwtx

import "encoding/base64"

// JWK represents a key in JSON Web Key format (RFC 7517). Only symmetric
// "oct" keys are used here; the asymmetric fields common in JWKS documents
// do not apply to an HS256-only issuer.
type JWK struct {
	Kty string `json:"kty"`           // key type: "oct"
	Use string `json:"use,omitempty"` // what we use it for: "sig"
	Alg string `json:"alg,omitempty"` // algorithm: "HS256"
	Kid string `json:"kid,omitempty"` // key ID

	// Symmetric key material (base64url, no padding).
	K string `json:"k,omitempty"`
}

// JWKS is a JSON Web Key Set (RFC 7517).
type JWKS struct {
	Keys []JWK `json:"keys"`
}

// OctJWK renders the minter's signing secret as an "oct" JWK. The JWKS
// endpoint serving this is informational only: the key is a shared secret,
// so publishing it is only appropriate for trusted-network deployments.
func (m *Minter) OctJWK(kid string) JWK {
	return JWK{
		Kty: "oct",
		Use: "sig",
		Alg: "HS256",
		Kid: kid,
		K:   base64.RawURLEncoding.EncodeToString(m.Secret),
	}
}
