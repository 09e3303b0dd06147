package service

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"strings"
)

// validatePKCE normalizes the challenge parameters supplied on the authorize
// request. Public clients (no secret) must supply a challenge; confidential
// clients may omit PKCE entirely. Method defaults to S256 when a challenge is
// present without one.
func validatePKCE(challenge, method, clientSecret string) (string, string, error) {
	trimmedChallenge := strings.TrimSpace(challenge)
	trimmedMethod := strings.TrimSpace(method)

	if trimmedChallenge == "" {
		if clientSecret == "" {
			return "", "", ErrInvalidRequest
		}
		return "", "", nil
	}

	switch {
	case strings.EqualFold(trimmedMethod, "S256"):
		trimmedMethod = "S256"
	case strings.EqualFold(trimmedMethod, "plain"):
		trimmedMethod = "plain"
	case trimmedMethod == "":
		trimmedMethod = "S256"
	default:
		return "", "", ErrInvalidRequest
	}

	return trimmedChallenge, trimmedMethod, nil
}

// verifyCodeVerifier checks a PKCE code_verifier against the challenge stored
// with the authorization code. An empty stored challenge means PKCE was not
// used on the authorize leg, and any verifier is accepted.
//
// A missing verifier or an unsupported stored method is a malformed request
// (ErrInvalidRequest); a verifier that fails verification is ErrInvalidGrant.
func verifyCodeVerifier(challenge, method, verifier string) error {
	challenge = strings.TrimSpace(challenge)
	if challenge == "" {
		return nil
	}

	verifier = strings.TrimSpace(verifier)
	if verifier == "" {
		return ErrInvalidRequest
	}

	method = strings.TrimSpace(method)
	switch {
	case method == "" || strings.EqualFold(method, "plain"):
		if subtle.ConstantTimeCompare([]byte(challenge), []byte(verifier)) != 1 {
			return ErrInvalidGrant
		}
		return nil
	case strings.EqualFold(method, "S256"):
		sum := sha256.Sum256([]byte(verifier))
		expected := base64.RawURLEncoding.EncodeToString(sum[:])
		if subtle.ConstantTimeCompare([]byte(challenge), []byte(expected)) != 1 {
			return ErrInvalidGrant
		}
		return nil
	default:
		return ErrInvalidRequest
	}
}
