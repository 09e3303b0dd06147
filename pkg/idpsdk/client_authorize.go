package idpsdk

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/strandhq/latchkey/pkg/cryptox"
)

// PKCEChallenge holds the PKCE verifier and challenge pair.
// The verifier is kept secret by the client, and the challenge is sent to the
// authorization endpoint.
type PKCEChallenge struct {
	// Verifier is the high-entropy cryptographic random string (kept secret)
	Verifier string

	// Challenge is the base64url-encoded SHA256 hash of the verifier (sent to server)
	Challenge string

	// Method is always "S256" for SHA256
	Method string
}

// GeneratePKCEChallenge creates a new PKCE code verifier and challenge pair.
// Uses cryptox.TokenSize256 (256 bits of entropy) and SHA256 hashing per RFC 7636.
func GeneratePKCEChallenge() (*PKCEChallenge, error) {
	verifier, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PKCE verifier: %w", err)
	}

	hash := sha256.Sum256([]byte(verifier))
	challenge := base64.RawURLEncoding.EncodeToString(hash[:])

	return &PKCEChallenge{
		Verifier:  verifier,
		Challenge: challenge,
		Method:    "S256",
	}, nil
}

// AuthorizeParams are the inputs to the authorization code flow.
type AuthorizeParams struct {
	ClientID    string
	RedirectURI string
	Scope       string
	State       string
	PKCE        *PKCEChallenge

	// Resource owner credentials entered on the consent form.
	Username string
	Password string
}

// AuthorizeResult is the parsed redirect from a completed authorize leg.
type AuthorizeResult struct {
	Code  string
	State string
}

// BuildAuthorizeURL constructs the authorization URL for a browser redirect.
func (c *SDKClient) BuildAuthorizeURL(p AuthorizeParams) string {
	params := url.Values{}
	params.Set("response_type", "code")
	params.Set("client_id", p.ClientID)
	params.Set("redirect_uri", p.RedirectURI)

	if p.State != "" {
		params.Set("state", p.State)
	}
	if p.Scope != "" {
		params.Set("scope", p.Scope)
	}
	if p.PKCE != nil {
		params.Set("code_challenge", p.PKCE.Challenge)
		params.Set("code_challenge_method", p.PKCE.Method)
	}

	return fmt.Sprintf("%s/authorize?%s", c.BaseURL, params.Encode())
}

// Authorize drives the consent form the way a browser would: it posts the
// resource owner's credentials and approval to the consent endpoint and
// parses the authorization code out of the 302 redirect.
func (c *SDKClient) Authorize(ctx context.Context, p AuthorizeParams) (*AuthorizeResult, error) {
	return c.submitConsent(ctx, p, "approve")
}

// Deny submits the consent form with a denial and returns the error the
// server redirects back with (access_denied as an *OAuth2Error).
func (c *SDKClient) Deny(ctx context.Context, p AuthorizeParams) error {
	_, err := c.submitConsent(ctx, p, "deny")
	return err
}

func (c *SDKClient) submitConsent(ctx context.Context, p AuthorizeParams, action string) (*AuthorizeResult, error) {
	data := url.Values{
		"response_type": {"code"},
		"client_id":     {p.ClientID},
		"redirect_uri":  {p.RedirectURI},
		"username":      {p.Username},
		"password":      {p.Password},
		"action":        {action},
	}
	if p.Scope != "" {
		data.Set("scope", p.Scope)
	}
	if p.State != "" {
		data.Set("state", p.State)
	}
	if p.PKCE != nil {
		data.Set("code_challenge", p.PKCE.Challenge)
		data.Set("code_challenge_method", p.PKCE.Method)
	}

	// The consent endpoint answers with a redirect; don't follow it.
	noRedirectClient := &http.Client{
		Timeout: c.HTTPClient.Timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.BaseURL+"/authorize/consent",
		strings.NewReader(data.Encode()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := noRedirectClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusFound && resp.StatusCode != http.StatusSeeOther {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, parseErrorResponse(resp, bodyBytes)
	}

	location, err := resp.Location()
	if err != nil {
		return nil, fmt.Errorf("redirect without Location header: %w", err)
	}

	q := location.Query()
	if errCode := q.Get("error"); errCode != "" {
		return nil, &OAuth2Error{
			StatusCode:  http.StatusFound,
			Code:        errCode,
			Description: q.Get("error_description"),
		}
	}

	code := q.Get("code")
	if code == "" {
		return nil, fmt.Errorf("redirect is missing the authorization code: %s", location)
	}

	return &AuthorizeResult{
		Code:  code,
		State: q.Get("state"),
	}, nil
}
