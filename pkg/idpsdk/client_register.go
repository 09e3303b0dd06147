package idpsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// RegisterClient performs RFC 7591 dynamic client registration.
// The secret in the response is shown exactly once; store it.
func (c *SDKClient) RegisterClient(
	ctx context.Context,
	req ClientRegistrationRequest,
) (*ClientRegistrationResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/register", bytes.NewReader(body), map[string]string{
		"Content-Type": "application/json",
	})
	if err != nil {
		return nil, err
	}

	var regResp ClientRegistrationResponse
	if err := decodeJSON(resp, &regResp, http.StatusCreated); err != nil {
		return nil, err
	}
	return &regResp, nil
}

// RegisterClientForm registers a client through the simple form endpoint.
// Unlike RFC 7591 registration it takes a single redirect URI and returns
// the same response shape.
func (c *SDKClient) RegisterClientForm(
	ctx context.Context,
	name, redirectURI, scope string,
) (*ClientRegistrationResponse, error) {
	data := url.Values{
		"client_name":  {name},
		"redirect_uri": {redirectURI},
	}
	if scope != "" {
		data.Set("scope", scope)
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/register-client",
		strings.NewReader(data.Encode()), map[string]string{
			"Content-Type": "application/x-www-form-urlencoded",
		})
	if err != nil {
		return nil, err
	}

	var regResp ClientRegistrationResponse
	if err := decodeJSON(resp, &regResp, http.StatusCreated); err != nil {
		return nil, err
	}
	return &regResp, nil
}
