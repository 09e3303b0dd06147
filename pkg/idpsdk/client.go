package idpsdk

import (
	"net/http"
	"strings"
	"time"
)

// SDKClient is a client for the latchkey identity provider. It speaks the
// OAuth2/OIDC endpoints directly and is what the end-to-end tests drive.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a new identity provider client.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}
