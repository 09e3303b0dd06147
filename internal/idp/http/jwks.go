package http

import (
	"net/http"

	"github.com/strandhq/latchkey/pkg/httpx"
	"github.com/strandhq/latchkey/pkg/idpsdk"
	"github.com/strandhq/latchkey/pkg/jwtx"
)

// signingKeyID identifies the single HS256 signing key in the JWKS document.
const signingKeyID = "idp-hs256"

// JWKSHandler exposes the JSON Web Key Set.
//
//	@Summary		Get JWKS
//	@Description	Returns the JSON Web Key Set describing the ID token signing key.
//	@Tags			well-known
//	@Produce		json
//	@Success		200	{object}	idpsdk.JWKSResponse	"The JSON Web Key Set"
//	@Router			/jwks.json [get].
func JWKSHandler(minter *jwtx.Minter) http.HandlerFunc {
	key := minter.OctJWK(signingKeyID)
	jwks := idpsdk.JWKSResponse{
		Keys: []idpsdk.JWK{{
			Kty: key.Kty,
			Use: key.Use,
			Alg: key.Alg,
			Kid: key.Kid,
			K:   key.K,
		}},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, jwks)
	}
}
