package sqlite

import (
	"context"

	"github.com/strandhq/latchkey/internal/idp/domain"
)

type clientsRepo struct {
	db dbtx
}

const upsertClientSQL = `
INSERT INTO clients (id, secret, name, redirect_uris, scope, grant_types, response_types, token_endpoint_auth_method, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
    secret = excluded.secret,
    name = excluded.name,
    redirect_uris = excluded.redirect_uris,
    scope = excluded.scope,
    grant_types = excluded.grant_types,
    response_types = excluded.response_types,
    token_endpoint_auth_method = excluded.token_endpoint_auth_method
`

func (r *clientsRepo) UpsertClient(ctx context.Context, c domain.Client) error {
	_, err := r.db.ExecContext(ctx, upsertClientSQL,
		c.ID, mapStringNull(c.Secret), c.Name, joinList(c.RedirectURIs), c.Scope,
		joinList(c.GrantTypes), joinList(c.ResponseTypes), c.TokenEndpointAuthMethod, c.CreatedAt)
	return err
}

const getClientByIDSQL = `
SELECT id, secret, name, redirect_uris, scope, grant_types, response_types, token_endpoint_auth_method, created_at
FROM clients WHERE id = ?
`

func (r *clientsRepo) GetClientByID(ctx context.Context, id string) (domain.Client, error) {
	row := r.db.QueryRowContext(ctx, getClientByIDSQL, id)

	var (
		c             domain.Client
		secret        = mapStringNull("")
		redirectURIs  string
		grantTypes    string
		responseTypes string
	)
	err := row.Scan(&c.ID, &secret, &c.Name, &redirectURIs, &c.Scope,
		&grantTypes, &responseTypes, &c.TokenEndpointAuthMethod, &c.CreatedAt)
	if err != nil {
		return domain.Client{}, mapNotFound(err)
	}

	c.Secret = mapNullString(secret)
	c.RedirectURIs = splitList(redirectURIs)
	c.GrantTypes = splitList(grantTypes)
	c.ResponseTypes = splitList(responseTypes)
	return c, nil
}
