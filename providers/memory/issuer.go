// This Source Code Form is subject to the terms of the Mozilla Public
// License, version 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hooklift/oauth2"
	"github.com/hooklift/oauth2/types"
)

// Issuer is an in-memory oauth2.Issuer keeping access and refresh tokens in
// separate maps, each pointing back at the grant that produced it.
type Issuer struct {
	tags oauth2.TagGrant

	mu       sync.Mutex
	counter  uint64
	access   map[string]types.Grant
	refresh  map[string]types.Grant
	// refreshOf maps an access token to the refresh token minted alongside
	// it, so Revoke(access) can also invalidate its paired refresh token.
	refreshOf map[string]string
}

// NewIssuer builds an Issuer that mints tokens through tags.
func NewIssuer(tags oauth2.TagGrant) *Issuer {
	return &Issuer{
		tags:      tags,
		access:    make(map[string]types.Grant),
		refresh:   make(map[string]types.Grant),
		refreshOf: make(map[string]string),
	}
}

// Issue implements oauth2.Issuer. Every issuance mints a fresh refresh
// token; a flow that never hands one out (the client_credentials grant)
// clears IssuedToken.Refresh itself after the call.
func (i *Issuer) Issue(_ context.Context, grant types.Grant) (*types.IssuedToken, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.counter++
	access, err := i.tags.Generate(i.counter, &grant)
	if err != nil {
		return nil, fmt.Errorf("oauth2/memory: generating access token: %w", err)
	}
	i.counter++
	refresh, err := i.tags.Generate(i.counter, &grant)
	if err != nil {
		return nil, fmt.Errorf("oauth2/memory: generating refresh token: %w", err)
	}

	i.access[access] = grant
	i.refresh[refresh] = grant
	i.refreshOf[access] = refresh

	return &types.IssuedToken{
		Access:     access,
		Refresh:    refresh,
		TokenType:  "Bearer",
		Until:      grant.Until,
		Scope:      grant.Scope,
		Extensions: types.PublicExtensions(grant.Extensions),
	}, nil
}

// RecoverToken implements oauth2.Issuer.
func (i *Issuer) RecoverToken(_ context.Context, access string) (*types.Grant, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	grant, ok := i.access[access]
	if !ok {
		return nil, nil
	}
	if grant.Expired(time.Now()) {
		return nil, oauth2.ErrExpired
	}
	return &grant, nil
}

// RecoverRefresh implements oauth2.Issuer.
func (i *Issuer) RecoverRefresh(_ context.Context, refresh string) (*types.Grant, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	grant, ok := i.refresh[refresh]
	if !ok {
		return nil, nil
	}
	return &grant, nil
}

// Refresh implements oauth2.Issuer. It rotates the refresh token on every
// use: the previous one is invalidated as the new pair is minted, so a
// captured refresh token has exactly one remaining use.
func (i *Issuer) Refresh(_ context.Context, refresh string, narrowedGrant types.Grant) (*types.IssuedToken, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if _, ok := i.refresh[refresh]; !ok {
		return nil, oauth2.ErrNotFound
	}
	delete(i.refresh, refresh)

	i.counter++
	access, err := i.tags.Generate(i.counter, &narrowedGrant)
	if err != nil {
		return nil, fmt.Errorf("oauth2/memory: generating access token: %w", err)
	}
	i.counter++
	newRefresh, err := i.tags.Generate(i.counter, &narrowedGrant)
	if err != nil {
		return nil, fmt.Errorf("oauth2/memory: generating refresh token: %w", err)
	}

	i.access[access] = narrowedGrant
	i.refresh[newRefresh] = narrowedGrant
	i.refreshOf[access] = newRefresh

	return &types.IssuedToken{
		Access:     access,
		Refresh:    newRefresh,
		TokenType:  "Bearer",
		Until:      narrowedGrant.Until,
		Scope:      narrowedGrant.Scope,
		Extensions: types.PublicExtensions(narrowedGrant.Extensions),
	}, nil
}

// Revoke implements oauth2.Issuer. token may be either an access or a
// refresh token; revoking an access token also revokes its paired refresh
// token, per https://tools.ietf.org/html/rfc7009#section-2.1.
func (i *Issuer) Revoke(_ context.Context, token string) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if refresh, ok := i.refreshOf[token]; ok {
		delete(i.refresh, refresh)
		delete(i.refreshOf, token)
	}
	delete(i.access, token)
	delete(i.refresh, token)
	return nil
}
