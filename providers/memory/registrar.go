// This Source Code Form is subject to the terms of the Mozilla Public
// License, version 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package memory provides in-process, mutex-guarded reference
// implementations of every oauth2 primitive: Registrar, Authorizer, Issuer
// and TagGrant. They hold no external state and are meant for tests and
// small deployments, not for a server that survives a restart.
package memory

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"github.com/hooklift/oauth2"
	"github.com/hooklift/oauth2/pkg"
	"github.com/hooklift/oauth2/types"
)

func parseURI(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	if !pkg.AbsoluteNoFragment(u) {
		return nil, fmt.Errorf("oauth2/memory: %q is not an absolute URI without a fragment", raw)
	}
	return u, nil
}

// Registrar is an in-memory oauth2.Registrar backed by a client set supplied
// at construction and optionally extended afterwards with Add.
type Registrar struct {
	mu      sync.RWMutex
	clients map[string]*types.Client
	policy  oauth2.PasswordPolicy
}

// NewRegistrar builds a Registrar seeded with clients, verifying secrets
// through policy. It fails if any client's redirect URI is not absolute or
// carries a fragment, per http://tools.ietf.org/html/rfc6749#section-3.1.2.
func NewRegistrar(policy oauth2.PasswordPolicy, clients ...*types.Client) (*Registrar, error) {
	r := &Registrar{clients: make(map[string]*types.Client, len(clients)), policy: policy}
	for _, c := range clients {
		if err := r.Add(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Add registers an additional client, for tests that build up a Registrar
// incrementally. It validates c's redirect URIs the same way NewRegistrar
// does.
func (r *Registrar) Add(c *types.Client) error {
	if !pkg.AbsoluteNoFragment(c.RedirectURI) {
		return fmt.Errorf("oauth2/memory: client %q: redirect_uri %q is not an absolute URI without a fragment", c.ID, c.RedirectURI)
	}
	for _, alt := range c.AdditionalRedirectURIs {
		if !pkg.AbsoluteNoFragment(alt) {
			return fmt.Errorf("oauth2/memory: client %q: additional redirect_uri %q is not an absolute URI without a fragment", c.ID, alt)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[c.ID] = c
	return nil
}

func (r *Registrar) lookup(clientID string) (*types.Client, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.clients[clientID]
	return c, ok
}

// BoundRedirect implements oauth2.Registrar.
func (r *Registrar) BoundRedirect(_ context.Context, clientID, redirectURI string) (*types.PreGrant, error) {
	client, ok := r.lookup(clientID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", oauth2.ErrUnregisteredClient, clientID)
	}

	if redirectURI == "" {
		return &types.PreGrant{ClientID: client.ID, RedirectURI: client.RedirectURI}, nil
	}

	got, err := parseURI(redirectURI)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", oauth2.ErrMismatchedRedirect, err)
	}
	if pkg.SameRedirectURI(got, client.RedirectURI) {
		return &types.PreGrant{ClientID: client.ID, RedirectURI: client.RedirectURI}, nil
	}
	for _, candidate := range client.AdditionalRedirectURIs {
		if pkg.SameRedirectURI(got, candidate) {
			return &types.PreGrant{ClientID: client.ID, RedirectURI: candidate}, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", oauth2.ErrMismatchedRedirect, redirectURI)
}

// Negotiate implements oauth2.Registrar.
func (r *Registrar) Negotiate(_ context.Context, pre *types.PreGrant, requestedScope string) (*types.PreGrant, error) {
	client, ok := r.lookup(pre.ClientID)
	if !ok {
		return pre, fmt.Errorf("%w: %q", oauth2.ErrUnregisteredClient, pre.ClientID)
	}

	if requestedScope == "" {
		out := *pre
		out.Scope = client.DefaultScope.Clone()
		return &out, nil
	}

	requested, err := types.ParseScope(requestedScope)
	if err != nil {
		return pre, err
	}
	if !client.DefaultScope.Privileges(requested) {
		return pre, fmt.Errorf("%w: client %q", oauth2.ErrScopeEscalation, client.ID)
	}

	out := *pre
	out.Scope = client.DefaultScope.Intersect(requested)
	return &out, nil
}

// Check implements oauth2.Registrar. Every failure collapses to the same
// sentinel so a caller can never distinguish "unknown client" from "wrong
// secret" from "public client asked for password auth".
func (r *Registrar) Check(_ context.Context, clientID, passphrase string) error {
	client, ok := r.lookup(clientID)
	if !ok {
		return oauth2.ErrUnspecifiedAuth
	}

	if client.Kind == types.Public {
		if passphrase != "" {
			return oauth2.ErrUnspecifiedAuth
		}
		return nil
	}

	if r.policy == nil {
		return oauth2.ErrUnspecifiedAuth
	}
	if err := r.policy.Check(clientID, passphrase, client.PasswordHash); err != nil {
		return oauth2.ErrUnspecifiedAuth
	}
	return nil
}

// Client implements oauth2.Registrar.
func (r *Registrar) Client(_ context.Context, clientID string) (*types.Client, error) {
	client, ok := r.lookup(clientID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", oauth2.ErrUnregisteredClient, clientID)
	}
	return client, nil
}
