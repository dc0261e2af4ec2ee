// This Source Code Form is subject to the terms of the Mozilla Public
// License, version 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package assertion

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/hooklift/oauth2/types"
)

const (
	accessTag  = "access"
	refreshTag = "refresh"
)

// Issuer is a self-contained, JWT-backed oauth2.Issuer. Revocation needs an
// explicit denylist, since a token otherwise validates purely from its own
// signature; the denylist is pruned as entries pass their own expiry so it
// never grows past the number of tokens revoked within one token lifetime.
type Issuer struct {
	codec *Codec

	mu       sync.Mutex
	counter  uint64
	revoked  map[string]time.Time
}

// NewIssuer builds an Issuer signing and verifying with codec.
func NewIssuer(codec *Codec) *Issuer {
	return &Issuer{codec: codec, revoked: make(map[string]time.Time)}
}

func (i *Issuer) nextCounter() uint64 {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.counter++
	return i.counter
}

func (i *Issuer) isRevoked(token string) bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.pruneLocked()
	_, ok := i.revoked[token]
	return ok
}

func (i *Issuer) pruneLocked() {
	now := time.Now()
	for tok, until := range i.revoked {
		if now.After(until) {
			delete(i.revoked, tok)
		}
	}
}

// Issue implements oauth2.Issuer.
func (i *Issuer) Issue(_ context.Context, grant types.Grant) (*types.IssuedToken, error) {
	access, err := i.codec.Encode(accessTag, i.nextCounter(), grant)
	if err != nil {
		return nil, err
	}
	refresh, err := i.codec.Encode(refreshTag, i.nextCounter(), grant)
	if err != nil {
		return nil, err
	}

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
	if i.isRevoked(access) {
		return nil, nil
	}
	return i.codec.Decode(access, accessTag)
}

// RecoverRefresh implements oauth2.Issuer.
func (i *Issuer) RecoverRefresh(_ context.Context, refresh string) (*types.Grant, error) {
	if i.isRevoked(refresh) {
		return nil, nil
	}
	return i.codec.Decode(refresh, refreshTag)
}

// Refresh implements oauth2.Issuer. The presented refresh token is revoked
// as the new pair is minted, so each refresh token grants exactly one
// rotation.
func (i *Issuer) Refresh(ctx context.Context, refresh string, narrowedGrant types.Grant) (*types.IssuedToken, error) {
	grant, err := i.RecoverRefresh(ctx, refresh)
	if err != nil {
		return nil, err
	}
	if grant == nil {
		return nil, nil
	}

	if err := i.Revoke(ctx, refresh); err != nil {
		return nil, err
	}
	return i.Issue(ctx, narrowedGrant)
}

// Revoke implements oauth2.Issuer. Unlike providers/memory, an access and
// its paired refresh token cannot be looked up from one another here — each
// is independently self-contained — so a caller revoking a grant entirely
// must revoke both tokens it was issued.
func (i *Issuer) Revoke(_ context.Context, token string) error {
	grant, err := i.codec.Decode(token, accessTag)
	if errors.Is(err, ErrWrongTag) {
		grant, err = i.codec.Decode(token, refreshTag)
	}
	if err != nil {
		// A token that does not verify as an access or refresh token of
		// this codec was never issued here, so there is nothing to revoke.
		return nil
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	until := time.Now().Add(time.Hour)
	if grant != nil {
		until = grant.Until
	}
	i.revoked[token] = until
	return nil
}
