// This Source Code Form is subject to the terms of the Mozilla Public
// License, version 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package assertion

import (
	"context"
	"sync"
	"time"

	"github.com/hooklift/oauth2"
	"github.com/hooklift/oauth2/types"
)

const codeTag = "code"

// Authorizer is a self-contained, JWT-backed oauth2.Authorizer. Since a
// code's validity is verified by its signature rather than a server-side
// lookup, single-use enforcement needs an explicit redeemed set; it stays
// small because entries are pruned once the code's own expiry passes.
type Authorizer struct {
	codec *Codec

	mu       sync.Mutex
	counter  uint64
	redeemed map[string]time.Time
}

// NewAuthorizer builds an Authorizer signing and verifying with codec.
func NewAuthorizer(codec *Codec) *Authorizer {
	return &Authorizer{codec: codec, redeemed: make(map[string]time.Time)}
}

// Authorize implements oauth2.Authorizer.
func (a *Authorizer) Authorize(_ context.Context, grant types.Grant) (string, error) {
	a.mu.Lock()
	a.counter++
	counter := a.counter
	a.mu.Unlock()

	return a.codec.Encode(codeTag, counter, grant)
}

// Extract implements oauth2.Authorizer.
func (a *Authorizer) Extract(_ context.Context, code string) (*types.Grant, error) {
	grant, err := a.codec.Decode(code, codeTag)
	if err != nil || grant == nil {
		return grant, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.prune()

	if _, used := a.redeemed[code]; used {
		return nil, oauth2.ErrUsed
	}
	a.redeemed[code] = grant.Until
	return grant, nil
}

// prune drops redeemed entries whose code has already expired on its own;
// must be called with a.mu held.
func (a *Authorizer) prune() {
	now := time.Now()
	for code, until := range a.redeemed {
		if now.After(until) {
			delete(a.redeemed, code)
		}
	}
}
