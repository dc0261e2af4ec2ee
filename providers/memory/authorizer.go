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

type codeEntry struct {
	grant    types.Grant
	redeemed bool
}

// Authorizer is an in-memory oauth2.Authorizer: a map from code to grant,
// guarded by a mutex so Extract's lookup-and-delete is atomic.
type Authorizer struct {
	tags oauth2.TagGrant

	mu      sync.Mutex
	counter uint64
	codes   map[string]*codeEntry
}

// NewAuthorizer builds an Authorizer that mints codes through tags.
func NewAuthorizer(tags oauth2.TagGrant) *Authorizer {
	return &Authorizer{tags: tags, codes: make(map[string]*codeEntry)}
}

// Authorize implements oauth2.Authorizer.
func (a *Authorizer) Authorize(_ context.Context, grant types.Grant) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.counter++
	code, err := a.tags.Generate(a.counter, &grant)
	if err != nil {
		return "", fmt.Errorf("oauth2/memory: generating code: %w", err)
	}

	a.codes[code] = &codeEntry{grant: grant}
	return code, nil
}

// Extract implements oauth2.Authorizer. The lookup, expiry check and
// single-use marking happen under the same lock, so two concurrent
// redemptions of the same code can never both succeed.
func (a *Authorizer) Extract(_ context.Context, code string) (*types.Grant, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	entry, ok := a.codes[code]
	if !ok {
		return nil, nil
	}
	if entry.redeemed {
		delete(a.codes, code)
		return nil, oauth2.ErrUsed
	}
	if entry.grant.Expired(time.Now()) {
		delete(a.codes, code)
		return nil, oauth2.ErrExpired
	}

	entry.redeemed = true
	delete(a.codes, code)
	grant := entry.grant
	return &grant, nil
}
