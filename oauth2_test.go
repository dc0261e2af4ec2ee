// This Source Code Form is subject to the terms of the Mozilla Public
// License, version 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package oauth2_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/hooklift/oauth2"
	"github.com/hooklift/oauth2/frontend/simple"
	"github.com/hooklift/oauth2/providers/memory"
	"github.com/hooklift/oauth2/types"
)

// autoSolicitor grants consent immediately to ownerID, simulating an
// already-authenticated resource owner who has pre-approved every request.
type autoSolicitor struct {
	ownerID string
	deny    bool
}

func (s autoSolicitor) CheckConsent(_ context.Context, _ oauth2.Request, _ *types.PreGrant) oauth2.OwnerConsent {
	if s.deny {
		return oauth2.OwnerConsent{Kind: oauth2.Denied}
	}
	return oauth2.OwnerConsent{Kind: oauth2.Authorized, OwnerID: s.ownerID}
}

func getQuery(t *testing.T, rawURL string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, rawURL, nil)
	return req
}

func postForm(t *testing.T, rawURL string, form url.Values) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, rawURL, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// harness wires up an Endpoint backed entirely by providers/memory, for
// driving the flows end to end.
type harness struct {
	registrar  *memory.Registrar
	authorizer *memory.Authorizer
	issuer     *memory.Issuer
	endpoint   *simple.Endpoint
}

func newHarness(t *testing.T, client *types.Client, solicitor oauth2.OwnerSolicitor) *harness {
	t.Helper()
	registrar, err := memory.NewRegistrar(memory.NewArgon2Policy(), client)
	if err != nil {
		t.Fatalf("building registrar: %v", err)
	}
	authorizer := memory.NewAuthorizer(memory.UUIDTagGrant{})
	issuer := memory.NewIssuer(memory.UUIDTagGrant{})

	ep := simple.New(
		simple.WithRegistrar(registrar),
		simple.WithAuthorizer(authorizer),
		simple.WithIssuer(issuer),
		simple.WithSolicitor(solicitor),
	)

	return &harness{registrar: registrar, authorizer: authorizer, issuer: issuer, endpoint: ep}
}

func mustParseURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parsing %q: %v", raw, err)
	}
	return u
}
