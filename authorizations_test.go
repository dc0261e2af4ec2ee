// This Source Code Form is subject to the terms of the Mozilla Public
// License, version 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package oauth2_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hooklift/oauth2"
	"github.com/hooklift/oauth2/frontend/simple"
	"github.com/hooklift/oauth2/types"
)

func publicClient() *types.Client {
	return &types.Client{
		ID:           "public-client",
		Kind:         types.Public,
		RedirectURI:  mustParse("https://app.example.com/callback"),
		DefaultScope: types.NewScopes("read", "write"),
	}
}

func mustParse(raw string) *url.URL {
	u, err := url.Parse(raw)
	if err != nil {
		panic(err)
	}
	return u
}

func TestAuthorizeIssuesCodeAndRedirects(t *testing.T) {
	h := newHarness(t, publicClient(), autoSolicitor{ownerID: "owner-1"})

	httpReq := getQuery(t, "https://as.example.com/authorize?"+url.Values{
		"client_id":     {"public-client"},
		"response_type": {"code"},
		"state":         {"xyz"},
	}.Encode())

	resp, err := oauth2.Authorize(context.Background(), h.endpoint, simple.NewRequest(httpReq))
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.Status)

	loc, err := url.Parse(resp.Header.Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "app.example.com", loc.Host)
	assert.NotEmpty(t, loc.Query().Get("code"))
	assert.Equal(t, "xyz", loc.Query().Get("state"))
}

func TestAuthorizeMissingClientIDRendersDirectly(t *testing.T) {
	h := newHarness(t, publicClient(), autoSolicitor{ownerID: "owner-1"})

	httpReq := getQuery(t, "https://as.example.com/authorize?response_type=code")
	resp, err := oauth2.Authorize(context.Background(), h.endpoint, simple.NewRequest(httpReq))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.Status)
}

func TestAuthorizeMismatchedRedirectRendersDirectly(t *testing.T) {
	h := newHarness(t, publicClient(), autoSolicitor{ownerID: "owner-1"})

	httpReq := getQuery(t, "https://as.example.com/authorize?"+url.Values{
		"client_id":     {"public-client"},
		"response_type": {"code"},
		"redirect_uri":  {"https://evil.example.com/callback"},
	}.Encode())

	resp, err := oauth2.Authorize(context.Background(), h.endpoint, simple.NewRequest(httpReq))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.Status)
}

func TestAuthorizeUnsupportedResponseTypeRendersDirectly(t *testing.T) {
	h := newHarness(t, publicClient(), autoSolicitor{ownerID: "owner-1"})

	httpReq := getQuery(t, "https://as.example.com/authorize?"+url.Values{
		"client_id":     {"public-client"},
		"response_type": {"token"},
	}.Encode())

	resp, err := oauth2.Authorize(context.Background(), h.endpoint, simple.NewRequest(httpReq))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.Status)

	var body types.OAuthError
	require.NoError(t, json.Unmarshal(resp.Body, &body))
	assert.Equal(t, types.ErrCodeUnsupportedResponseType, body.Code)
}

func TestAuthorizeScopeEscalationRedirectsWithError(t *testing.T) {
	h := newHarness(t, publicClient(), autoSolicitor{ownerID: "owner-1"})

	httpReq := getQuery(t, "https://as.example.com/authorize?"+url.Values{
		"client_id":     {"public-client"},
		"response_type": {"code"},
		"scope":         {"read admin"},
	}.Encode())

	resp, err := oauth2.Authorize(context.Background(), h.endpoint, simple.NewRequest(httpReq))
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.Status)

	loc, err := url.Parse(resp.Header.Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, types.ErrCodeInvalidScope, loc.Query().Get("error"))
}

func TestAuthorizeAccessDenied(t *testing.T) {
	h := newHarness(t, publicClient(), autoSolicitor{deny: true})

	httpReq := getQuery(t, "https://as.example.com/authorize?"+url.Values{
		"client_id":     {"public-client"},
		"response_type": {"code"},
	}.Encode())

	resp, err := oauth2.Authorize(context.Background(), h.endpoint, simple.NewRequest(httpReq))
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.Status)

	loc, err := url.Parse(resp.Header.Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, types.ErrCodeAccessDenied, loc.Query().Get("error"))
}
