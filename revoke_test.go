// This Source Code Form is subject to the terms of the Mozilla Public
// License, version 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package oauth2_test

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hooklift/oauth2"
	"github.com/hooklift/oauth2/frontend/simple"
)

func TestRevokeInvalidatesToken(t *testing.T) {
	h := newHarness(t, publicClient(), autoSolicitor{ownerID: "owner-1"})
	tok := issueAccessToken(t, h)

	revokeReq := postForm(t, "https://as.example.com/revoke", url.Values{
		"token":     {tok.AccessToken},
		"client_id": {"public-client"},
	})
	resp, err := oauth2.Revoke(context.Background(), h.endpoint, simple.NewRequest(revokeReq))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Status)

	protectedReq := getQuery(t, "https://api.example.com/protected")
	protectedReq.Header.Set("Authorization", "Bearer "+tok.AccessToken)
	resp2, err := oauth2.Resource(context.Background(), h.endpoint, simple.NewRequest(protectedReq))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp2.Status)
}

func TestRevokeUnknownTokenStillReturnsOK(t *testing.T) {
	h := newHarness(t, publicClient(), autoSolicitor{ownerID: "owner-1"})

	revokeReq := postForm(t, "https://as.example.com/revoke", url.Values{
		"token":     {"not-a-real-token"},
		"client_id": {"public-client"},
	})
	resp, err := oauth2.Revoke(context.Background(), h.endpoint, simple.NewRequest(revokeReq))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Status)
}
