// This Source Code Form is subject to the terms of the Mozilla Public
// License, version 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package simple

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hooklift/oauth2"
	"github.com/hooklift/oauth2/types"
)

func TestRenderRedirect(t *testing.T) {
	u, err := url.Parse("https://app.example.com/callback")
	require.NoError(t, err)

	resp, err := Render(oauth2.Template{
		Kind:        oauth2.KindRedirect,
		RedirectURI: u,
		Query:       url.Values{"code": {"abc"}},
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.Status)
	assert.Equal(t, "https://app.example.com/callback?code=abc", resp.Header.Get("Location"))
}

func TestRenderJSONKinds(t *testing.T) {
	body := &types.OAuthError{Code: types.ErrCodeInvalidRequest}

	resp, err := Render(oauth2.Template{Kind: oauth2.KindClientError, JSON: body})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.Status)
	assert.Contains(t, string(resp.Body), "invalid_request")
}

func TestRenderChallengeKinds(t *testing.T) {
	resp, err := Render(oauth2.Template{
		Kind:      oauth2.KindUnauthorized,
		Challenge: `Bearer realm="oauth2"`,
		JSON:      &types.OAuthError{Code: types.ErrCodeInvalidToken},
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.Status)
	assert.Equal(t, `Bearer realm="oauth2"`, resp.Header.Get("WWW-Authenticate"))
}

func TestWriteTo(t *testing.T) {
	resp := &oauth2.Response{
		Status: http.StatusOK,
		Header: http.Header{"Content-Type": {"application/json; charset=utf-8"}},
		Body:   []byte(`{"ok":true}`),
	}

	rec := httptest.NewRecorder()
	WriteTo(rec, resp)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, `{"ok":true}`, rec.Body.String())
}
