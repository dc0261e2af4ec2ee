// This Source Code Form is subject to the terms of the Mozilla Public
// License, version 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package pkce

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hooklift/oauth2"
	"github.com/hooklift/oauth2/types"
)

// fakeRequest is a minimal oauth2.Request stand-in for testing extensions in
// isolation, without going through frontend/simple's net/http adapter.
type fakeRequest struct {
	query types.NormalizedParameter
	form  types.NormalizedParameter
}

func (r *fakeRequest) Method() string { return "GET" }
func (r *fakeRequest) URL() *url.URL  { return &url.URL{} }
func (r *fakeRequest) Query() (types.NormalizedParameter, error) {
	if r.query == nil {
		return types.NormalizedParameter{}, nil
	}
	return r.query, nil
}
func (r *fakeRequest) Form() (types.NormalizedParameter, error) {
	if r.form == nil {
		return types.NormalizedParameter{}, nil
	}
	return r.form, nil
}
func (r *fakeRequest) BasicAuth() (string, string, bool) { return "", "", false }
func (r *fakeRequest) Header(string) string              { return "" }

func s256Challenge(verifier string) string {
	sum := sha256.Sum256([]byte(verifier))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

func TestExtensionAuthorizePhaseStoresChallenge(t *testing.T) {
	ext := New(false)
	req := &fakeRequest{query: types.NormalizedParameter{
		"code_challenge":        s256Challenge("a-verifier-long-enough-to-satisfy-the-charset-1234"),
		"code_challenge_method": "S256",
	}}

	grant := &types.Grant{}
	outcome := ext.Run(context.Background(), oauth2.PhaseAuthorization, req, grant)
	require.Nil(t, outcome.Reject)
	require.Contains(t, outcome.Values, ID)
	assert.False(t, outcome.Values[ID].Public, "the stored challenge must never be echoed to the client")
}

func TestExtensionRequireForPublicRejectsMissingChallenge(t *testing.T) {
	ext := New(true)
	req := &fakeRequest{}

	outcome := ext.Run(context.Background(), oauth2.PhaseAuthorization, req, &types.Grant{})
	require.NotNil(t, outcome.Reject)
	assert.Equal(t, types.ErrCodeInvalidRequest, outcome.Reject.Code)
}

func TestExtensionAccessTokenPhaseVerifiesVerifier(t *testing.T) {
	verifier := "a-verifier-long-enough-to-satisfy-the-charset-1234"
	challenge := s256Challenge(verifier)

	ext := New(false)
	grant := &types.Grant{Extensions: map[string]types.ExtensionValue{
		ID: {Value: "S256:" + challenge, Public: false},
	}}

	t.Run("correct verifier", func(t *testing.T) {
		req := &fakeRequest{form: types.NormalizedParameter{"code_verifier": verifier}}
		outcome := ext.Run(context.Background(), oauth2.PhaseAccessToken, req, grant)
		assert.Nil(t, outcome.Reject)
	})

	t.Run("wrong verifier", func(t *testing.T) {
		req := &fakeRequest{form: types.NormalizedParameter{"code_verifier": "a-totally-different-verifier-that-is-also-long-enough"}}
		outcome := ext.Run(context.Background(), oauth2.PhaseAccessToken, req, grant)
		require.NotNil(t, outcome.Reject)
		assert.Equal(t, types.ErrCodeInvalidGrant, outcome.Reject.Code)
	})

	t.Run("missing verifier", func(t *testing.T) {
		req := &fakeRequest{}
		outcome := ext.Run(context.Background(), oauth2.PhaseAccessToken, req, grant)
		require.NotNil(t, outcome.Reject)
	})
}

func TestExtensionPlainMethod(t *testing.T) {
	verifier := "plain-verifier-long-enough-to-satisfy-the-charset-1"
	ext := New(false)
	grant := &types.Grant{Extensions: map[string]types.ExtensionValue{
		ID: {Value: "plain:" + verifier, Public: false},
	}}

	req := &fakeRequest{form: types.NormalizedParameter{"code_verifier": verifier}}
	outcome := ext.Run(context.Background(), oauth2.PhaseAccessToken, req, grant)
	assert.Nil(t, outcome.Reject)
}

func TestExtensionSkipsVerificationWhenNoChallengeWasRegistered(t *testing.T) {
	ext := New(false)
	req := &fakeRequest{}
	outcome := ext.Run(context.Background(), oauth2.PhaseAccessToken, req, &types.Grant{})
	assert.Nil(t, outcome.Reject)
}
