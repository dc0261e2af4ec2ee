// This Source Code Form is subject to the terms of the Mozilla Public
// License, version 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package simple

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hooklift/oauth2/providers/memory"
	"github.com/hooklift/oauth2/types"
)

func TestNewEndpointDefaults(t *testing.T) {
	ep := New()
	assert.Equal(t, "oauth2", ep.Realm())
	assert.False(t, ep.AllowClientSecretInBody())
	assert.Equal(t, time.Duration(0), ep.CodeTTL())
	assert.Nil(t, ep.Registrar())
	assert.True(t, ep.GrantAllowed("authorization_code"))
	assert.True(t, ep.GrantAllowed("client_credentials"))
	assert.True(t, ep.GrantAllowed("anything"))
}

func TestNewEndpointAppliesOptions(t *testing.T) {
	registrar, err := memory.NewRegistrar(nil)
	require.NoError(t, err)
	scopes := types.NewScopes("read")

	ep := New(
		WithRegistrar(registrar),
		WithCodeTTL(5*time.Minute),
		WithClientSecretInBody(true),
		WithRealm("my-api"),
		WithScopes(scopes),
	)

	assert.Same(t, registrar, ep.Registrar())
	assert.Equal(t, 5*time.Minute, ep.CodeTTL())
	assert.True(t, ep.AllowClientSecretInBody())
	assert.Equal(t, "my-api", ep.Realm())
	assert.Equal(t, []types.Scopes{scopes}, ep.Scopes())
}

func TestWithAllowedGrantsRestrictsToListed(t *testing.T) {
	ep := New(WithAllowedGrants("authorization_code", "refresh_token"))

	assert.True(t, ep.GrantAllowed("authorization_code"))
	assert.True(t, ep.GrantAllowed("refresh_token"))
	assert.False(t, ep.GrantAllowed("client_credentials"))
	assert.False(t, ep.GrantAllowed("password"))
}
