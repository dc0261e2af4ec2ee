// This Source Code Form is subject to the terms of the Mozilla Public
// License, version 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package assertion

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hooklift/oauth2"
	"github.com/hooklift/oauth2/types"
)

func TestAuthorizerRedeemsExactlyOnce(t *testing.T) {
	ctx := context.Background()
	a := NewAuthorizer(NewCodec([]byte("0123456789abcdef0123456789abcdef")))

	grant := types.Grant{ClientID: "client-1", Until: time.Now().Add(time.Minute)}
	code, err := a.Authorize(ctx, grant)
	require.NoError(t, err)

	got, err := a.Extract(ctx, code)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, grant.ClientID, got.ClientID)

	_, err = a.Extract(ctx, code)
	assert.ErrorIs(t, err, oauth2.ErrUsed)
}

func TestAuthorizerRejectsForeignTokens(t *testing.T) {
	ctx := context.Background()
	codec := NewCodec([]byte("0123456789abcdef0123456789abcdef"))
	authorizer := NewAuthorizer(codec)

	// An access token presented where a code is expected must not be
	// mistaken for one, even though both are signed by the same codec.
	issuer := NewIssuer(codec)
	tok, err := issuer.Issue(ctx, types.Grant{ClientID: "client-1", Until: time.Now().Add(time.Hour)})
	require.NoError(t, err)

	_, err = authorizer.Extract(ctx, tok.Access)
	assert.ErrorIs(t, err, ErrWrongTag)
}
