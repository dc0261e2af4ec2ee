// This Source Code Form is subject to the terms of the Mozilla Public
// License, version 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package simple

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hooklift/oauth2"
	"github.com/hooklift/oauth2/types"
)

// stubExtension records whether it ran and optionally rejects or contributes
// a value, for testing AddonList's sequencing.
type stubExtension struct {
	ran    *[]string
	name   string
	reject *types.OAuthError
	value  string
}

func (s stubExtension) Run(_ context.Context, _ oauth2.ExtensionPhase, _ oauth2.Request, grant *types.Grant) oauth2.ExtensionOutcome {
	*s.ran = append(*s.ran, s.name)
	if s.reject != nil {
		return oauth2.ExtensionOutcome{Reject: s.reject}
	}
	if s.value != "" {
		return oauth2.ExtensionOutcome{Values: map[string]types.ExtensionValue{s.name: {Value: s.value}}}
	}
	return oauth2.ExtensionOutcome{}
}

func TestAddonListRunsInOrderAndMerges(t *testing.T) {
	var ran []string
	list := AddonList{
		stubExtension{ran: &ran, name: "first", value: "v1"},
		stubExtension{ran: &ran, name: "second", value: "v2"},
	}

	grant := &types.Grant{}
	outcome := list.Run(context.Background(), oauth2.PhaseAuthorization, &fakeReq{}, grant)

	require.Nil(t, outcome.Reject)
	assert.Equal(t, []string{"first", "second"}, ran)
	assert.Equal(t, "v1", grant.Extensions["first"].Value)
	assert.Equal(t, "v2", grant.Extensions["second"].Value)
}

func TestAddonListShortCircuitsOnReject(t *testing.T) {
	var ran []string
	list := AddonList{
		stubExtension{ran: &ran, name: "first", reject: &types.OAuthError{Code: types.ErrCodeInvalidRequest}},
		stubExtension{ran: &ran, name: "second", value: "v2"},
	}

	outcome := list.Run(context.Background(), oauth2.PhaseAuthorization, &fakeReq{}, &types.Grant{})
	require.NotNil(t, outcome.Reject)
	assert.Equal(t, []string{"first"}, ran)
}

type fakeReq struct{}

func (fakeReq) Method() string { return "GET" }
func (fakeReq) URL() *url.URL  { return &url.URL{} }
func (fakeReq) Query() (types.NormalizedParameter, error) {
	return types.NormalizedParameter{}, nil
}
func (fakeReq) Form() (types.NormalizedParameter, error) {
	return types.NormalizedParameter{}, nil
}
func (fakeReq) BasicAuth() (string, string, bool) { return "", "", false }
func (fakeReq) Header(string) string              { return "" }
