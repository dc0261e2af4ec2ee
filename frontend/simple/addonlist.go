// This Source Code Form is subject to the terms of the Mozilla Public
// License, version 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package simple

import (
	"context"

	"github.com/hooklift/oauth2"
	"github.com/hooklift/oauth2/types"
)

// AddonList runs a fixed sequence of extensions as a single oauth2.Extension,
// since an Endpoint only ever holds one. Extensions run in order; the first
// one to reject short-circuits the rest.
type AddonList []oauth2.Extension

// Run implements oauth2.Extension.
func (l AddonList) Run(ctx context.Context, phase oauth2.ExtensionPhase, req oauth2.Request, grant *types.Grant) oauth2.ExtensionOutcome {
	for _, ext := range l {
		outcome := ext.Run(ctx, phase, req, grant)
		if outcome.Reject != nil {
			return outcome
		}
		for k, v := range outcome.Values {
			if grant.Extensions == nil {
				grant.Extensions = make(map[string]types.ExtensionValue)
			}
			grant.Extensions[k] = v
		}
	}
	return oauth2.ExtensionOutcome{}
}
