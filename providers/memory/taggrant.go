// This Source Code Form is subject to the terms of the Mozilla Public
// License, version 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package memory

import (
	"github.com/google/uuid"
	"github.com/hooklift/oauth2/types"
)

// UUIDTagGrant generates tags as random UUIDv4 strings. counter is accepted
// to satisfy oauth2.TagGrant but is otherwise unused: UUIDv4's 122 bits of
// randomness already make collisions across successive calls
// overwhelmingly unlikely.
type UUIDTagGrant struct{}

// Generate implements oauth2.TagGrant.
func (UUIDTagGrant) Generate(_ uint64, _ *types.Grant) (string, error) {
	return uuid.NewString(), nil
}
