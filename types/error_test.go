// This Source Code Form is subject to the terms of the Mozilla Public
// License, version 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOAuthErrorError(t *testing.T) {
	t.Run("with description", func(t *testing.T) {
		e := &OAuthError{Code: ErrCodeInvalidGrant, Description: "code expired"}
		assert.Equal(t, "invalid_grant: code expired", e.Error())
	})

	t.Run("without description", func(t *testing.T) {
		e := &OAuthError{Code: ErrCodeAccessDenied}
		assert.Equal(t, "access_denied", e.Error())
	})
}
