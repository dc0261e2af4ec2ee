// This Source Code Form is subject to the terms of the Mozilla Public
// License, version 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package oauth2 implements the frontend-agnostic core of an OAuth 2.0
// authorization server: the protocol state machines for the Authorization
// Code, Access Token, Refresh, Resource and Client Credentials flows,
// together with the pluggable primitives (Registrar, Authorizer, Issuer,
// OwnerSolicitor, Extension) those flows drive.
//
// This package owns none of the HTTP dancing. It is driven through the
// Request/Response/Endpoint abstractions so that it can be wired to any
// HTTP framework and any storage backend; see frontend/simple for a
// reference net/http adapter and providers/memory and providers/assertion
// for reference primitive implementations.
//
// For details about the specs implemented, refer to:
//   - http://tools.ietf.org/html/rfc6749 (OAuth 2.0)
//   - http://tools.ietf.org/html/rfc6750 (Bearer Token Usage)
//   - http://tools.ietf.org/html/rfc7636 (PKCE)
//   - https://tools.ietf.org/html/rfc7009 (Token Revocation)
package oauth2
