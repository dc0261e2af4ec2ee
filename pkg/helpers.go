// This Source Code Form is subject to the terms of the Mozilla Public
// License, version 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package pkg holds small, dependency-free helpers shared by the flows and
// the reference primitives.
package pkg

import "net/url"

// SameRedirectURI reports whether a and b are the same redirect URI for the
// purposes of http://tools.ietf.org/html/rfc6749#section-3.1.2: same
// scheme, host and path. Query strings are ignored, since some clients vary
// them per-request; fragments are never allowed in a registered redirect
// URI in the first place.
func SameRedirectURI(a, b *url.URL) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Scheme == b.Scheme && a.Host == b.Host && a.Path == b.Path
}

// AbsoluteNoFragment reports whether u is an absolute URI with no fragment,
// the invariant every registered client redirect URI must satisfy.
func AbsoluteNoFragment(u *url.URL) bool {
	if u == nil {
		return false
	}
	return u.IsAbs() && u.Fragment == ""
}
