// This Source Code Form is subject to the terms of the Mozilla Public
// License, version 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package render builds concrete HTTP responses from the oauth2 package's
// abstract Template. It is used by frontend/simple's Endpoint.Response
// implementation; other frontends are free to render Templates their own
// way instead.
//
// Consent-page rendering is deliberately not here: per spec, presenting a
// user-management UI is the OwnerSolicitor's job, not the core's.
package render

import (
	"encoding/json"
	"net/http"
	"net/url"
)

// JSON renders a JSON body with the standard OAuth2 no-cache headers.
func JSON(data interface{}) (http.Header, []byte, error) {
	body, err := json.Marshal(data)
	if err != nil {
		return nil, nil, err
	}

	h := make(http.Header)
	h.Set("Content-Type", "application/json; charset=utf-8")
	noStore(h)
	return h, body, nil
}

// Redirect renders a 302 redirect to u with query merged in.
func Redirect(u *url.URL, query url.Values) (http.Header, *url.URL) {
	redirected := *u
	q := redirected.Query()
	for k, vs := range query {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	redirected.RawQuery = q.Encode()

	h := make(http.Header)
	h.Set("Location", redirected.String())
	return h, &redirected
}

// Challenge renders a 401/403 body with a WWW-Authenticate header.
func Challenge(challenge string, data interface{}) (http.Header, []byte, error) {
	body, err := json.Marshal(data)
	if err != nil {
		return nil, nil, err
	}

	h := make(http.Header)
	h.Set("Content-Type", "application/json; charset=utf-8")
	h.Set("WWW-Authenticate", challenge)
	noStore(h)
	return h, body, nil
}

func noStore(h http.Header) {
	h.Set("Cache-Control", "no-store")
	h.Set("Pragma", "no-cache")
}
