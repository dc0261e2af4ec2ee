// This Source Code Form is subject to the terms of the Mozilla Public
// License, version 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package simple is a net/http-based frontend for the oauth2 core: it
// adapts *http.Request onto oauth2.Request and renders an oauth2.Template
// into a concrete response via internal/render.
package simple

import (
	"net/http"
	"net/url"

	"github.com/hooklift/oauth2/types"
)

// HTTPRequest adapts *http.Request onto oauth2.Request. Query and Form
// results are cached since a flow may ask for either more than once.
type HTTPRequest struct {
	r *http.Request

	query types.NormalizedParameter
	form  types.NormalizedParameter
}

// NewRequest wraps r for use with oauth2.Authorize/Token/Resource/Revoke.
func NewRequest(r *http.Request) *HTTPRequest {
	return &HTTPRequest{r: r}
}

func (req *HTTPRequest) Method() string { return req.r.Method }

func (req *HTTPRequest) URL() *url.URL { return req.r.URL }

func (req *HTTPRequest) Query() (types.NormalizedParameter, error) {
	if req.query != nil {
		return req.query, nil
	}
	q, err := types.ParseNormalized(req.r.URL.Query())
	if err != nil {
		return nil, err
	}
	req.query = q
	return q, nil
}

func (req *HTTPRequest) Form() (types.NormalizedParameter, error) {
	if req.form != nil {
		return req.form, nil
	}
	if err := req.r.ParseForm(); err != nil {
		return nil, err
	}
	f, err := types.ParseNormalized(req.r.PostForm)
	if err != nil {
		return nil, err
	}
	req.form = f
	return f, nil
}

func (req *HTTPRequest) BasicAuth() (string, string, bool) {
	return req.r.BasicAuth()
}

func (req *HTTPRequest) Header(name string) string {
	return req.r.Header.Get(name)
}
