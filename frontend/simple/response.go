// This Source Code Form is subject to the terms of the Mozilla Public
// License, version 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package simple

import (
	"net/http"

	"github.com/hooklift/oauth2"
	"github.com/hooklift/oauth2/internal/render"
)

// Render builds a concrete oauth2.Response from tmpl.
func Render(tmpl oauth2.Template) (*oauth2.Response, error) {
	switch tmpl.Kind {
	case oauth2.KindRedirect:
		h, _ := render.Redirect(tmpl.RedirectURI, tmpl.Query)
		return &oauth2.Response{Status: http.StatusFound, Header: h}, nil

	case oauth2.KindOK:
		h, body, err := render.JSON(tmpl.JSON)
		if err != nil {
			return nil, err
		}
		return &oauth2.Response{Status: http.StatusOK, Header: h, Body: body}, nil

	case oauth2.KindClientError:
		h, body, err := render.JSON(tmpl.JSON)
		if err != nil {
			return nil, err
		}
		return &oauth2.Response{Status: http.StatusBadRequest, Header: h, Body: body}, nil

	case oauth2.KindUnauthorized:
		h, body, err := render.Challenge(tmpl.Challenge, tmpl.JSON)
		if err != nil {
			return nil, err
		}
		return &oauth2.Response{Status: http.StatusUnauthorized, Header: h, Body: body}, nil

	case oauth2.KindForbidden:
		h, body, err := render.Challenge(tmpl.Challenge, tmpl.JSON)
		if err != nil {
			return nil, err
		}
		return &oauth2.Response{Status: http.StatusForbidden, Header: h, Body: body}, nil

	case oauth2.KindServerError:
		h, body, err := render.JSON(tmpl.JSON)
		if err != nil {
			return nil, err
		}
		return &oauth2.Response{Status: http.StatusInternalServerError, Header: h, Body: body}, nil

	default:
		return &oauth2.Response{Status: http.StatusInternalServerError}, nil
	}
}

// WriteTo copies resp onto w, the form every net/http handler ultimately
// needs to produce.
func WriteTo(w http.ResponseWriter, resp *oauth2.Response) {
	for k, vs := range resp.Header {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}

	w.WriteHeader(resp.Status)
	if len(resp.Body) > 0 {
		w.Write(resp.Body)
	}
}
