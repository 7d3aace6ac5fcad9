/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package fakeserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

var (
	errInvalidLocator = errors.New("invalid locator")
	errNotFound       = errors.New("not found")
)

// locator is a parsed "dimension:value" resource locator.  A bare value uses
// the default dimension of the resource.
type locator struct {
	dimension string
	value     string
}

func (l locator) String() string {
	return l.dimension + ":" + l.value
}

func parseLocator(r *http.Request, param, defaultDimension string) (locator, error) {
	raw, err := url.PathUnescape(chi.URLParam(r, param))
	if err != nil {
		return locator{}, fmt.Errorf("%w: %w", errInvalidLocator, err)
	}

	if raw == "" {
		return locator{}, fmt.Errorf("%w: empty locator", errInvalidLocator)
	}

	dimension, value, ok := strings.Cut(raw, ":")
	if !ok {
		return locator{dimension: defaultDimension, value: raw}, nil
	}

	if value == "" {
		return locator{}, fmt.Errorf("%w: dimension %q has no value", errInvalidLocator, dimension)
	}

	return locator{dimension: dimension, value: value}, nil
}

// userID returns the numeric value of an "id" user locator.
func (l locator) userID() (int64, error) {
	id, err := strconv.ParseInt(l.value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", errInvalidLocator, err)
	}

	return id, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	//nolint:errchkjson // the client going away is not interesting
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes a plain text error message the way TeamCity does.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)

	_, _ = w.Write([]byte(message))
}

func writeBadRequest(w http.ResponseWriter, err error) {
	writeError(w, http.StatusBadRequest, "Error has occurred during request processing, Bad Request.\n"+err.Error())
}

func writeForbidden(w http.ResponseWriter, message string) {
	writeError(w, http.StatusForbidden, "Access denied. Check the user has enough permissions to perform the operation.\n"+message)
}

// writeLookupError maps a failed resource lookup to its status code.
func writeLookupError(w http.ResponseWriter, err error) {
	if errors.Is(err, errNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	writeBadRequest(w, err)
}
