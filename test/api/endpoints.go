/*
Copyright 2026 the ServeRest API Tests Authors.

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

package api

import (
	"net/url"

	"github.com/oapi-codegen/runtime"
)

// Endpoints contains all API endpoint patterns.
type Endpoints struct{}

// NewEndpoints creates a new Endpoints instance.
func NewEndpoints() *Endpoints {
	return &Endpoints{}
}

// Authentication endpoints.
func (e *Endpoints) Login() string {
	return "/login"
}

// User management endpoints.
func (e *Endpoints) Users() string {
	return "/usuarios"
}

// ListUsers appends any filters to the collection path.
func (e *Endpoints) ListUsers(query url.Values) string {
	if len(query) == 0 {
		return e.Users()
	}

	return e.Users() + "?" + query.Encode()
}

// User styles the identifier the same way generated clients do, so odd
// identifiers used by negative cases are escaped rather than rejected.
func (e *Endpoints) User(userID string) string {
	param, err := runtime.StyleParamWithLocation("simple", false, "_id", runtime.ParamLocationPath, userID)
	if err != nil {
		param = url.PathEscape(userID)
	}

	return e.Users() + "/" + param
}
