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

package openapi

import (
	"net/url"
)

// User is a registered user as returned by the API.
type User struct {
	ID            string `json:"_id"           validate:"required"`
	Name          string `json:"nome"          validate:"required"`
	Email         string `json:"email"         validate:"required,email"`
	Password      string `json:"password"      validate:"required"`
	Administrator Admin  `json:"administrador" validate:"oneof=true false"`
}

// UserWrite is the create and update body. Every field is optional so
// deliberately incomplete bodies can be sent.
type UserWrite struct {
	Name          *string `json:"nome,omitempty"`
	Email         *string `json:"email,omitempty"`
	Password      *string `json:"password,omitempty"`
	Administrator *Admin  `json:"administrador,omitempty"`
}

// UserCreated is returned when a user is registered.
type UserCreated struct {
	Message string `json:"message"`
	ID      string `json:"_id"     validate:"required"`
}

// UserList is returned when listing users.
type UserList struct {
	Count int    `json:"quantidade"`
	Users []User `json:"usuarios"   validate:"dive"`
}

// Login is the login request body.
type Login struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult carries the credential issued on a successful login.
type LoginResult struct {
	Message       string `json:"message"`
	Authorization string `json:"authorization" validate:"required"`
}

// Message is the generic acknowledgement or error body.
type Message struct {
	Message string `json:"message" validate:"required"`
}

// FieldErrors maps a request field to its validation message.
type FieldErrors map[string]string

// UserQuery filters a user listing. Empty fields are not sent.
type UserQuery struct {
	ID            string
	Name          string
	Email         string
	Password      string
	Administrator Admin
}

// Values encodes the query as URL parameters.
func (q *UserQuery) Values() url.Values {
	values := url.Values{}

	if q == nil {
		return values
	}

	set := func(key, value string) {
		if value != "" {
			values.Set(key, value)
		}
	}

	set("_id", q.ID)
	set("nome", q.Name)
	set("email", q.Email)
	set("password", q.Password)
	set("administrador", string(q.Administrator))

	return values
}

// UserQueryFromValues decodes URL parameters into a query.
func UserQueryFromValues(values url.Values) UserQuery {
	return UserQuery{
		ID:            values.Get("_id"),
		Name:          values.Get("nome"),
		Email:         values.Get("email"),
		Password:      values.Get("password"),
		Administrator: Admin(values.Get("administrador")),
	}
}

// Matches reports whether user satisfies every non-empty field of the query.
func (q UserQuery) Matches(user User) bool {
	check := func(want, got string) bool {
		return want == "" || want == got
	}

	return check(q.ID, user.ID) &&
		check(q.Name, user.Name) &&
		check(q.Email, user.Email) &&
		check(q.Password, user.Password) &&
		check(string(q.Administrator), string(user.Administrator))
}
