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
	"fmt"
	"strings"
	"time"

	"k8s.io/apimachinery/pkg/util/rand"
	"k8s.io/utils/ptr"

	"github.com/serverest-qa/api-tests/pkg/openapi"
)

// uniqueSuffix combines the time with random characters, the remote store
// is shared and never reset so fixed values collide between runs.
func uniqueSuffix() string {
	return fmt.Sprintf("%d%s", time.Now().UnixMilli(), rand.String(4))
}

// GenerateUniqueName returns "<prefix> <suffix>".
func GenerateUniqueName(prefix string) string {
	return prefix + " " + uniqueSuffix()
}

// GenerateUniqueEmail returns "fee.qa.<suffix>@<domain>".
func GenerateUniqueEmail(domain string) string {
	return "fee.qa." + uniqueSuffix() + "@" + domain
}

// BearerToken normalises an authorization value so it always carries the
// Bearer prefix, whether or not the server included it. A value holding no
// token, including a bare prefix, is empty.
func BearerToken(value string) string {
	fields := strings.Fields(value)

	if len(fields) > 0 && strings.EqualFold(fields[0], "Bearer") {
		fields = fields[1:]
	}

	if len(fields) == 0 {
		return ""
	}

	return "Bearer " + strings.Join(fields, " ")
}

// UserPayloadBuilder builds user create and update bodies.
type UserPayloadBuilder struct {
	payload openapi.UserWrite
}

// NewUserPayload starts from a complete, unique, non administrator user.
func NewUserPayload(config *TestConfig) *UserPayloadBuilder {
	return &UserPayloadBuilder{
		payload: openapi.UserWrite{
			Name:          ptr.To(GenerateUniqueName(config.UserNamePrefix)),
			Email:         ptr.To(GenerateUniqueEmail(config.EmailDomain)),
			Password:      ptr.To(config.UserPassword),
			Administrator: ptr.To(openapi.AdminFalse),
		},
	}
}

// UserWriteFrom starts from an existing user, for updates.
func UserWriteFrom(user *openapi.User) *UserPayloadBuilder {
	return &UserPayloadBuilder{
		payload: openapi.UserWrite{
			Name:          ptr.To(user.Name),
			Email:         ptr.To(user.Email),
			Password:      ptr.To(user.Password),
			Administrator: ptr.To(user.Administrator),
		},
	}
}

func (b *UserPayloadBuilder) WithName(name string) *UserPayloadBuilder {
	b.payload.Name = ptr.To(name)
	return b
}

func (b *UserPayloadBuilder) WithEmail(email string) *UserPayloadBuilder {
	b.payload.Email = ptr.To(email)
	return b
}

func (b *UserPayloadBuilder) WithPassword(password string) *UserPayloadBuilder {
	b.payload.Password = ptr.To(password)
	return b
}

func (b *UserPayloadBuilder) WithAdministrator(admin openapi.Admin) *UserPayloadBuilder {
	b.payload.Administrator = ptr.To(admin)
	return b
}

func (b *UserPayloadBuilder) WithoutEmail() *UserPayloadBuilder {
	b.payload.Email = nil
	return b
}

func (b *UserPayloadBuilder) WithoutPassword() *UserPayloadBuilder {
	b.payload.Password = nil
	return b
}

func (b *UserPayloadBuilder) WithoutAdministrator() *UserPayloadBuilder {
	b.payload.Administrator = nil
	return b
}

// Build returns a copy of the payload.
func (b *UserPayloadBuilder) Build() openapi.UserWrite {
	return b.payload
}

// ExpectedUser is the record the API should hold after the payload is
// accepted under the given identifier. Missing fields stay empty.
func (b *UserPayloadBuilder) ExpectedUser(id string) openapi.User {
	return openapi.User{
		ID:            id,
		Name:          ptr.Deref(b.payload.Name, ""),
		Email:         ptr.Deref(b.payload.Email, ""),
		Password:      ptr.Deref(b.payload.Password, ""),
		Administrator: ptr.Deref(b.payload.Administrator, ""),
	}
}
