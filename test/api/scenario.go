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
	"github.com/onsi/ginkgo/v2"

	"github.com/serverest-qa/api-tests/pkg/openapi"
)

// ScenarioState is carried between the ordered steps of a flow. It is only
// written by the step that produced the value.
type ScenarioState struct {
	User  *openapi.User
	Token string
}

// RequireUser returns the subject, failing the step when no earlier step
// created one.
func (s *ScenarioState) RequireUser() *openapi.User {
	ginkgo.GinkgoHelper()

	if s.User == nil {
		ginkgo.Fail("no user in scenario state, the creation step did not run")
	}

	return s.User
}

// RequireToken returns the credential, failing the step when no earlier
// step logged in.
func (s *ScenarioState) RequireToken() string {
	ginkgo.GinkgoHelper()

	if s.Token == "" {
		ginkgo.Fail("no token in scenario state, the login step did not run")
	}

	return s.Token
}
