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

//nolint:testpackage,revive // test package in suites is standard for these tests, dot imports standard for Ginkgo
package suites

import (
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/serverest-qa/api-tests/pkg/openapi"
	"github.com/serverest-qa/api-tests/test/api"
)

var _ = Describe("Authentication", Label("auth"), func() {
	Context("When logging in", func() {
		Describe("Given unknown credentials", func() {
			It("should reject the login", func() {
				resp, err := client.Login(ctx, "naoexiste@example.com", "errado", api.ExpectStatus(http.StatusBadRequest, http.StatusUnauthorized))
				Expect(err).NotTo(HaveOccurred())

				object, err := resp.Object()
				Expect(err).NotTo(HaveOccurred())
				Expect(object).NotTo(HaveKey("authorization"))
			})
		})

		Describe("Given the wrong password for a registered user", func() {
			It("should reject the login", func() {
				user := api.CreateUserWithCleanup(client, ctx, config, openapi.AdminFalse)

				resp, err := client.Login(ctx, user.Email, user.Password+"x", api.ExpectStatus(http.StatusBadRequest, http.StatusUnauthorized))
				Expect(err).NotTo(HaveOccurred())

				api.VerifyMessage(resp)
			})
		})

		Describe("Given an empty password", func() {
			It("should reject the password field", func() {
				resp, err := client.Login(ctx, "fulano@qa.com", "", api.ExpectStatus(http.StatusBadRequest))
				Expect(err).NotTo(HaveOccurred())

				var errs openapi.FieldErrors

				Expect(resp.Decode(&errs)).To(Succeed())
				Expect(errs).To(HaveKey("password"))
			})
		})

		Describe("Given the credentials a user was created with", func() {
			DescribeTable("should issue a bearer credential",
				func(admin openapi.Admin) {
					user := api.CreateUserWithCleanup(client, ctx, config, admin)

					Expect(api.Login(client, ctx, user.Email, user.Password)).To(MatchRegexp(`^Bearer\s.+`))
				},
				Entry("for an administrator", openapi.AdminTrue),
				Entry("for a regular user", openapi.AdminFalse),
			)
		})
	})
})
