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
	"context"
	"fmt"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/serverest-qa/api-tests/pkg/openapi"
	"github.com/serverest-qa/api-tests/test/api"
)

var _ = Describe("User properties", Label("properties"), func() {
	Context("When a user is created", func() {
		It("should keep the same identifier for every read", func() {
			user := api.CreateUserWithCleanup(client, ctx, config, openapi.AdminFalse)

			Expect(api.GetUser(client, ctx, user.ID).ID).To(Equal(user.ID))

			list := api.ListUsers(client, ctx, &openapi.UserQuery{Email: user.Email})
			Expect(list.Count).To(Equal(1))
			api.VerifyUserPresence(list.Users, user.ID)
		})

		It("should return the new name straight after an update", func() {
			user := api.CreateUserWithCleanup(client, ctx, config, openapi.AdminFalse)
			token := api.Login(client, ctx, user.Email, user.Password)
			name := api.GenerateUniqueName(config.UserNamePrefix)

			_, err := client.UpdateUser(ctx, user.ID, api.UserWriteFrom(user).WithName(name).Build(), api.WithAuthorization(token), api.ExpectStatus(http.StatusOK))
			Expect(err).NotTo(HaveOccurred())

			Expect(api.GetUser(client, ctx, user.ID).Name).To(Equal(name))
		})
	})

	Context("When an email is already registered", func() {
		DescribeTable("should never register it again",
			func(admin openapi.Admin) {
				user := api.CreateUserWithCleanup(client, ctx, config, openapi.AdminFalse)

				resp, err := client.CreateUser(ctx, api.NewUserPayload(config).WithEmail(user.Email).WithAdministrator(admin).Build())
				Expect(err).NotTo(HaveOccurred())

				if resp.StatusCode == http.StatusCreated {
					var created openapi.UserCreated

					if resp.Decode(&created) == nil {
						DeferCleanup(func(ctx context.Context) {
							api.CleanupUser(client, ctx, created.ID, api.TryLogin(client, ctx, user.Email, user.Password))
						})
					}
				}

				Expect(resp.StatusCode).To(BeElementOf(http.StatusBadRequest, http.StatusConflict))
			},
			Entry("as an administrator", openapi.AdminTrue),
			Entry("as a regular user", openapi.AdminFalse),
		)
	})

	Context("When a user is deleted twice", func() {
		It("should confirm the first deletion and not find the user the second time", func() {
			user := api.CreateUserWithCleanup(client, ctx, config, openapi.AdminFalse)

			// A credential of another user, since the deleted user's own may be refused.
			_, token := api.AuthenticatedUser(client, ctx, config)

			Expect(api.DeleteUser(client, ctx, user.ID, token)).To(Equal(http.StatusOK))

			second := api.DeleteUser(client, ctx, user.ID, token)

			// The public deployment answers 200 with "Nenhum registro excluído".
			if config.UseLocalTwin {
				Expect(second).To(Equal(http.StatusNotFound))
			} else if second != http.StatusNotFound {
				AddReportEntry("repeated delete", fmt.Sprintf("second delete answered %d", second))
			}

			api.WaitForUserGone(client, ctx, config, user.ID)
		})
	})

	Context("When reading an identifier that does not exist", func() {
		DescribeTable("should never succeed",
			func(id string) {
				resp, err := client.GetUser(ctx, id, api.ExpectStatus(http.StatusBadRequest, http.StatusNotFound))
				Expect(err).NotTo(HaveOccurred())
				Expect(resp.StatusCode).NotTo(Equal(http.StatusOK))
			},
			Entry("with too many digits", "99999999999999999999"),
			Entry("with a well formed but unknown identifier", "aaaaaaaaaaaaaaaa"),
			Entry("with too few characters", "abc"),
			Entry("with punctuation", "abc-def.ghi_jklm"),
		)
	})

	Context("When running the documented end-to-end example", Label("e2e"), func() {
		const (
			exampleName     = "Felipe QA 123"
			exampleEmail    = "fee.qa.123@x.com"
			examplePassword = "TestePass123"
		)

		It("should register, authenticate and read back the exact payload", func() {
			// The address is fixed, so remove anything an earlier run left behind.
			api.PurgeUsersByEmail(client, ctx, exampleEmail)

			user := api.CreateUserFromPayload(client, ctx, api.NewUserPayload(config).
				WithName(exampleName).
				WithEmail(exampleEmail).
				WithPassword(examplePassword).
				WithAdministrator(openapi.AdminTrue))

			DeferCleanup(func(ctx context.Context) {
				api.CleanupUser(client, ctx, user.ID, api.TryLogin(client, ctx, exampleEmail, examplePassword))
			})

			Expect(api.Login(client, ctx, exampleEmail, examplePassword)).To(MatchRegexp(`^Bearer\s.+`))

			got := api.GetUser(client, ctx, user.ID)
			api.VerifyUserMatches(got, user)
			Expect(got.Password).To(Equal(examplePassword))
		})
	})
})
