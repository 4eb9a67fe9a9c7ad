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

// Package api provides the client, fixtures and verifiers used by the
// end-to-end suites of the ServeRest user API.
//
// # Separate Client Implementation
//
// The client is written by hand rather than generated from the OpenAPI
// document in pkg/openapi. The two act as a cross check on each other: a
// change to the contract that does not need a matching change here, or the
// other way around, deserves a closer look.
//
// The client adds what the suites need on top of plain HTTP:
//   - W3C trace context on every request, echoed in every failure
//   - accepted status sets, so idempotent calls can tolerate variance
//   - optional validation of every response against the OpenAPI document
//   - direct access to status codes, headers and raw bodies
//
// # Fixtures
//
// Fixtures wrap the client with Gomega assertions. A fixture that returns
// has verified the response contract, so scenario code never repeats it.
// Fixtures that create data register a best effort cleanup with
// DeferCleanup, since the remote store is shared and never reset.
package api
