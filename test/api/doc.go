/*
Copyright 2026 the TeamCity API Tests Authors.

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

// Package api provides the harness shared by the CI server API suites.
//
// # Session
//
// A Session is built once per suite run. It owns the client pool, the test
// data generator and the creation registry, and starts an in-process fake
// server when no real server is configured. Every entity created through a
// checked request is recorded in the registry, and the registry is drained
// with super user credentials when the suite finishes, whether tests passed
// or not.
//
// # Response Matchers
//
// Negative tests use unchecked requests and assert the raw response against
// the matchers in responses.go. Those carry the exact error bodies the server
// returns, so a changed message is a test failure rather than a silent pass.
package api
