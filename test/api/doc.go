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


// Package api provides the scaffolding for the TeamCity REST API scenario
// suites.
//
// # Request Layer
//
// Suites talk to the server exclusively through pkg/requests, never through
// a generated client.  Checked requests are used wherever a call is expected
// to succeed and fail with the trace ID of the offending request, unchecked
// requests are used for negative scenarios so the status code and message
// can be asserted on directly.
//
// # Environment
//
// When TEAMCITY_BASE_URL is unset the suites run against an in-process fake
// server, otherwise against the given instance authenticated with
// TEAMCITY_SUPERUSER_TOKEN.  Everything a scenario creates is recorded and
// deleted once the scenario finishes whether it passed or not.
package api
