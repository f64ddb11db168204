// Copyright 2026 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

//go:build !tempdebuglog

// Package logging provides debug tracing for the module's packages.
// It uses build tags to provide nop functions in the default case, and
// actual logging functions when built with `-tags tempdebuglog`.
package logging

import "io"

// SetOutput sets the output stream for logging.
func SetOutput(output io.Writer) {}

// Log logs a formatted message.
func Log(format string, args ...interface{}) {}

// Fine logs a formatted message if fine logging is enabled for the
// calling package. Enable fine logging using the environment variable
// YAMBAR_TEMPERATURE_FINELOG=$pkg1,$pkg2. [Requires debug logging].
func Fine(format string, args ...interface{}) {}
