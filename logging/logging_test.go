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

//go:build tempdebuglog

package logging

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yambar-modules/temperature/testing/mockio"
)

func resetFineLog(pkgs ...string) {
	fineLogPackages = pkgs
	fineLogCache = sync.Map{}
}

func TestLog(t *testing.T) {
	out := mockio.Stdout()
	SetOutput(out)
	resetFineLog()

	Log("foo: %d", 42)
	line := out.ReadNow()
	assert.Contains(t, line, "foo: 42")
	assert.Contains(t, line, "pkg=logging")
	assert.Contains(t, line, "level=info")
}

func TestFine(t *testing.T) {
	out := mockio.Stdout()
	SetOutput(out)

	resetFineLog("poll")
	Fine("bar: %d", 1)
	assert.Empty(t, out.ReadNow(), "fine logging disabled for other packages")

	resetFineLog("poll", "logging")
	Fine("bar: %d", 2)
	line := out.ReadNow()
	assert.Contains(t, line, "bar: 2")
	assert.Contains(t, line, "level=debug")
}
