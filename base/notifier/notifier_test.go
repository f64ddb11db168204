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

package notifier

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertNotified(t *testing.T, ch <-chan struct{}, msg string) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(time.Second):
		assert.Fail(t, "not notified", msg)
	}
}

func assertNoUpdate(t *testing.T, ch <-chan struct{}, msg string) {
	t.Helper()
	select {
	case <-ch:
		assert.Fail(t, "unexpected notification", msg)
	case <-time.After(10 * time.Millisecond):
	}
}

func TestSimpleNotify(t *testing.T) {
	fn, n := New()
	fn()
	assertNotified(t, n, "when notified")
	assertNoUpdate(t, n, "when not notified")
}

func TestMultipleNotify(t *testing.T) {
	fn, n := New()
	for i := 0; i < 5; i++ {
		fn()
	}
	assertNotified(t, n, "when notified")
	assertNoUpdate(t, n, "multiple notifications are merged")
}

func TestWait(t *testing.T) {
	fn, n := New()
	doneChan := make(chan struct{})
	go func() {
		<-n
		close(doneChan)
	}()
	fn()
	select {
	case <-doneChan:
	case <-time.After(time.Second):
		require.Fail(t, "wait did not complete")
	}
}

func TestDiscard(t *testing.T) {
	fn, n := New()
	assert.False(t, Discard(n), "nothing pending")
	fn()
	assert.True(t, Discard(n))
	assertNoUpdate(t, n, "after discard")
}
