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

package timing

import (
	"sort"
	"sync"
	"time"

	l "github.com/yambar-modules/temperature/logging"
)

var _ schedulerImpl = &testModeScheduler{}

type testModeScheduler struct {
	testModeID uint32
	f          func()
}

type trigger struct {
	what *testModeScheduler
	when time.Time
}

var (
	mu       sync.Mutex
	testMode bool
	// testModeID tracks the test instance, so schedulers created for one
	// test cannot fire in the next. Each call to TestMode changes it.
	testModeID uint32
	nowInTest  time.Time
	triggers   []trigger
)

func maybeNewTestModeScheduler() *testModeScheduler {
	mu.Lock()
	defer mu.Unlock()
	if !testMode {
		return nil
	}
	return &testModeScheduler{testModeID: testModeID}
}

func testNow() (time.Time, bool) {
	mu.Lock()
	defer mu.Unlock()
	return nowInTest, testMode
}

// TestMode sets test mode for all schedulers created from now on.
// In test mode schedulers do not fire automatically, and time
// does not pass at all, until NextTick() or AdvanceBy() is called.
func TestMode() {
	mu.Lock()
	defer mu.Unlock()
	testMode = true
	testModeID++
	triggers = nil
	// Non-zero, so IsZero checks don't unexpectedly pass.
	nowInTest = time.Date(2016, time.November, 25, 20, 47, 0, 0, time.UTC)
}

// ExitTestMode exits test mode. Schedulers created after this call
// will be real.
func ExitTestMode() {
	mu.Lock()
	defer mu.Unlock()
	testMode = false
	triggers = nil
}

// setNextTriggerLocked replaces the pending trigger of s.
func (s *testModeScheduler) setNextTriggerLocked(when time.Time) {
	var kept []trigger
	for _, t := range triggers {
		if t.what != s && t.what.testModeID == testModeID {
			kept = append(kept, t)
		}
	}
	triggers = kept
	if !when.IsZero() && s.testModeID == testModeID {
		triggers = append(triggers, trigger{s, when})
	}
	sort.SliceStable(triggers, func(i, j int) bool {
		return triggers[i].when.Before(triggers[j].when)
	})
}

// After implements the schedulerImpl interface.
func (s *testModeScheduler) After(delay time.Duration, f func()) {
	mu.Lock()
	defer mu.Unlock()
	l.Fine("After[Test](%v)", delay)
	s.f = f
	s.setNextTriggerLocked(nowInTest.Add(delay))
}

// Stop implements the schedulerImpl interface.
func (s *testModeScheduler) Stop() {
	mu.Lock()
	defer mu.Unlock()
	s.f = nil
	s.setNextTriggerLocked(time.Time{})
}

// fireLocked pops the earliest trigger, moves the clock to it, and
// fires it.
func fireLocked() {
	t := triggers[0]
	triggers = triggers[1:]
	if t.when.After(nowInTest) {
		nowInTest = t.when
	}
	if f := t.what.f; f != nil {
		f()
	}
}

// NextTick triggers the next scheduler and returns the trigger time.
// It also advances test time to match. With nothing scheduled it returns
// the current test time.
func NextTick() time.Time {
	mu.Lock()
	defer mu.Unlock()
	if len(triggers) > 0 {
		fireLocked()
	}
	return nowInTest
}

// AdvanceBy increments the test time by the given duration,
// and triggers any schedulers that were scheduled in the meantime.
func AdvanceBy(duration time.Duration) time.Time {
	mu.Lock()
	defer mu.Unlock()
	target := nowInTest.Add(duration)
	for len(triggers) > 0 && !triggers[0].when.After(target) {
		fireLocked()
	}
	nowInTest = target
	return nowInTest
}
