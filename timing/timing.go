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

/*
Package timing provides a testable interface for sleeping between polls.

The poll loop makes a scheduler:
    sch := timing.NewScheduler()
and arms it after each unit of work:
    sch.After(interval)
    select {
    case <-sch.Tick():
    case <-ctx.Done():
    }

In test mode, schedulers never fire on their own. Tests call NextTick or
AdvanceBy to move the clock and trigger them, and timing.Now reports the
test clock.
*/
package timing

import (
	"time"

	"github.com/yambar-modules/temperature/base/notifier"
)

// schedulerImpl is the timer behind a Scheduler.
type schedulerImpl interface {
	// After calls f once, after delay. It replaces any pending call.
	After(delay time.Duration, f func())
	// Stop cancels any pending call.
	Stop()
}

// Scheduler is a one-shot trigger that can be re-armed.
type Scheduler struct {
	impl   schedulerImpl
	notify func()
	tick   <-chan struct{}
}

func newScheduler(impl schedulerImpl) *Scheduler {
	notify, tick := notifier.New()
	return &Scheduler{impl: impl, notify: notify, tick: tick}
}

// NewScheduler creates a new scheduler. In test mode, the scheduler is
// controlled by NextTick and AdvanceBy.
func NewScheduler() *Scheduler {
	if s := maybeNewTestModeScheduler(); s != nil {
		return newScheduler(s)
	}
	return newScheduler(&timeScheduler{})
}

// Tick returns a channel that receives a value when the scheduler fires.
// Multiple fires without a receive are merged.
func (s *Scheduler) Tick() <-chan struct{} {
	return s.tick
}

// After arms the scheduler to fire once after delay, replacing any
// pending trigger.
func (s *Scheduler) After(delay time.Duration) *Scheduler {
	s.impl.After(delay, s.notify)
	return s
}

// Stop cancels any pending trigger, and discards a fire that has not
// been received yet.
func (s *Scheduler) Stop() {
	s.impl.Stop()
	notifier.Discard(s.tick)
}

// Now returns the current time, or the test clock in test mode.
func Now() time.Time {
	if t, ok := testNow(); ok {
		return t
	}
	return time.Now()
}
