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
	"sync"
	"time"
)

var _ schedulerImpl = &timeScheduler{}

// timeScheduler is a scheduler backed by the "time" package.
type timeScheduler struct {
	mu    sync.Mutex
	timer *time.Timer
}

// After implements the schedulerImpl interface.
func (s *timeScheduler) After(delay time.Duration, f func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stop()
	s.timer = time.AfterFunc(delay, f)
}

// Stop implements the schedulerImpl interface.
func (s *timeScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stop()
}

func (s *timeScheduler) stop() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
