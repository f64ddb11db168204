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
Package notifier provides a channel that coalesces notifications: if a
notification is already pending, a new one is dropped. A poll loop that
falls behind its timer therefore sees one pending tick, not a backlog.
*/
package notifier

import l "github.com/yambar-modules/temperature/logging"

// New constructs a new notifier. It returns a func that triggers a
// notification, and a <-chan that consumes these notifications.
func New() (func(), <-chan struct{}) {
	ch := make(chan struct{}, 1)
	return func() { notify(ch) }, ch
}

func notify(ch chan<- struct{}) {
	select {
	case ch <- struct{}{}:
	default:
		l.Fine("notification already pending")
	}
}

// Discard consumes a pending notification, if there is one. It reports
// whether a notification was pending.
func Discard(ch <-chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}
