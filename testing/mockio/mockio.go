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

// Package mockio provides an output stream that can be used in place of
// stdout or stderr in tests, including tests where the writer runs on a
// different goroutine.
package mockio

import (
	"bytes"
	"io"
	"sync"
	"time"
)

// Writable is an infinite stream that satisfies io.Writer,
// and adds methods to get portions of the output written to it.
type Writable struct {
	mu     sync.Mutex
	buffer bytes.Buffer
	// signal receives a value (non-blocking) after every write.
	signal chan struct{}
	// If set, the next write fails with this error.
	nextError error
}

var _ io.Writer = (*Writable)(nil)

// Stdout returns an empty Writable.
func Stdout() *Writable {
	return &Writable{signal: make(chan struct{}, 1)}
}

// Write satisfies the io.Writer interface.
func (w *Writable) Write(out []byte) (int, error) {
	w.mu.Lock()
	if err := w.nextError; err != nil {
		w.nextError = nil
		w.mu.Unlock()
		return 0, err
	}
	n, err := w.buffer.Write(out)
	w.mu.Unlock()
	select {
	case w.signal <- struct{}{}:
	default:
	}
	return n, err
}

// ShouldError makes the next write return e instead of writing.
func (w *Writable) ShouldError(e error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.nextError = e
}

// ReadNow clears the buffer and returns its previous contents.
func (w *Writable) ReadNow() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	val := w.buffer.String()
	w.buffer.Reset()
	drain(w.signal)
	return val
}

// ReadUntil reads up to and including the first occurrence of delim.
// If delim is not written before the timeout, it returns whatever was
// available along with io.EOF.
func (w *Writable) ReadUntil(delim byte, timeout time.Duration) (string, error) {
	timeoutChan := time.After(timeout)
	var val string
	for {
		w.mu.Lock()
		v, err := w.buffer.ReadString(delim)
		w.mu.Unlock()
		val += v
		if err != io.EOF {
			return val, err
		}
		select {
		case <-timeoutChan:
			return val, io.EOF
		case <-w.signal:
		}
	}
}

// ReadLines reads n newline-terminated lines, waiting up to timeout for
// each of them.
func (w *Writable) ReadLines(n int, timeout time.Duration) ([]string, error) {
	var lines []string
	for i := 0; i < n; i++ {
		line, err := w.ReadUntil('\n', timeout)
		if err != nil {
			return lines, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func drain(ch <-chan struct{}) {
	select {
	case <-ch:
	default:
	}
}
