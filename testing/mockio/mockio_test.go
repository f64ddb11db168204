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

package mockio

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStdout(t *testing.T) {
	stdout := Stdout()
	assert.Empty(t, stdout.ReadNow(), "starts empty")

	_, err := stdout.ReadUntil('x', time.Millisecond)
	assert.Equal(t, io.EOF, err, "EOF when timeout expires")

	io.WriteString(stdout, "te")
	io.WriteString(stdout, "st")
	val, err := stdout.ReadUntil('s', time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, "tes", val, "joins multiple writes")
	assert.Equal(t, "t", stdout.ReadNow(), "remainder returned by ReadNow")

	wait := make(chan struct{})
	go func() {
		<-wait
		io.WriteString(stdout, "ab")
		time.Sleep(10 * time.Millisecond)
		io.WriteString(stdout, "cd\n")
	}()
	close(wait)
	val, err = stdout.ReadUntil('\n', time.Second)
	require.NoError(t, err)
	assert.Equal(t, "abcd\n", val, "waits for writes from other goroutines")
}

func TestReadLines(t *testing.T) {
	stdout := Stdout()
	io.WriteString(stdout, "one\ntwo\nthree")

	lines, err := stdout.ReadLines(2, time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, []string{"one\n", "two\n"}, lines)

	lines, err = stdout.ReadLines(1, time.Millisecond)
	assert.Equal(t, io.EOF, err, "incomplete line")
	assert.Empty(t, lines)
}

func TestShouldError(t *testing.T) {
	stdout := Stdout()
	boom := errors.New("boom")
	stdout.ShouldError(boom)

	_, err := io.WriteString(stdout, "lost")
	assert.Equal(t, boom, err)
	_, err = io.WriteString(stdout, "kept")
	assert.NoError(t, err, "only the next write fails")
	assert.Equal(t, "kept", stdout.ReadNow())
}
