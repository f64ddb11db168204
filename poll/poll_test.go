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

package poll

import (
	"context"
	"io"
	"testing"
	"time"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yambar-modules/temperature/aggregate"
	"github.com/yambar-modules/temperature/config"
	"github.com/yambar-modules/temperature/output"
	"github.com/yambar-modules/temperature/temperature"
	"github.com/yambar-modules/temperature/testing/mockio"
	testSensors "github.com/yambar-modules/temperature/testing/sensors"
	"github.com/yambar-modules/temperature/timing"
)

type fixture struct {
	loop   *Loop
	stdout *mockio.Writable
	hook   *logtest.Hook
	src    *testSensors.Source
	a      *testSensors.Subfeature
}

func newFixture(unit temperature.Unit, interval time.Duration, names aggregate.NameFilter) *fixture {
	a := testSensors.Reading(testSensors.TempInput, 20)
	src := testSensors.New(
		testSensors.NewChip("a", testSensors.NewFeature("temp1", testSensors.Temp, a)),
		testSensors.NewChip("b", testSensors.TempInputs("temp1", 30)),
	)
	stdout := mockio.Stdout()
	log, hook := logtest.NewNullLogger()
	cfg := config.Config{Unit: unit, PollInterval: interval, Names: names}
	return &fixture{
		loop:   New(cfg, src, output.New(stdout, log)),
		stdout: stdout,
		hook:   hook,
		src:    src,
		a:      a,
	}
}

func (f *fixture) run(ctx context.Context) <-chan error {
	done := make(chan error, 1)
	go func() { done <- f.loop.Run(ctx) }()
	return done
}

func (f *fixture) assertRecord(t *testing.T, want string) {
	t.Helper()
	lines, err := f.stdout.ReadLines(2, time.Second)
	require.NoError(t, err, "waiting for a record")
	assert.Equal(t, []string{want + "\n", "\n"}, lines)
}

// nextTick waits for the loop to arm its scheduler, then fires it. It
// returns the test clock before and after.
func nextTick(t *testing.T) (before, after time.Time) {
	t.Helper()
	before = timing.Now()
	require.Eventually(t, func() bool {
		after = timing.NextTick()
		return after != before
	}, time.Second, time.Millisecond, "loop did not sleep")
	return before, after
}

func TestTick(t *testing.T) {
	timing.TestMode()

	f := newFixture(temperature.Celsius, time.Second, aggregate.MatchAll())
	require.NoError(t, f.loop.Tick())
	assert.Equal(t, "temperature|float|25\n\n", f.stdout.ReadNow())

	f = newFixture(temperature.Celsius, time.Second, aggregate.AllowOnly("a"))
	require.NoError(t, f.loop.Tick())
	assert.Equal(t, "temperature|float|20\n\n", f.stdout.ReadNow())

	f = newFixture(temperature.Celsius, time.Second, aggregate.AllowOnly("z"))
	require.NoError(t, f.loop.Tick())
	assert.Empty(t, f.stdout.ReadNow(), "no record when nothing matches")
	require.Len(t, f.hook.AllEntries(), 1)
	assert.Equal(t, "Failed to read temperature", f.hook.LastEntry().Message)
}

func TestTickConvertsOnce(t *testing.T) {
	timing.TestMode()
	for unit, want := range map[temperature.Unit]string{
		temperature.Celsius:    "25",
		temperature.Fahrenheit: "77",
		temperature.Kelvin:     "298.15",
	} {
		f := newFixture(unit, time.Second, aggregate.MatchAll())
		require.NoError(t, f.loop.Tick())
		assert.Equal(t, "temperature|float|"+want+"\n\n", f.stdout.ReadNow(), unit.String())
	}
}

func TestRun(t *testing.T) {
	timing.TestMode()
	defer timing.ExitTestMode()

	f := newFixture(temperature.Celsius, 1500*time.Millisecond, aggregate.MatchAll())
	ctx, cancel := context.WithCancel(context.Background())
	done := f.run(ctx)

	f.assertRecord(t, "temperature|float|25")
	assert.Equal(t, 1, f.src.Queries())

	f.a.Set(24)
	before, after := nextTick(t)
	assert.Equal(t, 1500*time.Millisecond, after.Sub(before), "sleeps for the poll interval")
	f.assertRecord(t, "temperature|float|27")
	assert.Equal(t, 2, f.src.Queries(), "source queried once per tick")

	f.a.Set(26)
	nextTick(t)
	f.assertRecord(t, "temperature|float|28")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err, "cancellation is a clean stop")
	case <-time.After(time.Second):
		require.Fail(t, "Run did not stop on cancel")
	}
	assert.Equal(t, 3, f.src.Queries())
	assert.Empty(t, f.hook.AllEntries())
}

func TestRunSurvivesReadFailures(t *testing.T) {
	timing.TestMode()
	defer timing.ExitTestMode()

	f := newFixture(temperature.Celsius, time.Second, aggregate.AllowOnly("z"))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := f.run(ctx)

	for i := 1; i <= 3; i++ {
		require.Eventually(t, func() bool { return len(f.hook.AllEntries()) == i },
			time.Second, time.Millisecond, "one diagnostic per tick")
		nextTick(t)
	}
	assert.Empty(t, f.stdout.ReadNow())

	cancel()
	assert.NoError(t, <-done)
}

func TestRunStopsOnWriteError(t *testing.T) {
	timing.TestMode()
	defer timing.ExitTestMode()

	f := newFixture(temperature.Celsius, time.Second, aggregate.MatchAll())
	f.stdout.ShouldError(io.ErrClosedPipe)
	select {
	case err := <-f.run(context.Background()):
		assert.ErrorIs(t, err, io.ErrClosedPipe)
	case <-time.After(time.Second):
		require.Fail(t, "Run did not stop on write error")
	}
}

func TestRunRealInterval(t *testing.T) {
	timing.ExitTestMode()

	interval := 40 * time.Millisecond
	f := newFixture(temperature.Celsius, interval, aggregate.MatchAll())
	ctx, cancel := context.WithCancel(context.Background())
	done := f.run(ctx)

	f.assertRecord(t, "temperature|float|25")
	start := time.Now()
	f.assertRecord(t, "temperature|float|25")
	elapsed := time.Since(start)
	assert.GreaterOrEqual(t, elapsed, interval/2)
	assert.Less(t, elapsed, interval+500*time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
}
