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

// Package poll drives the sample, convert, emit cycle at a fixed
// interval.
package poll

import (
	"context"

	"github.com/yambar-modules/temperature/aggregate"
	"github.com/yambar-modules/temperature/config"
	l "github.com/yambar-modules/temperature/logging"
	"github.com/yambar-modules/temperature/output"
	"github.com/yambar-modules/temperature/sensors"
	"github.com/yambar-modules/temperature/temperature"
	"github.com/yambar-modules/temperature/timing"
)

// Loop samples src every cfg.PollInterval and writes the average to out.
type Loop struct {
	cfg       config.Config
	src       sensors.Source
	out       *output.Emitter
	scheduler *timing.Scheduler
}

// New creates a poll loop. It does nothing until Run or Tick is called.
func New(cfg config.Config, src sensors.Source, out *output.Emitter) *Loop {
	return &Loop{
		cfg:       cfg,
		src:       src,
		out:       out,
		scheduler: timing.NewScheduler(),
	}
}

// Tick samples once and writes either a record or a read-failure
// diagnostic. Only errors writing the record are returned.
func (p *Loop) Tick() error {
	celsius, ok := aggregate.Average(p.src, p.cfg.Names)
	if !ok {
		p.out.ReadFailed()
		return nil
	}
	value := temperature.Convert(celsius, p.cfg.Unit)
	l.Fine("%.3f°C -> %v %s", celsius, value, p.cfg.Unit)
	return p.out.Emit(value)
}

// Run ticks, then sleeps for the poll interval, until ctx is done or a
// record cannot be written. The interval is measured from the end of
// one tick to the start of the next.
func (p *Loop) Run(ctx context.Context) error {
	l.Log("polling %s", p.cfg)
	defer p.scheduler.Stop()
	for {
		if err := p.Tick(); err != nil {
			return err
		}
		p.scheduler.After(p.cfg.PollInterval)
		select {
		case <-p.scheduler.Tick():
		case <-ctx.Done():
			l.Log("stopping: %v", ctx.Err())
			return nil
		}
	}
}
