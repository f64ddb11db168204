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

// Package sensors provides an in-memory sensors.Source for tests.
//
//	src := sensors.New(
//	    sensors.NewChip("coretemp-isa-0000",
//	        sensors.NewFeature("temp1", sensors.Temp,
//	            sensors.Reading(sensors.TempInput, 42),
//	            sensors.Reading(sensors.TempCrit, 100))))
package sensors

import (
	"errors"
	"sync/atomic"

	"github.com/yambar-modules/temperature/sensors"
)

// Re-exported so tests only need to import this package.
const (
	Temp       = sensors.Temp
	Fan        = sensors.Fan
	In         = sensors.In
	TempInput  = sensors.TempInput
	TempMax    = sensors.TempMax
	TempCrit   = sensors.TempCrit
	TempAlarm  = sensors.TempAlarm
	FanInput   = sensors.FanInput
	InInput    = sensors.InInput
	CurrInput  = sensors.CurrInput
	PowerInput = sensors.PowerInput
)

// ErrRead is returned by sub-features created with Failing.
var ErrRead = errors.New("read failed")

// ErrNoName is returned by chips created with Unnamed.
var ErrNoName = errors.New("name not resolvable")

// Source is a fixed forest of chips that counts how often it is queried.
type Source struct {
	chips   []sensors.Chip
	err     error
	queries atomic.Int32
}

var _ sensors.Source = (*Source)(nil)

// New returns a source containing the given chips.
func New(chips ...*Chip) *Source {
	s := &Source{}
	for _, c := range chips {
		s.chips = append(s.chips, c)
	}
	return s
}

// Failing returns a source whose enumeration fails.
func Failing(err error) *Source {
	return &Source{err: err}
}

// Chips implements sensors.Source.
func (s *Source) Chips() ([]sensors.Chip, error) {
	s.queries.Add(1)
	return s.chips, s.err
}

// Queries returns the number of calls to Chips so far.
func (s *Source) Queries() int {
	return int(s.queries.Load())
}

// Chip is a fake chip.
type Chip struct {
	name     string
	nameErr  error
	features []sensors.Feature
}

// NewChip returns a chip with the given name and features.
func NewChip(name string, features ...*Feature) *Chip {
	c := &Chip{name: name}
	for _, f := range features {
		c.features = append(c.features, f)
	}
	return c
}

// Unnamed returns a chip whose name cannot be resolved.
func Unnamed(features ...*Feature) *Chip {
	c := NewChip("", features...)
	c.nameErr = ErrNoName
	return c
}

func (c *Chip) Name() (string, error)       { return c.name, c.nameErr }
func (c *Chip) Features() []sensors.Feature { return c.features }

// Feature is a fake feature.
type Feature struct {
	name string
	typ  sensors.FeatureType
	subs []sensors.Subfeature
}

// NewFeature returns a feature of the given type.
func NewFeature(name string, typ sensors.FeatureType, subs ...*Subfeature) *Feature {
	f := &Feature{name: name, typ: typ}
	for _, s := range subs {
		f.subs = append(f.subs, s)
	}
	return f
}

// TempInputs returns a temperature feature with a single input reading.
func TempInputs(name string, celsius float64) *Feature {
	return NewFeature(name, Temp, Reading(TempInput, celsius))
}

func (f *Feature) Name() string                      { return f.name }
func (f *Feature) Type() sensors.FeatureType         { return f.typ }
func (f *Feature) Subfeatures() []sensors.Subfeature { return f.subs }

// Subfeature is a fake sub-feature. Its value can be changed between
// reads with Set.
type Subfeature struct {
	typ   sensors.SubfeatureType
	value atomic.Value // of float64
	err   error
}

// Reading returns a sub-feature that reads the given value.
func Reading(typ sensors.SubfeatureType, value float64) *Subfeature {
	s := &Subfeature{typ: typ}
	s.value.Store(value)
	return s
}

// FailingReading returns a sub-feature whose reads fail.
func FailingReading(typ sensors.SubfeatureType) *Subfeature {
	s := &Subfeature{typ: typ, err: ErrRead}
	s.value.Store(0.0)
	return s
}

// Set changes the value returned by subsequent reads.
func (s *Subfeature) Set(value float64) {
	s.value.Store(value)
}

func (s *Subfeature) Name() string                 { return "" }
func (s *Subfeature) Type() sensors.SubfeatureType { return s.typ }

func (s *Subfeature) Value() (float64, error) {
	if s.err != nil {
		return 0, s.err
	}
	return s.value.Load().(float64), nil
}
