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

// Package aggregate averages temperature readings across sensor chips.
//
// The work is a pipeline over lazy sequences: chips are filtered by name,
// expanded into features, filtered to temperatures, expanded into
// sub-features, filtered to temperature inputs, and read. Each stage is
// exported so the policy can be tested without real hardware.
package aggregate

import (
	"iter"
	"slices"

	l "github.com/yambar-modules/temperature/logging"
	"github.com/yambar-modules/temperature/sensors"
)

// Filter yields the elements of seq for which keep returns true.
func Filter[T any](seq iter.Seq[T], keep func(T) bool) iter.Seq[T] {
	return func(yield func(T) bool) {
		for v := range seq {
			if keep(v) && !yield(v) {
				return
			}
		}
	}
}

// FlatMap yields every element of expand(v) for each v in seq.
func FlatMap[T, U any](seq iter.Seq[T], expand func(T) iter.Seq[U]) iter.Seq[U] {
	return func(yield func(U) bool) {
		for v := range seq {
			for u := range expand(v) {
				if !yield(u) {
					return
				}
			}
		}
	}
}

// FilterMap yields fn(v) for each v in seq where fn reports ok.
func FilterMap[T, U any](seq iter.Seq[T], fn func(T) (U, bool)) iter.Seq[U] {
	return func(yield func(U) bool) {
		for v := range seq {
			if u, ok := fn(v); ok && !yield(u) {
				return
			}
		}
	}
}

// Chips enumerates the chips of src. Enumeration errors produce an
// empty sequence.
func Chips(src sensors.Source) iter.Seq[sensors.Chip] {
	return func(yield func(sensors.Chip) bool) {
		chips, err := src.Chips()
		if err != nil {
			l.Log("enumerating chips: %v", err)
			return
		}
		for _, c := range chips {
			if !yield(c) {
				return
			}
		}
	}
}

// KeepChip returns a predicate that keeps chips with a resolvable name
// that passes the filter. Unnamed chips never pass, even with MatchAll.
func KeepChip(filter NameFilter) func(sensors.Chip) bool {
	return func(c sensors.Chip) bool {
		name, err := c.Name()
		if err != nil {
			l.Fine("dropping unnamed chip: %v", err)
			return false
		}
		return filter.Matches(name)
	}
}

// IsTemperature keeps temperature features.
func IsTemperature(f sensors.Feature) bool {
	return f.Type() == sensors.Temp
}

// IsTemperatureInput keeps the input facet of a temperature, never its
// thresholds or alarms.
func IsTemperatureInput(s sensors.Subfeature) bool {
	return s.Type() == sensors.TempInput
}

func features(c sensors.Chip) iter.Seq[sensors.Feature] {
	return slices.Values(c.Features())
}

func subfeatures(f sensors.Feature) iter.Seq[sensors.Subfeature] {
	return slices.Values(f.Subfeatures())
}

// readValue reads s, dropping it if the read fails.
func readValue(s sensors.Subfeature) (float64, bool) {
	v, err := s.Value()
	if err != nil {
		l.Fine("skipping %s: %v", s.Name(), err)
		return 0, false
	}
	return v, true
}

// Readings yields the current value, in degrees Celsius, of every
// temperature input on every chip in src that passes filter.
func Readings(src sensors.Source, filter NameFilter) iter.Seq[float64] {
	chips := Filter(Chips(src), KeepChip(filter))
	temps := Filter(FlatMap(chips, features), IsTemperature)
	inputs := Filter(FlatMap(temps, subfeatures), IsTemperatureInput)
	return FilterMap(inputs, readValue)
}

// Mean returns the arithmetic mean of the values in seq. It returns false
// if seq is empty.
func Mean(seq iter.Seq[float64]) (float64, bool) {
	sum, count := 0.0, 0
	for v := range seq {
		sum += v
		count++
	}
	if count == 0 {
		return 0, false
	}
	return sum / float64(count), true
}

// Average returns the mean temperature, in degrees Celsius, of all
// matching temperature inputs in src. It returns false if nothing could
// be read.
func Average(src sensors.Source, filter NameFilter) (float64, bool) {
	return Mean(Readings(src, filter))
}
