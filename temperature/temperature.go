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

// Package temperature provides the units a reading can be displayed in,
// and conversion from degrees Celsius into each of them.
package temperature

import (
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
)

// Unit is a temperature scale.
type Unit int

const (
	// Celsius is the unit sensors report in.
	Celsius Unit = iota
	// Fahrenheit is degrees Fahrenheit.
	Fahrenheit
	// Kelvin is absolute temperature.
	Kelvin
)

var unitNames = map[Unit]string{
	Celsius:    "celsius",
	Fahrenheit: "fahrenheit",
	Kelvin:     "kelvin",
}

// Units returns the names of all units, in declaration order.
func Units() []string {
	return []string{
		unitNames[Celsius],
		unitNames[Fahrenheit],
		unitNames[Kelvin],
	}
}

// ParseUnit returns the unit with the given name. Names are
// case-sensitive and there are no aliases.
func ParseUnit(name string) (Unit, error) {
	for u, n := range unitNames {
		if n == name {
			return u, nil
		}
	}
	return Celsius, errors.Errorf("unknown unit %q, expected one of %v", name, Units())
}

func (u Unit) String() string {
	if n, ok := unitNames[u]; ok {
		return n
	}
	return "unknown"
}

// Set implements pflag.Value.
func (u *Unit) Set(name string) error {
	parsed, err := ParseUnit(name)
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

// Type implements pflag.Value.
func (u *Unit) Type() string { return "unit" }

var _ pflag.Value = (*Unit)(nil)

// Convert converts a temperature in degrees Celsius into the given unit.
func Convert(celsius float64, u Unit) float64 {
	switch u {
	case Fahrenheit:
		return celsius*9/5 + 32
	case Kelvin:
		return celsius + 273.15
	default:
		return celsius
	}
}
