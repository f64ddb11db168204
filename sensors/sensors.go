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

// Package sensors models hardware monitoring chips as a forest of
// chips, each exposing typed features, each exposing typed sub-features
// with a live reading.
//
// The layout mirrors libsensors: a chip such as "coretemp-isa-0000" has
// features such as "temp1", and temp1 has sub-features such as temp1_input
// and temp1_crit. Values are always read fresh from the hardware.
package sensors

// Source enumerates the chips currently present.
type Source interface {
	Chips() ([]Chip, error)
}

// Chip is a single hardware monitoring device.
type Chip interface {
	// Name returns the libsensors-style chip name, or an error if the
	// name cannot be resolved.
	Name() (string, error)
	Features() []Feature
}

// Feature is a measured quantity on a chip, e.g. temp1 or fan2.
type Feature interface {
	Name() string
	Type() FeatureType
	Subfeatures() []Subfeature
}

// Subfeature is one facet of a feature, e.g. the input or the critical
// threshold of a temperature.
type Subfeature interface {
	Name() string
	Type() SubfeatureType
	// Value reads the current value, scaled to the natural unit of the
	// feature (degrees Celsius, volts, RPM, watts, ...).
	Value() (float64, error)
}

// FeatureType is the category of a feature.
type FeatureType int

// Feature types, named after the sysfs attribute prefix.
const (
	UnknownFeature FeatureType = iota
	In
	Fan
	Temp
	Power
	Energy
	Curr
	Humidity
	Intrusion
)

var featurePrefixes = map[string]FeatureType{
	"in":        In,
	"fan":       Fan,
	"temp":      Temp,
	"power":     Power,
	"energy":    Energy,
	"curr":      Curr,
	"humidity":  Humidity,
	"intrusion": Intrusion,
}

func (t FeatureType) String() string {
	for prefix, typ := range featurePrefixes {
		if typ == t {
			return prefix
		}
	}
	return "unknown"
}

// SubfeatureType is the category of a sub-feature. Each feature type has
// its own set of sub-feature types.
type SubfeatureType int

// Temperature sub-feature types.
const (
	UnknownSubfeature SubfeatureType = iota
	TempInput
	TempMax
	TempMaxHyst
	TempMin
	TempMinHyst
	TempCrit
	TempCritHyst
	TempLcrit
	TempLcritHyst
	TempEmergency
	TempEmergencyHyst
	TempLowest
	TempHighest
	TempOffset
	TempType
	TempAlarm
	TempMinAlarm
	TempMaxAlarm
	TempCritAlarm
	TempLcritAlarm
	TempEmergencyAlarm
	TempFault
	TempBeep
)

// Sub-feature types shared by the other feature types.
const (
	InInput SubfeatureType = 0x100 + iota
	InMin
	InMax
	InAverage
	InAlarm
	InBeep
)

const (
	FanInput SubfeatureType = 0x200 + iota
	FanMin
	FanMax
	FanAlarm
	FanFault
	FanBeep
)

const (
	PowerInput SubfeatureType = 0x300 + iota
	PowerAverage
	PowerMax
	PowerCrit
	PowerAlarm
)

const (
	EnergyInput SubfeatureType = 0x400 + iota
)

const (
	CurrInput SubfeatureType = 0x500 + iota
	CurrMin
	CurrMax
	CurrAverage
	CurrAlarm
	CurrBeep
)

const (
	HumidityInput SubfeatureType = 0x600 + iota
)

const (
	IntrusionAlarm SubfeatureType = 0x700 + iota
	IntrusionBeep
)

// subfeatureSuffixes maps the sysfs attribute suffix (after "temp1_")
// to the sub-feature type, for each feature type.
var subfeatureSuffixes = map[FeatureType]map[string]SubfeatureType{
	Temp: {
		"input":           TempInput,
		"max":             TempMax,
		"max_hyst":        TempMaxHyst,
		"min":             TempMin,
		"min_hyst":        TempMinHyst,
		"crit":            TempCrit,
		"crit_hyst":       TempCritHyst,
		"lcrit":           TempLcrit,
		"lcrit_hyst":      TempLcritHyst,
		"emergency":       TempEmergency,
		"emergency_hyst":  TempEmergencyHyst,
		"lowest":          TempLowest,
		"highest":         TempHighest,
		"offset":          TempOffset,
		"type":            TempType,
		"alarm":           TempAlarm,
		"min_alarm":       TempMinAlarm,
		"max_alarm":       TempMaxAlarm,
		"crit_alarm":      TempCritAlarm,
		"lcrit_alarm":     TempLcritAlarm,
		"emergency_alarm": TempEmergencyAlarm,
		"fault":           TempFault,
		"beep":            TempBeep,
	},
	In: {
		"input":   InInput,
		"min":     InMin,
		"max":     InMax,
		"average": InAverage,
		"alarm":   InAlarm,
		"beep":    InBeep,
	},
	Fan: {
		"input": FanInput,
		"min":   FanMin,
		"max":   FanMax,
		"alarm": FanAlarm,
		"fault": FanFault,
		"beep":  FanBeep,
	},
	Power: {
		"input":   PowerInput,
		"average": PowerAverage,
		"max":     PowerMax,
		"crit":    PowerCrit,
		"alarm":   PowerAlarm,
	},
	Energy: {
		"input": EnergyInput,
	},
	Curr: {
		"input":   CurrInput,
		"min":     CurrMin,
		"max":     CurrMax,
		"average": CurrAverage,
		"alarm":   CurrAlarm,
		"beep":    CurrBeep,
	},
	Humidity: {
		"input": HumidityInput,
	},
	Intrusion: {
		"alarm": IntrusionAlarm,
		"beep":  IntrusionBeep,
	},
}

// LookupSubfeature returns the sub-feature type for an attribute suffix
// of the given feature type, e.g. (Temp, "crit") is TempCrit.
func LookupSubfeature(feature FeatureType, suffix string) (SubfeatureType, bool) {
	typ, ok := subfeatureSuffixes[feature][suffix]
	return typ, ok
}

// unscaled reports whether values of the sub-feature are raw flags or
// enumerations rather than measurements.
func unscaled(suffix string) bool {
	switch suffix {
	case "alarm", "min_alarm", "max_alarm", "crit_alarm", "lcrit_alarm",
		"emergency_alarm", "fault", "beep", "type":
		return true
	}
	return false
}

// scale is the divisor that turns a sysfs value into the natural unit
// of the feature.
func scale(feature FeatureType, suffix string) float64 {
	if unscaled(suffix) {
		return 1
	}
	switch feature {
	case In, Temp, Curr, Humidity:
		return 1000
	case Power, Energy:
		return 1000000
	}
	return 1
}
