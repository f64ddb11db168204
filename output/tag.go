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

// Package output writes readings in the line protocol that yambar's
// script module reads from a child process.
//
// Each update is a record: one "name|type|value" line per tag, followed
// by an empty line that tells yambar the record is complete.
package output

import (
	"strconv"
	"strings"
)

// Tag is a single name|type|value line.
type Tag struct {
	name  string
	typ   string
	value string
}

// Float returns a float tag. The value is written in the shortest
// decimal form that reads back exactly, without an exponent.
func Float(name string, v float64) Tag {
	return Tag{name, "float", formatFloat(v)}
}

// Int returns an int tag.
func Int(name string, v int64) Tag {
	return Tag{name, "int", strconv.FormatInt(v, 10)}
}

// Bool returns a bool tag.
func Bool(name string, v bool) Tag {
	return Tag{name, "bool", strconv.FormatBool(v)}
}

// String returns a string tag. Newlines would end the tag early, so they
// are replaced with spaces.
func String(name string, v string) Tag {
	return Tag{name, "string", strings.ReplaceAll(v, "\n", " ")}
}

// Range returns a range tag, an int bounded by min and max.
func Range(name string, min, max, v int64) Tag {
	typ := "range:" + strconv.FormatInt(min, 10) + "-" + strconv.FormatInt(max, 10)
	return Tag{name, typ, strconv.FormatInt(v, 10)}
}

func (t Tag) String() string {
	return t.name + "|" + t.typ + "|" + t.value
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Record is a complete update.
type Record []Tag

// Bytes returns the wire form of the record, including the terminating
// empty line.
func (r Record) Bytes() []byte {
	var b strings.Builder
	for _, t := range r {
		b.WriteString(t.String())
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	return []byte(b.String())
}
