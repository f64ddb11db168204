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

package output

import (
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Emitter writes temperature records to the host, and diagnostics to
// the operator.
type Emitter struct {
	out  io.Writer
	diag logrus.FieldLogger
}

// New returns an emitter writing records to out and diagnostics to diag.
func New(out io.Writer, diag logrus.FieldLogger) *Emitter {
	return &Emitter{out: out, diag: diag}
}

// NewDiagnostics returns the logger used for operator diagnostics: one
// plain line per event, on w.
func NewDiagnostics(w io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		DisableColors:    true,
	})
	return log
}

// Write writes a complete record in a single write, so the host never
// sees half of one.
func (e *Emitter) Write(r Record) error {
	_, err := e.out.Write(r.Bytes())
	return errors.Wrap(err, "writing record")
}

// Emit writes a temperature record.
func (e *Emitter) Emit(value float64) error {
	return e.Write(Record{Float("temperature", value)})
}

// ReadFailed reports a tick in which no temperature could be read.
func (e *Emitter) ReadFailed() {
	e.diag.Warn("Failed to read temperature")
}
