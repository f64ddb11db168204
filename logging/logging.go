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

//go:build tempdebuglog

package logging

import (
	"io"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

const modulePath = "github.com/yambar-modules/temperature/"

var logger = logrus.New()

var fineLogPackages []string
var fineLogCache sync.Map

func init() {
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.DebugLevel)
	if pkgs := os.Getenv("YAMBAR_TEMPERATURE_FINELOG"); pkgs != "" {
		fineLogPackages = strings.Split(pkgs, ",")
	}
}

// callingPackage returns the short package name of the caller's caller,
// e.g. "poll" for github.com/yambar-modules/temperature/poll.(*Loop).Tick.
func callingPackage() string {
	pc, _, _, ok := runtime.Caller(2)
	if !ok {
		return "unknown"
	}
	fn := runtime.FuncForPC(pc).Name()
	fn = strings.TrimPrefix(fn, modulePath)
	if i := strings.Index(fn, "."); i >= 0 {
		fn = fn[:i]
	}
	return fn
}

// fineLogEnabled returns true if finelog is enabled for the package.
func fineLogEnabled(pkg string) bool {
	if cached, ok := fineLogCache.Load(pkg); ok {
		return cached.(bool)
	}
	enabled := false
	for _, p := range fineLogPackages {
		if strings.HasPrefix(pkg, p) {
			enabled = true
			break
		}
	}
	fineLogCache.Store(pkg, enabled)
	return enabled
}

// SetOutput sets the output stream for logging.
func SetOutput(output io.Writer) {
	logger.SetOutput(output)
}

// Log logs a formatted message.
func Log(format string, args ...interface{}) {
	logger.WithField("pkg", callingPackage()).Infof(format, args...)
}

// Fine logs a formatted message if fine logging is enabled for the
// calling package. Enable fine logging using the environment variable
// YAMBAR_TEMPERATURE_FINELOG=$pkg1,$pkg2. [Requires debug logging].
func Fine(format string, args ...interface{}) {
	pkg := callingPackage()
	if fineLogEnabled(pkg) {
		logger.WithField("pkg", pkg).Debugf(format, args...)
	}
}
