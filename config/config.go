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

// Package config resolves command-line options into the configuration
// of the poll loop.
package config

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"github.com/yambar-modules/temperature/aggregate"
	"github.com/yambar-modules/temperature/temperature"
)

const (
	// Name is the program name used in usage and version output.
	Name = "yambar-temperature"
	// Version is the program version.
	Version = "1.0.0"
)

// ErrHelp is returned by Resolve when -h or --help is given.
var ErrHelp = pflag.ErrHelp

// ErrVersion is returned by Resolve when -V or --version is given.
var ErrVersion = errors.New("version requested")

// Config is the resolved configuration. It is not modified after
// Resolve returns.
type Config struct {
	Unit         temperature.Unit
	PollInterval time.Duration
	Names        aggregate.NameFilter
}

func (c Config) String() string {
	return fmt.Sprintf("unit=%s interval=%v names=%s", c.Unit, c.PollInterval, c.Names)
}

// millis is a pflag.Value holding a duration given in whole milliseconds.
type millis time.Duration

func (m *millis) Set(s string) error {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return errors.Errorf("%q is not a number of milliseconds", s)
	}
	if n > math.MaxInt64/uint64(time.Millisecond) {
		return errors.Errorf("%s milliseconds is too long", s)
	}
	*m = millis(time.Duration(n) * time.Millisecond)
	return nil
}

func (m *millis) String() string {
	return strconv.FormatInt(time.Duration(*m).Milliseconds(), 10)
}

func (m *millis) Type() string { return "milliseconds" }

type options struct {
	unit     temperature.Unit
	interval millis
	names    []string
	version  bool
}

func newFlagSet(opts *options) *pflag.FlagSet {
	opts.unit = temperature.Celsius
	opts.interval = millis(time.Second)

	fs := pflag.NewFlagSet(Name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	fs.SortFlags = false
	// Parsing stops at the first positional argument, so that Resolve
	// can tell whether it continues a --names list.
	fs.SetInterspersed(false)

	fs.Var(&opts.unit, "unit",
		"Unit of temperature value to display ("+strings.Join(temperature.Units(), ", ")+")")
	fs.Var(&opts.interval, "poll-interval",
		"Interval between updates in milliseconds")
	fs.StringArrayVar(&opts.names, "names", nil,
		"Names of sensors included in temperature calculation. If not specified, all sensors will be used.")
	fs.BoolVarP(&opts.version, "version", "V", false, "Print version")
	return fs
}

// Resolve parses command-line arguments (without the program name).
//
// --names takes one or more values: "--names a b", "--names a --names b"
// and "--names=a" are all accepted. Any other positional argument is an
// error. ErrHelp and ErrVersion are returned if help or version output
// was requested.
func Resolve(args []string) (Config, error) {
	opts := &options{}
	fs := newFlagSet(opts)
	rest := args
	for {
		if err := fs.Parse(rest); err != nil {
			return Config{}, errors.Wrap(err, "invalid arguments")
		}
		left := fs.Args()
		if len(left) == 0 {
			break
		}
		if !continuesNames(rest[:len(rest)-len(left)]) {
			return Config{}, errors.Errorf("unexpected argument %q", left[0])
		}
		i := 0
		for ; i < len(left) && !strings.HasPrefix(left[i], "-"); i++ {
			opts.names = append(opts.names, left[i])
		}
		if i == 0 {
			return Config{}, errors.Errorf("unexpected argument %q", left[0])
		}
		rest = left[i:]
	}

	if opts.version {
		return Config{}, ErrVersion
	}
	for _, n := range opts.names {
		if strings.HasPrefix(n, "-") {
			return Config{}, errors.Errorf("--names requires a value, got %q", n)
		}
	}

	cfg := Config{
		Unit:         opts.unit,
		PollInterval: time.Duration(opts.interval),
	}
	if fs.Changed("names") {
		cfg.Names = aggregate.AllowOnly(opts.names...)
	}
	return cfg, nil
}

// continuesNames reports whether the parsed arguments end with a --names
// value, so that following positional arguments belong to it.
func continuesNames(parsed []string) bool {
	n := len(parsed)
	switch {
	case n >= 1 && strings.HasPrefix(parsed[n-1], "--names="):
		return true
	case n >= 2 && parsed[n-2] == "--names":
		return true
	}
	return false
}

// Usage writes help text to w.
func Usage(w io.Writer) {
	fs := newFlagSet(&options{})
	fmt.Fprintf(w, "%s %s\nTemperature module for Yambar\n\n", Name, Version)
	fmt.Fprintf(w, "Usage:\n  %s [options]\n\nOptions:\n", Name)
	fmt.Fprint(w, fs.FlagUsages())
	fmt.Fprintln(w, "  -h, --help                   Print help")
}
