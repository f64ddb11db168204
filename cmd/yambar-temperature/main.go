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

// yambar-temperature prints the average temperature of the machine's
// hardware sensors for yambar's script module.
//
// Example yambar configuration:
//
//	- script:
//	    path: /usr/bin/yambar-temperature
//	    args: [--unit, celsius, --poll-interval, "2000", --names, coretemp-isa-0000]
//	    content: {string: {text: "{temperature:.1}°C"}}
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"

	"github.com/yambar-modules/temperature/config"
	"github.com/yambar-modules/temperature/output"
	"github.com/yambar-modules/temperature/poll"
	"github.com/yambar-modules/temperature/sensors"
)

func main() {
	diag := output.NewDiagnostics(os.Stderr)

	cfg, err := config.Resolve(os.Args[1:])
	switch {
	case errors.Is(err, config.ErrHelp):
		config.Usage(os.Stdout)
		return
	case errors.Is(err, config.ErrVersion):
		fmt.Println(config.Name, config.Version)
		return
	case err != nil:
		diag.WithError(err).Fatal("Invalid arguments")
	}

	ctx, stop := signal.NotifyContext(context.Background(), unix.SIGINT, unix.SIGTERM)
	defer stop()

	loop := poll.New(cfg, sensors.NewHwmon(), output.New(os.Stdout, diag))
	if err := loop.Run(ctx); err != nil {
		stop()
		diag.WithError(err).Fatal("Cannot write to host")
	}
}
