// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package main

import (
	cliUtils "github.com/Fantom-foundation/wordvm/go/cmd/wvm/cli"
	"github.com/op/go-logging"
	"github.com/urfave/cli/v2"
)

var log = logging.MustGetLogger("wvm")

var logFormat = logging.MustStringFormatter(
	`%{time:15:04:05.000} %{level:.4s} [%{module}] %{message}`,
)

// setupLogging directs the log output to the error writer of the application
// using the level selected by the verbosity flag.
func setupLogging(context *cli.Context) error {
	level, err := cliUtils.VerbosityFlag.Fetch(context)
	if err != nil {
		return err
	}
	backend := logging.NewLogBackend(context.App.ErrWriter, "", 0)
	leveled := logging.AddModuleLevel(logging.NewBackendFormatter(backend, logFormat))
	leveled.SetLevel(level, "")
	logging.SetBackend(leveled)
	return nil
}
