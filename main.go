/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/humaidq/sugarcheck/cmd"
	"github.com/humaidq/sugarcheck/logging"
)

func main() {
	app := &cli.Command{
		Name:  "sugarcheck",
		Usage: "SugarCheck - Diabetes Risk Self-Assessment",
		Commands: []*cli.Command{
			cmd.CmdStart,
			cmd.CmdMigrate,
			cmd.CmdAssess,
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logging.Logger(logging.SourceApp).Fatal("Command failed", "error", err)
	}
}
