// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package main is the entry point for the skillctl command.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/stacklok/skillctl/cmd/skillctl/app"
	"github.com/stacklok/skillctl/recovery"
	"github.com/stacklok/skillctl/skillerr"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := recovery.Run(nil, func() error {
		return app.NewRootCmd().ExecuteContext(ctx)
	})
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(skillerr.ExitCode(err))
	}
}
