package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"sunlight/senate-csv/cmd/batch"
	"sunlight/senate-csv/cmd/bioguide"
	"sunlight/senate-csv/cmd/clean"
	"sunlight/senate-csv/cmd/download"
	"sunlight/senate-csv/cmd/extract"
	"sunlight/senate-csv/cmd/parse"
	"sunlight/senate-csv/cmd/process"
	"sunlight/senate-csv/cmd/recovery"
	"sunlight/senate-csv/cmd/root"
	"sunlight/senate-csv/internal/config"
)

func init() {
	// Environment variables must be in place before viper reads them.
	if _, err := config.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load .env: %v\n", err)
	}

	root.Init()

	root.Cmd.AddCommand(download.Cmd)
	root.Cmd.AddCommand(extract.Cmd)
	root.Cmd.AddCommand(parse.Cmd)
	root.Cmd.AddCommand(clean.Cmd)
	root.Cmd.AddCommand(process.Cmd)
	root.Cmd.AddCommand(recovery.Cmd)
	root.Cmd.AddCommand(batch.Cmd)
	root.Cmd.AddCommand(bioguide.Cmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.Cmd.ExecuteContext(ctx); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
