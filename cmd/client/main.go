// Command chefcli is the ChefHub command-line client.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"ChefHub/internal/cli/commands"
	"ChefHub/internal/config"
)

// Set at build time with -ldflags "-X main.version=... -X main.buildDate=...".
var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// env + .env + flags; positional args are the command line
	cfg := config.NewConfig()
	if cfg.Version {
		printVersion(os.Stdout, cfg)
		return commands.ExitOK
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return commands.Dispatch(ctx, cfg, flag.Args())
}

func printVersion(w io.Writer, cfg *config.Config) {
	fmt.Fprintf(w, "ChefHub CLI\nVersion: %s\nBuild date: %s\nServer: %s\nToken file: %s\n",
		version, buildDate, cfg.ServerURL, cfg.TokenFile)
}
