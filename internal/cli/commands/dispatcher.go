package commands

import (
	"ChefHub/internal/cli/api"
	"ChefHub/internal/config"
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Process exit codes returned by Dispatch.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// Dispatch is the single entry point to execute CLI commands.
// args are the positional arguments left after global flag parsing.
// It prints help and usage messages and returns a process exit code.
func Dispatch(ctx context.Context, cfg *config.Config, args []string) int {
	if len(args) == 0 {
		fmt.Fprint(Out, FormatGlobalUsage())
		return ExitUsage
	}

	name := strings.ToLower(args[0])
	if name == "help" || name == "--help" || name == "-h" { // chefcli help [command]
		return help(args[1:])
	}

	c, ok := Get(name)
	if !ok {
		fmt.Fprintf(Out, "Unknown command: %s\n\n", args[0])
		fmt.Fprint(Out, FormatGlobalUsage())
		return ExitUsage
	}
	for _, a := range args[1:] {
		if a == "--help" || a == "-h" {
			fmt.Fprintf(Out, "Usage: %s\n", c.Usage())
			return ExitOK
		}
	}

	err := c.Run(ctx, cfg, args[1:])
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrUsage):
		if err != ErrUsage {
			fmt.Fprintf(Out, "%s: %v\n", name, err)
		}
		fmt.Fprintf(Out, "Usage: %s\n", c.Usage())
		return ExitUsage
	default:
		reportError(name, err)
		return ExitFailure
	}
}

func help(args []string) int {
	if len(args) == 0 {
		fmt.Fprint(Out, FormatGlobalUsage())
		return ExitOK
	}
	if c, ok := Get(args[0]); ok {
		fmt.Fprintf(Out, "%s\n\nUsage: %s\n", c.Description(), c.Usage())
		return ExitOK
	}
	fmt.Fprintf(Out, "Unknown command: %s\n\n", args[0])
	fmt.Fprint(Out, FormatGlobalUsage())
	return ExitUsage
}

// reportError prints a failed command's error. Server errors also get their
// details, one per line, and a login hint when identity was rejected.
func reportError(name string, err error) {
	fmt.Fprintf(Out, "%s error: %v\n", name, err)

	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		return
	}
	keys := make([]string, 0, len(apiErr.Details))
	for k := range apiErr.Details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(Out, "  %s: %v\n", k, apiErr.Details[k])
	}
	if apiErr.Code == "UNAUTHORIZED" && name != "login" {
		fmt.Fprintln(Out, "hint: the token may have expired, run login again")
	}
}
