package commands

import (
	"ChefHub/internal/config"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// ErrUsage is returned by a command when arguments are invalid and usage should be shown.
// Wrap it to print the reason before the usage line.
var ErrUsage = errors.New("usage")

// Command represents a CLI subcommand.
type Command interface {
	// Name returns the command name as typed by the user, e.g. "dish-create".
	Name() string
	Description() string
	// Usage returns the exact usage string, e.g. "login <username> <password>".
	Usage() string
	// Run executes the command with provided args (without the command name).
	Run(ctx context.Context, cfg *config.Config, args []string) error
}

// Section groups commands in help output.
type Section int

const (
	SectionAccount Section = iota
	SectionCatalog
	SectionDishes
)

func (s Section) String() string {
	switch s {
	case SectionAccount:
		return "Account"
	case SectionCatalog:
		return "Ingredient catalog"
	case SectionDishes:
		return "Dishes"
	default:
		return "Other"
	}
}

type entry struct {
	section Section
	cmd     Command
}

var registry = map[string]entry{}

// Out — общий writer для вывода CLI. По умолчанию os.Stdout, но в тестах может переназначаться.
var Out io.Writer = os.Stdout

// Register adds commands to the registry under a help section.
// Called from init() of each command file; a duplicate name panics.
func Register(section Section, cmds ...Command) {
	for _, c := range cmds {
		if _, dup := registry[c.Name()]; dup {
			panic("commands: duplicate command " + c.Name())
		}
		registry[c.Name()] = entry{section: section, cmd: c}
	}
}

// Get returns a command by name. Lookup is case-insensitive.
func Get(name string) (Command, bool) {
	e, ok := registry[strings.ToLower(name)]
	return e.cmd, ok
}

// List returns all registered commands ordered by section, then name.
func List() []Command {
	entries := sortedEntries()
	list := make([]Command, len(entries))
	for i, e := range entries {
		list[i] = e.cmd
	}
	return list
}

func sortedEntries() []entry {
	entries := make([]entry, 0, len(registry))
	for _, e := range registry {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].section != entries[j].section {
			return entries[i].section < entries[j].section
		}
		return entries[i].cmd.Name() < entries[j].cmd.Name()
	})
	return entries
}

// FormatGlobalUsage builds a help text for all commands, one block per section.
func FormatGlobalUsage() string {
	var b strings.Builder
	b.WriteString("ChefHub CLI\n\n")
	b.WriteString("Usage:\n")
	b.WriteString("  chefcli [--base-url <host:port>] [--https] [--token-file <path>] <command> [args]\n")

	width := 0
	for _, e := range registry {
		if n := len(e.cmd.Usage()); n > width {
			width = n
		}
	}

	current := Section(-1)
	for _, e := range sortedEntries() {
		if e.section != current {
			current = e.section
			fmt.Fprintf(&b, "\n%s:\n", current)
		}
		fmt.Fprintf(&b, "  %-*s  %s\n", width, e.cmd.Usage(), e.cmd.Description())
	}
	return b.String()
}
