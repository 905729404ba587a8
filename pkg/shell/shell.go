// Package shell provides an interactive prompt for browsing the
// generated commands of a device configuration: filter by section,
// re-fetch from the device, inspect counts.
package shell

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/chzyer/readline"

	"github.com/psaab/nvflat/pkg/generator"
)

// RefreshFunc re-fetches and regenerates the command list.
type RefreshFunc func(ctx context.Context) (generator.CommandList, error)

// Shell is the interactive browser.
type Shell struct {
	rl      *readline.Instance
	out     io.Writer
	list    generator.CommandList
	refresh RefreshFunc
}

// New creates a Shell over an already generated command list. refresh
// may be nil when no live source is available (file input).
func New(list generator.CommandList, refresh RefreshFunc) *Shell {
	return &Shell{
		out:     os.Stdout,
		list:    list,
		refresh: refresh,
	}
}

// Run starts the interactive loop and blocks until exit or EOF.
func (s *Shell) Run() error {
	var err error
	s.rl, err = readline.NewEx(&readline.Config{
		Prompt:          "nvflat> ",
		HistoryFile:     "/tmp/nvflat_history",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    s.completer(),
	})
	if err != nil {
		return fmt.Errorf("readline init: %w", err)
	}
	defer s.rl.Close()
	s.out = s.rl.Stdout()

	fmt.Fprintf(s.out, "nvflat interactive - %d commands loaded\n", len(s.list))
	fmt.Fprintln(s.out, "Type 'help' for commands")

	for {
		line, err := s.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			if err == io.EOF {
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if err := s.dispatch(line); err != nil {
			if err == errExit {
				return nil
			}
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
	}
}

var errExit = fmt.Errorf("exit")

func (s *Shell) completer() *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem("show", readline.PcItemDynamic(func(string) []string {
			return s.sections()
		})),
		readline.PcItem("sections"),
		readline.PcItem("count"),
		readline.PcItem("refresh"),
		readline.PcItem("help"),
		readline.PcItem("exit"),
		readline.PcItem("quit"),
	)
}

func (s *Shell) dispatch(line string) error {
	fields := strings.Fields(line)
	switch fields[0] {
	case "exit", "quit":
		return errExit
	case "help", "?":
		s.printHelp()
		return nil
	case "count":
		fmt.Fprintf(s.out, "%d commands\n", len(s.list))
		return nil
	case "sections":
		for _, name := range s.sections() {
			fmt.Fprintln(s.out, name)
		}
		return nil
	case "show":
		return s.show(fields[1:])
	case "refresh":
		return s.doRefresh()
	default:
		return fmt.Errorf("unknown command %q, try 'help'", fields[0])
	}
}

func (s *Shell) show(tokens []string) error {
	list := s.list
	if len(tokens) > 0 {
		list = s.list.FilterPrefix(tokens...)
	}
	if len(list) == 0 {
		fmt.Fprintln(s.out, "no matching commands")
		return nil
	}
	for _, c := range list {
		fmt.Fprintln(s.out, string(c))
	}
	return nil
}

func (s *Shell) doRefresh() error {
	if s.refresh == nil {
		return fmt.Errorf("no live source to refresh from")
	}
	list, err := s.refresh(context.Background())
	if err != nil {
		return fmt.Errorf("refresh: %w", err)
	}
	s.list = list
	fmt.Fprintf(s.out, "refreshed, %d commands\n", len(s.list))
	return nil
}

// sections returns the distinct top-level section tokens present in the
// command list, sorted for stable completion.
func (s *Shell) sections() []string {
	seen := map[string]bool{}
	for _, c := range s.list {
		fields := strings.Fields(string(c))
		// nv set <section> ...
		if len(fields) >= 3 {
			seen[fields[2]] = true
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Shell) printHelp() {
	help := []struct{ cmd, desc string }{
		{"show [section ...]", "Print commands, optionally filtered by path prefix"},
		{"sections", "List top-level sections present in the output"},
		{"count", "Print the number of generated commands"},
		{"refresh", "Re-fetch the configuration and regenerate"},
		{"exit", "Leave the shell"},
	}
	for _, h := range help {
		fmt.Fprintf(s.out, "  %-22s %s\n", h.cmd, h.desc)
	}
}
