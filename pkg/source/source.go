// Package source obtains the raw serialized configuration text, either
// by invoking the device's management CLI or by reading a file. Failures
// here are fatal to the run: the generator never sees partial input.
package source

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Source supplies the serialized configuration document.
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// DefaultCommand is the NVUE CLI invocation that prints the declarative
// configuration.
var DefaultCommand = []string{"nv", "config", "show", "--output", "yaml"}

// CommandSource runs an external CLI and returns its standard output.
type CommandSource struct {
	Command string
	Args    []string
}

// NewCommandSource builds a CommandSource from an argv-style slice.
// An empty slice falls back to DefaultCommand.
func NewCommandSource(argv []string) *CommandSource {
	if len(argv) == 0 {
		argv = DefaultCommand
	}
	return &CommandSource{Command: argv[0], Args: argv[1:]}
}

// Fetch runs the command and returns its stdout. A missing executable or
// nonzero exit is an error carrying the command's stderr.
func (s *CommandSource) Fetch(ctx context.Context) ([]byte, error) {
	cmd := exec.CommandContext(ctx, s.Command, s.Args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return nil, fmt.Errorf("run %s: %w: %s", s.Command, err, msg)
		}
		return nil, fmt.Errorf("run %s: %w", s.Command, err)
	}
	return stdout.Bytes(), nil
}

// String returns the command line for log and error messages.
func (s *CommandSource) String() string {
	return strings.Join(append([]string{s.Command}, s.Args...), " ")
}

// FileSource reads the document from a file, or stdin when Path is "-".
type FileSource struct {
	Path string
	// Stdin overrides os.Stdin, for tests.
	Stdin io.Reader
}

// Fetch reads the whole file.
func (s *FileSource) Fetch(ctx context.Context) ([]byte, error) {
	if s.Path == "-" {
		in := s.Stdin
		if in == nil {
			in = os.Stdin
		}
		data, err := io.ReadAll(in)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.Path, err)
	}
	return data, nil
}
