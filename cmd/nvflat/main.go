// nvflat renders an NVUE declarative configuration as the flat list of
// nv set commands that reproduces it on an empty device.
//
// By default it invokes the NVUE CLI to obtain the current configuration
// and prints the generated commands; subcommands diff, save, history,
// and shell work with snapshots and interactive browsing.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/psaab/nvflat/pkg/diff"
	"github.com/psaab/nvflat/pkg/document"
	"github.com/psaab/nvflat/pkg/generator"
	"github.com/psaab/nvflat/pkg/logging"
	"github.com/psaab/nvflat/pkg/render"
	"github.com/psaab/nvflat/pkg/shell"
	"github.com/psaab/nvflat/pkg/source"
	"github.com/psaab/nvflat/pkg/store"
	"github.com/psaab/nvflat/pkg/toolcfg"
)

const sourceTimeout = 30 * time.Second

type app struct {
	cfg      *toolcfg.Config
	gen      *generator.Generator
	log      *slog.Logger
	filePath string
	colorize bool
}

func main() {
	configPath := flag.String("config", toolcfg.DefaultPath, "path to the nvflat configuration file")
	filePath := flag.String("file", "", "read the document from a file instead of running the source command (\"-\" for stdin)")
	format := flag.String("format", "", "output format: set or tree (default from config)")
	colorMode := flag.String("color", "", "color output: auto, always, never (default from config)")
	verbose := flag.Bool("verbose", false, "enable debug diagnostics")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "nvflat - NVUE configuration to nv set commands\n\n")
		fmt.Fprintf(os.Stderr, "Usage: %s [options] [command]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Commands:\n")
		fmt.Fprintf(os.Stderr, "  generate                Print the generated commands (default)\n")
		fmt.Fprintf(os.Stderr, "  diff [-against FILE]    Diff current commands against a snapshot\n")
		fmt.Fprintf(os.Stderr, "  save [-comment TEXT]    Save current commands as a snapshot\n")
		fmt.Fprintf(os.Stderr, "  history                 List saved snapshots\n")
		fmt.Fprintf(os.Stderr, "  shell                   Browse commands interactively\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := toolcfg.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "nvflat: %v\n", err)
		os.Exit(1)
	}
	if *format != "" {
		cfg.Output.Format = *format
	}
	if *colorMode != "" {
		cfg.Output.Color = *colorMode
	}
	switch cfg.Output.Format {
	case "set", "tree":
	default:
		fmt.Fprintf(os.Stderr, "nvflat: unknown format %q\n", cfg.Output.Format)
		os.Exit(2)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(logging.NewConsole(os.Stderr, level, render.ColorEnabled(cfg.Output.Color, os.Stderr)))

	gen := generator.New(log)
	gen.SetClassifier(generator.NewVocabularyClassifier(cfg.Leaf.ExtraWords...))

	a := &app{
		cfg:      cfg,
		gen:      gen,
		log:      log,
		filePath: *filePath,
		colorize: render.ColorEnabled(cfg.Output.Color, os.Stdout),
	}

	cmd := flag.Arg(0)
	if cmd == "" {
		cmd = "generate"
	}
	args := flag.Args()
	if len(args) > 0 {
		args = args[1:]
	}

	switch cmd {
	case "generate":
		err = a.runGenerate()
	case "diff":
		err = a.runDiff(args)
	case "save":
		err = a.runSave(args)
	case "history":
		err = a.runHistory()
	case "shell":
		err = a.runShell()
	default:
		fmt.Fprintf(os.Stderr, "nvflat: unknown command %q\n\n", cmd)
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "nvflat: %v\n", err)
		os.Exit(1)
	}
}

// fetch obtains the document, decodes it, and generates commands. Source
// and parse failures are fatal to the run; generation itself never fails.
func (a *app) fetch(ctx context.Context) (generator.CommandList, string, error) {
	var (
		src  source.Source
		name string
	)
	if a.filePath != "" {
		src = &source.FileSource{Path: a.filePath}
		name = a.filePath
	} else {
		cs := source.NewCommandSource(a.cfg.Source.Command)
		src = cs
		name = cs.String()
	}

	data, err := src.Fetch(ctx)
	if err != nil {
		return nil, name, err
	}
	doc, err := document.Parse(data)
	if err != nil {
		return nil, name, err
	}
	return a.gen.FromDocument(doc), name, nil
}

func (a *app) runGenerate() error {
	ctx, cancel := context.WithTimeout(context.Background(), sourceTimeout)
	defer cancel()

	list, name, err := a.fetch(ctx)
	if err != nil {
		return err
	}

	p := render.NewPrinter(os.Stdout, a.colorize)
	if a.cfg.Output.Format == "tree" {
		p.PrintTree(list, name)
	} else {
		p.PrintSet(list, name)
	}
	return nil
}

func (a *app) openStore() (*store.Store, error) {
	st := store.New(a.cfg.Snapshot.Dir, a.cfg.Snapshot.Keep)
	if err := st.Load(); err != nil {
		return nil, err
	}
	return st, nil
}

func (a *app) runDiff(args []string) error {
	fs := flag.NewFlagSet("diff", flag.ExitOnError)
	against := fs.String("against", "", "snapshot file to diff against (default: latest saved snapshot)")
	fs.Parse(args)

	ctx, cancel := context.WithTimeout(context.Background(), sourceTimeout)
	defer cancel()

	list, _, err := a.fetch(ctx)
	if err != nil {
		return err
	}

	var base *store.Snapshot
	if *against != "" {
		base, err = store.ReadSnapshot(*against)
		if err != nil {
			return err
		}
	} else {
		st, err := a.openStore()
		if err != nil {
			return err
		}
		var ok bool
		base, ok = st.Latest()
		if !ok {
			return fmt.Errorf("no snapshots in %s; run 'nvflat save' first or use -against", a.cfg.Snapshot.Dir)
		}
	}

	lines := diff.Commands(base.Commands, list)
	diff.Write(os.Stdout, lines, a.colorize)
	if !diff.Changed(lines) {
		a.log.Info("no changes", "against", base.Path)
	}
	return nil
}

func (a *app) runSave(args []string) error {
	fs := flag.NewFlagSet("save", flag.ExitOnError)
	comment := fs.String("comment", "", "comment stored with the snapshot")
	fs.Parse(args)

	ctx, cancel := context.WithTimeout(context.Background(), sourceTimeout)
	defer cancel()

	list, _, err := a.fetch(ctx)
	if err != nil {
		return err
	}

	st, err := a.openStore()
	if err != nil {
		return err
	}
	snap, err := st.Save(list, *comment)
	if err != nil {
		return err
	}
	fmt.Printf("saved %d commands to %s\n", len(snap.Commands), snap.Path)
	return nil
}

func (a *app) runHistory() error {
	st, err := a.openStore()
	if err != nil {
		return err
	}
	snaps := st.List()
	if len(snaps) == 0 {
		fmt.Println("no snapshots")
		return nil
	}
	for i, snap := range snaps {
		comment := snap.Comment
		if comment == "" {
			comment = "-"
		}
		fmt.Printf("%2d  %s  %4d commands  %s\n",
			i, snap.Taken.Format(time.RFC3339), len(snap.Commands), comment)
	}
	return nil
}

func (a *app) runShell() error {
	ctx, cancel := context.WithTimeout(context.Background(), sourceTimeout)
	defer cancel()

	list, _, err := a.fetch(ctx)
	if err != nil {
		return err
	}

	// stdin cannot be re-read; command and file sources can
	var refresh shell.RefreshFunc
	if a.filePath != "-" {
		refresh = func(ctx context.Context) (generator.CommandList, error) {
			ctx, cancel := context.WithTimeout(ctx, sourceTimeout)
			defer cancel()
			list, _, err := a.fetch(ctx)
			return list, err
		}
	}

	return shell.New(list, refresh).Run()
}
