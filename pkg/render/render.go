// Package render is the presentation layer: it formats a generated
// command list for humans. Formatting never alters command content.
package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/psaab/nvflat/pkg/generator"
)

// ColorEnabled resolves a color mode ("auto", "always", "never") against
// the output stream.
func ColorEnabled(mode string, f *os.File) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		return f != nil && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
	}
}

// Printer formats command lists onto a writer.
type Printer struct {
	w        io.Writer
	colorize bool
}

// NewPrinter creates a Printer. colorize controls the banner and count
// highlighting only; command lines are always written verbatim.
func NewPrinter(w io.Writer, colorize bool) *Printer {
	return &Printer{w: w, colorize: colorize}
}

var (
	bannerColor = color.New(color.FgCyan, color.Bold)
	countColor  = color.New(color.FgGreen)
)

// PrintSet writes the banner, one command per line, and a trailing count.
func (p *Printer) PrintSet(list generator.CommandList, sourceName string) {
	p.banner(sourceName)
	for _, c := range list {
		fmt.Fprintln(p.w, string(c))
	}
	p.count(len(list))
}

// PrintTree writes the banner and the command list folded back into a
// hierarchical brace view, one block per top-level section.
func (p *Printer) PrintTree(list generator.CommandList, sourceName string) {
	p.banner(sourceName)
	root := buildTree(list)
	formatTree(p.w, root.children, 0)
	p.count(len(list))
}

func (p *Printer) banner(sourceName string) {
	title := "NVUE configuration as nv set commands"
	if sourceName != "" {
		title += " (" + sourceName + ")"
	}
	if p.colorize {
		title = bannerColor.Sprint(title)
	}
	fmt.Fprintln(p.w, title)
	fmt.Fprintln(p.w, strings.Repeat("-", 44))
}

func (p *Printer) count(n int) {
	line := fmt.Sprintf("Generated %d commands", n)
	if n == 1 {
		line = "Generated 1 command"
	}
	if p.colorize {
		line = countColor.Sprint(line)
	}
	fmt.Fprintln(p.w)
	fmt.Fprintln(p.w, line)
}

// treeNode is one token of the folded command hierarchy.
type treeNode struct {
	token    string
	children []*treeNode
}

func (n *treeNode) child(token string) *treeNode {
	for _, c := range n.children {
		if c.token == token {
			return c
		}
	}
	c := &treeNode{token: token}
	n.children = append(n.children, c)
	return c
}

func buildTree(list generator.CommandList) *treeNode {
	root := &treeNode{}
	for _, cmd := range list {
		tokens := strings.Fields(strings.TrimPrefix(string(cmd), "nv set "))
		cur := root
		for _, tok := range tokens {
			cur = cur.child(tok)
		}
	}
	return root
}

// formatTree renders nodes as an indented brace hierarchy. A chain whose
// tail is a single valueless child collapses onto one line, so
// "ip address 192.168.1.1/24" renders as a leaf statement rather than
// three nested blocks.
func formatTree(w io.Writer, nodes []*treeNode, indent int) {
	prefix := strings.Repeat("    ", indent)
	for _, n := range nodes {
		switch {
		case len(n.children) == 0:
			fmt.Fprintf(w, "%s%s;\n", prefix, n.token)
		case len(n.children) == 1 && len(n.children[0].children) == 0:
			fmt.Fprintf(w, "%s%s %s;\n", prefix, n.token, n.children[0].token)
		default:
			fmt.Fprintf(w, "%s%s {\n", prefix, n.token)
			formatTree(w, n.children, indent+1)
			fmt.Fprintf(w, "%s}\n", prefix)
		}
	}
}
