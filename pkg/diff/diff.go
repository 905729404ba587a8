// Package diff compares two generated command lists line by line, for
// reviewing what changed between device configurations or snapshots.
package diff

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/psaab/nvflat/pkg/generator"
)

// Op classifies one diff line.
type Op int

const (
	OpKeep Op = iota
	OpAdd
	OpDel
)

// Line is one command with its diff classification.
type Line struct {
	Op   Op
	Text string
}

// Commands diffs two command lists in whole-line mode. Lines from a
// appear as OpDel, lines from b as OpAdd, shared lines as OpKeep, in
// the order the underlying lists present them.
func Commands(a, b generator.CommandList) []Line {
	dmp := diffmatchpatch.New()
	c1, c2, lineArray := dmp.DiffLinesToChars(a.Text(), b.Text())
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(c1, c2, false), lineArray)

	var lines []Line
	for _, d := range diffs {
		op := OpKeep
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			op = OpAdd
		case diffmatchpatch.DiffDelete:
			op = OpDel
		}
		for _, text := range strings.Split(d.Text, "\n") {
			if text == "" {
				continue
			}
			lines = append(lines, Line{Op: op, Text: text})
		}
	}
	return lines
}

// Changed reports whether the diff contains any addition or removal.
func Changed(lines []Line) bool {
	for _, l := range lines {
		if l.Op != OpKeep {
			return true
		}
	}
	return false
}

var (
	addColor = color.New(color.FgGreen)
	delColor = color.New(color.FgRed)
)

// Write renders the diff one line per command, prefixed "+", "-", or
// two spaces.
func Write(w io.Writer, lines []Line, colorize bool) {
	for _, l := range lines {
		switch l.Op {
		case OpAdd:
			text := "+ " + l.Text
			if colorize {
				text = addColor.Sprint(text)
			}
			fmt.Fprintln(w, text)
		case OpDel:
			text := "- " + l.Text
			if colorize {
				text = delColor.Sprint(text)
			}
			fmt.Fprintln(w, text)
		default:
			fmt.Fprintln(w, "  "+l.Text)
		}
	}
}
