package diff

import (
	"bytes"
	"strings"
	"testing"

	"github.com/psaab/nvflat/pkg/generator"
)

func TestCommands(t *testing.T) {
	a := generator.CommandList{
		"nv set system hostname h1",
		"nv set interface swp1 mtu 1500",
		"nv set service ssh",
	}
	b := generator.CommandList{
		"nv set system hostname h1",
		"nv set interface swp1 mtu 9000",
		"nv set service ssh",
	}

	lines := Commands(a, b)
	var adds, dels, keeps []string
	for _, l := range lines {
		switch l.Op {
		case OpAdd:
			adds = append(adds, l.Text)
		case OpDel:
			dels = append(dels, l.Text)
		default:
			keeps = append(keeps, l.Text)
		}
	}

	if len(adds) != 1 || adds[0] != "nv set interface swp1 mtu 9000" {
		t.Errorf("adds = %q", adds)
	}
	if len(dels) != 1 || dels[0] != "nv set interface swp1 mtu 1500" {
		t.Errorf("dels = %q", dels)
	}
	if len(keeps) != 2 {
		t.Errorf("keeps = %q", keeps)
	}
	if !Changed(lines) {
		t.Error("Changed = false for differing lists")
	}
}

func TestCommandsIdentical(t *testing.T) {
	list := generator.CommandList{"nv set service ssh"}
	lines := Commands(list, list)
	if Changed(lines) {
		t.Errorf("identical lists reported changed: %+v", lines)
	}
	if len(lines) != 1 || lines[0].Text != "nv set service ssh" {
		t.Errorf("lines = %+v", lines)
	}
}

func TestCommandsEmptySides(t *testing.T) {
	list := generator.CommandList{"nv set service ssh"}

	lines := Commands(nil, list)
	if len(lines) != 1 || lines[0].Op != OpAdd {
		t.Errorf("empty->list: %+v", lines)
	}

	lines = Commands(list, nil)
	if len(lines) != 1 || lines[0].Op != OpDel {
		t.Errorf("list->empty: %+v", lines)
	}

	if lines := Commands(nil, nil); len(lines) != 0 {
		t.Errorf("empty->empty: %+v", lines)
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	Write(&buf, []Line{
		{Op: OpKeep, Text: "nv set service ssh"},
		{Op: OpDel, Text: "nv set interface swp1 mtu 1500"},
		{Op: OpAdd, Text: "nv set interface swp1 mtu 9000"},
	}, false)

	want := "  nv set service ssh\n- nv set interface swp1 mtu 1500\n+ nv set interface swp1 mtu 9000\n"
	if got := buf.String(); got != want {
		t.Errorf("Write output = %q, want %q", got, want)
	}
	if strings.Contains(buf.String(), "\033[") {
		t.Error("color escapes with colorize off")
	}
}
