package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/psaab/nvflat/pkg/generator"
)

func TestPrintSet(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, false)
	p.PrintSet(generator.CommandList{
		"nv set system hostname h1",
		"nv set service ssh",
	}, "cfg.yaml")

	out := buf.String()
	if !strings.Contains(out, "(cfg.yaml)") {
		t.Errorf("banner missing source name: %q", out)
	}
	if !strings.Contains(out, "nv set system hostname h1\nnv set service ssh\n") {
		t.Errorf("commands not printed in order: %q", out)
	}
	if !strings.Contains(out, "Generated 2 commands") {
		t.Errorf("missing trailing count: %q", out)
	}
}

func TestPrintSetSingular(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf, false).PrintSet(generator.CommandList{"nv set service ssh"}, "")
	if !strings.Contains(buf.String(), "Generated 1 command\n") {
		t.Errorf("singular count wrong: %q", buf.String())
	}
}

func TestPrintTree(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, false)
	p.PrintTree(generator.CommandList{
		"nv set interface swp1 ip address 192.168.1.1/24",
		"nv set interface swp1 mtu 9000",
		"nv set service ssh",
	}, "")

	out := buf.String()
	for _, want := range []string{
		"interface {",
		"    swp1 {",
		"        ip {",
		"            address 192.168.1.1/24;",
		"        mtu 9000;",
		"service ssh;",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("tree output missing %q:\n%s", want, out)
		}
	}
}

func TestColorEnabled(t *testing.T) {
	if !ColorEnabled("always", nil) {
		t.Error("always should enable color")
	}
	if ColorEnabled("never", nil) {
		t.Error("never should disable color")
	}
	if ColorEnabled("auto", nil) {
		t.Error("auto with no stream should disable color")
	}
}
