package generator

import "strings"

// Command is a single complete nv set command line. Partial command
// prefixes are never emitted.
type Command string

// CommandList is the ordered output of one generation run. Order follows
// the document's own key iteration order and is significant.
type CommandList []Command

// Strings returns the commands as plain strings.
func (l CommandList) Strings() []string {
	out := make([]string, len(l))
	for i, c := range l {
		out[i] = string(c)
	}
	return out
}

// Text joins the commands one per line, with a trailing newline when
// the list is non-empty.
func (l CommandList) Text() string {
	if len(l) == 0 {
		return ""
	}
	return strings.Join(l.Strings(), "\n") + "\n"
}

// FilterPrefix returns the commands whose token path starts with prefix
// (compared token-wise after the "nv set" preamble).
func (l CommandList) FilterPrefix(tokens ...string) CommandList {
	want := strings.Join(tokens, " ")
	var out CommandList
	for _, c := range l {
		rest := strings.TrimPrefix(string(c), "nv set ")
		if rest == want || strings.HasPrefix(rest, want+" ") {
			out = append(out, c)
		}
	}
	return out
}

// path is the accumulated command prefix. Appends copy: sibling branches
// of the recursion never share backing storage.
type path []string

func (p path) push(tok string) path {
	next := make(path, len(p), len(p)+1)
	copy(next, p)
	return append(next, tok)
}

func (p path) command(extra ...string) Command {
	tokens := make([]string, 0, len(p)+len(extra))
	tokens = append(tokens, p...)
	tokens = append(tokens, extra...)
	return Command(strings.Join(tokens, " "))
}
