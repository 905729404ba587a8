// Package generator converts a decoded NVUE configuration document into
// the flat, ordered sequence of imperative nv set commands that, replayed
// against an empty configuration, reproduces the same state.
//
// The generator is a total function over well-typed document trees: it
// never fails, at worst it returns an empty list. Anomalies (unexpected
// shapes, unsupported value types) degrade to skips with a diagnostic on
// the side channel; they never abort generation or truncate output.
package generator

import (
	"io"
	"log/slog"

	"github.com/psaab/nvflat/pkg/document"
)

// Generator produces nv set commands from configuration documents. It
// holds no state across calls; the same input always yields the same
// CommandList.
type Generator struct {
	classify Classifier
	log      *slog.Logger
}

// New creates a Generator. Diagnostics (header metadata, skipped
// shapes) go to log, never into the command output; a nil log discards
// them.
func New(log *slog.Logger) *Generator {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Generator{
		classify: NewVocabularyClassifier(),
		log:      log,
	}
}

// SetClassifier replaces the leaf-detection heuristic used by generic
// sections. A nil classifier is ignored.
func (g *Generator) SetClassifier(c Classifier) {
	if c != nil {
		g.classify = c
	}
}

// FromDocument unwraps the document envelope and generates commands for
// every configuration payload it contains, in document order.
func (g *Generator) FromDocument(doc document.Value) CommandList {
	out := CommandList{}
	for _, payload := range g.Unwrap(doc) {
		out = append(out, g.Generate(payload)...)
	}
	return out
}

// Unwrap locates the configuration payloads inside the document's
// top-level envelope. A sequence document is walked element by element:
// an element with a "set" key contributes that value, an element with a
// "header" key is metadata only (logged, no commands), and any other
// mapping element is itself a payload. A mapping document contributes
// its "set" value if present, otherwise itself. Anything else yields no
// payloads; a scalar top level additionally logs a diagnostic.
func (g *Generator) Unwrap(doc document.Value) []document.Mapping {
	switch doc.Kind {
	case document.KindNull:
		return nil
	case document.KindMapping:
		if set, ok := doc.Map.Get("set"); ok {
			return g.payloadFrom(set)
		}
		return []document.Mapping{doc.Map}
	case document.KindSequence:
		var payloads []document.Mapping
		for _, elem := range doc.Seq {
			if elem.Kind != document.KindMapping {
				g.log.Warn("ignoring non-mapping document element", "kind", elem.Kind.String())
				continue
			}
			if set, ok := elem.Map.Get("set"); ok {
				payloads = append(payloads, g.payloadFrom(set)...)
				continue
			}
			if header, ok := elem.Map.Get("header"); ok {
				g.noteHeader(header)
				continue
			}
			payloads = append(payloads, elem.Map)
		}
		return payloads
	default:
		g.log.Warn("unsupported top-level document type", "kind", doc.Kind.String())
		return nil
	}
}

func (g *Generator) payloadFrom(set document.Value) []document.Mapping {
	if set.Kind != document.KindMapping {
		g.log.Warn("set payload is not a mapping", "kind", set.Kind.String())
		return nil
	}
	return []document.Mapping{set.Map}
}

func (g *Generator) noteHeader(header document.Value) {
	model, version := "unknown", "unknown"
	if header.Kind == document.KindMapping {
		if v, ok := header.Map.Get("model"); ok && v.IsScalar() {
			model = v.Text()
		}
		if v, ok := header.Map.Get("version"); ok && v.IsScalar() {
			version = v.Text()
		}
	}
	g.log.Info("device header", "model", model, "version", version)
}

// interfaceSection is the one top-level section with bespoke flattening.
const interfaceSection = "interface"

// Generate walks the payload's top-level sections in document order.
// The interface section routes to the interface strategy once per
// interface name; every other section (system, service, router, vrf,
// bridge, mlag, and anything unrecognized alike) flattens generically.
func (g *Generator) Generate(payload document.Mapping) CommandList {
	out := CommandList{}
	base := path{"nv", "set"}
	for _, e := range payload {
		if e.Key == interfaceSection {
			g.interfaces(e.Value, base.push(interfaceSection), &out)
			continue
		}
		g.section(e.Key, e.Value, base, &out)
	}
	return out
}

func (g *Generator) section(name string, v document.Value, base path, out *CommandList) {
	p := base.push(name)
	switch {
	case v.Kind == document.KindMapping:
		g.flatten(v.Map, p, g.genericStrategy(), out)
	case v.Kind == document.KindSequence:
		g.listItems(p, v.Seq, out)
	case v.IsScalar():
		*out = append(*out, p.command(v.Text()))
	default:
		g.log.Warn("section has no configuration body", "section", name)
	}
}

func (g *Generator) interfaces(v document.Value, p path, out *CommandList) {
	if v.Kind != document.KindMapping {
		g.log.Warn("interface section is not a mapping", "kind", v.Kind.String())
		return
	}
	for _, e := range v.Map {
		if e.Value.Kind != document.KindMapping {
			g.log.Warn("interface config is not a mapping",
				"interface", e.Key, "kind", e.Value.Kind.String())
			continue
		}
		g.flatten(e.Value.Map, p.push(e.Key), interfaceStrategy, out)
	}
}

// strategy parameterizes one flattening pass. The generic and interface
// sections share the traversal but diverge on leaf classification,
// scalar acceptance, and sequence handling; the divergence is part of
// the output contract and must be preserved exactly.
type strategy struct {
	// classify marks a non-empty mapping as a terminal configuration
	// object. nil means always recurse.
	classify Classifier
	// keepScalar filters which scalar kinds emit a command.
	keepScalar func(document.Value) bool
	// sequences enables the list handler; when false, sequence values
	// are dropped without a command.
	sequences bool
}

func (g *Generator) genericStrategy() strategy {
	return strategy{
		classify:   g.classify,
		keepScalar: func(document.Value) bool { return true },
		sequences:  true,
	}
}

// interfaceStrategy always recurses into non-empty mappings and drops
// booleans and sequences outright.
var interfaceStrategy = strategy{
	keepScalar: func(v document.Value) bool { return v.Kind != document.KindBool },
	sequences:  false,
}

func (g *Generator) flatten(node document.Mapping, p path, st strategy, out *CommandList) {
	for _, e := range node {
		childPath := p.push(e.Key)
		v := e.Value
		switch {
		case v.IsEmptyMapping():
			// presence alone enables the feature
			*out = append(*out, childPath.command())
		case v.Kind == document.KindMapping:
			if st.classify != nil && st.classify(v.Map) {
				g.leafObject(childPath, v.Map, out)
			} else {
				g.flatten(v.Map, childPath, st, out)
			}
		case v.Kind == document.KindSequence:
			if st.sequences {
				g.listItems(childPath, v.Seq, out)
			}
		case v.IsScalar():
			if st.keepScalar(v) {
				*out = append(*out, childPath.command(v.Text()))
			}
		}
	}
}

// leafObject flattens a terminal configuration object: one level of
// nesting at most, no recursion. Sub-values that are not scalar at the
// expected depth are skipped.
func (g *Generator) leafObject(p path, obj document.Mapping, out *CommandList) {
	for _, e := range obj {
		propPath := p.push(e.Key)
		pv := e.Value
		switch pv.Kind {
		case document.KindMapping:
			for _, sub := range pv.Map {
				if sub.Value.IsScalar() {
					*out = append(*out, propPath.command(sub.Key, sub.Value.Text()))
				}
			}
		case document.KindSequence:
			for _, item := range pv.Seq {
				if item.IsScalar() {
					*out = append(*out, propPath.command(item.Text()))
				}
			}
		default:
			if pv.IsScalar() {
				*out = append(*out, propPath.command(pv.Text()))
			}
		}
	}
}

// listItems emits commands for a sequence value. Mapping items flatten
// per key, with mapping values delegated to the leaf object handler;
// scalar items append directly to the path.
func (g *Generator) listItems(p path, items []document.Value, out *CommandList) {
	for _, item := range items {
		switch {
		case item.Kind == document.KindMapping:
			for _, e := range item.Map {
				switch {
				case e.Value.Kind == document.KindMapping:
					g.leafObject(p.push(e.Key), e.Value.Map, out)
				case e.Value.IsScalar():
					*out = append(*out, p.command(e.Key, e.Value.Text()))
				}
			}
		case item.IsScalar():
			*out = append(*out, p.command(item.Text()))
		}
	}
}
