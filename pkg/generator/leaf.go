package generator

import "github.com/psaab/nvflat/pkg/document"

// Classifier decides whether a non-empty mapping represents a single
// terminal configuration object (flatten one level and stop) or a
// structural subtree (keep recursing). It sees only the mapping's own
// keys; it must not inspect nested values.
type Classifier func(document.Mapping) bool

// leafVocabulary is the fixed set of property names whose presence marks
// a mapping as a terminal configuration object. The test is ANY key in
// the vocabulary, shallow only. The set is deliberately a heuristic: a
// subtree that happens to contain one of these keys at an intermediate
// level flattens one level shallower than its structure alone would
// suggest.
var leafVocabulary = []string{
	"type", "address", "prefix", "vlan", "bridge", "bond",
	"ip", "ipv4", "ipv6", "mtu", "admin", "state", "mode",
	"protocol", "enable", "disable", "speed", "duplex",
}

// NewVocabularyClassifier returns the default any-intersection
// classifier, with extra words merged into the built-in vocabulary.
func NewVocabularyClassifier(extra ...string) Classifier {
	vocab := make(map[string]bool, len(leafVocabulary)+len(extra))
	for _, w := range leafVocabulary {
		vocab[w] = true
	}
	for _, w := range extra {
		if w != "" {
			vocab[w] = true
		}
	}
	return func(m document.Mapping) bool {
		for _, e := range m {
			if vocab[e.Key] {
				return true
			}
		}
		return false
	}
}
