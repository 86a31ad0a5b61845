// Package vocab maintains the set of known product names: a static seed
// catalog plus names learned from user input. Comparison is case-insensitive.
package vocab

import "strings"

// Vocabulary tracks known product names. It is not safe for concurrent use;
// all mutation happens on the single intent-processing path.
type Vocabulary struct {
	seed    map[string]struct{}
	learned []string
	index   map[string]struct{} // lowercase of learned
	onLearn []func(name string)
}

// New builds a vocabulary from the seed catalog plus previously learned
// names (duplicates against the seed are dropped).
func New(learned []string) *Vocabulary {
	v := &Vocabulary{
		seed:  make(map[string]struct{}, len(seedProducts)),
		index: make(map[string]struct{}),
	}
	for _, p := range seedProducts {
		v.seed[strings.ToLower(p)] = struct{}{}
	}
	for _, name := range learned {
		v.Learn(name)
	}
	return v
}

// IsKnown reports whether name is in the seed or learned set.
func (v *Vocabulary) IsKnown(name string) bool {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return false
	}
	if _, ok := v.seed[key]; ok {
		return true
	}
	_, ok := v.index[key]
	return ok
}

// Learn records a new product name. Idempotent: names already known (any
// case) are ignored. Returns true when the name was newly learned, after
// notifying observers.
func (v *Vocabulary) Learn(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" || v.IsKnown(name) {
		return false
	}
	v.learned = append(v.learned, name)
	v.index[strings.ToLower(name)] = struct{}{}
	for _, fn := range v.onLearn {
		fn(name)
	}
	return true
}

// OnLearn registers an observer called for every newly learned name, e.g.
// to extend an input suggestion list.
func (v *Vocabulary) OnLearn(fn func(name string)) {
	v.onLearn = append(v.onLearn, fn)
}

// Learned returns the learned names in learning order.
func (v *Vocabulary) Learned() []string {
	return append([]string(nil), v.learned...)
}

// Suggestions returns the seed catalog followed by learned names, for input
// assistance.
func (v *Vocabulary) Suggestions() []string {
	out := make([]string, 0, len(seedProducts)+len(v.learned))
	out = append(out, seedProducts...)
	out = append(out, v.learned...)
	return out
}
