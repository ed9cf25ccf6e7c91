package finder

import (
	"encoding/json"
	"strconv"

	"github.com/devicelab-dev/flutter-driver/pkg/core"
)

// relation is the shape shared by Descendant and Ancestor: a target finder
// (of), a finder applied relative to it (matching), and match options.
type relation struct {
	indexed
	of             Finder
	matching       Finder
	matchRoot      bool
	firstMatchOnly bool
}

// Of returns the finder locating the anchor widget.
func (r *relation) Of() Finder { return r.of }

// Matching returns the finder applied relative to the anchor.
func (r *relation) Matching() Finder { return r.matching }

// MatchRoot reports whether the anchor itself is a match candidate.
func (r *relation) MatchRoot() bool { return r.matchRoot }

// FirstMatchOnly reports whether only the first match is returned.
func (r *relation) FirstMatchOnly() bool { return r.firstMatchOnly }

func (r *relation) serialize(finderType string) map[string]string {
	m := header(finderType, r.indexed)
	m["of"] = encodeNested(r.of)
	m["matching"] = encodeNested(r.matching)
	m["matchRoot"] = strconv.FormatBool(r.matchRoot)
	m["firstMatchOnly"] = strconv.FormatBool(r.firstMatchOnly)
	return m
}

func (r *relation) describe(name string) string {
	s := name + "(of: " + r.of.Describe() + ", matching: " + r.matching.Describe()
	if r.matchRoot {
		s += ", matchRoot"
	}
	if r.firstMatchOnly {
		s += ", firstMatchOnly"
	}
	return s + ")" + r.describeSuffix()
}

// Descendant finds widgets matching `matching` below the widget found by `of`.
type Descendant struct {
	relation
}

// NewDescendant creates a Descendant finder. It panics if of or matching is nil.
func NewDescendant(of, matching Finder, matchRoot, firstMatchOnly bool, index string) *Descendant {
	return &Descendant{relation: newRelation(of, matching, matchRoot, firstMatchOnly, index)}
}

// FinderType returns "Descendant".
func (f *Descendant) FinderType() string { return TypeDescendant }

// Serialize returns the wire form with of/matching as JSON strings.
func (f *Descendant) Serialize() map[string]string { return f.serialize(TypeDescendant) }

// Describe returns a human-readable description.
func (f *Descendant) Describe() string { return f.describe("descendant") }

// Ancestor finds widgets matching `matching` above the widget found by `of`.
type Ancestor struct {
	relation
}

// NewAncestor creates an Ancestor finder. It panics if of or matching is nil.
func NewAncestor(of, matching Finder, matchRoot, firstMatchOnly bool, index string) *Ancestor {
	return &Ancestor{relation: newRelation(of, matching, matchRoot, firstMatchOnly, index)}
}

// FinderType returns "Ancestor".
func (f *Ancestor) FinderType() string { return TypeAncestor }

// Serialize returns the wire form with of/matching as JSON strings.
func (f *Ancestor) Serialize() map[string]string { return f.serialize(TypeAncestor) }

// Describe returns a human-readable description.
func (f *Ancestor) Describe() string { return f.describe("ancestor") }

func newRelation(of, matching Finder, matchRoot, firstMatchOnly bool, index string) relation {
	if of == nil || matching == nil {
		panic("finder: descendant/ancestor requires non-nil of and matching finders")
	}
	return relation{
		indexed:        newIndexed(index),
		of:             of,
		matching:       matching,
		matchRoot:      matchRoot,
		firstMatchOnly: firstMatchOnly,
	}
}

func decodeDescendant(m map[string]string, d Deserializer) (Finder, error) {
	r, err := decodeRelation(m, d)
	if err != nil {
		return nil, err
	}
	return &Descendant{relation: r}, nil
}

func decodeAncestor(m map[string]string, d Deserializer) (Finder, error) {
	r, err := decodeRelation(m, d)
	if err != nil {
		return nil, err
	}
	return &Ancestor{relation: r}, nil
}

func decodeRelation(m map[string]string, d Deserializer) (relation, error) {
	if d == nil {
		d = NewRegistry()
	}
	of, err := decodeNested(m, "of", d)
	if err != nil {
		return relation{}, err
	}
	matching, err := decodeNested(m, "matching", d)
	if err != nil {
		return relation{}, err
	}
	return relation{
		indexed:        indexFrom(m),
		of:             of,
		matching:       matching,
		matchRoot:      m["matchRoot"] == "true",
		firstMatchOnly: m["firstMatchOnly"] == "true",
	}, nil
}

func encodeNested(f Finder) string {
	// map[string]string always marshals
	data, _ := json.Marshal(f.Serialize())
	return string(data)
}

func decodeNested(m map[string]string, key string, d Deserializer) (Finder, error) {
	raw, err := requireKey(m, key)
	if err != nil {
		return nil, err
	}
	var nested map[string]string
	if err := json.Unmarshal([]byte(raw), &nested); err != nil {
		return nil, core.ErrMalformedJSON.
			WithMessagef("malformed nested finder in %q", key).
			WithCause(err)
	}
	if nested == nil {
		return nil, core.ErrMalformedJSON.WithMessagef("nested finder in %q is null", key)
	}
	return d.DeserializeFinder(nested)
}
