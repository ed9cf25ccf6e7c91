package finder

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/devicelab-dev/flutter-driver/pkg/core"
)

func TestDescendant_Composition(t *testing.T) {
	d := NewDescendant(NewByType("Foo", "0"), NewByText("bar", "0"), true, false, "0")
	m := d.Serialize()

	if m["matchRoot"] != "true" {
		t.Errorf("matchRoot = %q, want true", m["matchRoot"])
	}
	if m["firstMatchOnly"] != "false" {
		t.Errorf("firstMatchOnly = %q, want false", m["firstMatchOnly"])
	}

	var of map[string]string
	if err := json.Unmarshal([]byte(m["of"]), &of); err != nil {
		t.Fatalf("of is not a JSON-encoded map: %v", err)
	}
	if of["finderType"] != "ByType" || of["type"] != "Foo" {
		t.Errorf("of = %v", of)
	}

	got, err := Deserialize(m)
	if err != nil {
		t.Fatalf("Deserialize() error = %v", err)
	}
	desc, ok := got.(*Descendant)
	if !ok {
		t.Fatalf("got %T, want *Descendant", got)
	}
	if !Equal(desc.Of(), NewByType("Foo", "0")) {
		t.Errorf("Of() = %s", desc.Of().Describe())
	}
	if !Equal(desc.Matching(), NewByText("bar", "0")) {
		t.Errorf("Matching() = %s", desc.Matching().Describe())
	}
	if !desc.MatchRoot() || desc.FirstMatchOnly() {
		t.Errorf("flags = matchRoot:%v firstMatchOnly:%v, want true/false", desc.MatchRoot(), desc.FirstMatchOnly())
	}
}

func TestRelation_DeepNesting(t *testing.T) {
	key, err := NewByValueKey(IntKey(9), "0")
	if err != nil {
		t.Fatalf("NewByValueKey() error = %v", err)
	}

	level1 := NewDescendant(NewByType("Scaffold", "0"), key, false, true, "0")
	level2 := NewAncestor(level1, NewBySemanticsLabel(MustPatternLabel("row-\\d+"), "0"), true, false, "0")
	level3 := NewDescendant(NewPageBack(), level2, false, false, "3")
	level4 := NewAncestor(level3, level3, true, true, "0")

	for _, f := range []Finder{level1, level2, level3, level4} {
		got, err := Deserialize(f.Serialize())
		if err != nil {
			t.Fatalf("%s: Deserialize() error = %v", f.Describe(), err)
		}
		if !Equal(got, f) {
			t.Errorf("round trip = %s, want %s", got.Describe(), f.Describe())
		}
	}
}

func TestRelation_MalformedNestedJSON(t *testing.T) {
	tests := []struct {
		name string
		of   string
	}{
		{"not json", "{not json"},
		{"array", `["ByText"]`},
		{"non-string values", `{"finderType": 1}`},
		{"null", "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Deserialize(map[string]string{
				"finderType": "Descendant",
				"of":         tt.of,
				"matching":   `{"finderType":"PageBack"}`,
			})
			if !errors.Is(err, core.ErrMalformedJSON) {
				t.Errorf("error = %v, want ErrMalformedJSON", err)
			}
		})
	}
}

func TestRelation_NestedErrorPropagates(t *testing.T) {
	_, err := Deserialize(map[string]string{
		"finderType": "Ancestor",
		"of":         `{"finderType":"ByValueKey","keyValueString":"1.5","keyValueType":"double"}`,
		"matching":   `{"finderType":"PageBack"}`,
	})
	if !errors.Is(err, core.ErrInvalidKeyValueType) {
		t.Errorf("error = %v, want ErrInvalidKeyValueType", err)
	}
}

func TestRelation_FlagsDefaultFalse(t *testing.T) {
	got, err := Deserialize(map[string]string{
		"finderType": "Descendant",
		"of":         `{"finderType":"PageBack"}`,
		"matching":   `{"finderType":"ByText","text":"x"}`,
	})
	if err != nil {
		t.Fatalf("Deserialize() error = %v", err)
	}
	d := got.(*Descendant)
	if d.MatchRoot() || d.FirstMatchOnly() {
		t.Error("absent flags should decode as false")
	}
	if d.Index() != "0" {
		t.Errorf("Index() = %q, want 0", d.Index())
	}
}

type countingDeserializer struct {
	calls int
	next  Deserializer
}

func (c *countingDeserializer) DeserializeFinder(m map[string]string) (Finder, error) {
	c.calls++
	return c.next.DeserializeFinder(m)
}

func TestRelation_UsesSuppliedDeserializer(t *testing.T) {
	d := NewDescendant(NewByText("a", "0"), NewByText("b", "0"), false, false, "0")
	counter := &countingDeserializer{next: Default}

	got, err := decodeDescendant(d.Serialize(), counter)
	if err != nil {
		t.Fatalf("decodeDescendant() error = %v", err)
	}
	if counter.calls != 2 {
		t.Errorf("deserializer calls = %d, want 2", counter.calls)
	}
	if !Equal(got, d) {
		t.Errorf("got %s, want %s", got.Describe(), d.Describe())
	}
}

func TestRelation_NilFinderPanics(t *testing.T) {
	text := NewByText("x", "0")
	tests := []struct {
		name string
		make func()
	}{
		{"descendant nil of", func() { NewDescendant(nil, text, false, false, "0") }},
		{"descendant nil matching", func() { NewDescendant(text, nil, false, false, "0") }},
		{"ancestor nil of", func() { NewAncestor(nil, text, false, false, "0") }},
		{"ancestor nil matching", func() { NewAncestor(text, nil, false, false, "0") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic for nil finder")
				}
			}()
			tt.make()
		})
	}
}
