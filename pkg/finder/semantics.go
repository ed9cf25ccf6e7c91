package finder

// BySemanticsLabel finds widgets whose semantics label matches.
type BySemanticsLabel struct {
	indexed
	label Label
}

// NewBySemanticsLabel creates a BySemanticsLabel finder.
func NewBySemanticsLabel(label Label, index string) *BySemanticsLabel {
	return &BySemanticsLabel{indexed: newIndexed(index), label: label}
}

// Label returns the label matcher.
func (f *BySemanticsLabel) Label() Label { return f.label }

// FinderType returns "BySemanticsLabel".
func (f *BySemanticsLabel) FinderType() string { return TypeBySemanticsLabel }

// Serialize returns the wire form. isRegExp is only written for patterns.
func (f *BySemanticsLabel) Serialize() map[string]string {
	m := header(TypeBySemanticsLabel, f.indexed)
	m["label"] = f.label.String()
	if f.label.IsRegExp() {
		m["isRegExp"] = "true"
	}
	return m
}

// Describe returns a human-readable description.
func (f *BySemanticsLabel) Describe() string {
	if f.label.IsRegExp() {
		return "label=/" + f.label.String() + "/" + f.describeSuffix()
	}
	return quoted("label", f.label.String()) + f.describeSuffix()
}

func decodeBySemanticsLabel(m map[string]string, _ Deserializer) (Finder, error) {
	raw, err := requireKey(m, "label")
	if err != nil {
		return nil, err
	}

	label := LiteralLabel(raw)
	if m["isRegExp"] == "true" {
		if label, err = PatternLabel(raw); err != nil {
			return nil, err
		}
	}
	return &BySemanticsLabel{indexed: indexFrom(m), label: label}, nil
}
