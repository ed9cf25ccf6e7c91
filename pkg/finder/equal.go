package finder

// Equal reports whether a and b describe the same finder, field for field.
// Pattern labels are compared by source.
func Equal(a, b Finder) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	switch x := a.(type) {
	case *ByText:
		y, ok := b.(*ByText)
		return ok && x.index == y.index && x.text == y.text
	case *ByTooltipMessage:
		y, ok := b.(*ByTooltipMessage)
		return ok && x.index == y.index && x.text == y.text
	case *ByType:
		y, ok := b.(*ByType)
		return ok && x.index == y.index && x.typeName == y.typeName
	case *BySemanticsLabel:
		y, ok := b.(*BySemanticsLabel)
		return ok && x.index == y.index && x.label.Equal(y.label)
	case *ByValueKey:
		y, ok := b.(*ByValueKey)
		return ok && x.index == y.index && x.key == y.key
	case *PageBack:
		_, ok := b.(*PageBack)
		return ok
	case *Descendant:
		y, ok := b.(*Descendant)
		return ok && relationEqual(&x.relation, &y.relation)
	case *Ancestor:
		y, ok := b.(*Ancestor)
		return ok && relationEqual(&x.relation, &y.relation)
	}
	return false
}

func relationEqual(x, y *relation) bool {
	return x.index == y.index &&
		x.matchRoot == y.matchRoot &&
		x.firstMatchOnly == y.firstMatchOnly &&
		Equal(x.of, y.of) &&
		Equal(x.matching, y.matching)
}
